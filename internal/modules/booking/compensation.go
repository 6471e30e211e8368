package booking

import (
	"context"
	"log"
)

// compensation is a stack of undo actions accumulated while a multi-step
// operation acquires resources. On failure the stack runs in reverse, so a
// partially-created booking is never observable. Undo failures are logged;
// there is nothing better to do with them at this point.
type compensation struct {
	undos []func(ctx context.Context) error
}

func (c *compensation) push(undo func(ctx context.Context) error) {
	c.undos = append(c.undos, undo)
}

func (c *compensation) run(ctx context.Context) {
	for i := len(c.undos) - 1; i >= 0; i-- {
		if err := c.undos[i](ctx); err != nil {
			log.Printf("compensation step %d failed: %v", i, err)
		}
	}
}
