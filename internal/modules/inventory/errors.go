package inventory

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState    = errors.New("equipment counters do not allow this operation")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// InsufficientStockError reports the stock that was actually there when a
// reservation was rejected.
type InsufficientStockError struct {
	EquipmentID int64
	Requested   int
	Available   int
	Total       int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for equipment %d: requested %d, available %d of %d",
		e.EquipmentID, e.Requested, e.Available, e.Total)
}
