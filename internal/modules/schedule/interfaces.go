package schedule

import (
	"context"
	"time"

	"studiobooking/internal/domain"
)

// SlotRepository is the storage surface the allocator needs. Claim must be a
// conditional update that only succeeds from the available status.
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error)
	FindExact(ctx context.Context, studioID int64, start, end time.Time) (*domain.ScheduleSlot, error)
	CountConflicting(ctx context.Context, studioID int64, start, end time.Time, gap time.Duration, excludeID int64) (int64, error)
	Create(ctx context.Context, s *domain.ScheduleSlot) error
	Claim(ctx context.Context, slotID, bookingID int64) (bool, error)
	Release(ctx context.Context, slotID int64) error
	UpdateWindow(ctx context.Context, slotID int64, start, end time.Time) error
}
