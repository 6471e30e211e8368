package schedule

import (
	"context"
	"time"

	"studiobooking/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultMinGap is the minimum separation between two slots on one studio.
const DefaultMinGap = 30 * time.Minute

type Service struct {
	slots SlotRepository
	gap   time.Duration
}

func NewService(slots SlotRepository, gap time.Duration) *Service {
	if gap <= 0 {
		gap = DefaultMinGap
	}
	return &Service{slots: slots, gap: gap}
}

// ResolveOrCreateSlot finds the slot for the requested window or creates a
// fresh available one. An exact-match slot that is not available, or any
// other slot within the minimum gap of the window, is a conflict. The gap
// rule applies even against available slots, so a free neighbouring slot
// still blocks creation.
func (s *Service) ResolveOrCreateSlot(ctx context.Context, studioID int64, start, end time.Time) (*domain.ScheduleSlot, error) {
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	existing, err := s.slots.FindExact(ctx, studioID, start, end)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status != domain.SlotAvailable {
			return nil, ErrConflict
		}
		return existing, nil
	}

	cnt, err := s.slots.CountConflicting(ctx, studioID, start, end, s.gap, 0)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, ErrConflict
	}

	slot := &domain.ScheduleSlot{
		StudioID:  studioID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.SlotAvailable,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		// On postgres the partial exclusion index is a second line of
		// defense when two creates race past the conflict count.
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}
	return slot, nil
}

// Claim books an available slot for a booking. The repository performs the
// status check inside the update, so a lost race surfaces as ErrConflict.
func (s *Service) Claim(ctx context.Context, slotID, bookingID int64) error {
	ok, err := s.slots.Claim(ctx, slotID, bookingID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

// Release returns the slot to available. Idempotent.
func (s *Service) Release(ctx context.Context, slotID int64) error {
	return s.slots.Release(ctx, slotID)
}

// Reschedule moves a slot to a new window after re-validating range and gap
// against every other slot on the studio. On any failure the slot is left
// untouched.
func (s *Service) Reschedule(ctx context.Context, slotID int64, newStart, newEnd time.Time) (*domain.ScheduleSlot, error) {
	if !newEnd.After(newStart) {
		return nil, ErrInvalidRange
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	cnt, err := s.slots.CountConflicting(ctx, slot.StudioID, newStart, newEnd, s.gap, slot.ID)
	if err != nil {
		return nil, err
	}
	if cnt > 0 {
		return nil, ErrConflict
	}

	if err := s.slots.UpdateWindow(ctx, slotID, newStart, newEnd); err != nil {
		return nil, err
	}
	slot.StartTime = newStart
	slot.EndTime = newEnd
	return slot, nil
}

// GetSlot exposes slot lookup to the orchestrator.
func (s *Service) GetSlot(ctx context.Context, slotID int64) (*domain.ScheduleSlot, error) {
	return s.slots.GetByID(ctx, slotID)
}
