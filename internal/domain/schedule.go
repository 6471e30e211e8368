package domain

import "time"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotCancelled SlotStatus = "cancelled"
)

// ScheduleSlot is a time window on a single studio. Non-cancelled slots on
// the same studio never overlap and keep a minimum gap between each other.
type ScheduleSlot struct {
	ID        int64      `json:"id"`
	StudioID  int64      `json:"studio_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    SlotStatus `json:"status"`
	BookingID *int64     `json:"booking_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (s *ScheduleSlot) DurationHours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}
