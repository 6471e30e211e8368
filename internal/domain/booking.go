package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCheckedIn BookingStatus = "checked_in"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransitionTo enforces the booking state machine:
// pending -> confirmed|cancelled, confirmed -> checked_in|completed|cancelled,
// checked_in -> completed. completed and cancelled are terminal.
// confirmed -> completed is the no-show path.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCheckedIn || next == BookingCompleted || next == BookingCancelled
	case BookingCheckedIn:
		return next == BookingCompleted
	default:
		return false
	}
}

type EventType string

const (
	EventCreated   EventType = "CREATED"
	EventConfirmed EventType = "CONFIRMED"
	EventCheckedIn EventType = "CHECKED_IN"
	EventCancelled EventType = "CANCELLED"
	EventNoShow    EventType = "NO_SHOW"
	EventPromoNote EventType = "PROMO_NOTE"
)

// BookingEvent is one entry of the booking's append-only audit log.
type BookingEvent struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
	Amount    float64        `json:"amount,omitempty"`
}

// LineItem is an equipment add-on priced into the booking.
type LineItem struct {
	EquipmentID int64   `json:"equipment_id"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type Financials struct {
	OriginalAmount float64 `json:"original_amount"`
	RefundAmount   float64 `json:"refund_amount"`
	ChargeAmount   float64 `json:"charge_amount"`
	NetAmount      float64 `json:"net_amount"`
}

type Booking struct {
	ID         int64         `json:"id"`
	SlotID     int64         `json:"slot_id"`
	StudioID   int64         `json:"studio_id"`
	CustomerID int64         `json:"customer_id"`
	Status     BookingStatus `json:"status"`

	LineItems           []LineItem `json:"line_items,omitempty"`
	TotalBeforeDiscount float64    `json:"total_before_discount"`
	DiscountAmount      float64    `json:"discount_amount"`
	FinalAmount         float64    `json:"final_amount"`
	PromoID             *int64     `json:"promo_id,omitempty"`

	PolicySnapshot PolicySnapshot `json:"policy_snapshot"`
	Financials     Financials     `json:"financials"`
	Events         []BookingEvent `json:"events,omitempty"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CheckInTime        *time.Time `json:"check_in_time,omitempty"`
	NoShow             bool       `json:"no_show"`
	Notes              string     `json:"notes,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// AppendEvent adds an audit entry; entries are never removed or rewritten.
func (b *Booking) AppendEvent(t EventType, at time.Time, amount float64, details map[string]any) {
	b.Events = append(b.Events, BookingEvent{
		Type:      t,
		Timestamp: at,
		Details:   details,
		Amount:    amount,
	})
}
