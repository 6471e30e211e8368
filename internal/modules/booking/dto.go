package booking

import "time"

type LineItemRequest struct {
	EquipmentID int64 `json:"equipment_id" binding:"required"`
	Quantity    int   `json:"quantity" binding:"required,gt=0"`
}

type CreateBookingRequest struct {
	StudioID   int64             `json:"studio_id" binding:"required"`
	CustomerID int64             `json:"customer_id" binding:"required"`
	StartTime  time.Time         `json:"start_time" binding:"required"`
	EndTime    time.Time         `json:"end_time" binding:"required"`
	LineItems  []LineItemRequest `json:"line_items"`
	PromoCode  string            `json:"promo_code"`
	// PromoRequired makes an invalid code fail the booking instead of
	// silently yielding zero discount.
	PromoRequired bool   `json:"promo_required"`
	Notes         string `json:"notes"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type MarkNoShowRequest struct {
	CheckInTime *time.Time `json:"check_in_time"`
}
