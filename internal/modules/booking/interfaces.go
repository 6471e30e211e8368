package booking

import (
	"context"
	"time"

	"studiobooking/internal/domain"
	"studiobooking/internal/modules/promotion"
)

// SlotAllocator is the schedule leaf (conflict-free slot allocation).
type SlotAllocator interface {
	ResolveOrCreateSlot(ctx context.Context, studioID int64, start, end time.Time) (*domain.ScheduleSlot, error)
	Claim(ctx context.Context, slotID, bookingID int64) error
	Release(ctx context.Context, slotID int64) error
	GetSlot(ctx context.Context, slotID int64) (*domain.ScheduleSlot, error)
}

// InventoryLedger is the equipment leaf (atomic reserve/release).
type InventoryLedger interface {
	Reserve(ctx context.Context, equipmentID int64, qty int) (*domain.Equipment, error)
	Release(ctx context.Context, equipmentID int64, qty int) (*domain.Equipment, error)
}

// PromotionApplier is the discount leaf. Validate receives the id of the
// booking being priced so its own pending row is not counted as history.
type PromotionApplier interface {
	Validate(ctx context.Context, code string, customerID int64, subtotal float64, now time.Time, excludeBookingID int64) (*promotion.ValidationResult, error)
	Commit(ctx context.Context, promoID int64, discountAmount float64) error
}

// PolicySource resolves the currently-active policies snapshotted into new
// bookings.
type PolicySource interface {
	GetActive(ctx context.Context, t domain.PolicyType, category string) (*domain.Policy, error)
}

// ResourceCatalog is the narrow read-only collaborator for studio pricing.
type ResourceCatalog interface {
	GetBaseRate(ctx context.Context, studioID int64) (float64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, b *domain.Booking) error
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error)
	CountNoShows(ctx context.Context, customerID int64) (int64, error)
	ListConfirmedDue(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error)
}

// NotificationSender is fire-and-forget; failures are logged by the caller
// and never affect the booking.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, customerID, bookingID, studioID int64, start time.Time) error
	NotifyBookingConfirmed(ctx context.Context, customerID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, customerID, bookingID int64, refundAmount float64, reason string) error
	NotifyBookingNoShow(ctx context.Context, customerID, bookingID int64, chargeAmount float64) error
}
