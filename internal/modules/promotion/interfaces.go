package promotion

import (
	"context"

	"studiobooking/internal/domain"
)

// PromotionRepository backs validation and the usage ledgers. Commit must be
// a single conditional update so concurrent bookings cannot push usage or
// budget past their caps.
type PromotionRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
	CountUsageByCustomer(ctx context.Context, promoID, customerID int64) (int64, error)
	CountCustomerBookings(ctx context.Context, customerID, excludeBookingID int64) (int64, error)
	Commit(ctx context.Context, promoID int64, discountAmount float64) (bool, error)
}
