package promotion

import (
	"context"
	"log"
	"math"
	"time"

	"studiobooking/internal/domain"
)

// ValidationResult carries the matched promotion and the discount it grants
// for the given subtotal.
type ValidationResult struct {
	Promotion      *domain.Promotion
	DiscountAmount float64
}

type Service struct {
	promos PromotionRepository
}

func NewService(promos PromotionRepository) *Service {
	return &Service{promos: promos}
}

// Validate runs the eligibility checks in order, each with its own failure,
// then computes the discount. now is the booking-creation time, not the slot
// start. excludeBookingID is the booking being priced: its pending row is
// already persisted and must not count as prior history, or a first-time
// customer would never qualify for a new-customer code.
func (s *Service) Validate(ctx context.Context, code string, customerID int64, subtotal float64, now time.Time, excludeBookingID int64) (*ValidationResult, error) {
	p, err := s.promos.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	if !p.IsActive || now.Before(p.StartDate) || now.After(p.EndDate) {
		return nil, ErrExpired
	}
	if p.UsageLimit != nil && p.UsageCount >= *p.UsageLimit {
		return nil, ErrExhausted
	}
	if p.MaxTotalDiscountAmount != nil && p.BudgetRemaining() <= 0 {
		return nil, ErrBudgetExhausted
	}

	if p.UsageLimitPerUser != nil {
		used, err := s.promos.CountUsageByCustomer(ctx, p.ID, customerID)
		if err != nil {
			return nil, err
		}
		if used >= int64(*p.UsageLimitPerUser) {
			return nil, ErrUserLimitExceeded
		}
	}

	if len(p.ApplicableDays) > 0 && !containsDay(p.ApplicableDays, int(now.Weekday())) {
		return nil, ErrDayRestricted
	}
	if hw := p.ApplicableHours; hw != nil {
		h := now.Hour()
		if h < hw.StartHour || h >= hw.EndHour {
			return nil, ErrHourRestricted
		}
	}

	if subtotal < p.MinOrderValue {
		return nil, ErrBelowMinimum
	}

	if p.Audience != "" && p.Audience != domain.AudienceAll {
		prior, err := s.promos.CountCustomerBookings(ctx, customerID, excludeBookingID)
		if err != nil {
			return nil, err
		}
		isNew := prior == 0
		if (p.Audience == domain.AudienceNew && !isNew) || (p.Audience == domain.AudienceReturning && isNew) {
			return nil, ErrAudienceMismatch
		}
	}

	discount := computeDiscount(p, subtotal)
	if p.MaxTotalDiscountAmount != nil {
		remaining := p.BudgetRemaining()
		if remaining <= 0 {
			return nil, ErrBudgetExhausted
		}
		if discount > remaining {
			discount = money(remaining)
		}
	}

	return &ValidationResult{Promotion: p, DiscountAmount: discount}, nil
}

// Commit records a use of the promotion after its booking has been durably
// persisted. Negative amounts are clamped to zero so a caller bug cannot
// bypass the budget cap. A rejected commit means another booking won a race
// for the last usage or budget slice; it is logged, never escalated.
func (s *Service) Commit(ctx context.Context, promoID int64, discountAmount float64) error {
	if discountAmount < 0 {
		discountAmount = 0
	}
	ok, err := s.promos.Commit(ctx, promoID, discountAmount)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("promotion %d commit rejected by usage/budget guard (discount=%.2f)", promoID, discountAmount)
	}
	return nil
}

func computeDiscount(p *domain.Promotion, subtotal float64) float64 {
	var d float64
	switch p.DiscountType {
	case domain.DiscountPercentage:
		d = money(subtotal * p.DiscountValue / 100)
		if p.MaxDiscount != nil && d > *p.MaxDiscount {
			d = *p.MaxDiscount
		}
	case domain.DiscountFixed:
		d = p.DiscountValue
		if d > subtotal {
			d = subtotal
		}
	}
	if d < 0 {
		d = 0
	}
	return d
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func money(v float64) float64 {
	return math.Round(v*100) / 100
}
