package domain

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PromoAudience string

const (
	AudienceAll       PromoAudience = "all"
	AudienceNew       PromoAudience = "new"
	AudienceReturning PromoAudience = "returning"
)

// HourWindow restricts a promotion to hours [StartHour, EndHour).
type HourWindow struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// Promotion is a discount code. UsageCount and TotalDiscountedAmount are
// monotonic ledgers incremented only after a booking using the code has been
// durably created.
type Promotion struct {
	ID            int64        `json:"id"`
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	MaxDiscount   *float64     `json:"max_discount,omitempty"`
	MinOrderValue float64      `json:"min_order_value"`

	UsageLimit        *int `json:"usage_limit,omitempty"`
	UsageCount        int  `json:"usage_count"`
	UsageLimitPerUser *int `json:"usage_limit_per_user,omitempty"`

	// Weekday numbers 0 (Sunday) .. 6 (Saturday). Empty means every day.
	ApplicableDays  []int       `json:"applicable_days,omitempty"`
	ApplicableHours *HourWindow `json:"applicable_hours,omitempty"`

	MaxTotalDiscountAmount *float64 `json:"max_total_discount_amount,omitempty"`
	TotalDiscountedAmount  float64  `json:"total_discounted_amount"`

	Audience  PromoAudience `json:"audience"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BudgetRemaining reports how much discount budget is left, or a negative
// value when no cap is configured.
func (p *Promotion) BudgetRemaining() float64 {
	if p.MaxTotalDiscountAmount == nil {
		return -1
	}
	return *p.MaxTotalDiscountAmount - p.TotalDiscountedAmount
}
