package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

type promotionModel struct {
	ID            int64   `gorm:"column:id;primaryKey"`
	Code          string  `gorm:"column:code;uniqueIndex"`
	Name          string  `gorm:"column:name"`
	DiscountType  string  `gorm:"column:discount_type"`
	DiscountValue float64 `gorm:"column:discount_value"`
	MaxDiscount   *float64 `gorm:"column:max_discount"`
	MinOrderValue float64 `gorm:"column:min_order_value"`

	UsageLimit        *int `gorm:"column:usage_limit"`
	UsageCount        int  `gorm:"column:usage_count"`
	UsageLimitPerUser *int `gorm:"column:usage_limit_per_user"`

	ApplicableDays  json.RawMessage `gorm:"column:applicable_days"`
	ApplicableHours json.RawMessage `gorm:"column:applicable_hours"`

	MaxTotalDiscountAmount *float64 `gorm:"column:max_total_discount_amount"`
	TotalDiscountedAmount  float64  `gorm:"column:total_discounted_amount"`

	Audience  string    `gorm:"column:audience"`
	StartDate time.Time `gorm:"column:start_date"`
	EndDate   time.Time `gorm:"column:end_date"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (promotionModel) TableName() string { return "promotions" }

func toDomainPromotion(m promotionModel) (*domain.Promotion, error) {
	p := &domain.Promotion{
		ID:                     m.ID,
		Code:                   m.Code,
		Name:                   m.Name,
		DiscountType:           domain.DiscountType(m.DiscountType),
		DiscountValue:          m.DiscountValue,
		MaxDiscount:            m.MaxDiscount,
		MinOrderValue:          m.MinOrderValue,
		UsageLimit:             m.UsageLimit,
		UsageCount:             m.UsageCount,
		UsageLimitPerUser:      m.UsageLimitPerUser,
		MaxTotalDiscountAmount: m.MaxTotalDiscountAmount,
		TotalDiscountedAmount:  m.TotalDiscountedAmount,
		Audience:               domain.PromoAudience(m.Audience),
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		IsActive:               m.IsActive,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
	if len(m.ApplicableDays) > 0 {
		if err := json.Unmarshal(m.ApplicableDays, &p.ApplicableDays); err != nil {
			return nil, err
		}
	}
	if len(m.ApplicableHours) > 0 {
		var hw domain.HourWindow
		if err := json.Unmarshal(m.ApplicableHours, &hw); err != nil {
			return nil, err
		}
		p.ApplicableHours = &hw
	}
	return p, nil
}

func toPromotionModel(p *domain.Promotion) (promotionModel, error) {
	m := promotionModel{
		ID:                     p.ID,
		Code:                   p.Code,
		Name:                   p.Name,
		DiscountType:           string(p.DiscountType),
		DiscountValue:          p.DiscountValue,
		MaxDiscount:            p.MaxDiscount,
		MinOrderValue:          p.MinOrderValue,
		UsageLimit:             p.UsageLimit,
		UsageCount:             p.UsageCount,
		UsageLimitPerUser:      p.UsageLimitPerUser,
		MaxTotalDiscountAmount: p.MaxTotalDiscountAmount,
		TotalDiscountedAmount:  p.TotalDiscountedAmount,
		Audience:               string(p.Audience),
		StartDate:              p.StartDate,
		EndDate:                p.EndDate,
		IsActive:               p.IsActive,
	}
	if len(p.ApplicableDays) > 0 {
		raw, err := json.Marshal(p.ApplicableDays)
		if err != nil {
			return m, err
		}
		m.ApplicableDays = raw
	}
	if p.ApplicableHours != nil {
		raw, err := json.Marshal(p.ApplicableHours)
		if err != nil {
			return m, err
		}
		m.ApplicableHours = raw
	}
	return m, nil
}

func (r *PromotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	m, err := toPromotionModel(p)
	if err != nil {
		return err
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	p.ID = m.ID
	return nil
}

func (r *PromotionRepository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	var m promotionModel
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainPromotion(m)
}

// CountUsageByCustomer counts non-cancelled bookings by this customer that
// reference the promotion. Cancelled bookings give the usage back.
func (r *PromotionRepository) CountUsageByCustomer(ctx context.Context, promoID, customerID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("bookings").
		Where("promo_id = ? AND customer_id = ? AND status <> ?", promoID, customerID, string(domain.BookingCancelled)).
		Count(&cnt)
	return cnt, tx.Error
}

// CountCustomerBookings counts the customer's prior non-cancelled bookings,
// used for new/returning audience checks. excludeBookingID skips the booking
// currently being created, whose pending row is already in the table.
func (r *PromotionRepository) CountCustomerBookings(ctx context.Context, customerID, excludeBookingID int64) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Table("bookings").
		Where("customer_id = ? AND status <> ?", customerID, string(domain.BookingCancelled))
	if excludeBookingID > 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	tx := q.Count(&cnt)
	return cnt, tx.Error
}

// Commit bumps the usage ledgers in one conditional UPDATE. The guards
// repeat the limit and budget checks so a race between two bookings cannot
// push the ledgers past their caps; callers treat a rejected commit as a
// lost race, not an error in the booking itself.
func (r *PromotionRepository) Commit(ctx context.Context, promoID int64, discountAmount float64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&promotionModel{}).
		Where("id = ?", promoID).
		Where("usage_limit IS NULL OR usage_count < usage_limit").
		Where("max_total_discount_amount IS NULL OR total_discounted_amount + ? <= max_total_discount_amount", discountAmount).
		Updates(map[string]any{
			"usage_count":             gorm.Expr("usage_count + 1"),
			"total_discounted_amount": gorm.Expr("total_discounted_amount + ?", discountAmount),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
