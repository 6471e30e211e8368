package repository

import (
	"context"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID         int64  `gorm:"column:id;primaryKey"`
	SlotID     int64  `gorm:"column:slot_id;index"`
	StudioID   int64  `gorm:"column:studio_id;index"`
	CustomerID int64  `gorm:"column:customer_id;index"`
	Status     string `gorm:"column:status"`

	LineItems           []domain.LineItem `gorm:"column:line_items;serializer:json"`
	TotalBeforeDiscount float64           `gorm:"column:total_before_discount"`
	DiscountAmount      float64           `gorm:"column:discount_amount"`
	FinalAmount         float64           `gorm:"column:final_amount"`
	PromoID             *int64            `gorm:"column:promo_id;index"`

	PolicySnapshot domain.PolicySnapshot `gorm:"column:policy_snapshot;serializer:json"`
	Financials     domain.Financials     `gorm:"column:financials;serializer:json"`
	Events         []domain.BookingEvent `gorm:"column:events;serializer:json"`

	CancellationReason string     `gorm:"column:cancellation_reason"`
	CheckInTime        *time.Time `gorm:"column:check_in_time"`
	NoShow             bool       `gorm:"column:no_show"`
	Notes              string     `gorm:"column:notes"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:                  m.ID,
		SlotID:              m.SlotID,
		StudioID:            m.StudioID,
		CustomerID:          m.CustomerID,
		Status:              domain.BookingStatus(m.Status),
		LineItems:           m.LineItems,
		TotalBeforeDiscount: m.TotalBeforeDiscount,
		DiscountAmount:      m.DiscountAmount,
		FinalAmount:         m.FinalAmount,
		PromoID:             m.PromoID,
		PolicySnapshot:      m.PolicySnapshot,
		Financials:          m.Financials,
		Events:              m.Events,
		CancellationReason:  m.CancellationReason,
		CheckInTime:         m.CheckInTime,
		NoShow:              m.NoShow,
		Notes:               m.Notes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		CancelledAt:         m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                  b.ID,
		SlotID:              b.SlotID,
		StudioID:            b.StudioID,
		CustomerID:          b.CustomerID,
		Status:              string(b.Status),
		LineItems:           b.LineItems,
		TotalBeforeDiscount: b.TotalBeforeDiscount,
		DiscountAmount:      b.DiscountAmount,
		FinalAmount:         b.FinalAmount,
		PromoID:             b.PromoID,
		PolicySnapshot:      b.PolicySnapshot,
		Financials:          b.Financials,
		Events:              b.Events,
		CancellationReason:  b.CancellationReason,
		CheckInTime:         b.CheckInTime,
		NoShow:              b.NoShow,
		Notes:               b.Notes,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
		CancelledAt:         b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// Delete hard-deletes a booking row. Only the orchestrator's compensation
// path uses it, to undo a create that failed part-way.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&bookingModel{}, id).Error
}

// UpdateStatusIf moves status from -> to as a conditional update and reports
// whether the transition won.
func (r *BookingRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Update persists the full booking row (events, financials, snapshot).
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// CountNoShows counts how many times this customer has already no-showed,
// feeding the forgiveness charge rule.
func (r *BookingRepository) CountNoShows(ctx context.Context, customerID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("customer_id = ? AND no_show = ?", customerID, true).
		Count(&cnt)
	return cnt, tx.Error
}

// ListConfirmedDue returns confirmed bookings whose slot started before the
// cutoff. The no-show sweep feeds these back into MarkNoShow.
func (r *BookingRepository) ListConfirmedDue(ctx context.Context, cutoff time.Time, limit int) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Joins("JOIN schedule_slots ON schedule_slots.id = bookings.slot_id").
		Where("bookings.status = ? AND schedule_slots.start_time < ?", string(domain.BookingConfirmed), cutoff).
		Limit(limit).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
