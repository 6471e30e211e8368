package repository

import (
	"context"
	"errors"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

type slotModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	StudioID  int64     `gorm:"column:studio_id;index"`
	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`
	Status    string    `gorm:"column:status"`
	BookingID *int64    `gorm:"column:booking_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotModel) TableName() string { return "schedule_slots" }

func toDomainSlot(m slotModel) *domain.ScheduleSlot {
	return &domain.ScheduleSlot{
		ID:        m.ID,
		StudioID:  m.StudioID,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		Status:    domain.SlotStatus(m.Status),
		BookingID: m.BookingID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.ScheduleSlot, error) {
	var m slotModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSlot(m), nil
}

// FindExact returns the slot with exactly the requested window, or nil when
// none exists.
func (r *ScheduleRepository) FindExact(ctx context.Context, studioID int64, start, end time.Time) (*domain.ScheduleSlot, error) {
	var m slotModel
	tx := r.db.WithContext(ctx).
		Where("studio_id = ? AND start_time = ? AND end_time = ?", studioID, start, end).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainSlot(m), nil
}

// CountConflicting counts non-cancelled slots on the studio whose window
// intersects [start-gap, end+gap). Plain comparisons keep the query portable
// between postgres and sqlite. excludeID skips a slot being rescheduled.
func (r *ScheduleRepository) CountConflicting(ctx context.Context, studioID int64, start, end time.Time, gap time.Duration, excludeID int64) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&slotModel{}).
		Where("studio_id = ? AND status <> ?", studioID, string(domain.SlotCancelled)).
		Where("start_time < ? AND end_time > ?", end.Add(gap), start.Add(-gap))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if tx := q.Count(&cnt); tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.ScheduleSlot) error {
	m := slotModel{
		StudioID:  s.StudioID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    string(s.Status),
		BookingID: s.BookingID,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSlot(m)
	return nil
}

// Claim marks an available slot booked. The status check lives in the WHERE
// clause so two concurrent claims cannot both win.
func (r *ScheduleRepository) Claim(ctx context.Context, slotID, bookingID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&slotModel{}).
		Where("id = ? AND status = ?", slotID, string(domain.SlotAvailable)).
		Updates(map[string]any{
			"status":     string(domain.SlotBooked),
			"booking_id": bookingID,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Release returns a slot to available and clears its booking. Idempotent:
// releasing an already-available slot is a no-op.
func (r *ScheduleRepository) Release(ctx context.Context, slotID int64) error {
	tx := r.db.WithContext(ctx).
		Model(&slotModel{}).
		Where("id = ?", slotID).
		Updates(map[string]any{
			"status":     string(domain.SlotAvailable),
			"booking_id": nil,
		})
	return tx.Error
}

func (r *ScheduleRepository) UpdateWindow(ctx context.Context, slotID int64, start, end time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&slotModel{}).
		Where("id = ?", slotID).
		Updates(map[string]any{
			"start_time": start,
			"end_time":   end,
		})
	return tx.Error
}
