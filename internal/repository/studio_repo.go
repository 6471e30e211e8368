package repository

import (
	"context"
	"errors"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type StudioRepository struct {
	db *gorm.DB
}

func NewStudioRepository(db *gorm.DB) *StudioRepository {
	return &StudioRepository{db: db}
}

type studioModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	Name            string     `gorm:"column:name"`
	Description     string     `gorm:"column:description"`
	Address         string     `gorm:"column:address"`
	City            string     `gorm:"column:city"`
	BaseRatePerHour float64    `gorm:"column:base_rate_per_hour"`
	IsActive        bool       `gorm:"column:is_active"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
}

func (studioModel) TableName() string { return "studios" }

func toDomainStudio(m studioModel) *domain.Studio {
	return &domain.Studio{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Address:         m.Address,
		City:            m.City,
		BaseRatePerHour: m.BaseRatePerHour,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       m.DeletedAt,
	}
}

func (r *StudioRepository) Create(ctx context.Context, s *domain.Studio) error {
	m := studioModel{
		Name:            s.Name,
		Description:     s.Description,
		Address:         s.Address,
		City:            s.City,
		BaseRatePerHour: s.BaseRatePerHour,
		IsActive:        s.IsActive,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	return nil
}

func (r *StudioRepository) GetByID(ctx context.Context, id int64) (*domain.Studio, error) {
	var m studioModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStudio(m), nil
}

// GetBaseRate is the narrow resource lookup the booking core consumes.
func (r *StudioRepository) GetBaseRate(ctx context.Context, id int64) (float64, error) {
	var rate float64
	tx := r.db.WithContext(ctx).
		Model(&studioModel{}).
		Where("id = ? AND is_active = ? AND deleted_at IS NULL", id, true).
		Select("base_rate_per_hour").
		Scan(&rate)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, errors.New("studio not found")
	}
	return rate, nil
}
