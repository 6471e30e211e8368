package repository

import (
	"context"
	"errors"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// GetActive returns the newest active policy of the given type and category,
// or nil when none is configured. Policies persist through the domain struct
// directly; the tiers and rules columns are JSON-serialized.
func (r *PolicyRepository) GetActive(ctx context.Context, t domain.PolicyType, category string) (*domain.Policy, error) {
	var p domain.Policy
	tx := r.db.WithContext(ctx).
		Where("type = ? AND category = ? AND is_active = ?", string(t), category, true).
		Order("id DESC").
		First(&p)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &p, nil
}

func (r *PolicyRepository) Create(ctx context.Context, p *domain.Policy) error {
	return r.db.WithContext(ctx).Create(p).Error
}
