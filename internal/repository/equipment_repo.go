package repository

import (
	"context"
	"time"

	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type equipmentModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	StudioID       int64     `gorm:"column:studio_id;index"`
	Name           string    `gorm:"column:name"`
	Category       string    `gorm:"column:category"`
	RentalPrice    float64   `gorm:"column:rental_price"`
	TotalQty       int       `gorm:"column:total_qty"`
	AvailableQty   int       `gorm:"column:available_qty"`
	InUseQty       int       `gorm:"column:in_use_qty"`
	MaintenanceQty int       `gorm:"column:maintenance_qty"`
	Status         string    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (equipmentModel) TableName() string { return "equipment" }

func toDomainEquipment(m equipmentModel) *domain.Equipment {
	return &domain.Equipment{
		ID:             m.ID,
		StudioID:       m.StudioID,
		Name:           m.Name,
		Category:       m.Category,
		RentalPrice:    m.RentalPrice,
		TotalQty:       m.TotalQty,
		AvailableQty:   m.AvailableQty,
		InUseQty:       m.InUseQty,
		MaintenanceQty: m.MaintenanceQty,
		Status:         domain.EquipmentStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	m := equipmentModel{
		StudioID:       e.StudioID,
		Name:           e.Name,
		Category:       e.Category,
		RentalPrice:    e.RentalPrice,
		TotalQty:       e.TotalQty,
		AvailableQty:   e.AvailableQty,
		InUseQty:       e.InUseQty,
		MaintenanceQty: e.MaintenanceQty,
		Status:         string(e.DeriveStatus()),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	e.ID = m.ID
	e.Status = domain.EquipmentStatus(m.Status)
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var m equipmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainEquipment(m), nil
}

// Reserve moves qty units from available to in_use. The stock check is part
// of the UPDATE's WHERE clause, so concurrent reservations against the same
// row never oversell: of two racing calls only one can match the guard.
// Returns false when the guard rejects the update.
func (r *EquipmentRepository) Reserve(ctx context.Context, id int64, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ? AND available_qty >= ?", id, qty).
		Updates(map[string]any{
			"available_qty": gorm.Expr("available_qty - ?", qty),
			"in_use_qty":    gorm.Expr("in_use_qty + ?", qty),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return false, nil
	}
	return true, r.refreshStatus(ctx, id)
}

// Release is the inverse of Reserve, guarded by in_use_qty >= qty.
func (r *EquipmentRepository) Release(ctx context.Context, id int64, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ? AND in_use_qty >= ?", id, qty).
		Updates(map[string]any{
			"available_qty": gorm.Expr("available_qty + ?", qty),
			"in_use_qty":    gorm.Expr("in_use_qty - ?", qty),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return false, nil
	}
	return true, r.refreshStatus(ctx, id)
}

// SetMaintenance moves the delta between available and maintenance so that
// maintenance_qty lands on newQty. The guard available_qty + maintenance_qty
// >= newQty keeps available non-negative and maintenance + in_use within
// total (total always equals the counter sum).
func (r *EquipmentRepository) SetMaintenance(ctx context.Context, id int64, newQty int) (bool, error) {
	if newQty < 0 {
		return false, nil
	}
	tx := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ? AND available_qty + maintenance_qty >= ?", id, newQty).
		Updates(map[string]any{
			"available_qty":   gorm.Expr("available_qty + maintenance_qty - ?", newQty),
			"maintenance_qty": newQty,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return false, nil
	}
	return true, r.refreshStatus(ctx, id)
}

// refreshStatus recomputes the derived status column from the counters after
// a mutation. The CASE mirrors domain.Equipment.DeriveStatus.
func (r *EquipmentRepository) refreshStatus(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE equipment
SET status = CASE
    WHEN in_use_qty > 0 THEN 'in_use'
    WHEN total_qty > 0 AND maintenance_qty >= total_qty THEN 'maintenance'
    ELSE 'available'
END
WHERE id = ?`, id)
	return tx.Error
}
