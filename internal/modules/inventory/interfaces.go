package inventory

import (
	"context"

	"studiobooking/internal/domain"
)

// EquipmentRepository must implement Reserve/Release/SetMaintenance as
// conditional updates with the counter guard in the WHERE clause, never as
// read-then-write.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Reserve(ctx context.Context, id int64, qty int) (bool, error)
	Release(ctx context.Context, id int64, qty int) (bool, error)
	SetMaintenance(ctx context.Context, id int64, newQty int) (bool, error)
}
