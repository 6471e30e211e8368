package inventory

import (
	"context"

	"studiobooking/internal/domain"
)

type Service struct {
	equipment EquipmentRepository
}

func NewService(equipment EquipmentRepository) *Service {
	return &Service{equipment: equipment}
}

// Reserve takes qty units out of available stock. The guard runs at the
// storage layer; when it rejects, the current counters are read back only to
// build the error report.
func (s *Service) Reserve(ctx context.Context, equipmentID int64, qty int) (*domain.Equipment, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	ok, err := s.equipment.Reserve(ctx, equipmentID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		eq, err := s.equipment.GetByID(ctx, equipmentID)
		if err != nil {
			return nil, err
		}
		return nil, &InsufficientStockError{
			EquipmentID: equipmentID,
			Requested:   qty,
			Available:   eq.AvailableQty,
			Total:       eq.TotalQty,
		}
	}
	return s.equipment.GetByID(ctx, equipmentID)
}

// Release returns qty units from in_use to available.
func (s *Service) Release(ctx context.Context, equipmentID int64, qty int) (*domain.Equipment, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	ok, err := s.equipment.Release(ctx, equipmentID, qty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	return s.equipment.GetByID(ctx, equipmentID)
}

// SetMaintenanceQuantity moves units between available and maintenance so
// the maintenance counter lands on newQty. Rejected when that would leave
// available negative or push maintenance + in_use past total.
func (s *Service) SetMaintenanceQuantity(ctx context.Context, equipmentID int64, newQty int) (*domain.Equipment, error) {
	if newQty < 0 {
		return nil, ErrInvalidQuantity
	}

	ok, err := s.equipment.SetMaintenance(ctx, equipmentID, newQty)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}
	return s.equipment.GetByID(ctx, equipmentID)
}

func (s *Service) GetByID(ctx context.Context, equipmentID int64) (*domain.Equipment, error) {
	return s.equipment.GetByID(ctx, equipmentID)
}
