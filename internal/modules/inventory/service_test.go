package inventory

import (
	"context"
	"testing"

	"studiobooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Reserve(ctx context.Context, id int64, qty int) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockEquipmentRepository) Release(ctx context.Context, id int64, qty int) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockEquipmentRepository) SetMaintenance(ctx context.Context, id int64, newQty int) (bool, error) {
	args := m.Called(ctx, id, newQty)
	return args.Bool(0), args.Error(1)
}

func TestReserve_Success(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("Reserve", mock.Anything, int64(3), 2).Return(true, nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Equipment{
		ID: 3, TotalQty: 4, AvailableQty: 2, InUseQty: 2, Status: domain.EquipmentInUse,
	}, nil)

	service := NewService(repo)
	eq, err := service.Reserve(context.Background(), 3, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, eq.AvailableQty)
	assert.Equal(t, 2, eq.InUseQty)
	assert.True(t, eq.CountersConsistent())
}

func TestReserve_InsufficientStockReportsCounters(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("Reserve", mock.Anything, int64(3), 5).Return(false, nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Equipment{
		ID: 3, TotalQty: 4, AvailableQty: 2, InUseQty: 2,
	}, nil)

	service := NewService(repo)
	_, err := service.Reserve(context.Background(), 3, 5)

	var stockErr *InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(3), stockErr.EquipmentID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 4, stockErr.Total)
}

func TestReserve_RejectsNonPositiveQuantity(t *testing.T) {
	service := NewService(new(MockEquipmentRepository))

	_, err := service.Reserve(context.Background(), 3, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = service.Reserve(context.Background(), 3, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRelease_GuardedByInUse(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("Release", mock.Anything, int64(3), 3).Return(false, nil)

	service := NewService(repo)
	_, err := service.Release(context.Background(), 3, 3)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSetMaintenanceQuantity_MovesUnits(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("SetMaintenance", mock.Anything, int64(3), 2).Return(true, nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Equipment{
		ID: 3, TotalQty: 4, AvailableQty: 2, MaintenanceQty: 2, Status: domain.EquipmentAvailable,
	}, nil)

	service := NewService(repo)
	eq, err := service.SetMaintenanceQuantity(context.Background(), 3, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, eq.MaintenanceQty)
	assert.True(t, eq.CountersConsistent())
}

func TestSetMaintenanceQuantity_RejectsOverCommit(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("SetMaintenance", mock.Anything, int64(3), 4).Return(false, nil)

	service := NewService(repo)
	_, err := service.SetMaintenanceQuantity(context.Background(), 3, 4)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDeriveStatus(t *testing.T) {
	eq := domain.Equipment{TotalQty: 4, AvailableQty: 4}
	assert.Equal(t, domain.EquipmentAvailable, eq.DeriveStatus())

	eq = domain.Equipment{TotalQty: 4, AvailableQty: 3, InUseQty: 1}
	assert.Equal(t, domain.EquipmentInUse, eq.DeriveStatus())

	eq = domain.Equipment{TotalQty: 4, MaintenanceQty: 4}
	assert.Equal(t, domain.EquipmentMaintenance, eq.DeriveStatus())

	eq = domain.Equipment{TotalQty: 4, AvailableQty: 1, MaintenanceQty: 3}
	assert.Equal(t, domain.EquipmentAvailable, eq.DeriveStatus())
}
