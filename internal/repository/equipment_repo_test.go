package repository

import (
	"context"
	"sync"
	"testing"

	"studiobooking/internal/database"
	"studiobooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	// A single pooled connection keeps every session on the same in-memory
	// database and serializes writes the way sqlite's single writer does.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestEquipmentRepository_ReserveGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{
		StudioID:     1,
		Name:         "Godox AD600 Pro",
		Category:     "lighting",
		RentalPrice:  5000,
		TotalQty:     3,
		AvailableQty: 3,
	}
	require.NoError(t, repo.Create(ctx, eq))

	ok, err := repo.Reserve(ctx, eq.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableQty)
	assert.Equal(t, 2, got.InUseQty)
	assert.Equal(t, domain.EquipmentInUse, got.Status)
	assert.True(t, got.CountersConsistent())

	// Only one unit left: a second reservation for two must be rejected and
	// leave the counters untouched.
	ok, err = repo.Reserve(ctx, eq.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = repo.GetByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableQty)
	assert.Equal(t, 2, got.InUseQty)
}

func TestEquipmentRepository_ConcurrentReservesNeverOversell(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{StudioID: 1, Name: "Aputure 600d", TotalQty: 3, AvailableQty: 3}
	require.NoError(t, repo.Create(ctx, eq))

	// Ten racing single-unit reservations against three units: the guard in
	// the UPDATE must let exactly three through.
	const workers = 10
	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Reserve(ctx, eq.ID, 1)
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 3, wins)

	got, err := repo.GetByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableQty)
	assert.Equal(t, 3, got.InUseQty)
	assert.True(t, got.CountersConsistent())
}

func TestEquipmentRepository_ReleaseGuard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{StudioID: 1, Name: "C-stand", TotalQty: 2, AvailableQty: 2}
	require.NoError(t, repo.Create(ctx, eq))

	ok, err := repo.Reserve(ctx, eq.ID, 2)
	require.NoError(t, err)
	require.True(t, ok)

	// Releasing more than is in use is rejected.
	ok, err = repo.Release(ctx, eq.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Release(ctx, eq.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AvailableQty)
	assert.Equal(t, 0, got.InUseQty)
	assert.Equal(t, domain.EquipmentAvailable, got.Status)
}

func TestEquipmentRepository_SetMaintenance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{StudioID: 1, Name: "Backdrop kit", TotalQty: 4, AvailableQty: 4}
	require.NoError(t, repo.Create(ctx, eq))

	ok, err := repo.SetMaintenance(ctx, eq.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableQty)
	assert.Equal(t, 3, got.MaintenanceQty)
	assert.True(t, got.CountersConsistent())

	// Lowering the maintenance count hands units back to available.
	ok, err = repo.SetMaintenance(ctx, eq.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.GetByID(ctx, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.AvailableQty)
	assert.Equal(t, 1, got.MaintenanceQty)

	// With one unit reserved, maintenance cannot swallow the whole stock.
	ok, err = repo.Reserve(ctx, eq.ID, 1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.SetMaintenance(ctx, eq.ID, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}
