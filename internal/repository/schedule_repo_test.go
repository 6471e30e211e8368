package repository

import (
	"context"
	"testing"
	"time"

	"studiobooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRepository_ClaimOnceOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 12, 31, 14, 0, 0, 0, time.UTC)
	slot := &domain.ScheduleSlot{
		StudioID:  1,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    domain.SlotAvailable,
	}
	require.NoError(t, repo.Create(ctx, slot))

	ok, err := repo.Claim(ctx, slot.ID, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second claim loses: the status guard in the UPDATE no longer matches.
	ok, err = repo.Claim(ctx, slot.ID, 101)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, got.Status)
	require.NotNil(t, got.BookingID)
	assert.Equal(t, int64(100), *got.BookingID)

	// Release frees the slot for the next claim.
	require.NoError(t, repo.Release(ctx, slot.ID))
	ok, err = repo.Claim(ctx, slot.ID, 101)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScheduleRepository_CountConflictingHonoursGap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 12, 31, 14, 0, 0, 0, time.UTC)
	existing := &domain.ScheduleSlot{
		StudioID:  1,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Status:    domain.SlotBooked,
	}
	require.NoError(t, repo.Create(ctx, existing))

	gap := 30 * time.Minute

	// A window starting 20 minutes after the existing slot ends is inside the
	// buffer.
	cnt, err := repo.CountConflicting(ctx, 1, start.Add(2*time.Hour+20*time.Minute), start.Add(4*time.Hour), gap, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	// Exactly 30 minutes after is fine.
	cnt, err = repo.CountConflicting(ctx, 1, start.Add(2*time.Hour+30*time.Minute), start.Add(5*time.Hour), gap, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	// Another studio never conflicts.
	cnt, err = repo.CountConflicting(ctx, 2, start, start.Add(2*time.Hour), gap, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)

	// Cancelled slots do not count.
	existing2 := &domain.ScheduleSlot{
		StudioID:  3,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    domain.SlotCancelled,
	}
	require.NoError(t, repo.Create(ctx, existing2))
	cnt, err = repo.CountConflicting(ctx, 3, start, start.Add(time.Hour), gap, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cnt)
}
