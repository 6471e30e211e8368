package policy

import (
	"testing"
	"time"

	"studiobooking/internal/domain"

	"github.com/stretchr/testify/assert"
)

func standardTiers() domain.CancellationSnapshot {
	return domain.CancellationSnapshot{
		PolicyID: 1,
		Name:     "Standard cancellation",
		RefundTiers: []domain.RefundTier{
			{HoursBeforeBooking: 48, RefundPercentage: 100},
			{HoursBeforeBooking: 24, RefundPercentage: 50},
			{HoursBeforeBooking: 0, RefundPercentage: 0},
		},
	}
}

func TestCalculateRefund_MidTier(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	cancel := start.Add(-30 * time.Hour)

	res := CalculateRefund(standardTiers(), start, cancel, 200000)

	assert.Equal(t, 30, res.HoursBeforeBooking)
	assert.Equal(t, 50.0, res.RefundPercentage)
	assert.Equal(t, 24, res.TierHours)
	assert.Equal(t, 100000.0, res.RefundAmount)
	assert.True(t, res.TierMatched)
}

func TestCalculateRefund_TopTier(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	cancel := start.Add(-72 * time.Hour)

	res := CalculateRefund(standardTiers(), start, cancel, 50000)

	assert.Equal(t, 100.0, res.RefundPercentage)
	assert.Equal(t, 50000.0, res.RefundAmount)
}

func TestCalculateRefund_PartialHoursRoundDown(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	// 47h59m before: floors to 47 hours, so the 48h tier does not apply.
	cancel := start.Add(-47*time.Hour - 59*time.Minute)

	res := CalculateRefund(standardTiers(), start, cancel, 100000)

	assert.Equal(t, 47, res.HoursBeforeBooking)
	assert.Equal(t, 50.0, res.RefundPercentage)
}

func TestCalculateRefund_NoMatchingTier(t *testing.T) {
	snap := domain.CancellationSnapshot{
		RefundTiers: []domain.RefundTier{
			{HoursBeforeBooking: 48, RefundPercentage: 100},
			{HoursBeforeBooking: 24, RefundPercentage: 50},
		},
	}
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	// Cancelling after the booking started: negative lead time.
	cancel := start.Add(2 * time.Hour)

	res := CalculateRefund(snap, start, cancel, 100000)

	assert.False(t, res.TierMatched)
	assert.Equal(t, 0.0, res.RefundPercentage)
	assert.Equal(t, 0.0, res.RefundAmount)
}

func TestCalculateNoShowCharge_OnTimeCheckIn(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	checkIn := start.Add(-10 * time.Minute)
	snap := domain.NoShowSnapshot{Rules: domain.NoShowRules{ChargeType: domain.ChargeFull}}

	res, err := CalculateNoShowCharge(snap, start, &checkIn, 100000, 0)

	assert.NoError(t, err)
	assert.False(t, res.IsNoShow)
	assert.Equal(t, 0.0, res.ChargeAmount)
}

func TestCalculateNoShowCharge_FullCharge(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	snap := domain.NoShowSnapshot{Rules: domain.NoShowRules{ChargeType: domain.ChargeFull}}

	res, err := CalculateNoShowCharge(snap, start, nil, 150000, 0)

	assert.NoError(t, err)
	assert.True(t, res.IsNoShow)
	assert.Equal(t, 150000.0, res.ChargeAmount)
}

func TestCalculateNoShowCharge_PartialCharge(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	snap := domain.NoShowSnapshot{Rules: domain.NoShowRules{
		ChargeType:       domain.ChargePartial,
		ChargePercentage: 30,
	}}

	res, err := CalculateNoShowCharge(snap, start, nil, 100000, 0)

	assert.NoError(t, err)
	assert.Equal(t, 30000.0, res.ChargeAmount)
}

func TestCalculateNoShowCharge_GracePeriod(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	snap := domain.NoShowSnapshot{Rules: domain.NoShowRules{
		ChargeType:   domain.ChargeGracePeriod,
		GraceMinutes: 15,
	}}

	// Arrived 10 minutes late: inside grace, not a no-show.
	late := start.Add(10 * time.Minute)
	res, err := CalculateNoShowCharge(snap, start, &late, 100000, 0)
	assert.NoError(t, err)
	assert.False(t, res.IsNoShow)
	assert.True(t, res.GraceApplied)
	assert.Equal(t, 0.0, res.ChargeAmount)

	// Arrived 20 minutes late: past grace, full charge.
	veryLate := start.Add(20 * time.Minute)
	res, err = CalculateNoShowCharge(snap, start, &veryLate, 100000, 0)
	assert.NoError(t, err)
	assert.True(t, res.IsNoShow)
	assert.Equal(t, 100000.0, res.ChargeAmount)

	// Never arrived: full charge.
	res, err = CalculateNoShowCharge(snap, start, nil, 100000, 0)
	assert.NoError(t, err)
	assert.True(t, res.IsNoShow)
	assert.Equal(t, 100000.0, res.ChargeAmount)
}

func TestCalculateNoShowCharge_Forgiveness(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	snap := domain.NoShowSnapshot{Rules: domain.NoShowRules{
		ChargeType:          domain.ChargeForgiveness,
		MaxForgivenessCount: 2,
	}}

	res, err := CalculateNoShowCharge(snap, start, nil, 100000, 1)
	assert.NoError(t, err)
	assert.True(t, res.IsNoShow)
	assert.True(t, res.ForgivenessApplied)
	assert.Equal(t, 0.0, res.ChargeAmount)

	res, err = CalculateNoShowCharge(snap, start, nil, 100000, 2)
	assert.NoError(t, err)
	assert.False(t, res.ForgivenessApplied)
	assert.Equal(t, 100000.0, res.ChargeAmount)
}

func TestCalculateNoShowCharge_UnknownChargeType(t *testing.T) {
	start := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	snap := domain.NoShowSnapshot{Rules: domain.NoShowRules{ChargeType: "half_charge"}}

	_, err := CalculateNoShowCharge(snap, start, nil, 100000, 0)

	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
