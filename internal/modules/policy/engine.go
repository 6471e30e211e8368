// Package policy computes refunds and no-show charges from the policy
// snapshot a booking carries. Everything here is pure: no storage, no
// clock; callers pass every timestamp in.
package policy

import (
	"errors"
	"fmt"
	"math"
	"time"

	"studiobooking/internal/domain"
)

// ErrInvalidPolicy marks a snapshot with an unknown charge type. That is a
// configuration bug, not a runtime condition, so callers must not continue.
var ErrInvalidPolicy = errors.New("invalid policy configuration")

type RefundResult struct {
	RefundAmount       float64 `json:"refund_amount"`
	RefundPercentage   float64 `json:"refund_percentage"`
	TierHours          int     `json:"tier_hours"`
	HoursBeforeBooking int     `json:"hours_before_booking"`
	TierMatched        bool    `json:"tier_matched"`
}

// CalculateRefund picks the most generous tier the cancellation timing still
// qualifies for. Tiers arrive sorted descending by HoursBeforeBooking, so
// the first tier whose threshold is at or below the computed lead time wins.
// No matching tier means no refund.
func CalculateRefund(snap domain.CancellationSnapshot, bookingStart, cancelTime time.Time, bookingAmount float64) RefundResult {
	hours := int(math.Floor(bookingStart.Sub(cancelTime).Hours()))

	res := RefundResult{HoursBeforeBooking: hours}
	for _, tier := range snap.RefundTiers {
		if tier.HoursBeforeBooking <= hours {
			res.RefundPercentage = tier.RefundPercentage
			res.TierHours = tier.HoursBeforeBooking
			res.TierMatched = true
			break
		}
	}
	res.RefundAmount = money(bookingAmount * res.RefundPercentage / 100)
	return res
}

type NoShowResult struct {
	IsNoShow           bool                    `json:"is_no_show"`
	ChargeType         domain.NoShowChargeType `json:"charge_type"`
	ChargeAmount       float64                 `json:"charge_amount"`
	GraceApplied       bool                    `json:"grace_applied"`
	ForgivenessApplied bool                    `json:"forgiveness_applied"`
}

// CalculateNoShowCharge decides whether the customer no-showed and how much
// of the booking to charge. checkIn is nil when the customer never arrived.
// previousNoShowCount is the customer's no-show history before this booking.
func CalculateNoShowCharge(snap domain.NoShowSnapshot, bookingStart time.Time, checkIn *time.Time, bookingAmount float64, previousNoShowCount int) (NoShowResult, error) {
	res := NoShowResult{ChargeType: snap.Rules.ChargeType}

	// On-time arrival is never a no-show.
	if checkIn != nil && !checkIn.After(bookingStart) {
		return res, nil
	}
	res.IsNoShow = true

	switch snap.Rules.ChargeType {
	case domain.ChargeFull:
		res.ChargeAmount = money(bookingAmount)

	case domain.ChargePartial:
		res.ChargeAmount = money(bookingAmount * snap.Rules.ChargePercentage / 100)

	case domain.ChargeGracePeriod:
		grace := time.Duration(snap.Rules.GraceMinutes) * time.Minute
		if checkIn != nil && checkIn.Sub(bookingStart) <= grace {
			res.IsNoShow = false
			res.GraceApplied = true
			return res, nil
		}
		res.ChargeAmount = money(bookingAmount)

	case domain.ChargeForgiveness:
		if previousNoShowCount < snap.Rules.MaxForgivenessCount {
			res.ForgivenessApplied = true
			return res, nil
		}
		res.ChargeAmount = money(bookingAmount)

	default:
		return NoShowResult{}, fmt.Errorf("%w: unknown charge type %q", ErrInvalidPolicy, snap.Rules.ChargeType)
	}

	return res, nil
}

func money(v float64) float64 {
	return math.Round(v*100) / 100
}
