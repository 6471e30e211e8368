package domain

import "time"

type PolicyType string

const (
	PolicyCancellation PolicyType = "cancellation"
	PolicyNoShow       PolicyType = "no_show"
)

// PolicyCategoryStandard is the category snapshotted into every booking.
const PolicyCategoryStandard = "STANDARD"

type NoShowChargeType string

const (
	ChargeFull        NoShowChargeType = "full_charge"
	ChargePartial     NoShowChargeType = "partial_charge"
	ChargeGracePeriod NoShowChargeType = "grace_period"
	ChargeForgiveness NoShowChargeType = "forgiveness"
)

// RefundTier maps a cancellation lead time to a refund percentage.
// Tiers are stored sorted descending by HoursBeforeBooking.
type RefundTier struct {
	HoursBeforeBooking int     `json:"hours_before_booking"`
	RefundPercentage   float64 `json:"refund_percentage"`
}

type NoShowRules struct {
	ChargeType          NoShowChargeType `json:"charge_type"`
	ChargePercentage    float64          `json:"charge_percentage,omitempty"`
	GraceMinutes        int              `json:"grace_minutes,omitempty"`
	MaxForgivenessCount int              `json:"max_forgiveness_count,omitempty"`
}

// Policy is a mutable catalog object. Once a booking references it, the
// relevant parts are copied by value into the booking's snapshot; later
// edits to the catalog never affect existing bookings.
type Policy struct {
	ID          int64        `json:"id"`
	Type        PolicyType   `json:"type"`
	Category    string       `json:"category"`
	Name        string       `json:"name"`
	RefundTiers []RefundTier `json:"refund_tiers,omitempty" gorm:"serializer:json"`
	NoShowRules *NoShowRules `json:"no_show_rules,omitempty" gorm:"serializer:json"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Policy) TableName() string { return "policies" }

// CancellationSnapshot is the by-value copy of a cancellation policy kept
// inside a booking.
type CancellationSnapshot struct {
	PolicyID    int64        `json:"policy_id"`
	Name        string       `json:"name"`
	RefundTiers []RefundTier `json:"refund_tiers"`
}

// NoShowSnapshot is the by-value copy of a no-show policy kept inside a
// booking.
type NoShowSnapshot struct {
	PolicyID int64       `json:"policy_id"`
	Name     string      `json:"name"`
	Rules    NoShowRules `json:"rules"`
}

type PolicySnapshot struct {
	Cancellation CancellationSnapshot `json:"cancellation"`
	NoShow       NoShowSnapshot       `json:"no_show"`
	CapturedAt   time.Time            `json:"captured_at"`
}

// CancellationSnapshotOf deep-copies the policy's refund tiers into a
// snapshot value.
func CancellationSnapshotOf(p *Policy) CancellationSnapshot {
	tiers := make([]RefundTier, len(p.RefundTiers))
	copy(tiers, p.RefundTiers)
	return CancellationSnapshot{PolicyID: p.ID, Name: p.Name, RefundTiers: tiers}
}

func NoShowSnapshotOf(p *Policy) NoShowSnapshot {
	s := NoShowSnapshot{PolicyID: p.ID, Name: p.Name}
	if p.NoShowRules != nil {
		s.Rules = *p.NoShowRules
	}
	return s
}
