package booking

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"studiobooking/internal/domain"
	"studiobooking/internal/modules/policy"
	"studiobooking/internal/modules/promotion"

	"gorm.io/gorm"
)

// Service orchestrates booking creation and lifecycle across the schedule,
// inventory, promotion and policy leaves. Each state-changing operation
// either completes fully or compensates everything it acquired.
type Service struct {
	bookings  BookingRepository
	slots     SlotAllocator
	inventory InventoryLedger
	promos    PromotionApplier
	policies  PolicySource
	studios   ResourceCatalog
	notifs    NotificationSender
}

func NewService(
	bookings BookingRepository,
	slots SlotAllocator,
	inventory InventoryLedger,
	promos PromotionApplier,
	policies PolicySource,
	studios ResourceCatalog,
	notifs NotificationSender,
) *Service {
	return &Service{
		bookings:  bookings,
		slots:     slots,
		inventory: inventory,
		promos:    promos,
		policies:  policies,
		studios:   studios,
		notifs:    notifs,
	}
}

// CreateBooking runs the whole creation sequence: slot, booking row, claim,
// equipment, pricing, promotion, policy snapshot, final persist, promotion
// commit, notification. Any failure before the final persist unwinds every
// resource acquired so far.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}
	now := time.Now()
	if req.StartTime.Before(now) {
		return nil, ErrValidation
	}

	baseRate, err := s.studios.GetBaseRate(ctx, req.StudioID)
	if err != nil {
		return nil, err
	}

	slot, err := s.slots.ResolveOrCreateSlot(ctx, req.StudioID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	comp := &compensation{}

	b := &domain.Booking{
		SlotID:     slot.ID,
		StudioID:   req.StudioID,
		CustomerID: req.CustomerID,
		Status:     domain.BookingPending,
		Notes:      req.Notes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	comp.push(func(ctx context.Context) error { return s.bookings.Delete(ctx, b.ID) })

	if err := s.slots.Claim(ctx, slot.ID, b.ID); err != nil {
		comp.run(ctx)
		return nil, err
	}
	comp.push(func(ctx context.Context) error { return s.slots.Release(ctx, slot.ID) })

	lineItems, err := s.reserveLineItems(ctx, comp, req.LineItems)
	if err != nil {
		comp.run(ctx)
		return nil, err
	}
	b.LineItems = lineItems

	durationHours := req.EndTime.Sub(req.StartTime).Hours()
	subtotal := baseRate * durationHours
	for _, li := range lineItems {
		subtotal += li.Subtotal
	}
	b.TotalBeforeDiscount = money(subtotal)

	if req.PromoCode != "" {
		res, err := s.promos.Validate(ctx, req.PromoCode, req.CustomerID, b.TotalBeforeDiscount, now, b.ID)
		switch {
		case err == nil:
			b.PromoID = &res.Promotion.ID
			b.DiscountAmount = res.DiscountAmount
		case isPromoRejection(err):
			// An ineligible code does not block the booking unless the
			// caller insists on it; it just yields zero discount.
			if req.PromoRequired {
				comp.run(ctx)
				return nil, ErrInvalidPromotion
			}
			b.AppendEvent(domain.EventPromoNote, now, 0, map[string]any{
				"code":   req.PromoCode,
				"reason": err.Error(),
			})
		default:
			comp.run(ctx)
			return nil, err
		}
	}

	snapshot, err := s.snapshotPolicies(ctx, now)
	if err != nil {
		comp.run(ctx)
		return nil, err
	}
	b.PolicySnapshot = *snapshot

	b.FinalAmount = money(math.Max(0, b.TotalBeforeDiscount-b.DiscountAmount))
	b.Financials = domain.Financials{
		OriginalAmount: b.FinalAmount,
		NetAmount:      b.FinalAmount,
	}
	b.AppendEvent(domain.EventCreated, now, b.FinalAmount, map[string]any{
		"slot_id": slot.ID,
	})

	if err := s.bookings.Update(ctx, b); err != nil {
		comp.run(ctx)
		return nil, err
	}

	// The usage ledgers move only after the booking is durable.
	if b.PromoID != nil {
		if err := s.promos.Commit(ctx, *b.PromoID, b.DiscountAmount); err != nil {
			log.Printf("booking %d: promotion commit failed: %v", b.ID, err)
		}
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, b.CustomerID, b.ID, b.StudioID, req.StartTime); err != nil {
			log.Printf("booking %d: created notification failed: %v", b.ID, err)
		}
	}

	return b, nil
}

func (s *Service) reserveLineItems(ctx context.Context, comp *compensation, reqs []LineItemRequest) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(reqs))
	for _, li := range reqs {
		eq, err := s.inventory.Reserve(ctx, li.EquipmentID, li.Quantity)
		if err != nil {
			return nil, err
		}
		id, qty := li.EquipmentID, li.Quantity
		comp.push(func(ctx context.Context) error {
			_, err := s.inventory.Release(ctx, id, qty)
			return err
		})
		items = append(items, domain.LineItem{
			EquipmentID: eq.ID,
			Name:        eq.Name,
			Quantity:    li.Quantity,
			UnitPrice:   eq.RentalPrice,
			Subtotal:    money(eq.RentalPrice * float64(li.Quantity)),
		})
	}
	return items, nil
}

// snapshotPolicies copies the active STANDARD policies by value. A booking
// must never exist without both snapshots, so a missing policy aborts the
// whole create.
func (s *Service) snapshotPolicies(ctx context.Context, now time.Time) (*domain.PolicySnapshot, error) {
	cancel, err := s.policies.GetActive(ctx, domain.PolicyCancellation, domain.PolicyCategoryStandard)
	if err != nil {
		return nil, err
	}
	noShow, err := s.policies.GetActive(ctx, domain.PolicyNoShow, domain.PolicyCategoryStandard)
	if err != nil {
		return nil, err
	}
	if cancel == nil || noShow == nil {
		return nil, ErrPolicyNotConfigured
	}
	return &domain.PolicySnapshot{
		Cancellation: domain.CancellationSnapshotOf(cancel),
		NoShow:       domain.NoShowSnapshotOf(noShow),
		CapturedAt:   now,
	}, nil
}

// CancelBooking computes the refund from the booking's own policy snapshot,
// never the live catalog, then releases the slot and equipment. Equipment
// release is best-effort cleanup: an individual failure is logged and does
// not fail the cancellation.
func (s *Service) CancelBooking(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, ErrInvalidState
	}

	slot, err := s.slots.GetSlot(ctx, b.SlotID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	refund := policy.CalculateRefund(b.PolicySnapshot.Cancellation, slot.StartTime, now, b.FinalAmount)

	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, b.Status, domain.BookingCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	b.Status = domain.BookingCancelled
	b.CancelledAt = &now
	b.CancellationReason = reason
	b.Financials.RefundAmount = refund.RefundAmount
	b.Financials.NetAmount = money(b.Financials.OriginalAmount - refund.RefundAmount)
	b.AppendEvent(domain.EventCancelled, now, refund.RefundAmount, map[string]any{
		"refund_percentage":    refund.RefundPercentage,
		"tier_hours":           refund.TierHours,
		"hours_before_booking": refund.HoursBeforeBooking,
		"reason":               reason,
	})
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if err := s.slots.Release(ctx, b.SlotID); err != nil {
		log.Printf("booking %d: slot release failed: %v", b.ID, err)
	}
	for _, li := range b.LineItems {
		if _, err := s.inventory.Release(ctx, li.EquipmentID, li.Quantity); err != nil {
			log.Printf("booking %d: equipment %d release failed: %v", b.ID, li.EquipmentID, err)
		}
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCancelled(ctx, b.CustomerID, b.ID, refund.RefundAmount, reason); err != nil {
			log.Printf("booking %d: cancelled notification failed: %v", b.ID, err)
		}
	}

	return b, nil
}

// MarkNoShow resolves a confirmed booking whose customer did not arrive (or
// arrived late). The charge comes from the no-show snapshot and the
// customer's prior no-show count; the booking finishes as completed with a
// NO_SHOW event rather than a separate state.
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, checkInTime *time.Time) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidState
	}

	slot, err := s.slots.GetSlot(ctx, b.SlotID)
	if err != nil {
		return nil, err
	}

	previous, err := s.bookings.CountNoShows(ctx, b.CustomerID)
	if err != nil {
		return nil, err
	}

	result, err := policy.CalculateNoShowCharge(b.PolicySnapshot.NoShow, slot.StartTime, checkInTime, b.FinalAmount, int(previous))
	if err != nil {
		return nil, err
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, domain.BookingConfirmed, domain.BookingCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	now := time.Now()
	b.Status = domain.BookingCompleted
	b.CheckInTime = checkInTime
	b.NoShow = result.IsNoShow
	b.Financials.ChargeAmount = result.ChargeAmount
	b.AppendEvent(domain.EventNoShow, now, result.ChargeAmount, map[string]any{
		"charge_type":         string(result.ChargeType),
		"is_no_show":          result.IsNoShow,
		"grace_applied":       result.GraceApplied,
		"forgiveness_applied": result.ForgivenessApplied,
	})
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil && result.IsNoShow {
		if err := s.notifs.NotifyBookingNoShow(ctx, b.CustomerID, b.ID, result.ChargeAmount); err != nil {
			log.Printf("booking %d: no-show notification failed: %v", b.ID, err)
		}
	}

	return b, nil
}

// ConfirmBooking moves pending -> confirmed. No financial side effects.
func (s *Service) ConfirmBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingPending, domain.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	b.AppendEvent(domain.EventConfirmed, time.Now(), 0, nil)
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingConfirmed(ctx, b.CustomerID, b.ID); err != nil {
			log.Printf("booking %d: confirmed notification failed: %v", b.ID, err)
		}
	}
	return b, nil
}

// CheckInBooking records the customer's arrival: confirmed -> checked_in.
// A checked-in booking can no longer be cancelled or marked as a no-show.
func (s *Service) CheckInBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	ok, err := s.bookings.UpdateStatusIf(ctx, bookingID, domain.BookingConfirmed, domain.BookingCheckedIn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	b.CheckInTime = &now
	b.AppendEvent(domain.EventCheckedIn, now, 0, nil)
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) GetMyBookings(ctx context.Context, customerID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListByCustomer(ctx, customerID, limit, offset)
}

// ListDueForNoShow feeds the external sweep: confirmed bookings whose slot
// started at least grace ago.
func (s *Service) ListDueForNoShow(ctx context.Context, grace time.Duration, limit int) ([]domain.Booking, error) {
	return s.bookings.ListConfirmedDue(ctx, time.Now().Add(-grace), limit)
}

// isPromoRejection separates eligibility failures (soft, downgrade to zero
// discount) from infrastructure errors (hard).
func isPromoRejection(err error) bool {
	for _, e := range []error{
		promotion.ErrNotFound,
		promotion.ErrExpired,
		promotion.ErrExhausted,
		promotion.ErrBudgetExhausted,
		promotion.ErrUserLimitExceeded,
		promotion.ErrDayRestricted,
		promotion.ErrHourRestricted,
		promotion.ErrBelowMinimum,
		promotion.ErrAudienceMismatch,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func money(v float64) float64 {
	return math.Round(v*100) / 100
}
