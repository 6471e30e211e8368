package notification

import (
	"context"
	"fmt"
	"time"

	"studiobooking/internal/domain"
	"studiobooking/internal/repository"
)

// Service is the notification sink the orchestrator calls fire-and-forget.
// It persists a row per notification; delivery to an actual channel (email,
// push) happens outside this core.
type Service struct {
	repo *repository.NotificationRepository
}

func NewService(repo *repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		Data:    data,
	})
}

func (s *Service) NotifyBookingCreated(ctx context.Context, customerID, bookingID, studioID int64, start time.Time) error {
	return s.create(ctx, customerID, domain.NotifBookingCreated,
		"Booking created",
		fmt.Sprintf("Your booking #%d is pending confirmation", bookingID),
		map[string]any{"booking_id": bookingID, "studio_id": studioID, "start_time": start})
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, customerID, bookingID int64) error {
	return s.create(ctx, customerID, domain.NotifBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("Your booking #%d is confirmed", bookingID),
		map[string]any{"booking_id": bookingID})
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, customerID, bookingID int64, refundAmount float64, reason string) error {
	return s.create(ctx, customerID, domain.NotifBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Your booking #%d was cancelled", bookingID),
		map[string]any{"booking_id": bookingID, "refund_amount": refundAmount, "reason": reason})
}

func (s *Service) NotifyBookingNoShow(ctx context.Context, customerID, bookingID int64, chargeAmount float64) error {
	return s.create(ctx, customerID, domain.NotifBookingNoShow,
		"Missed booking",
		fmt.Sprintf("Booking #%d was marked as a no-show", bookingID),
		map[string]any{"booking_id": bookingID, "charge_amount": chargeAmount})
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.GetByUserID(ctx, userID, limit)
}
