package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"studiobooking/internal/config"
	"studiobooking/internal/database"
	"studiobooking/internal/modules/booking"
	"studiobooking/internal/modules/inventory"
	"studiobooking/internal/modules/notification"
	"studiobooking/internal/modules/promotion"
	"studiobooking/internal/modules/schedule"
	"studiobooking/internal/repository"
)

// The sweep is a client of the booking orchestrator, not part of it: it
// finds confirmed bookings whose start time plus the grace window has
// elapsed and marks each one as a no-show. Run it from cron or a scheduler.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	scheduleRepo := repository.NewScheduleRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	svc := booking.NewService(
		bookingRepo,
		schedule.NewService(scheduleRepo, cfg.MinSlotGap),
		inventory.NewService(equipmentRepo),
		promotion.NewService(promotionRepo),
		policyRepo,
		studioRepo,
		notification.NewService(notificationRepo),
	)

	ctx := context.Background()
	due, err := svc.ListDueForNoShow(ctx, cfg.NoShowGrace, 100)
	if err != nil {
		log.Fatalf("listing due bookings failed: %v", err)
	}

	var marked int
	for _, b := range due {
		if _, err := svc.MarkNoShow(ctx, b.ID, b.CheckInTime); err != nil {
			log.Printf("booking %d: mark no-show failed: %v", b.ID, err)
			continue
		}
		marked++
	}
	log.Printf("no-show sweep completed: due=%d marked=%d", len(due), marked)
}
