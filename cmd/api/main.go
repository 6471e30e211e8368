package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"studiobooking/internal/config"
	"studiobooking/internal/database"
	"studiobooking/internal/middleware"
	"studiobooking/internal/modules/booking"
	"studiobooking/internal/modules/inventory"
	"studiobooking/internal/modules/notification"
	"studiobooking/internal/modules/promotion"
	"studiobooking/internal/modules/schedule"
	jwtsvc "studiobooking/internal/pkg/jwt"
	"studiobooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	studioRepo := repository.NewStudioRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret)

	scheduleService := schedule.NewService(scheduleRepo, cfg.MinSlotGap)
	inventoryService := inventory.NewService(equipmentRepo)
	promotionService := promotion.NewService(promotionRepo)
	notificationService := notification.NewService(notificationRepo)

	bookingService := booking.NewService(
		bookingRepo,
		scheduleService,
		inventoryService,
		promotionService,
		policyRepo,
		studioRepo,
		notificationService,
	)

	bookingHandler := booking.NewHandler(bookingService)
	inventoryHandler := inventory.NewHandler(inventoryService)

	r := gin.Default()
	r.Use(middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			inventoryHandler.RegisterRoutes(protected)

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			inventoryHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
