package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"studiobooking/internal/database"
	"studiobooking/internal/domain"
	"studiobooking/internal/repository"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect("studio.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM schedule_slots")
	db.Exec("DELETE FROM promotions")
	db.Exec("DELETE FROM policies")
	db.Exec("DELETE FROM equipment")
	db.Exec("DELETE FROM studios")

	ctx := context.Background()
	studios := repository.NewStudioRepository(db)
	equipment := repository.NewEquipmentRepository(db)
	promotions := repository.NewPromotionRepository(db)
	policies := repository.NewPolicyRepository(db)

	log.Println("Creating studios...")
	loft := &domain.Studio{
		Name:            "Loft Studio",
		Description:     "Daylight loft with cyclorama",
		Address:         "Abay Ave 10",
		City:            "Almaty",
		BaseRatePerHour: 15000,
		IsActive:        true,
	}
	dark := &domain.Studio{
		Name:            "Dark Room",
		Description:     "Blackout studio for product shoots",
		Address:         "Dostyk 120",
		City:            "Almaty",
		BaseRatePerHour: 12000,
		IsActive:        true,
	}
	for _, s := range []*domain.Studio{loft, dark} {
		if err := studios.Create(ctx, s); err != nil {
			log.Fatal("seed studio:", err)
		}
	}

	log.Println("Creating equipment...")
	items := []*domain.Equipment{
		{StudioID: loft.ID, Name: "Godox AD600 Pro", Category: "lighting", RentalPrice: 5000, TotalQty: 4, AvailableQty: 4},
		{StudioID: loft.ID, Name: "Canon EOS R5", Category: "camera", RentalPrice: 12000, TotalQty: 2, AvailableQty: 2},
		{StudioID: dark.ID, Name: "Profoto B10", Category: "lighting", RentalPrice: 7000, TotalQty: 3, AvailableQty: 3},
		{StudioID: dark.ID, Name: "Colorama backdrop set", Category: "props", RentalPrice: 2000, TotalQty: 6, AvailableQty: 6},
	}
	for _, e := range items {
		if err := equipment.Create(ctx, e); err != nil {
			log.Fatal("seed equipment:", err)
		}
	}

	log.Println("Creating policies...")
	cancellation := &domain.Policy{
		Type:     domain.PolicyCancellation,
		Category: domain.PolicyCategoryStandard,
		Name:     "Standard cancellation",
		RefundTiers: []domain.RefundTier{
			{HoursBeforeBooking: 48, RefundPercentage: 100},
			{HoursBeforeBooking: 24, RefundPercentage: 50},
			{HoursBeforeBooking: 0, RefundPercentage: 0},
		},
		IsActive: true,
	}
	noShow := &domain.Policy{
		Type:     domain.PolicyNoShow,
		Category: domain.PolicyCategoryStandard,
		Name:     "Standard no-show",
		NoShowRules: &domain.NoShowRules{
			ChargeType:   domain.ChargeGracePeriod,
			GraceMinutes: 15,
		},
		IsActive: true,
	}
	for _, p := range []*domain.Policy{cancellation, noShow} {
		if err := policies.Create(ctx, p); err != nil {
			log.Fatal("seed policy:", err)
		}
	}

	log.Println("Creating promotions...")
	maxDiscount := 20000.0
	perUser := 1
	budget := 500000.0
	welcome := &domain.Promotion{
		Code:                   "WELCOME10",
		Name:                   "New customer 10%",
		DiscountType:           domain.DiscountPercentage,
		DiscountValue:          10,
		MaxDiscount:            &maxDiscount,
		MinOrderValue:          10000,
		UsageLimitPerUser:      &perUser,
		MaxTotalDiscountAmount: &budget,
		Audience:               domain.AudienceNew,
		StartDate:              time.Now().AddDate(0, -1, 0),
		EndDate:                time.Now().AddDate(0, 6, 0),
		IsActive:               true,
	}
	midweek := &domain.Promotion{
		Code:            "MIDWEEK",
		Name:            "Weekday morning fixed discount",
		DiscountType:    domain.DiscountFixed,
		DiscountValue:   5000,
		MinOrderValue:   20000,
		ApplicableDays:  []int{1, 2, 3, 4, 5},
		ApplicableHours: &domain.HourWindow{StartHour: 8, EndHour: 14},
		Audience:        domain.AudienceAll,
		StartDate:       time.Now().AddDate(0, -1, 0),
		EndDate:         time.Now().AddDate(0, 3, 0),
		IsActive:        true,
	}
	for _, p := range []*domain.Promotion{welcome, midweek} {
		if err := promotions.Create(ctx, p); err != nil {
			log.Fatal("seed promotion:", err)
		}
	}

	log.Println("Seed completed")
}
