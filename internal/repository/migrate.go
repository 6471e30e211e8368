package repository

import (
	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the core persists to. The row
// models are private to this package, so migration lives here too.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&studioModel{},
		&slotModel{},
		&equipmentModel{},
		&promotionModel{},
		&bookingModel{},
		&domain.Policy{},
		&domain.Notification{},
	)
}
