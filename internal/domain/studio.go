package domain

import "time"

type Studio struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Address         string     `json:"address"`
	City            string     `json:"city"`
	BaseRatePerHour float64    `json:"base_rate_per_hour"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`
}
