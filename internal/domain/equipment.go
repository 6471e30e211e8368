package domain

import "time"

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "available"
	EquipmentInUse       EquipmentStatus = "in_use"
	EquipmentMaintenance EquipmentStatus = "maintenance"
)

// Equipment tracks rentable units as four counters. The invariant
// TotalQty == AvailableQty + InUseQty + MaintenanceQty holds at all times;
// Status is derived from the counters and never set on its own.
type Equipment struct {
	ID             int64           `json:"id"`
	StudioID       int64           `json:"studio_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	RentalPrice    float64         `json:"rental_price"`
	TotalQty       int             `json:"total_qty"`
	AvailableQty   int             `json:"available_qty"`
	InUseQty       int             `json:"in_use_qty"`
	MaintenanceQty int             `json:"maintenance_qty"`
	Status         EquipmentStatus `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DeriveStatus recomputes the status from the counters: in_use while any
// unit is out, maintenance when every unit is under maintenance, otherwise
// available.
func (e *Equipment) DeriveStatus() EquipmentStatus {
	switch {
	case e.InUseQty > 0:
		return EquipmentInUse
	case e.TotalQty > 0 && e.MaintenanceQty >= e.TotalQty:
		return EquipmentMaintenance
	default:
		return EquipmentAvailable
	}
}

func (e *Equipment) CountersConsistent() bool {
	return e.TotalQty == e.AvailableQty+e.InUseQty+e.MaintenanceQty &&
		e.AvailableQty >= 0 && e.InUseQty >= 0 && e.MaintenanceQty >= 0
}
