package models

import "time"

const (
	TableStatusAvailable   = "available"
	TableStatusOccupied    = "occupied"
	TableStatusReserved    = "reserved"
	TableStatusMaintenance = "maintenance"
)

const (
	TableZoneIndoor  = "indoor"
	TableZoneOutdoor = "outdoor"
	TableZonePrivate = "private"
)

type Table struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"index;not null" json:"restaurant_id"`
	TableNumber  int       `gorm:"not null" json:"table_number"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	Zone         string    `gorm:"type:varchar(20);not null;default:'indoor'" json:"zone"`
	Status       string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidTableStatus memvalidasi status meja yang dikirim client
func IsValidTableStatus(status string) bool {
	switch status {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusMaintenance:
		return true
	}
	return false
}

// IsValidTableZone memvalidasi zona meja
func IsValidTableZone(zone string) bool {
	switch zone {
	case TableZoneIndoor, TableZoneOutdoor, TableZonePrivate:
		return true
	}
	return false
}
