package models

import "time"

// WaitlistEntry adalah antrean customer untuk slot yang sedang penuh.
// Priority di-assign berurutan saat insert dan tidak pernah di-renumber
// walaupun ada entri yang dihapus.
type WaitlistEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Code          string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"`
	RestaurantID  uint      `gorm:"index;not null" json:"restaurant_id"`
	Date          string    `gorm:"type:varchar(10);index;not null" json:"date"`
	Time          string    `gorm:"type:varchar(8);not null" json:"time"`
	PartySize     int       `gorm:"not null" json:"party_size"`
	CustomerName  string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string    `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerPhone string    `gorm:"type:varchar(50)" json:"customer_phone"`
	Priority      int       `gorm:"not null" json:"priority"`
	Notified      bool      `gorm:"not null;default:false" json:"notified"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
