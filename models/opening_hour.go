package models

// OpeningHour menyimpan jam buka per hari. DayOfWeek mengikuti time.Weekday
// (0 = Minggu). Closed=true berarti restoran libur sepanjang hari itu.
type OpeningHour struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RestaurantID uint   `gorm:"index;not null" json:"restaurant_id"`
	DayOfWeek    int    `gorm:"not null" json:"day_of_week"`
	OpenTime     string `gorm:"type:varchar(5)" json:"open_time"`
	CloseTime    string `gorm:"type:varchar(5)" json:"close_time"`
	Closed       bool   `gorm:"not null;default:false" json:"closed"`
}
