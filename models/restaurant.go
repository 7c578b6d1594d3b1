package models

import "time"

type Restaurant struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Address     string  `gorm:"type:varchar(255)" json:"address"`
	Phone       string  `gorm:"type:varchar(50)" json:"phone"`
	Email       string  `gorm:"type:varchar(255)" json:"email"`
	Cuisine     string  `gorm:"type:varchar(255)" json:"cuisine"`
	PriceRange  string  `gorm:"type:varchar(10);default:'$$'" json:"price_range"`
	Rating      float64 `gorm:"type:decimal(3,1);default:0" json:"rating"`
	Description string  `gorm:"type:text" json:"description"`
	ManagerID   *uint   `gorm:"index" json:"manager_id,omitempty"`

	Tables       []Table       `gorm:"foreignKey:RestaurantID" json:"tables,omitempty"`
	OpeningHours []OpeningHour `gorm:"foreignKey:RestaurantID" json:"opening_hours,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
