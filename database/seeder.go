package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

// SeedDemoData mengisi data demo (restoran, meja, jam buka) kalau
// database masih kosong. Aman dipanggil berulang.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	restaurants := []struct {
		restaurant models.Restaurant
		tables     []models.Table
	}{
		{
			restaurant: models.Restaurant{
				Name:        "Bella Vista",
				Address:     "Jl. Senopati No. 12, Jakarta",
				Phone:       "+62-21-555-0101",
				Email:       "hello@bellavista.example",
				Cuisine:     "Italian",
				PriceRange:  "$$$",
				Rating:      4.6,
				Description: "Trattoria with a rooftop terrace",
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			tables: []models.Table{
				{TableNumber: 1, Capacity: 2, Zone: models.TableZoneIndoor},
				{TableNumber: 2, Capacity: 2, Zone: models.TableZoneIndoor},
				{TableNumber: 3, Capacity: 4, Zone: models.TableZoneIndoor},
				{TableNumber: 4, Capacity: 4, Zone: models.TableZoneOutdoor},
				{TableNumber: 5, Capacity: 6, Zone: models.TableZoneOutdoor},
				{TableNumber: 6, Capacity: 8, Zone: models.TableZonePrivate},
			},
		},
		{
			restaurant: models.Restaurant{
				Name:        "Sakura House",
				Address:     "Jl. Melawai Raya No. 8, Jakarta",
				Phone:       "+62-21-555-0102",
				Email:       "front@sakurahouse.example",
				Cuisine:     "Japanese",
				PriceRange:  "$$",
				Rating:      4.4,
				Description: "Omakase counter and tatami rooms",
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			tables: []models.Table{
				{TableNumber: 1, Capacity: 2, Zone: models.TableZoneIndoor},
				{TableNumber: 2, Capacity: 4, Zone: models.TableZoneIndoor},
				{TableNumber: 3, Capacity: 4, Zone: models.TableZoneIndoor},
				{TableNumber: 4, Capacity: 6, Zone: models.TableZonePrivate},
			},
		},
	}

	for _, seed := range restaurants {
		restaurant := seed.restaurant
		if err := db.Create(&restaurant).Error; err != nil {
			return err
		}

		for _, table := range seed.tables {
			table.RestaurantID = restaurant.ID
			table.Status = models.TableStatusAvailable
			table.CreatedAt = now
			table.UpdatedAt = now
			if err := db.Create(&table).Error; err != nil {
				return err
			}
		}

		// Senin-Minggu 11:00-23:00, Minggu tutup lebih awal
		for day := 0; day < 7; day++ {
			hour := models.OpeningHour{
				RestaurantID: restaurant.ID,
				DayOfWeek:    day,
				OpenTime:     "11:00",
				CloseTime:    "23:00",
			}
			if day == 0 {
				hour.CloseTime = "21:00"
			}
			if err := db.Create(&hour).Error; err != nil {
				return err
			}
		}
	}

	utils.InfoLogger.Println("Demo data seeded")
	return nil
}
