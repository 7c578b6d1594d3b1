package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// CreateRestaurant -> mendaftarkan restoran baru beserta jam buka
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	type hourReq struct {
		DayOfWeek int    `json:"day_of_week"`
		OpenTime  string `json:"open_time"`
		CloseTime string `json:"close_time"`
		Closed    bool   `json:"closed"`
	}
	var req struct {
		Name         string    `json:"name" binding:"required"`
		Address      string    `json:"address"`
		Phone        string    `json:"phone"`
		Email        string    `json:"email"`
		Cuisine      string    `json:"cuisine"`
		PriceRange   string    `json:"price_range"`
		Description  string    `json:"description"`
		OpeningHours []hourReq `json:"opening_hours"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Cuisine:     req.Cuisine,
		PriceRange:  req.PriceRange,
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if restaurant.PriceRange == "" {
		restaurant.PriceRange = "$$"
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, hour := range req.OpeningHours {
		if !hour.Closed {
			if _, err := utils.ToMinutes(hour.OpenTime); err != nil {
				utils.RespondError(c, http.StatusBadRequest, err)
				return
			}
			if _, err := utils.ToMinutes(hour.CloseTime); err != nil {
				utils.RespondError(c, http.StatusBadRequest, err)
				return
			}
		}
		rc.DB.Create(&models.OpeningHour{
			RestaurantID: restaurant.ID,
			DayOfWeek:    hour.DayOfWeek,
			OpenTime:     hour.OpenTime,
			CloseTime:    hour.CloseTime,
			Closed:       hour.Closed,
		})
	}

	utils.InfoLogger.Printf("New restaurant created: %s (id=%d)", restaurant.Name, restaurant.ID)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// GetAllRestaurants -> daftar restoran
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := rc.DB.Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// GetRestaurantByID -> detail restoran beserta meja dan jam buka
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	var restaurant models.Restaurant
	if err := rc.DB.Preload("Tables").Preload("OpeningHours").
		First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}
