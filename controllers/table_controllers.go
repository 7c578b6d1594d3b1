package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type TableController struct {
	DB      *gorm.DB
	booking *services.BookingService
}

func NewTableController(db *gorm.DB, booking *services.BookingService) *TableController {
	return &TableController{DB: db, booking: booking}
}

// CreateTable -> menambahkan meja baru ke sebuah restoran
func (tc *TableController) CreateTable(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	var req struct {
		TableNumber int    `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required"`
		Zone        string `json:"zone"`   // default indoor
		Status      string `json:"status"` // default available
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Capacity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("capacity must be greater than zero"))
		return
	}

	var restaurant models.Restaurant
	if err := tc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table := models.Table{
		RestaurantID: uint(restaurantID),
		TableNumber:  req.TableNumber,
		Capacity:     req.Capacity,
		Zone:         models.TableZoneIndoor,
		Status:       models.TableStatusAvailable,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if req.Zone != "" {
		if !models.IsValidTableZone(req.Zone) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid zone: %s", req.Zone))
			return
		}
		table.Zone = req.Zone
	}
	if req.Status != "" {
		if !models.IsValidTableStatus(req.Status) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status: %s", req.Status))
			return
		}
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: #%d restaurant=%d (capacity=%d, zone=%s)",
		table.TableNumber, table.RestaurantID, table.Capacity, table.Zone)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetTablesByRestaurant -> seluruh meja satu restoran
func (tc *TableController) GetTablesByRestaurant(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	var tables []models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurantID).
		Order("table_number asc").
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus -> aksi manual staff; status reservasi tidak ikut berubah
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid table id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.IsValidTableStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status: %s", body.Status))
		return
	}

	table, err := tc.booking.SetTableStatus(uint(tableID), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// FindTablesByStatus -> mis. list meja available di satu restoran
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	status := c.Query("status")
	if status == "" {
		status = models.TableStatusAvailable
	}

	var tables []models.Table
	if err := tc.DB.Where("restaurant_id = ? AND status = ?", restaurantID, status).
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}
