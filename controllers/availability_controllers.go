package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type AvailabilityController struct {
	availability *services.AvailabilityService
}

func NewAvailabilityController(availability *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{availability: availability}
}

// GetCalendar -> kalender ketersediaan satu hari penuh
// GET /restaurants/:restaurant_id/availability?date=2026-08-28
func (ac *AvailabilityController) GetCalendar(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("date is required (format 2006-01-02)"))
		return
	}

	calendar, err := ac.availability.GetAvailabilityCalendar(uint(restaurantID), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability calendar", calendar)
}

// CheckSlot -> status satu slot waktu
// GET /restaurants/:restaurant_id/availability/slot?date=...&time=19:00
func (ac *AvailabilityController) CheckSlot(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	date := c.Query("date")
	clock := c.Query("time")
	if date == "" || clock == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("date and time are required"))
		return
	}

	slot, err := ac.availability.CheckSlotAvailability(uint(restaurantID), date, clock)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Slot availability", slot)
}

// FindBestTable -> meja terkecil yang muat untuk party size pada slot itu
// GET /restaurants/:restaurant_id/availability/best-table?date=...&time=...&party_size=4
func (ac *AvailabilityController) FindBestTable(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	date := c.Query("date")
	clock := c.Query("time")
	partySize, err := strconv.Atoi(c.DefaultQuery("party_size", "0"))
	if err != nil || partySize <= 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("party_size must be a positive number"))
		return
	}
	if date == "" || clock == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("date and time are required"))
		return
	}

	table, err := ac.availability.FindBestTable(uint(restaurantID), date, clock, partySize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if table == nil {
		// Bukan error; frontend menawarkan waitlist dari sini
		utils.RespondJSON(c, http.StatusOK, "No table available for this slot", gin.H{
			"available": false,
		})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Best table found", gin.H{
		"available": true,
		"table":     table,
	})
}
