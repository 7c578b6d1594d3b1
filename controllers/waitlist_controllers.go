package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type WaitlistController struct {
	availability *services.AvailabilityService
}

func NewWaitlistController(availability *services.AvailabilityService) *WaitlistController {
	return &WaitlistController{availability: availability}
}

// JoinWaitlist -> customer masuk antrean untuk slot yang penuh
func (wc *WaitlistController) JoinWaitlist(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	var req struct {
		Date          string `json:"date" binding:"required"`
		Time          string `json:"time" binding:"required"`
		PartySize     int    `json:"party_size" binding:"required"`
		CustomerName  string `json:"customer_name" binding:"required"`
		CustomerEmail string `json:"customer_email"`
		CustomerPhone string `json:"customer_phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	entry := models.WaitlistEntry{
		RestaurantID:  uint(restaurantID),
		Date:          req.Date,
		Time:          req.Time,
		PartySize:     req.PartySize,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	}

	saved, err := wc.availability.AddToWaitlist(&entry)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Added to waitlist", saved)
}

// GetWaitlist -> antrean satu restoran urut prioritas
func (wc *WaitlistController) GetWaitlist(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	entries, err := wc.availability.GetWaitlistEntries(uint(restaurantID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Waitlist entries", entries)
}

// NotifyEntry -> staff memanggil entri waitlist yang kebagian meja
func (wc *WaitlistController) NotifyEntry(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("entry_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid entry id"))
		return
	}

	entry, err := wc.availability.NotifyWaitlistEntry(uint(entryID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Waitlist entry notified", entry)
}
