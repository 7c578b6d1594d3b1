package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type BlockController struct {
	availability *services.AvailabilityService
}

func NewBlockController(availability *services.AvailabilityService) *BlockController {
	return &BlockController{availability: availability}
}

// CreateBlock -> staff memblok rentang waktu, seluruh restoran atau
// hanya meja tertentu (table_ids kosong = seluruh restoran)
func (bc *BlockController) CreateBlock(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	var req struct {
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
		Reason    string `json:"reason"`
		TableIDs  []uint `json:"table_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := c.GetUint("user_id")

	block, err := bc.availability.BlockTimeSlot(uint(restaurantID),
		req.Date, req.StartTime, req.EndTime, req.Reason, req.TableIDs, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Time slot blocked", block)
}

// GetBlocks -> daftar blok satu restoran, opsional filter ?date=
func (bc *BlockController) GetBlocks(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	blocks, err := bc.availability.GetBlockedSlots(uint(restaurantID), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of blocked slots", blocks)
}

// DeleteBlock -> mencabut blok manual
func (bc *BlockController) DeleteBlock(c *gin.Context) {
	blockID, err := strconv.Atoi(c.Param("block_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid block id"))
		return
	}

	if err := bc.availability.RemoveBlockedSlot(uint(blockID)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Blocked slot removed", nil)
}
