package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

var ErrNoPermission = errors.New("you don't have permission for this action")

// respondServiceError memetakan error engine ke HTTP status.
// NoAvailability dan InvalidStateTransition = 409 (konflik state),
// PaymentDeclined = 402, NotFound = 404, sisanya input error 400.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrNoAvailability),
		errors.Is(err, services.ErrInvalidStateTransition):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrPaymentDeclined):
		utils.RespondError(c, http.StatusPaymentRequired, err)
	case errors.Is(err, services.ErrInvalidRange),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrPastDate),
		errors.Is(err, services.ErrInvalidPartySize),
		errors.Is(err, services.ErrTableTooSmall),
		errors.Is(err, utils.ErrInvalidTimeFormat):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
