package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type ReservationController struct {
	DB      *gorm.DB
	booking *services.BookingService
	payment *services.PaymentService
}

func NewReservationController(db *gorm.DB, booking *services.BookingService, payment *services.PaymentService) *ReservationController {
	return &ReservationController{DB: db, booking: booking, payment: payment}
}

// CreateReservation -> booking baru, opsional dengan pembayaran di depan.
// Charge dijalankan dulu ke gateway; baru setelah sukses reservasi masuk
// critical section engine. Kalau charge gagal, tidak ada yang di-commit.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	restaurantID, err := strconv.Atoi(c.Param("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid restaurant id"))
		return
	}

	var req struct {
		TableID         *uint    `json:"table_id"`
		CustomerName    string   `json:"customer_name" binding:"required"`
		CustomerEmail   string   `json:"customer_email"`
		CustomerPhone   string   `json:"customer_phone"`
		Date            string   `json:"date" binding:"required"`
		Time            string   `json:"time" binding:"required"`
		PartySize       int      `json:"party_size" binding:"required"`
		Duration        int      `json:"duration"`
		SpecialRequests *string  `json:"special_requests"`
		PaymentMethod   string   `json:"payment_method"` // cash, qris, bank_transfer, gopay
		PaymentAmount   *float64 `json:"payment_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking := services.BookingRequest{
		RestaurantID:    uint(restaurantID),
		TableID:         req.TableID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		Duration:        req.Duration,
		SpecialRequests: req.SpecialRequests,
	}

	// Pembayaran di depan (deposit) sebelum slot dikunci
	if req.PaymentMethod != "" && req.PaymentAmount != nil {
		result, err := rc.payment.Charge(*req.PaymentAmount, req.PaymentMethod)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		booking.PaymentRef = &result.Ref
		booking.PaymentAmount = req.PaymentAmount
	}

	reservation, err := rc.booking.CreateReservation(booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetReservationsByRestaurant -> daftar reservasi, opsional filter
// ?date= dan ?status=
func (rc *ReservationController) GetReservationsByRestaurant(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	query := rc.DB.Where("restaurant_id = ?", restaurantID)
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("date asc, time asc").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationsByCustomer -> riwayat reservasi satu customer
func (rc *ReservationController) GetReservationsByCustomer(c *gin.Context) {
	customerID := c.Param("customer_id")

	var customer models.Customer
	if err := rc.DB.First(&customer, customerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Where("customer_id = ?", customer.ID).
		Order("date desc, time desc").
		Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer reservations", gin.H{
		"customer":     customer,
		"reservations": reservations,
	})
}

// GetReservationByID -> detail satu reservasi
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	reservationID := c.Param("reservation_id")

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, reservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// GetReservationByCode -> lookup publik via kode booking (tanpa login)
func (rc *ReservationController) GetReservationByCode(c *gin.Context) {
	code := c.Param("code")

	var reservation models.Reservation
	if err := rc.DB.Where("code = ?", code).First(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// UpdateReservationStatus -> jalankan state machine
// (confirm, seat, complete, cancel, no-show)
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid reservation id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.booking.UpdateStatus(uint(reservationID), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// PayReservation -> charge pembayaran untuk reservasi yang sudah ada
// lalu catat hasilnya
func (rc *ReservationController) PayReservation(c *gin.Context) {
	reservationID, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid reservation id"))
		return
	}

	var req struct {
		PaymentMethod string  `json:"payment_method" binding:"required"`
		Amount        float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := rc.payment.Charge(req.Amount, req.PaymentMethod)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	reservation, err := rc.booking.UpdateReservationPayment(uint(reservationID),
		result.Ref, req.Amount, result.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment recorded", reservation)
}

// DownloadConfirmation -> bukti reservasi dalam bentuk PDF
func (rc *ReservationController) DownloadConfirmation(c *gin.Context) {
	code := c.Param("code")

	var reservation models.Reservation
	if err := rc.DB.Where("code = ?", code).First(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, reservation.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var table models.Table
	if err := rc.DB.First(&table, reservation.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Reservation Confirmation", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, restaurant.Name, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, restaurant.Address, "", 1, "C", false, 0, "")
	pdf.Ln(8)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	row("Booking Code", reservation.Code)
	row("Guest Name", reservation.CustomerName)
	row("Date", reservation.Date)
	row("Time", reservation.Time)
	row("Party Size", strconv.Itoa(reservation.PartySize))
	row("Table", fmt.Sprintf("#%d (%s, seats %d)", table.TableNumber, table.Zone, table.Capacity))
	row("Status", reservation.Status)
	if reservation.PaymentRef != nil {
		row("Payment Ref", *reservation.PaymentRef)
	}
	if reservation.PaymentAmount != nil {
		row("Deposit", fmt.Sprintf("%.2f", *reservation.PaymentAmount))
	}
	if reservation.SpecialRequests != nil && *reservation.SpecialRequests != "" {
		row("Requests", *reservation.SpecialRequests)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "Please arrive 10 minutes before your reservation time.", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Show this confirmation to our staff upon arrival.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reservation-%s.pdf", reservation.Code))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
