package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

// setupReservationEnv -> router untuk endpoint reservasi (payment offline)
func setupReservationEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	utils.InitLogger()
	t.Setenv("MIDTRANS_SERVER_KEY", "")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Restaurant{},
		&models.OpeningHour{},
		&models.Table{},
		&models.Reservation{},
		&models.BlockedSlot{},
		&models.WaitlistEntry{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.Default()

	locks := services.NewRestaurantLocks()
	availabilitySvc := services.NewAvailabilityService(db, locks)
	bookingSvc := services.NewBookingService(db, availabilitySvc, locks)
	paymentSvc := services.NewPaymentService()
	reservationCtrl := controllers.NewReservationController(db, bookingSvc, paymentSvc)

	router.POST("/restaurants/:restaurant_id/reservations", reservationCtrl.CreateReservation)
	router.GET("/reservations/code/:code", reservationCtrl.GetReservationByCode)
	router.GET("/reservations/code/:code/confirmation", reservationCtrl.DownloadConfirmation)
	router.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateReservationStatus)
	router.POST("/reservations/:reservation_id/pay", reservationCtrl.PayReservation)

	return db, router
}

type reservationResponse struct {
	Message string             `json:"message"`
	Data    models.Reservation `json:"data"`
}

func createReservationRequest(t *testing.T, router *gin.Engine, restaurantID uint, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest("POST",
		fmt.Sprintf("/restaurants/%d/reservations", restaurantID), jsonBody(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateReservationEndpoint(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 2, 4)
	date := testDate()

	payload := fmt.Sprintf(`{
		"customer_name": "Andi Wijaya",
		"customer_phone": "0812000111",
		"date": "%s",
		"time": "19:00",
		"party_size": 3
	}`, date)
	w := createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response reservationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Reservation created", response.Message)
	assert.NotEmpty(t, response.Data.Code)
	assert.Equal(t, models.ReservationStatusPending, response.Data.Status)
	assert.Equal(t, 120, response.Data.Duration)

	// Lookup publik via kode
	req, _ := http.NewRequest("GET", "/reservations/code/"+response.Data.Code, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateReservationWithDeposit(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 4)

	payload := fmt.Sprintf(`{
		"customer_name": "Budi Santoso",
		"date": "%s",
		"time": "19:00",
		"party_size": 2,
		"payment_method": "cash",
		"payment_amount": 100000
	}`, testDate())
	w := createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response reservationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	// Deposit sukses -> reservasi langsung confirmed
	assert.Equal(t, models.ReservationStatusConfirmed, response.Data.Status)
	assert.NotNil(t, response.Data.PaymentRef)
}

func TestCreateReservationConflict(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 4)
	date := testDate()

	payload := fmt.Sprintf(`{"customer_name":"Andi","date":"%s","time":"19:00","party_size":2}`, date)
	w := createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Satu-satunya meja sudah terpakai -> 409
	payload = fmt.Sprintf(`{"customer_name":"Budi","date":"%s","time":"20:00","party_size":2}`, date)
	w = createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// Memilih meja lewat table_id tidak melewati cek overlap
func TestCreateReservationPreSelectedConflict(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 4)
	date := testDate()

	var table models.Table
	assert.NoError(t, db.Where("restaurant_id = ?", restaurant.ID).First(&table).Error)

	payload := fmt.Sprintf(`{"customer_name":"Andi","date":"%s","time":"19:00","party_size":2,"table_id":%d}`,
		date, table.ID)
	w := createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	payload = fmt.Sprintf(`{"customer_name":"Budi","date":"%s","time":"19:00","party_size":2,"table_id":%d}`,
		date, table.ID)
	w = createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReservationValidationErrors(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 4)

	// Tanggal lampau
	payload := `{"customer_name":"Andi","date":"2020-01-15","time":"19:00","party_size":2}`
	w := createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Restoran tidak ada
	payload = fmt.Sprintf(`{"customer_name":"Andi","date":"%s","time":"19:00","party_size":2}`, testDate())
	w = createReservationRequest(t, router, 9999, payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReservationStatusEndpoint(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 4)

	payload := fmt.Sprintf(`{"customer_name":"Andi","date":"%s","time":"19:00","party_size":2}`, testDate())
	w := createReservationRequest(t, router, restaurant.ID, payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created reservationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	patch := func(status string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest("PATCH",
			fmt.Sprintf("/reservations/%d", created.Data.ID),
			jsonBody(fmt.Sprintf(`{"status":"%s"}`, status)))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// pending -> seated dilarang state machine -> 409
	assert.Equal(t, http.StatusConflict, patch(models.ReservationStatusSeated).Code)

	assert.Equal(t, http.StatusOK, patch(models.ReservationStatusConfirmed).Code)
	assert.Equal(t, http.StatusOK, patch(models.ReservationStatusSeated).Code)
	assert.Equal(t, http.StatusOK, patch(models.ReservationStatusCompleted).Code)

	// Terminal
	assert.Equal(t, http.StatusConflict, patch(models.ReservationStatusCancelled).Code)
}

func TestPayReservationEndpoint(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 4)

	payload := fmt.Sprintf(`{"customer_name":"Andi","date":"%s","time":"19:00","party_size":2}`, testDate())
	w := createReservationRequest(t, router, restaurant.ID, payload)
	var created reservationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req, _ := http.NewRequest("POST",
		fmt.Sprintf("/reservations/%d/pay", created.Data.ID),
		jsonBody(`{"payment_method":"cash","amount":250000}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var paid reservationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &paid))
	assert.NotNil(t, paid.Data.PaymentRef)
	assert.Equal(t, 250000.0, *paid.Data.PaymentAmount)
}

func TestDownloadConfirmationPDF(t *testing.T) {
	db, router := setupReservationEnv(t)
	restaurant := seedRestaurantWithTables(t, db, 4)

	payload := fmt.Sprintf(`{"customer_name":"Andi","date":"%s","time":"19:00","party_size":2}`, testDate())
	w := createReservationRequest(t, router, restaurant.ID, payload)
	var created reservationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req, _ := http.NewRequest("GET", "/reservations/code/"+created.Data.Code+"/confirmation", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	// Header PDF valid
	assert.True(t, len(w.Body.Bytes()) > 4)
	assert.Equal(t, "%PDF", string(w.Body.Bytes()[:4]))
}
