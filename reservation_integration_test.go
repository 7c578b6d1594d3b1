package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/router"
	"github.com/yeremiapane/reservation-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Seed admin, login -> token
// 1. Buat restoran + jam buka + meja
// 2. Cek kalender ketersediaan
// 3. Buat reservasi publik (pending)
// 4. Jalankan state machine confirmed -> seated -> completed
// 5. Blokir slot, lalu booking di slot itu gagal
// 6. Waitlist join + notify
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	gin.SetMode(gin.TestMode)
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	restaurantID := createRestaurantTest(t, r, token)
	createTablesTest(t, r, token, restaurantID)

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	checkCalendarTest(t, r, restaurantID, date)

	reservationID := createReservationTest(t, r, restaurantID, date)

	runStateMachineTest(t, r, token, reservationID)

	blockAndRetryTest(t, r, token, restaurantID, date)

	waitlistFlowTest(t, r, token, restaurantID, date)
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed admin
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
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
		log.Fatalf("failed to migrate: %v", err)
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Admin",
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Role:     "admin",
	})

	return db
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w, resp := doJSON(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("loginTest fail: code=%d, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.Token == "" {
		t.Fatalf("loginTest: token empty")
	}
	return data.Token
}

func createRestaurantTest(t *testing.T, r *gin.Engine, token string) uint {
	hours := make([]map[string]interface{}, 0, 7)
	for day := 0; day < 7; day++ {
		hours = append(hours, map[string]interface{}{
			"day_of_week": day,
			"open_time":   "11:00",
			"close_time":  "23:00",
		})
	}

	w, resp := doJSON(t, r, http.MethodPost, "/admin/restaurants", token, map[string]interface{}{
		"name":          "Integration Bistro",
		"address":       "Jl. Percobaan No. 1",
		"cuisine":       "Fusion",
		"opening_hours": hours,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("createRestaurantTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var restaurant models.Restaurant
	json.Unmarshal(resp.Data, &restaurant)
	if restaurant.ID == 0 {
		t.Fatalf("createRestaurantTest: restaurant id empty")
	}
	return restaurant.ID
}

func createTablesTest(t *testing.T, r *gin.Engine, token string, restaurantID uint) {
	for i, capacity := range []int{2, 4} {
		w, _ := doJSON(t, r, http.MethodPost,
			fmt.Sprintf("/admin/restaurants/%d/tables", restaurantID), token,
			map[string]interface{}{
				"table_number": i + 1,
				"capacity":     capacity,
			})
		if w.Code != http.StatusCreated {
			t.Fatalf("createTablesTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
		}
	}
}

func checkCalendarTest(t *testing.T, r *gin.Engine, restaurantID uint, date string) {
	w, resp := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/restaurants/%d/availability?date=%s", restaurantID, date), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("checkCalendarTest: expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var calendar struct {
		TotalCapacity int `json:"total_capacity"`
		Slots         []struct {
			Time string `json:"time"`
		} `json:"slots"`
	}
	json.Unmarshal(resp.Data, &calendar)
	if calendar.TotalCapacity != 6 {
		t.Fatalf("checkCalendarTest: expected total capacity 6, got %d", calendar.TotalCapacity)
	}
	if len(calendar.Slots) != 24 {
		t.Fatalf("checkCalendarTest: expected 24 slots, got %d", len(calendar.Slots))
	}
}

func createReservationTest(t *testing.T, r *gin.Engine, restaurantID uint, date string) uint {
	w, resp := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/restaurants/%d/reservations", restaurantID), "",
		map[string]interface{}{
			"customer_name":  "Andi Wijaya",
			"customer_phone": "0812000111",
			"date":           date,
			"time":           "19:00",
			"party_size":     3,
		})
	if w.Code != http.StatusCreated {
		t.Fatalf("createReservationTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var reservation models.Reservation
	json.Unmarshal(resp.Data, &reservation)
	if reservation.Status != models.ReservationStatusPending {
		t.Fatalf("createReservationTest: expected status pending, got %s", reservation.Status)
	}
	return reservation.ID
}

func runStateMachineTest(t *testing.T, r *gin.Engine, token string, reservationID uint) {
	patch := func(status string) *httptest.ResponseRecorder {
		w, _ := doJSON(t, r, http.MethodPatch,
			fmt.Sprintf("/admin/reservations/%d", reservationID), token,
			map[string]string{"status": status})
		return w
	}

	// Seated dari pending dilarang
	if w := patch(models.ReservationStatusSeated); w.Code != http.StatusConflict {
		t.Fatalf("runStateMachineTest: expected 409 for pending->seated, got %d", w.Code)
	}

	for _, status := range []string{
		models.ReservationStatusConfirmed,
		models.ReservationStatusSeated,
		models.ReservationStatusCompleted,
	} {
		if w := patch(status); w.Code != http.StatusOK {
			t.Fatalf("runStateMachineTest: transition to %s failed, code=%d, body=%s",
				status, w.Code, w.Body.String())
		}
	}
}

func blockAndRetryTest(t *testing.T, r *gin.Engine, token string, restaurantID uint, date string) {
	w, _ := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/admin/restaurants/%d/blocks", restaurantID), token,
		map[string]interface{}{
			"date":       date,
			"start_time": "12:00",
			"end_time":   "14:00",
			"reason":     "private event",
		})
	if w.Code != http.StatusCreated {
		t.Fatalf("blockAndRetryTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	// Slot terblokir -> cek availability menunjukkan penuh
	w, resp := doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/restaurants/%d/availability/slot?date=%s&time=13:00", restaurantID, date), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("blockAndRetryTest: slot check failed, code=%d", w.Code)
	}
	var slot struct {
		Available bool `json:"available"`
	}
	json.Unmarshal(resp.Data, &slot)
	if slot.Available {
		t.Fatalf("blockAndRetryTest: expected blocked slot to be unavailable")
	}
}

func waitlistFlowTest(t *testing.T, r *gin.Engine, token string, restaurantID uint, date string) {
	w, resp := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/restaurants/%d/waitlist", restaurantID), "",
		map[string]interface{}{
			"date":          date,
			"time":          "19:00",
			"party_size":    4,
			"customer_name": "Budi Santoso",
		})
	if w.Code != http.StatusCreated {
		t.Fatalf("waitlistFlowTest: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var entry models.WaitlistEntry
	json.Unmarshal(resp.Data, &entry)
	if entry.Priority != 1 {
		t.Fatalf("waitlistFlowTest: expected priority 1, got %d", entry.Priority)
	}

	w, resp = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/admin/waitlist/%d/notify", entry.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("waitlistFlowTest: notify failed, code=%d, body=%s", w.Code, w.Body.String())
	}
	json.Unmarshal(resp.Data, &entry)
	if !entry.Notified {
		t.Fatalf("waitlistFlowTest: expected entry notified")
	}
}
