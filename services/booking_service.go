package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

// BookingRequest adalah input tervalidasi untuk membuat reservasi.
// Konfirmasi pembayaran (PaymentRef) harus sudah diperoleh sebelum masuk
// critical section; engine tidak memanggil gateway di dalam lock.
type BookingRequest struct {
	RestaurantID    uint
	TableID         *uint
	CustomerID      *uint
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            string
	Time            string
	PartySize       int
	Duration        int
	SpecialRequests *string
	PaymentRef      *string
	PaymentAmount   *float64
}

// BookingService mengorkestrasi pembuatan reservasi dan state machine
// statusnya. Satu lock eksklusif per restoran dipegang selama urutan
// cek-ketersediaan + commit supaya dua request simultan tidak sama-sama
// melihat meja kosong lalu sama-sama commit.
type BookingService struct {
	DB           *gorm.DB
	availability *AvailabilityService
	locks        *RestaurantLocks
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService, locks *RestaurantLocks) *BookingService {
	return &BookingService{DB: db, availability: availability, locks: locks}
}

// CreateReservation memvalidasi request, mencari meja best-fit kalau belum
// dipilih, lalu commit reservasi + menandai meja reserved dalam satu
// critical section. Status awal confirmed jika ada referensi pembayaran,
// selain itu pending.
func (s *BookingService) CreateReservation(req BookingRequest) (*models.Reservation, error) {
	if req.PartySize <= 0 {
		return nil, ErrInvalidPartySize
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	if day.Before(today) {
		return nil, ErrPastDate
	}
	if _, err := utils.ToMinutes(req.Time); err != nil {
		return nil, err
	}

	lock := s.locks.Get(req.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var table models.Table
	if req.TableID != nil {
		if err := s.DB.Where("id = ? AND restaurant_id = ?", *req.TableID, req.RestaurantID).
			First(&table).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if table.Capacity < req.PartySize {
			return nil, ErrTableTooSmall
		}
		booked, err := s.availability.IsTableBooked(&table, req.Date, req.Time)
		if err != nil {
			return nil, err
		}
		if booked {
			return nil, ErrNoAvailability
		}
	} else {
		best, err := s.availability.findBestTable(req.RestaurantID, req.Date, req.Time, req.PartySize)
		if err != nil {
			return nil, err
		}
		if best == nil {
			return nil, ErrNoAvailability
		}
		table = *best
	}

	duration := req.Duration
	if duration <= 0 {
		duration = DefaultDiningDuration
	}

	customerID := req.CustomerID
	if customerID == nil && req.CustomerEmail != "" {
		customer, err := s.upsertCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone)
		if err != nil {
			return nil, err
		}
		customerID = &customer.ID
	}

	status := models.ReservationStatusPending
	var paymentStatus *string
	if req.PaymentRef != nil && *req.PaymentRef != "" {
		status = models.ReservationStatusConfirmed
		completed := models.PaymentStatusCompleted
		paymentStatus = &completed
	}

	reservation := models.Reservation{
		Code:            uuid.New().String(),
		RestaurantID:    req.RestaurantID,
		TableID:         table.ID,
		CustomerID:      customerID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Date:            req.Date,
		Time:            req.Time,
		Duration:        duration,
		PartySize:       req.PartySize,
		Status:          status,
		SpecialRequests: req.SpecialRequests,
		PaymentRef:      req.PaymentRef,
		PaymentAmount:   req.PaymentAmount,
		PaymentStatus:   paymentStatus,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}

	// Meja ditandai reserved. Status ini tidak di-revert otomatis saat
	// reservasi dibatalkan; pembebasan meja adalah aksi manual staff.
	table.Status = models.TableStatusReserved
	table.UpdatedAt = time.Now()
	if err := s.DB.Save(&table).Error; err != nil {
		return nil, err
	}

	events.BroadcastReservationCreate(reservation)
	events.BroadcastTableUpdate(table)
	events.PublishAsync("reservation", "created", reservation.Code, reservation)

	utils.InfoLogger.Printf("Reservation %s created: restaurant=%d table=%d %s %s party=%d status=%s",
		reservation.Code, reservation.RestaurantID, reservation.TableID,
		reservation.Date, reservation.Time, reservation.PartySize, reservation.Status)
	return &reservation, nil
}

// upsertCustomer mencari customer berdasarkan email; kalau belum ada dibuat
// baru. Nama dan telepon di-refresh dari booking terakhir.
func (s *BookingService) upsertCustomer(name, email, phone string) (*models.Customer, error) {
	var customer models.Customer
	err := s.DB.Where("email = ?", email).First(&customer).Error
	if err == gorm.ErrRecordNotFound {
		customer = models.Customer{
			Name:      name,
			Email:     email,
			Phone:     phone,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.DB.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	}
	if err != nil {
		return nil, err
	}

	customer.Name = name
	if phone != "" {
		customer.Phone = phone
	}
	customer.UpdatedAt = time.Now()
	if err := s.DB.Save(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateStatus menjalankan state machine reservasi. Perpindahan di luar
// tabel transisi gagal dengan ErrInvalidStateTransition. Status meja tidak
// ikut berubah; keduanya dikelola terpisah.
func (s *BookingService) UpdateStatus(reservationID uint, newStatus string) (*models.Reservation, error) {
	if !models.IsValidReservationStatus(newStatus) {
		return nil, ErrInvalidStateTransition
	}

	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lock := s.locks.Get(reservation.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	// Re-load di dalam lock supaya tidak menimpa transisi yang baru commit
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		return nil, err
	}

	if !reservation.CanTransitionTo(newStatus) {
		return nil, ErrInvalidStateTransition
	}

	reservation.Status = newStatus
	reservation.UpdatedAt = time.Now()
	if err := s.DB.Save(&reservation).Error; err != nil {
		return nil, err
	}

	events.BroadcastReservationUpdate(reservation)
	events.PublishAsync("reservation", "status_changed", reservation.Code, reservation)

	utils.InfoLogger.Printf("Reservation %s status changed to %s", reservation.Code, newStatus)
	return &reservation, nil
}

// UpdateReservationPayment mencatat hasil pembayaran pada reservasi.
// Engine hanya merekam hasil; tidak menghitung harga dan tidak me-retry.
func (s *BookingService) UpdateReservationPayment(reservationID uint, ref string, amount float64, status string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lock := s.locks.Get(reservation.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	// Re-load di dalam lock supaya transisi status yang baru commit tidak
	// tertimpa snapshot lama
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		return nil, err
	}

	reservation.PaymentRef = &ref
	reservation.PaymentAmount = &amount
	reservation.PaymentStatus = &status
	reservation.UpdatedAt = time.Now()

	if err := s.DB.Save(&reservation).Error; err != nil {
		return nil, err
	}

	events.BroadcastReservationUpdate(reservation)
	return &reservation, nil
}

// SetTableStatus mengubah status meja tanpa menyentuh reservasi di atasnya
// (aksi manual staff; status meja dan reservasi dikelola independen).
func (s *BookingService) SetTableStatus(tableID uint, status string) (*models.Table, error) {
	if !models.IsValidTableStatus(status) {
		return nil, ErrInvalidStateTransition
	}

	var table models.Table
	if err := s.DB.First(&table, tableID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lock := s.locks.Get(table.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	// Re-load di dalam lock, sama seperti UpdateStatus
	if err := s.DB.First(&table, tableID).Error; err != nil {
		return nil, err
	}

	table.Status = status
	table.UpdatedAt = time.Now()
	if err := s.DB.Save(&table).Error; err != nil {
		return nil, err
	}

	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, status)
	return &table, nil
}
