package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

const (
	// SlotGranularity -> lebar slot kalender dalam menit
	SlotGranularity = 30
	// DefaultDiningDuration -> asumsi lama makan satu reservasi dalam menit
	DefaultDiningDuration = 120

	// Fallback jam buka jika restoran tidak punya entri untuk hari itu
	defaultOpenTime  = "11:00"
	defaultCloseTime = "23:00"
)

// TimeSlot adalah hasil cek ketersediaan untuk satu slot waktu
type TimeSlot struct {
	Time          string `json:"time"`
	Available     bool   `json:"available"`
	TableIDs      []uint `json:"table_ids"`
	Capacity      int    `json:"capacity"`
	WaitlistCount int    `json:"waitlist_count"`
}

// AvailabilityCalendar merangkum seluruh slot satu hari.
// BookedCapacity dihitung sebagai jumlah shortfall per slot
// (total kapasitas dikurangi kapasitas yang tersedia pada slot itu),
// bukan okupansi meja-menit yang sebenarnya. Dashboard lama bergantung
// pada angka ini, jadi jangan diganti diam-diam.
type AvailabilityCalendar struct {
	Date              string     `json:"date"`
	Slots             []TimeSlot `json:"slots"`
	TotalCapacity     int        `json:"total_capacity"`
	BookedCapacity    int        `json:"booked_capacity"`
	AvailableCapacity int        `json:"available_capacity"`
}

// AvailabilityService menghitung ketersediaan slot, mencari meja best-fit,
// dan mengelola blok waktu + waitlist. Semua state per restoran dijaga
// RestaurantLocks yang sama dengan BookingService.
type AvailabilityService struct {
	DB    *gorm.DB
	locks *RestaurantLocks
}

func NewAvailabilityService(db *gorm.DB, locks *RestaurantLocks) *AvailabilityService {
	return &AvailabilityService{DB: db, locks: locks}
}

// GenerateTimeSlots menghasilkan slot kelipatan 30 menit dari jam buka
// sampai jam tutup (eksklusif) untuk tanggal tertentu. Entri hari dengan
// Closed=true berarti restoran libur -> tidak ada slot. Slot menjelang
// tutup tetap dibuat walau durasi makan melewati jam tutup; grid penuh
// dipertahankan untuk kalender dan overlap check yang jadi pagarnya.
func (s *AvailabilityService) GenerateTimeSlots(restaurantID uint, date string) ([]string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	openClock, closeClock := defaultOpenTime, defaultCloseTime

	var hours models.OpeningHour
	err = s.DB.Where("restaurant_id = ? AND day_of_week = ?", restaurantID, int(day.Weekday())).
		First(&hours).Error
	if err == nil {
		if hours.Closed {
			return []string{}, nil
		}
		openClock, closeClock = hours.OpenTime, hours.CloseTime
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	openMin, err := utils.ToMinutes(openClock)
	if err != nil {
		return nil, err
	}
	closeMin, err := utils.ToMinutes(closeClock)
	if err != nil {
		return nil, err
	}

	var slots []string
	for minute := openMin; minute < closeMin; minute += SlotGranularity {
		slots = append(slots, utils.MinutesToClock(minute))
	}
	return slots, nil
}

// IsTableBooked mengecek apakah sebuah meja sudah terpakai pada slot
// tertentu. Meja maintenance selalu dianggap tidak tersedia. Dua interval
// bentrok jika candidateStart < existingEnd && candidateEnd > existingStart.
func (s *AvailabilityService) IsTableBooked(table *models.Table, date, clock string) (bool, error) {
	if table.Status == models.TableStatusMaintenance {
		return true, nil
	}

	start, err := utils.ToMinutes(clock)
	if err != nil {
		return false, err
	}
	end := start + DefaultDiningDuration

	var reservations []models.Reservation
	if err := s.DB.Where("table_id = ? AND date = ? AND status <> ?",
		table.ID, date, models.ReservationStatusCancelled).
		Find(&reservations).Error; err != nil {
		return false, err
	}

	for _, reservation := range reservations {
		existingStart, err := utils.ToMinutes(reservation.Time)
		if err != nil {
			continue
		}
		existingEnd := existingStart + reservation.Duration

		if start < existingEnd && end > existingStart {
			return true, nil
		}
	}
	return false, nil
}

// IsBlocked mengecek blok manual pada slot. tableID nil berarti cek level
// restoran (hanya blok seluruh-restoran yang dihitung); tableID terisi
// berarti blok seluruh-restoran maupun blok yang mencantumkan meja itu
// sama-sama menghitung.
func (s *AvailabilityService) IsBlocked(restaurantID uint, date, clock string, tableID *uint) (bool, error) {
	minute, err := utils.ToMinutes(clock)
	if err != nil {
		return false, err
	}

	var blocks []models.BlockedSlot
	if err := s.DB.Where("restaurant_id = ? AND date = ?", restaurantID, date).
		Find(&blocks).Error; err != nil {
		return false, err
	}

	for _, block := range blocks {
		blockStart, err := utils.ToMinutes(block.StartTime)
		if err != nil {
			continue
		}
		blockEnd, err := utils.ToMinutes(block.EndTime)
		if err != nil {
			continue
		}
		if minute < blockStart || minute >= blockEnd {
			continue
		}

		if tableID == nil {
			if block.IsRestaurantWide() {
				return true, nil
			}
			continue
		}
		if block.AppliesToTable(*tableID) {
			return true, nil
		}
	}
	return false, nil
}

// GetWaitlistCount menghitung antrean untuk satu slot
func (s *AvailabilityService) GetWaitlistCount(restaurantID uint, date, clock string) (int, error) {
	var count int64
	err := s.DB.Model(&models.WaitlistEntry{}).
		Where("restaurant_id = ? AND date = ? AND time = ?", restaurantID, date, clock).
		Count(&count).Error
	return int(count), err
}

// CheckSlotAvailability -> status satu slot: meja kandidat, total kapasitas,
// dan panjang waitlist. Blok seluruh-restoran membuat slot langsung penuh.
func (s *AvailabilityService) CheckSlotAvailability(restaurantID uint, date, clock string) (*TimeSlot, error) {
	lock := s.locks.Get(restaurantID)
	lock.RLock()
	defer lock.RUnlock()

	return s.checkSlot(restaurantID, date, clock)
}

func (s *AvailabilityService) checkSlot(restaurantID uint, date, clock string) (*TimeSlot, error) {
	var tables []models.Table
	if err := s.DB.Where("restaurant_id = ?", restaurantID).Find(&tables).Error; err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		var count int64
		if err := s.DB.Model(&models.Restaurant{}).Where("id = ?", restaurantID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}
	}

	waitlistCount, err := s.GetWaitlistCount(restaurantID, date, clock)
	if err != nil {
		return nil, err
	}

	blocked, err := s.IsBlocked(restaurantID, date, clock, nil)
	if err != nil {
		return nil, err
	}
	if blocked {
		return &TimeSlot{
			Time:          clock,
			Available:     false,
			TableIDs:      []uint{},
			Capacity:      0,
			WaitlistCount: waitlistCount,
		}, nil
	}

	var (
		tableIDs []uint
		capacity int
	)
	for i := range tables {
		table := &tables[i]
		if table.Status == models.TableStatusMaintenance {
			continue
		}

		booked, err := s.IsTableBooked(table, date, clock)
		if err != nil {
			return nil, err
		}
		if booked {
			continue
		}

		tableBlocked, err := s.IsBlocked(restaurantID, date, clock, &table.ID)
		if err != nil {
			return nil, err
		}
		if tableBlocked {
			continue
		}

		tableIDs = append(tableIDs, table.ID)
		capacity += table.Capacity
	}

	if tableIDs == nil {
		tableIDs = []uint{}
	}

	return &TimeSlot{
		Time:          clock,
		Available:     len(tableIDs) > 0,
		TableIDs:      tableIDs,
		Capacity:      capacity,
		WaitlistCount: waitlistCount,
	}, nil
}

// GetAvailabilityCalendar menjalankan cek slot untuk seluruh slot satu hari.
// TotalCapacity dijumlahkan dari semua meja tanpa filter status.
func (s *AvailabilityService) GetAvailabilityCalendar(restaurantID uint, date string) (*AvailabilityCalendar, error) {
	lock := s.locks.Get(restaurantID)
	lock.RLock()
	defer lock.RUnlock()

	var restaurant models.Restaurant
	if err := s.DB.Preload("Tables").First(&restaurant, restaurantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	clocks, err := s.GenerateTimeSlots(restaurantID, date)
	if err != nil {
		return nil, err
	}

	totalCapacity := 0
	for _, table := range restaurant.Tables {
		totalCapacity += table.Capacity
	}

	calendar := &AvailabilityCalendar{
		Date:          date,
		Slots:         make([]TimeSlot, 0, len(clocks)),
		TotalCapacity: totalCapacity,
	}

	booked := 0
	for _, clock := range clocks {
		slot, err := s.checkSlot(restaurantID, date, clock)
		if err != nil {
			return nil, err
		}
		calendar.Slots = append(calendar.Slots, *slot)
		booked += totalCapacity - slot.Capacity
	}

	calendar.BookedCapacity = booked
	calendar.AvailableCapacity = totalCapacity - booked
	return calendar, nil
}

// FindBestTable mencari meja terkecil yang masih muat untuk party size
// (meminimalkan kursi terbuang). Seri kapasitas dimenangkan nomor meja
// terendah. Mengembalikan nil tanpa error kalau tidak ada yang muat;
// caller boleh menawarkan waitlist.
func (s *AvailabilityService) FindBestTable(restaurantID uint, date, clock string, partySize int) (*models.Table, error) {
	lock := s.locks.Get(restaurantID)
	lock.RLock()
	defer lock.RUnlock()

	return s.findBestTable(restaurantID, date, clock, partySize)
}

func (s *AvailabilityService) findBestTable(restaurantID uint, date, clock string, partySize int) (*models.Table, error) {
	var tables []models.Table
	if err := s.DB.Where("restaurant_id = ? AND capacity >= ? AND status <> ?",
		restaurantID, partySize, models.TableStatusMaintenance).
		Order("capacity asc, table_number asc").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	for i := range tables {
		booked, err := s.IsTableBooked(&tables[i], date, clock)
		if err != nil {
			return nil, err
		}
		if !booked {
			return &tables[i], nil
		}
	}
	return nil, nil
}

// BlockTimeSlot membuat blok manual. Gagal dengan ErrInvalidRange jika
// start >= end.
func (s *AvailabilityService) BlockTimeSlot(restaurantID uint, date, startTime, endTime, reason string, tableIDs []uint, createdBy uint) (*models.BlockedSlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	startMin, err := utils.ToMinutes(startTime)
	if err != nil {
		return nil, err
	}
	endMin, err := utils.ToMinutes(endTime)
	if err != nil {
		return nil, err
	}
	if startMin >= endMin {
		return nil, ErrInvalidRange
	}

	lock := s.locks.Get(restaurantID)
	lock.Lock()
	defer lock.Unlock()

	var count int64
	if err := s.DB.Model(&models.Restaurant{}).Where("id = ?", restaurantID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	block := models.BlockedSlot{
		Code:         uuid.New().String(),
		RestaurantID: restaurantID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
		Reason:       reason,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}
	if err := block.SetTableIDList(tableIDs); err != nil {
		return nil, err
	}

	if err := s.DB.Create(&block).Error; err != nil {
		return nil, err
	}

	events.BroadcastBlockCreate(block)
	events.PublishAsync("block", "created", block.Code, block)

	utils.InfoLogger.Printf("Blocked slot %s %s-%s for restaurant %d (%s)",
		block.Date, block.StartTime, block.EndTime, restaurantID, reason)
	return &block, nil
}

// RemoveBlockedSlot menghapus blok manual
func (s *AvailabilityService) RemoveBlockedSlot(blockID uint) error {
	var block models.BlockedSlot
	if err := s.DB.First(&block, blockID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	lock := s.locks.Get(block.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.DB.Delete(&block).Error; err != nil {
		return err
	}

	events.BroadcastBlockDelete(block.ID)
	return nil
}

// GetBlockedSlots -> daftar blok satu restoran, opsional difilter tanggal.
// Blok lampau ikut terbawa kalau tanpa filter (disimpan untuk audit).
func (s *AvailabilityService) GetBlockedSlots(restaurantID uint, date string) ([]models.BlockedSlot, error) {
	query := s.DB.Where("restaurant_id = ?", restaurantID)
	if date != "" {
		query = query.Where("date = ?", date)
	}

	var blocks []models.BlockedSlot
	if err := query.Order("date asc, start_time asc").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// AddToWaitlist menambah entri antrean. Priority = MAX(priority)+1 per
// restoran sehingga tetap monotonic walau ada entri lama yang dihapus.
func (s *AvailabilityService) AddToWaitlist(entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if entry.PartySize <= 0 {
		return nil, ErrInvalidPartySize
	}
	if _, err := time.Parse("2006-01-02", entry.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := utils.ToMinutes(entry.Time); err != nil {
		return nil, err
	}

	lock := s.locks.Get(entry.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	var maxPriority int
	row := s.DB.Model(&models.WaitlistEntry{}).
		Where("restaurant_id = ?", entry.RestaurantID).
		Select("COALESCE(MAX(priority), 0)").Row()
	if err := row.Scan(&maxPriority); err != nil {
		return nil, err
	}

	entry.Code = uuid.New().String()
	entry.Priority = maxPriority + 1
	entry.Notified = false
	entry.CreatedAt = time.Now()

	if err := s.DB.Create(entry).Error; err != nil {
		return nil, err
	}

	events.BroadcastWaitlistAdd(*entry)
	events.PublishAsync("waitlist", "created", entry.Code, entry)

	utils.InfoLogger.Printf("Waitlist entry %s added for restaurant %d (%s %s, priority=%d)",
		entry.Code, entry.RestaurantID, entry.Date, entry.Time, entry.Priority)
	return entry, nil
}

// GetWaitlistEntries -> antrean satu restoran urut prioritas
func (s *AvailabilityService) GetWaitlistEntries(restaurantID uint) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	if err := s.DB.Where("restaurant_id = ?", restaurantID).
		Order("priority asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// NotifyWaitlistEntry menandai entri sudah dipanggil dan memancarkan event
// notifikasi. Pengiriman sebenarnya dilakukan consumer di luar; panggilan
// kedua pada entri yang sama jadi no-op supaya notified hanya flip sekali.
func (s *AvailabilityService) NotifyWaitlistEntry(entryID uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := s.DB.First(&entry, entryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lock := s.locks.Get(entry.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	// Cek notified harus di dalam lock; dua notify simultan sama-sama lolos
	// kalau flag dibaca sebelum serialize
	if err := s.DB.First(&entry, entryID).Error; err != nil {
		return nil, err
	}
	if entry.Notified {
		return &entry, nil
	}

	entry.Notified = true
	if err := s.DB.Save(&entry).Error; err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Waitlist: table available for %s (party of %d, %s %s)",
		entry.CustomerName, entry.PartySize, entry.Date, entry.Time)
	notification := models.Notification{
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to record waitlist notification: %v", err)
	}

	events.BroadcastWaitlistNotify(entry)
	events.PublishAsync("waitlist", "notified", entry.Code, entry)

	utils.InfoLogger.Printf("Notified waitlist entry %s (%s)", entry.Code, entry.CustomerName)
	return &entry, nil
}
