package models

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusSeated    = "seated"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusNoShow    = "no-show"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// reservationTransitions -> state machine reservasi.
// pending -> confirmed|cancelled, confirmed -> seated|no-show|cancelled,
// seated -> completed. Status lain bersifat terminal.
var reservationTransitions = map[string][]string{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusSeated, ReservationStatusNoShow, ReservationStatusCancelled},
	ReservationStatusSeated:    {ReservationStatusCompleted},
}

type Reservation struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Code         string `gorm:"type:varchar(36);uniqueIndex;not null" json:"code"`
	RestaurantID uint   `gorm:"index;not null" json:"restaurant_id"`
	TableID      uint   `gorm:"index;not null" json:"table_id"`
	CustomerID   *uint  `gorm:"index" json:"customer_id,omitempty"`

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(50)" json:"customer_phone"`

	Date      string `gorm:"type:varchar(10);index;not null" json:"date"`
	Time      string `gorm:"type:varchar(8);not null" json:"time"`
	Duration  int    `gorm:"not null;default:120" json:"duration"`
	PartySize int    `gorm:"not null" json:"party_size"`

	Status          string  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SpecialRequests *string `gorm:"type:text" json:"special_requests,omitempty"`

	PaymentRef    *string  `gorm:"type:varchar(100)" json:"payment_ref,omitempty"`
	PaymentAmount *float64 `gorm:"type:decimal(10,2)" json:"payment_amount,omitempty"`
	PaymentStatus *string  `gorm:"type:varchar(20)" json:"payment_status,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// CanTransitionTo mengecek apakah perpindahan status diizinkan state machine
func (r *Reservation) CanTransitionTo(next string) bool {
	for _, allowed := range reservationTransitions[r.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal -> completed/cancelled/no-show tidak bisa berubah lagi
func (r *Reservation) IsTerminal() bool {
	return len(reservationTransitions[r.Status]) == 0
}

// IsValidReservationStatus memvalidasi status reservasi yang dikirim client
func IsValidReservationStatus(status string) bool {
	switch status {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusSeated,
		ReservationStatusCompleted, ReservationStatusCancelled, ReservationStatusNoShow:
		return true
	}
	return false
}
