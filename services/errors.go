package services

import "errors"

// Error domain engine. Semua dikembalikan sebagai typed error, bukan
// panic/exception, supaya controller bisa memetakan ke HTTP status.
var (
	// ErrNotFound -> id restoran/meja/reservasi/blok tidak dikenal
	ErrNotFound = errors.New("record not found")

	// ErrNoAvailability -> tidak ada meja yang muat; caller boleh tawarkan waitlist
	ErrNoAvailability = errors.New("no table available for the requested slot")

	// ErrInvalidStateTransition -> perpindahan status reservasi tidak diizinkan
	ErrInvalidStateTransition = errors.New("invalid reservation state transition")

	// ErrInvalidRange -> end time blok harus setelah start time
	ErrInvalidRange = errors.New("block end time must be after start time")

	// ErrPaymentDeclined -> diteruskan dari payment gateway, tidak di-retry engine
	ErrPaymentDeclined = errors.New("payment declined")

	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrPastDate         = errors.New("reservation date is in the past")
	ErrInvalidPartySize = errors.New("party size must be greater than zero")
	ErrTableTooSmall    = errors.New("table capacity is less than party size")
)
