package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimeFormat dikembalikan jika string jam tidak bisa diparse
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ToMinutes mengubah "HH:MM" (24 jam) atau "H:MM AM/PM" menjadi menit sejak tengah malam.
// Jam tutup "24:00" diperbolehkan (1440 menit).
func ToMinutes(clock string) (int, error) {
	s := strings.TrimSpace(clock)
	if s == "" {
		return 0, ErrInvalidTimeFormat
	}

	meridiem := ""
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		meridiem = upper[len(upper)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidTimeFormat
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	if minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeFormat
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, ErrInvalidTimeFormat
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, ErrInvalidTimeFormat
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 24 {
			return 0, ErrInvalidTimeFormat
		}
		if hour == 24 && minute != 0 {
			return 0, ErrInvalidTimeFormat
		}
	}

	return hour*60 + minute, nil
}

// MinutesToClock mengubah menit sejak tengah malam kembali ke format "HH:MM"
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
