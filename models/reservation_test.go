package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStateMachine(t *testing.T) {
	r := Reservation{Status: ReservationStatusPending}

	assert.True(t, r.CanTransitionTo(ReservationStatusConfirmed))
	assert.True(t, r.CanTransitionTo(ReservationStatusCancelled))
	assert.False(t, r.CanTransitionTo(ReservationStatusSeated))
	assert.False(t, r.CanTransitionTo(ReservationStatusCompleted))

	r.Status = ReservationStatusConfirmed
	assert.True(t, r.CanTransitionTo(ReservationStatusSeated))
	assert.True(t, r.CanTransitionTo(ReservationStatusNoShow))
	assert.True(t, r.CanTransitionTo(ReservationStatusCancelled))
	assert.False(t, r.CanTransitionTo(ReservationStatusCompleted))
	assert.False(t, r.CanTransitionTo(ReservationStatusPending))

	r.Status = ReservationStatusSeated
	assert.True(t, r.CanTransitionTo(ReservationStatusCompleted))
	assert.False(t, r.CanTransitionTo(ReservationStatusCancelled))
}

func TestReservationTerminalStates(t *testing.T) {
	for _, status := range []string{
		ReservationStatusCompleted,
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	} {
		r := Reservation{Status: status}
		assert.True(t, r.IsTerminal(), "status %s", status)
		assert.False(t, r.CanTransitionTo(ReservationStatusConfirmed), "status %s", status)
	}

	active := Reservation{Status: ReservationStatusPending}
	assert.False(t, active.IsTerminal())
}

func TestIsValidReservationStatus(t *testing.T) {
	assert.True(t, IsValidReservationStatus("pending"))
	assert.True(t, IsValidReservationStatus("no-show"))
	assert.False(t, IsValidReservationStatus("archived"))
	assert.False(t, IsValidReservationStatus(""))
}
