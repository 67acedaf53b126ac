// Package booking implements the reservation engine: date-range
// validation, room availability checks, pricing, the reservation
// status machine and the orchestrating service. It consumes storage
// through the interfaces declared in service.go and never talks to a
// database directly.
package booking

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the engine's failure taxonomy. Handlers
// match on these with errors.Is to choose an HTTP status: not-found
// errors map to 404, validation errors to 400 and conflict errors to
// 409. Anything else is an internal failure and must not leak detail
// to callers.
var (
	ErrGuestNotFound       = errors.New("guest not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")

	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrPastCheckIn      = errors.New("check-in date must not be in the past")

	ErrRoomNotAvailable = errors.New("room not available for the requested dates")
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
	ErrAlreadyCheckedIn = errors.New("reservation is already checked in")
	ErrCannotModify     = errors.New("reservation cannot be modified in its current status")
)

// RoomUnavailableError names the room that caused an availability
// conflict so adapters can render a precise message. It unwraps to
// ErrRoomNotAvailable.
type RoomUnavailableError struct {
	RoomID     uint64
	RoomNumber string
}

func (e *RoomUnavailableError) Error() string {
	if e.RoomNumber != "" {
		return fmt.Sprintf("room %s (id %d) not available for the requested dates", e.RoomNumber, e.RoomID)
	}
	return fmt.Sprintf("room %d not available for the requested dates", e.RoomID)
}

func (e *RoomUnavailableError) Unwrap() error { return ErrRoomNotAvailable }
