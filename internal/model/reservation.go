package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus enumerates the lifecycle states of a reservation.
// Transitions between states happen exclusively through the guard
// functions in the booking package; nothing else writes the status
// field.
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "PENDING"
	StatusCheckedIn  ReservationStatus = "CHECKED_IN"
	StatusCheckedOut ReservationStatus = "CHECKED_OUT"
	StatusCancelled  ReservationStatus = "CANCELLED"
)

// ParseReservationStatus validates a raw status string (from a request
// body or a database row) and returns the typed value.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusPending, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return ReservationStatus(s), nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// Active reports whether the reservation counts toward availability
// conflicts: PENDING and CHECKED_IN block their rooms, CANCELLED and
// CHECKED_OUT free them.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusCheckedIn
}

// Terminal reports whether no further transition is permitted.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// Reservation records a guest's booking of one or more rooms for a
// date range. CheckIn/CheckOut are calendar dates (UTC midnight); the
// range is inclusive on both ends for conflict purposes, so a
// reservation checking out on a given day still blocks arrivals on
// that same day.
//
// Fields:
//  ID          – primary key identifier.
//  GuestID     – owning guest.
//  CheckIn     – arrival date.
//  CheckOut    – departure date, strictly after CheckIn.
//  Status      – lifecycle state, see ReservationStatus.
//  TotalAmount – Σ over linked rooms of nightlyRate × nights.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last modification timestamp.
//  Rooms       – hydrated room set, ordered by room number.
type Reservation struct {
	ID          uint64            `json:"id"`           // reservations.id
	GuestID     uint64            `json:"guest_id"`     // reservations.guest_id
	CheckIn     time.Time         `json:"check_in"`     // reservations.check_in DATE
	CheckOut    time.Time         `json:"check_out"`    // reservations.check_out DATE
	Status      ReservationStatus `json:"status"`       // reservations.status
	TotalAmount decimal.Decimal   `json:"total_amount"` // reservations.total_amount DECIMAL(10,2)
	CreatedAt   time.Time         `json:"created_at"`   // reservations.created_at
	UpdatedAt   time.Time         `json:"updated_at"`   // reservations.updated_at
	Rooms       []Room            `json:"rooms"`        // joined via reservation_rooms
}

// RoomIDs returns the ids of the linked rooms in their stored order.
func (r *Reservation) RoomIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		ids = append(ids, room.ID)
	}
	return ids
}

// ReservationRoom links a reservation to a single room. Rows are owned
// by their reservation: they are created and destroyed only through
// reservation lifecycle operations, never independently.
type ReservationRoom struct {
	ID            uint64    `json:"id"`             // reservation_rooms.id
	ReservationID uint64    `json:"reservation_id"` // reservation_rooms.reservation_id
	RoomID        uint64    `json:"room_id"`        // reservation_rooms.room_id
	CreatedAt     time.Time `json:"created_at"`     // reservation_rooms.created_at
}
