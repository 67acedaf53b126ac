package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/hotel-backoffice/internal/model"
)

// GuestDirectory resolves guests by the subject id the external
// identity provider issued for them.
type GuestDirectory interface {
	FindGuestByExternalID(ctx context.Context, externalID string) (*model.Guest, error)
}

// RoomDirectory resolves rooms with their type (and so their nightly
// rate) hydrated.
type RoomDirectory interface {
	FindRoomByID(ctx context.Context, id uint64) (*model.Room, error)
}

// ReservationStore is the persistence boundary of the engine.
// SaveReservation must write the reservation and its full room-link
// set as one atomic unit: no reader may ever observe a partial room
// set. It must also guarantee that the conflict scan and the write
// cannot race another writer on the same rooms — implementations
// serialize per room (locking rooms in ascending id order) and re-run
// the conflict scan inside the same transaction, surfacing a losing
// write as a *RoomUnavailableError exactly like the pre-check would.
type ReservationStore interface {
	ConflictScanner
	SaveReservation(ctx context.Context, res *model.Reservation, rooms []model.Room) (*model.Reservation, error)
	DeleteReservation(ctx context.Context, id uint64) error
	FindReservationByID(ctx context.Context, id uint64) (*model.Reservation, error)
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	ListReservationsByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error)
	ListReservationsByDateRange(ctx context.Context, start, end time.Time) ([]model.Reservation, error)
}

// Service is the reservation orchestrator. It is the sole writer path
// for reservation state: every mutation — creation, room-set changes
// and status transitions — flows through it, so the invariants (no
// double booking, total = Σ rate × nights, legal status transitions)
// hold as long as nothing bypasses it.
type Service struct {
	guests    GuestDirectory
	rooms     RoomDirectory
	store     ReservationStore
	available *AvailabilityChecker
	now       Clock
}

// NewService wires the orchestrator. now may be nil, in which case
// time.Now is used.
func NewService(guests GuestDirectory, rooms RoomDirectory, store ReservationStore, now Clock) *Service {
	if guests == nil || rooms == nil || store == nil {
		panic("nil dependency passed to booking.NewService")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		guests:    guests,
		rooms:     rooms,
		store:     store,
		available: NewAvailabilityChecker(store),
		now:       now,
	}
}

// Availability exposes the read-only checker, used by the quote
// endpoint.
func (s *Service) Availability() *AvailabilityChecker { return s.available }

// CreateReservation books a set of rooms for a guest. The whole
// operation is atomic: either the reservation and all of its room
// links become durable together, or nothing does. initialStatus may
// be empty, defaulting to PENDING.
func (s *Service) CreateReservation(ctx context.Context, guestExternalID string, roomIDs []uint64, checkIn, checkOut time.Time, initialStatus model.ReservationStatus) (*model.Reservation, error) {
	if err := ValidateRange(checkIn, checkOut, s.now()); err != nil {
		return nil, err
	}
	guest, err := s.guests.FindGuestByExternalID(ctx, guestExternalID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.resolveAvailableRooms(ctx, roomIDs, checkIn, checkOut, 0)
	if err != nil {
		return nil, err
	}
	status := initialStatus
	if status == "" {
		status = model.StatusPending
	}
	res := &model.Reservation{
		GuestID:     guest.ID,
		CheckIn:     Day(checkIn),
		CheckOut:    Day(checkOut),
		Status:      status,
		TotalAmount: TotalFor(rooms, checkIn, checkOut),
	}
	return s.store.SaveReservation(ctx, res, rooms)
}

// UpdateReservation replaces a reservation's room set and dates in
// one atomic step, recomputing the total. Dates are re-validated only
// when they actually change, so an old reservation can still have its
// room set edited after its check-in date has passed. Availability is
// checked excluding the reservation itself.
func (s *Service) UpdateReservation(ctx context.Context, id uint64, roomIDs []uint64, checkIn, checkOut time.Time, status model.ReservationStatus) (*model.Reservation, error) {
	res, err := s.store.FindReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureMutable(res); err != nil {
		return nil, err
	}
	if !Day(checkIn).Equal(res.CheckIn) || !Day(checkOut).Equal(res.CheckOut) {
		if err := ValidateRange(checkIn, checkOut, s.now()); err != nil {
			return nil, err
		}
	}
	rooms, err := s.resolveAvailableRooms(ctx, roomIDs, checkIn, checkOut, id)
	if err != nil {
		return nil, err
	}
	res.CheckIn = Day(checkIn)
	res.CheckOut = Day(checkOut)
	if status != "" {
		res.Status = status
	}
	res.TotalAmount = TotalFor(rooms, checkIn, checkOut)
	return s.store.SaveReservation(ctx, res, rooms)
}

// AddRoomToReservation links one more room to an existing
// reservation, re-checking availability (excluding the reservation
// itself) and recomputing the total. Adding a room that is already
// linked is a no-op returning the current state.
func (s *Service) AddRoomToReservation(ctx context.Context, id, roomID uint64) (*model.Reservation, error) {
	res, err := s.store.FindReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureMutable(res); err != nil {
		return nil, err
	}
	for i := range res.Rooms {
		if res.Rooms[i].ID == roomID {
			return res, nil
		}
	}
	room, err := s.rooms.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	ok, err := s.available.IsAvailable(ctx, roomID, res.CheckIn, res.CheckOut, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &RoomUnavailableError{RoomID: room.ID, RoomNumber: room.RoomNumber}
	}
	rooms := append(append([]model.Room(nil), res.Rooms...), *room)
	res.TotalAmount = TotalFor(rooms, res.CheckIn, res.CheckOut)
	return s.store.SaveReservation(ctx, res, rooms)
}

// RemoveRoomFromReservation unlinks a room and recomputes the total
// over whatever remains. Removing a room that is not linked is a
// no-op. The remaining set may be empty: a PENDING reservation with
// zero rooms and a zero total is left standing rather than
// auto-cancelled, which mirrors the historical behaviour callers
// depend on.
func (s *Service) RemoveRoomFromReservation(ctx context.Context, id, roomID uint64) (*model.Reservation, error) {
	res, err := s.store.FindReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureMutable(res); err != nil {
		return nil, err
	}
	remaining := make([]model.Room, 0, len(res.Rooms))
	for i := range res.Rooms {
		if res.Rooms[i].ID != roomID {
			remaining = append(remaining, res.Rooms[i])
		}
	}
	if len(remaining) == len(res.Rooms) {
		return res, nil
	}
	res.TotalAmount = TotalFor(remaining, res.CheckIn, res.CheckOut)
	return s.store.SaveReservation(ctx, res, remaining)
}

// CheckIn transitions a reservation to CHECKED_IN.
func (s *Service) CheckIn(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.transition(ctx, id, TransitionCheckIn)
}

// CheckOut transitions a reservation to CHECKED_OUT, freeing its
// rooms for future bookings.
func (s *Service) CheckOut(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.transition(ctx, id, TransitionCheckOut)
}

// CancelReservation transitions a PENDING reservation to CANCELLED.
func (s *Service) CancelReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.transition(ctx, id, TransitionCancel)
}

// transition loads, guards and persists a status change. The store
// applies status and updated timestamp atomically, so a failed write
// leaves the previous state intact.
func (s *Service) transition(ctx context.Context, id uint64, guard func(*model.Reservation) error) (*model.Reservation, error) {
	res, err := s.store.FindReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := guard(res); err != nil {
		return nil, err
	}
	return s.store.SaveReservation(ctx, res, res.Rooms)
}

// DeleteReservation removes a cancelled reservation together with all
// of its room links.
func (s *Service) DeleteReservation(ctx context.Context, id uint64) error {
	res, err := s.store.FindReservationByID(ctx, id)
	if err != nil {
		return err
	}
	if err := EnsureDeletable(res); err != nil {
		return err
	}
	return s.store.DeleteReservation(ctx, id)
}

// GetReservationByID returns one fully hydrated reservation.
func (s *Service) GetReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.store.FindReservationByID(ctx, id)
}

// GetAllReservations lists every reservation, newest first.
func (s *Service) GetAllReservations(ctx context.Context) ([]model.Reservation, error) {
	return s.store.ListReservations(ctx)
}

// GetReservationsByGuest lists a guest's reservations, newest first.
func (s *Service) GetReservationsByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	return s.store.ListReservationsByGuest(ctx, guestID)
}

// GetReservationsByDateRange lists reservations whose check-in date
// falls inside [start, end].
func (s *Service) GetReservationsByDateRange(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	return s.store.ListReservationsByDateRange(ctx, Day(start), Day(end))
}

// resolveAvailableRooms looks up every requested room and verifies it
// is free for the stay, failing fast on the first missing or
// conflicting room. The store re-checks conflicts under lock at save
// time; this pre-check exists to give callers a precise error before
// any write is attempted.
func (s *Service) resolveAvailableRooms(ctx context.Context, roomIDs []uint64, checkIn, checkOut time.Time, excludeReservationID uint64) ([]model.Room, error) {
	rooms := make([]model.Room, 0, len(roomIDs))
	seen := make(map[uint64]struct{}, len(roomIDs))
	for _, roomID := range roomIDs {
		if _, dup := seen[roomID]; dup {
			continue
		}
		seen[roomID] = struct{}{}
		room, err := s.rooms.FindRoomByID(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("room %d: %w", roomID, err)
		}
		ok, err := s.available.IsAvailable(ctx, roomID, checkIn, checkOut, excludeReservationID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &RoomUnavailableError{RoomID: room.ID, RoomNumber: room.RoomNumber}
		}
		rooms = append(rooms, *room)
	}
	return rooms, nil
}
