package booking

import (
	"context"
	"time"
)

// ConflictScanner is the read side of the store used for availability
// checks. excludeReservationID omits one reservation from the scan
// (the update path checking a reservation against everything but
// itself); pass 0 to scan all.
type ConflictScanner interface {
	HasConflictingReservation(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeReservationID uint64) (bool, error)
}

// Overlaps reports whether the stay [a1,a2] conflicts with the stay
// [b1,b2] under the inclusive-bounds rule: conflict iff a1 <= b2 and
// a2 >= b1. A checkout on day X therefore conflicts with a check-in
// on day X; same-day turnover is deliberately not modeled as
// available.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return !Day(a1).After(Day(b2)) && !Day(a2).Before(Day(b1))
}

// AvailabilityChecker answers whether a room can be booked for a date
// range. It is read-only against the store; the authoritative re-check
// happens inside the store's save transaction.
type AvailabilityChecker struct {
	store ConflictScanner
}

// NewAvailabilityChecker returns a checker backed by the given store.
func NewAvailabilityChecker(store ConflictScanner) *AvailabilityChecker {
	return &AvailabilityChecker{store: store}
}

// IsAvailable reports whether no active (non-cancelled,
// non-checked-out) reservation overlaps the given range on the room.
// excludeReservationID is ignored when 0.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeReservationID uint64) (bool, error) {
	conflict, err := c.store.HasConflictingReservation(ctx, roomID, checkIn, checkOut, excludeReservationID)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}
