package booking

import (
	"fmt"

	"github.com/iliyamo/hotel-backoffice/internal/model"
)

// Status machine: PENDING → CHECKED_IN → CHECKED_OUT, with PENDING →
// CANCELLED as the only other edge. CHECKED_OUT and CANCELLED are
// terminal. Every status write in the system goes through one of the
// functions below; the handlers and the store never assign the field
// directly, which keeps illegal transitions from creeping in through
// ad hoc update paths.

// TransitionCheckIn moves a reservation to CHECKED_IN. It fails with
// ErrAlreadyCancelled on a cancelled reservation, ErrAlreadyCheckedIn
// when already checked in, and ErrCannotModify out of CHECKED_OUT.
func TransitionCheckIn(r *model.Reservation) error {
	switch r.Status {
	case model.StatusCancelled:
		return fmt.Errorf("%w: reservation %d", ErrAlreadyCancelled, r.ID)
	case model.StatusCheckedIn:
		return fmt.Errorf("%w: reservation %d", ErrAlreadyCheckedIn, r.ID)
	case model.StatusCheckedOut:
		return fmt.Errorf("%w: reservation %d is checked out", ErrCannotModify, r.ID)
	}
	r.Status = model.StatusCheckedIn
	return nil
}

// TransitionCheckOut moves a reservation to CHECKED_OUT. The only
// legal source state is CHECKED_IN.
func TransitionCheckOut(r *model.Reservation) error {
	if r.Status != model.StatusCheckedIn {
		return fmt.Errorf("%w: reservation %d must be checked in before checking out (status %s)",
			ErrCannotModify, r.ID, r.Status)
	}
	r.Status = model.StatusCheckedOut
	return nil
}

// TransitionCancel moves a reservation to CANCELLED. Cancellation is
// only valid from PENDING; a second cancel fails ErrAlreadyCancelled
// and checked-in/checked-out reservations fail ErrCannotModify.
func TransitionCancel(r *model.Reservation) error {
	switch r.Status {
	case model.StatusCancelled:
		return fmt.Errorf("%w: reservation %d", ErrAlreadyCancelled, r.ID)
	case model.StatusCheckedIn, model.StatusCheckedOut:
		return fmt.Errorf("%w: reservation %d has status %s", ErrCannotModify, r.ID, r.Status)
	}
	r.Status = model.StatusCancelled
	return nil
}

// EnsureDeletable guards deletion: only CANCELLED reservations may be
// deleted.
func EnsureDeletable(r *model.Reservation) error {
	if r.Status != model.StatusCancelled {
		return fmt.Errorf("%w: only cancelled reservations can be deleted (status %s)",
			ErrCannotModify, r.Status)
	}
	return nil
}

// EnsureMutable guards room-set and date mutations, which are allowed
// while the reservation is PENDING or CHECKED_IN only.
func EnsureMutable(r *model.Reservation) error {
	if r.Status.Terminal() {
		return fmt.Errorf("%w: reservation %d has status %s", ErrCannotModify, r.ID, r.Status)
	}
	return nil
}
