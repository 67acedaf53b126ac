package booking

import (
	"errors"
	"testing"

	"github.com/iliyamo/hotel-backoffice/internal/model"
)

func TestCheckInFromPending(test *testing.T) {
	test.Parallel()
	r := &model.Reservation{ID: 1, Status: model.StatusPending}
	if err := TransitionCheckIn(r); err != nil {
		test.Fatalf("check-in: %v", err)
	}
	if r.Status != model.StatusCheckedIn {
		test.Fatalf("expected CHECKED_IN, got %s", r.Status)
	}
}

func TestCheckInRejectsCancelled(test *testing.T) {
	test.Parallel()
	r := &model.Reservation{ID: 1, Status: model.StatusCancelled}
	if err := TransitionCheckIn(r); !errors.Is(err, ErrAlreadyCancelled) {
		test.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if r.Status != model.StatusCancelled {
		test.Fatalf("failed transition must not change status, got %s", r.Status)
	}
}

func TestCheckInRejectsRepeat(test *testing.T) {
	test.Parallel()
	r := &model.Reservation{ID: 1, Status: model.StatusCheckedIn}
	if err := TransitionCheckIn(r); !errors.Is(err, ErrAlreadyCheckedIn) {
		test.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestCheckInRejectsCheckedOut(test *testing.T) {
	test.Parallel()
	r := &model.Reservation{ID: 1, Status: model.StatusCheckedOut}
	if err := TransitionCheckIn(r); !errors.Is(err, ErrCannotModify) {
		test.Fatalf("expected ErrCannotModify, got %v", err)
	}
}

func TestCheckOutRequiresCheckedIn(test *testing.T) {
	test.Parallel()
	r := &model.Reservation{ID: 2, Status: model.StatusCheckedIn}
	if err := TransitionCheckOut(r); err != nil {
		test.Fatalf("check-out: %v", err)
	}
	if r.Status != model.StatusCheckedOut {
		test.Fatalf("expected CHECKED_OUT, got %s", r.Status)
	}

	for _, status := range []model.ReservationStatus{model.StatusPending, model.StatusCancelled, model.StatusCheckedOut} {
		r := &model.Reservation{ID: 2, Status: status}
		if err := TransitionCheckOut(r); !errors.Is(err, ErrCannotModify) {
			test.Fatalf("expected ErrCannotModify from %s, got %v", status, err)
		}
	}
}

func TestCancelOnlyFromPending(test *testing.T) {
	test.Parallel()
	r := &model.Reservation{ID: 3, Status: model.StatusPending}
	if err := TransitionCancel(r); err != nil {
		test.Fatalf("cancel: %v", err)
	}
	if r.Status != model.StatusCancelled {
		test.Fatalf("expected CANCELLED, got %s", r.Status)
	}

	r = &model.Reservation{ID: 3, Status: model.StatusCancelled}
	if err := TransitionCancel(r); !errors.Is(err, ErrAlreadyCancelled) {
		test.Fatalf("expected ErrAlreadyCancelled on repeat cancel, got %v", err)
	}
	for _, status := range []model.ReservationStatus{model.StatusCheckedIn, model.StatusCheckedOut} {
		r := &model.Reservation{ID: 3, Status: status}
		if err := TransitionCancel(r); !errors.Is(err, ErrCannotModify) {
			test.Fatalf("expected ErrCannotModify from %s, got %v", status, err)
		}
	}
}

func TestEnsureDeletableRequiresCancelled(test *testing.T) {
	test.Parallel()
	if err := EnsureDeletable(&model.Reservation{Status: model.StatusCancelled}); err != nil {
		test.Fatalf("expected cancelled reservation deletable, got %v", err)
	}
	for _, status := range []model.ReservationStatus{model.StatusPending, model.StatusCheckedIn, model.StatusCheckedOut} {
		if err := EnsureDeletable(&model.Reservation{Status: status}); !errors.Is(err, ErrCannotModify) {
			test.Fatalf("expected ErrCannotModify for %s, got %v", status, err)
		}
	}
}

func TestEnsureMutableAllowsActiveStates(test *testing.T) {
	test.Parallel()
	for _, status := range []model.ReservationStatus{model.StatusPending, model.StatusCheckedIn} {
		if err := EnsureMutable(&model.Reservation{Status: status}); err != nil {
			test.Fatalf("expected %s to be mutable, got %v", status, err)
		}
	}
	for _, status := range []model.ReservationStatus{model.StatusCancelled, model.StatusCheckedOut} {
		if err := EnsureMutable(&model.Reservation{Status: status}); !errors.Is(err, ErrCannotModify) {
			test.Fatalf("expected ErrCannotModify for %s, got %v", status, err)
		}
	}
}
