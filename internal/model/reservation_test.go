package model

import "testing"

func TestParseReservationStatus(test *testing.T) {
	test.Parallel()
	for _, raw := range []string{"PENDING", "CHECKED_IN", "CHECKED_OUT", "CANCELLED"} {
		status, err := ParseReservationStatus(raw)
		if err != nil {
			test.Fatalf("parse %q: %v", raw, err)
		}
		if string(status) != raw {
			test.Fatalf("expected %q, got %q", raw, status)
		}
	}
}

func TestParseReservationStatusRejectsUnknown(test *testing.T) {
	test.Parallel()
	for _, raw := range []string{"", "pending", "BOOKED", "CHECKEDIN"} {
		if _, err := ParseReservationStatus(raw); err == nil {
			test.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestStatusActiveAndTerminal(test *testing.T) {
	test.Parallel()
	if !StatusPending.Active() || !StatusCheckedIn.Active() {
		test.Fatal("expected PENDING and CHECKED_IN to be active")
	}
	if StatusCheckedOut.Active() || StatusCancelled.Active() {
		test.Fatal("expected CHECKED_OUT and CANCELLED not to be active")
	}
	if !StatusCheckedOut.Terminal() || !StatusCancelled.Terminal() {
		test.Fatal("expected CHECKED_OUT and CANCELLED to be terminal")
	}
	if StatusPending.Terminal() || StatusCheckedIn.Terminal() {
		test.Fatal("expected PENDING and CHECKED_IN not to be terminal")
	}
}

func TestReservationRoomIDs(test *testing.T) {
	test.Parallel()
	r := &Reservation{Rooms: []Room{{ID: 4, RoomNumber: "104"}, {ID: 2, RoomNumber: "102"}}}
	ids := r.RoomIDs()
	if len(ids) != 2 || ids[0] != 4 || ids[1] != 2 {
		test.Fatalf("expected ids in stored order, got %v", ids)
	}
	if got := (&Reservation{}).RoomIDs(); len(got) != 0 {
		test.Fatalf("expected empty id list, got %v", got)
	}
}
