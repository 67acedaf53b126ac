package booking

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestOverlapsDetectsSharedDays(test *testing.T) {
	test.Parallel()
	if !Overlaps(date(2026, time.March, 10), date(2026, time.March, 14),
		date(2026, time.March, 12), date(2026, time.March, 16)) {
		test.Fatal("expected partially overlapping stays to conflict")
	}
	if !Overlaps(date(2026, time.March, 10), date(2026, time.March, 20),
		date(2026, time.March, 12), date(2026, time.March, 14)) {
		test.Fatal("expected contained stay to conflict")
	}
}

func TestOverlapsSameDayTurnoverConflicts(test *testing.T) {
	test.Parallel()
	// An existing stay checking out on the 12th blocks a new stay
	// checking in on the 12th: bounds are inclusive on both sides.
	if !Overlaps(date(2026, time.March, 12), date(2026, time.March, 14),
		date(2026, time.March, 10), date(2026, time.March, 12)) {
		test.Fatal("expected check-in on the existing check-out day to conflict")
	}
}

func TestOverlapsDisjointStays(test *testing.T) {
	test.Parallel()
	if Overlaps(date(2026, time.March, 13), date(2026, time.March, 15),
		date(2026, time.March, 10), date(2026, time.March, 12)) {
		test.Fatal("expected stay starting the day after check-out not to conflict")
	}
	if Overlaps(date(2026, time.March, 1), date(2026, time.March, 5),
		date(2026, time.March, 10), date(2026, time.March, 12)) {
		test.Fatal("expected disjoint stays not to conflict")
	}
}

type stubScanner struct {
	conflict    bool
	err         error
	lastRoomID  uint64
	lastExclude uint64
}

func (s *stubScanner) HasConflictingReservation(_ context.Context, roomID uint64, _, _ time.Time, excludeReservationID uint64) (bool, error) {
	s.lastRoomID = roomID
	s.lastExclude = excludeReservationID
	return s.conflict, s.err
}

func TestIsAvailableInvertsConflict(test *testing.T) {
	test.Parallel()
	scanner := &stubScanner{conflict: false}
	checker := NewAvailabilityChecker(scanner)
	ok, err := checker.IsAvailable(context.Background(), 7, date(2026, time.March, 10), date(2026, time.March, 12), 0)
	if err != nil {
		test.Fatalf("availability: %v", err)
	}
	if !ok {
		test.Fatal("expected room to be available when no conflict exists")
	}
	if scanner.lastRoomID != 7 {
		test.Fatalf("expected scan of room 7, got %d", scanner.lastRoomID)
	}

	scanner.conflict = true
	ok, err = checker.IsAvailable(context.Background(), 7, date(2026, time.March, 10), date(2026, time.March, 12), 0)
	if err != nil {
		test.Fatalf("availability: %v", err)
	}
	if ok {
		test.Fatal("expected room to be unavailable when a conflict exists")
	}
}

func TestIsAvailablePassesExclusion(test *testing.T) {
	test.Parallel()
	scanner := &stubScanner{}
	checker := NewAvailabilityChecker(scanner)
	if _, err := checker.IsAvailable(context.Background(), 3, date(2026, time.March, 10), date(2026, time.March, 12), 42); err != nil {
		test.Fatalf("availability: %v", err)
	}
	if scanner.lastExclude != 42 {
		test.Fatalf("expected exclusion of reservation 42, got %d", scanner.lastExclude)
	}
}

func TestIsAvailablePropagatesStoreError(test *testing.T) {
	test.Parallel()
	scanErr := errors.New("connection reset")
	checker := NewAvailabilityChecker(&stubScanner{err: scanErr})
	ok, err := checker.IsAvailable(context.Background(), 1, date(2026, time.March, 10), date(2026, time.March, 12), 0)
	if !errors.Is(err, scanErr) {
		test.Fatalf("expected store error, got %v", err)
	}
	if ok {
		test.Fatal("expected unavailable on store error")
	}
}
