package booking

import (
	"fmt"
	"time"
)

// Clock supplies the current time. The service takes one at
// construction so tests can pin "today" instead of racing midnight.
type Clock func() time.Time

// Day truncates t to a calendar date at UTC midnight. All date
// comparisons in the engine happen on day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the whole days between check-in and check-out,
// floored at 1. The floor keeps same-day (and inverted) inputs from
// pricing to zero; inverted ranges are normally rejected by
// ValidateRange before they reach pricing, this is a defensive floor
// only.
func Nights(checkIn, checkOut time.Time) int64 {
	nights := int64(Day(checkOut).Sub(Day(checkIn)) / (24 * time.Hour))
	if nights < 1 {
		nights = 1
	}
	return nights
}

// ValidateRange checks a requested stay against today's date. It
// fails with ErrPastCheckIn when the check-in date has already passed
// and with ErrInvalidDateRange when check-out is not strictly after
// check-in.
func ValidateRange(checkIn, checkOut, today time.Time) error {
	in, out, now := Day(checkIn), Day(checkOut), Day(today)
	if in.Before(now) {
		return fmt.Errorf("%w: check_in %s is before %s", ErrPastCheckIn,
			in.Format("2006-01-02"), now.Format("2006-01-02"))
	}
	if !out.After(in) {
		return fmt.Errorf("%w: check_in %s, check_out %s", ErrInvalidDateRange,
			in.Format("2006-01-02"), out.Format("2006-01-02"))
	}
	return nil
}
