package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-backoffice/internal/model"
)

// TotalFor computes the total amount of a stay: the sum over rooms of
// nightlyRate × nights. Rooms with no rate defined contribute zero
// rather than erroring. Decimal arithmetic keeps repeated
// recomputation (every room-set or date change re-prices the whole
// reservation) free of floating-point drift.
func TotalFor(rooms []model.Room, checkIn, checkOut time.Time) decimal.Decimal {
	nights := decimal.NewFromInt(Nights(checkIn, checkOut))
	total := decimal.Zero
	for i := range rooms {
		rate := rooms[i].NightlyRate()
		if rate.IsZero() {
			continue
		}
		total = total.Add(rate.Mul(nights))
	}
	return total
}
