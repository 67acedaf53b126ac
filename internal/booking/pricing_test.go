package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-backoffice/internal/model"
)

func ratedRoom(id uint64, number string, rate string) model.Room {
	r := model.Room{ID: id, RoomNumber: number, RoomTypeID: id}
	if rate != "" {
		r.Type = &model.RoomType{
			ID:            id,
			Name:          "Standard",
			PricePerNight: decimal.NewNullDecimal(decimal.RequireFromString(rate)),
		}
	}
	return r
}

func TestTotalForSingleRoom(test *testing.T) {
	test.Parallel()
	rooms := []model.Room{ratedRoom(1, "101", "100.00")}
	total := TotalFor(rooms, date(2026, time.March, 10), date(2026, time.March, 12))
	if !total.Equal(decimal.RequireFromString("200.00")) {
		test.Fatalf("expected total 200.00 for 2 nights at 100.00, got %s", total)
	}
}

func TestTotalForSumsAcrossRooms(test *testing.T) {
	test.Parallel()
	rooms := []model.Room{
		ratedRoom(1, "101", "100.00"),
		ratedRoom(2, "205", "149.50"),
	}
	total := TotalFor(rooms, date(2026, time.March, 10), date(2026, time.March, 13))
	if !total.Equal(decimal.RequireFromString("748.50")) {
		test.Fatalf("expected total 748.50 for 3 nights, got %s", total)
	}
}

func TestTotalForSkipsUnpricedRooms(test *testing.T) {
	test.Parallel()
	rooms := []model.Room{
		ratedRoom(1, "101", "100.00"),
		ratedRoom(2, "102", ""), // no room type hydrated
	}
	total := TotalFor(rooms, date(2026, time.March, 10), date(2026, time.March, 12))
	if !total.Equal(decimal.RequireFromString("200.00")) {
		test.Fatalf("expected unpriced room to contribute zero, got %s", total)
	}
}

func TestTotalForEmptyRoomSetIsZero(test *testing.T) {
	test.Parallel()
	total := TotalFor(nil, date(2026, time.March, 10), date(2026, time.March, 12))
	if !total.IsZero() {
		test.Fatalf("expected zero total for empty room set, got %s", total)
	}
}

func TestTotalForKeepsCentPrecision(test *testing.T) {
	test.Parallel()
	// 99.95 * 7 trips up binary floats; decimal arithmetic must not.
	rooms := []model.Room{ratedRoom(1, "301", "99.95")}
	total := TotalFor(rooms, date(2026, time.March, 10), date(2026, time.March, 17))
	if total.StringFixed(2) != "699.65" {
		test.Fatalf("expected 699.65, got %s", total.StringFixed(2))
	}
}
