package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNightlyRateReadsHydratedType(test *testing.T) {
	test.Parallel()
	r := &Room{
		ID:         1,
		RoomNumber: "101",
		Type: &RoomType{
			ID:            1,
			Name:          "Deluxe Double",
			PricePerNight: decimal.NewNullDecimal(decimal.RequireFromString("149.50")),
		},
	}
	if rate := r.NightlyRate(); !rate.Equal(decimal.RequireFromString("149.50")) {
		test.Fatalf("expected 149.50, got %s", rate)
	}
}

func TestNightlyRateZeroWhenUnpriced(test *testing.T) {
	test.Parallel()
	if rate := (&Room{ID: 1}).NightlyRate(); !rate.IsZero() {
		test.Fatalf("expected zero rate without a type, got %s", rate)
	}
	r := &Room{ID: 1, Type: &RoomType{ID: 1, Name: "Storage"}}
	if rate := r.NightlyRate(); !rate.IsZero() {
		test.Fatalf("expected zero rate for NULL price, got %s", rate)
	}
}
