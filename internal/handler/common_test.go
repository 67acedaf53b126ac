package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-backoffice/internal/booking"
	"github.com/iliyamo/hotel-backoffice/internal/repository"
)

func newTestContext(test *testing.T) echo.Context {
	test.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestWriteDomainErrorStatusMapping(test *testing.T) {
	test.Parallel()
	cases := []struct {
		err  error
		want int
	}{
		{booking.ErrGuestNotFound, http.StatusNotFound},
		{booking.ErrRoomNotFound, http.StatusNotFound},
		{booking.ErrReservationNotFound, http.StatusNotFound},
		{booking.ErrInvalidDateRange, http.StatusBadRequest},
		{booking.ErrPastCheckIn, http.StatusBadRequest},
		{booking.ErrRoomNotAvailable, http.StatusConflict},
		{booking.ErrAlreadyCancelled, http.StatusConflict},
		{booking.ErrAlreadyCheckedIn, http.StatusConflict},
		{booking.ErrCannotModify, http.StatusConflict},
		{repository.ErrDuplicateRoomNumber, http.StatusConflict},
		{repository.ErrInUse, http.StatusConflict},
	}
	for _, tc := range cases {
		c := newTestContext(test)
		if err := writeDomainError(c, tc.err); err != nil {
			test.Fatalf("write %v: %v", tc.err, err)
		}
		if got := c.Response().Status; got != tc.want {
			test.Fatalf("expected %d for %v, got %d", tc.want, tc.err, got)
		}
	}
}

func TestWriteDomainErrorWrappedSentinel(test *testing.T) {
	test.Parallel()
	c := newTestContext(test)
	wrapped := fmt.Errorf("room 7: %w", booking.ErrRoomNotAvailable)
	if err := writeDomainError(c, wrapped); err != nil {
		test.Fatalf("write: %v", err)
	}
	if got := c.Response().Status; got != http.StatusConflict {
		test.Fatalf("expected 409 for wrapped conflict, got %d", got)
	}
}

func TestWriteDomainErrorHidesInternalDetail(test *testing.T) {
	test.Parallel()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := writeDomainError(c, fmt.Errorf("dial tcp 10.0.0.5:3306: timeout")); err != nil {
		test.Fatalf("write: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		test.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" || body == "dial tcp 10.0.0.5:3306: timeout" {
		test.Fatalf("expected sanitized body, got %q", body)
	}
}

func TestPathIDParsing(test *testing.T) {
	test.Parallel()
	c := newTestContext(test)
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := pathID(c, "id")
	if err != nil || id != 42 {
		test.Fatalf("expected 42, got %d (%v)", id, err)
	}

	for _, raw := range []string{"", "0", "-1", "abc"} {
		c := newTestContext(test)
		c.SetParamNames("id")
		c.SetParamValues(raw)
		if _, err := pathID(c, "id"); err == nil {
			test.Fatalf("expected %q to be rejected", raw)
		}
	}
}
