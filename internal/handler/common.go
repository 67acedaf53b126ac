package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-backoffice/internal/booking"
	"github.com/iliyamo/hotel-backoffice/internal/repository"
)

// pathID parses a numeric path parameter. A zero or malformed id is
// reported as invalid.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// subject extracts the authenticated caller's external subject id
// placed in context by the JWT middleware.
func subject(c echo.Context) (string, bool) {
	s, ok := c.Get("subject").(string)
	return s, ok && s != ""
}

// writeDomainError translates the engine's error taxonomy into HTTP
// responses exactly once, here at the adapter edge. Not-found errors
// map to 404, validation errors to 400 and conflicts to 409; anything
// outside the taxonomy is an internal failure whose detail must not
// leak to callers.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrGuestNotFound),
		errors.Is(err, booking.ErrRoomNotFound),
		errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidDateRange),
		errors.Is(err, booking.ErrPastCheckIn):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrRoomNotAvailable),
		errors.Is(err, booking.ErrAlreadyCancelled),
		errors.Is(err, booking.ErrAlreadyCheckedIn),
		errors.Is(err, booking.ErrCannotModify),
		errors.Is(err, repository.ErrDuplicateRoomNumber),
		errors.Is(err, repository.ErrInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
