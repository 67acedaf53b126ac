package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/hotel-backoffice/internal/booking"
	"github.com/iliyamo/hotel-backoffice/internal/model"
	"github.com/iliyamo/hotel-backoffice/internal/repository"
)

// RoomHandler exposes room inventory CRUD plus the availability quote
// endpoint. The room status tag it manages is operational metadata
// only; the quote endpoint derives real availability from the
// reservation set through the booking engine.
type RoomHandler struct {
	Rooms *repository.RoomRepo
	Svc   *booking.Service
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(rooms *repository.RoomRepo, svc *booking.Service) *RoomHandler {
	if rooms == nil || svc == nil {
		panic("nil dependency passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Svc: svc}
}

type roomRequest struct {
	RoomNumber string `json:"room_number"`
	RoomTypeID uint64 `json:"room_type_id"`
	Status     string `json:"status"`
	Floor      int16  `json:"floor"`
	Note       string `json:"note"`
}

// Create handles POST /v1/rooms. Duplicate room numbers are rejected
// with 409.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomNumber == "" || req.RoomTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number and room_type_id are required"})
	}
	if req.Status == "" {
		req.Status = model.RoomStatusAvailable
	}
	room, err := h.Rooms.Create(c.Request().Context(), &model.Room{
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Status:     req.Status,
		Floor:      req.Floor,
		Note:       req.Note,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": room})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	room, err := h.Rooms.FindRoomByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// List handles GET /v1/rooms with an optional ?status= filter on the
// operational tag.
func (h *RoomHandler) List(c echo.Context) error {
	var (
		rooms []model.Room
		err   error
	)
	if status := c.QueryParam("status"); status != "" {
		rooms, err = h.Rooms.ListByStatus(c.Request().Context(), status)
	} else {
		rooms, err = h.Rooms.List(c.Request().Context())
	}
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// Update handles PUT /v1/rooms/:id.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req roomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomNumber == "" || req.RoomTypeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_number and room_type_id are required"})
	}
	room, err := h.Rooms.Update(c.Request().Context(), &model.Room{
		ID:         id,
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		Status:     req.Status,
		Floor:      req.Floor,
		Note:       req.Note,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": room})
}

// Delete handles DELETE /v1/rooms/:id. Rooms linked to active
// reservations or operationally in use fail with 409.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// availabilityRequest asks whether a set of rooms is free for a stay.
type availabilityRequest struct {
	RoomIDs  []uint64 `json:"room_ids"`
	CheckIn  string   `json:"check_in"`
	CheckOut string   `json:"check_out"`
}

// roomAvailability is one row of the quote response.
type roomAvailability struct {
	RoomID        uint64          `json:"room_id"`
	RoomNumber    string          `json:"room_number"`
	Available     bool            `json:"available"`
	RoomType      string          `json:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
}

// CheckAvailability handles POST /v1/availability. It is a read-only
// quote: per-room availability for the range plus the night count and
// the estimated total over the rooms that are actually free. Booking
// itself re-checks everything under lock, so a positive quote is
// advisory, not a hold.
func (h *RoomHandler) CheckAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.RoomIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_ids is required"})
	}
	in, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must use the YYYY-MM-DD format"})
	}
	out, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must use the YYYY-MM-DD format"})
	}
	ctx := c.Request().Context()
	checker := h.Svc.Availability()
	details := make([]roomAvailability, 0, len(req.RoomIDs))
	free := make([]model.Room, 0, len(req.RoomIDs))
	allAvailable := true
	for _, roomID := range req.RoomIDs {
		room, err := h.Rooms.FindRoomByID(ctx, roomID)
		if err != nil {
			return writeDomainError(c, err)
		}
		ok, err := checker.IsAvailable(ctx, roomID, in, out, 0)
		if err != nil {
			return writeDomainError(c, err)
		}
		if ok {
			free = append(free, *room)
		} else {
			allAvailable = false
		}
		typeName := ""
		if room.Type != nil {
			typeName = room.Type.Name
		}
		details = append(details, roomAvailability{
			RoomID:        room.ID,
			RoomNumber:    room.RoomNumber,
			Available:     ok,
			RoomType:      typeName,
			PricePerNight: room.NightlyRate(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"all_available":   allAvailable,
		"rooms":           details,
		"check_in":        in.Format(dateLayout),
		"check_out":       out.Format(dateLayout),
		"nights":          booking.Nights(in, out),
		"estimated_total": booking.TotalFor(free, in, out),
	})
}
