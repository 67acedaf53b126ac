package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-backoffice/internal/booking"
	"github.com/iliyamo/hotel-backoffice/internal/model"
	"github.com/iliyamo/hotel-backoffice/internal/queue"
	publisher "github.com/iliyamo/hotel-backoffice/internal/service"
)

const dateLayout = "2006-01-02"

// ReservationHandler adapts HTTP requests onto the booking
// orchestrator. It owns no business rules: every guard, availability
// check and total recomputation happens inside booking.Service, and
// this layer only binds payloads, maps the error taxonomy to status
// codes and publishes lifecycle events after successful commits.
type ReservationHandler struct {
	Svc *booking.Service
}

// NewReservationHandler constructs a ReservationHandler. The service
// must be non-nil.
func NewReservationHandler(svc *booking.Service) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc}
}

// reservationRequest is the JSON payload for creating or updating a
// reservation. Dates use the YYYY-MM-DD wire format. Status is
// optional; when present it must be a valid ReservationStatus.
type reservationRequest struct {
	GuestExternalID string   `json:"guest_external_id"`
	RoomIDs         []uint64 `json:"room_ids"`
	CheckIn         string   `json:"check_in"`
	CheckOut        string   `json:"check_out"`
	Status          string   `json:"status,omitempty"`
}

func (req *reservationRequest) dates() (time.Time, time.Time, error) {
	in, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}

// Create handles POST /v1/reservations. The guest defaults to the
// authenticated caller when guest_external_id is omitted, so the
// customer app and the back office share one endpoint. On success a
// reservation.confirmed event is published best-effort.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.GuestExternalID == "" {
		sub, ok := subject(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		req.GuestExternalID = sub
	}
	if len(req.RoomIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_ids is required"})
	}
	in, out, err := req.dates()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must use the YYYY-MM-DD format"})
	}
	var status model.ReservationStatus
	if req.Status != "" {
		status, err = model.ParseReservationStatus(req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}
	res, err := h.Svc.CreateReservation(c.Request().Context(), req.GuestExternalID, req.RoomIDs, in, out, status)
	if err != nil {
		return writeDomainError(c, err)
	}
	h.publish(c, queue.EventReservationConfirmed, res)
	return c.JSON(http.StatusCreated, echo.Map{"item": res})
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Svc.GetReservationByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// List handles GET /v1/reservations. With both the start and end
// query parameters set it returns the reservations checking in inside
// that window; otherwise it returns everything.
func (h *ReservationHandler) List(c echo.Context) error {
	startStr, endStr := c.QueryParam("start"), c.QueryParam("end")
	if startStr != "" || endStr != "" {
		start, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must use the YYYY-MM-DD format"})
		}
		end, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must use the YYYY-MM-DD format"})
		}
		items, err := h.Svc.GetReservationsByDateRange(c.Request().Context(), start, end)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}
	items, err := h.Svc.GetAllReservations(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListByGuest handles GET /v1/guests/:id/reservations.
func (h *ReservationHandler) ListByGuest(c echo.Context) error {
	guestID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	items, err := h.Svc.GetReservationsByGuest(c.Request().Context(), guestID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Update handles PUT /v1/reservations/:id, replacing the room set and
// dates atomically.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.RoomIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_ids is required"})
	}
	in, out, err := req.dates()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must use the YYYY-MM-DD format"})
	}
	var status model.ReservationStatus
	if req.Status != "" {
		status, err = model.ParseReservationStatus(req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}
	res, err := h.Svc.UpdateReservation(c.Request().Context(), id, req.RoomIDs, in, out, status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// AddRoom handles POST /v1/reservations/:id/rooms/:roomId.
func (h *ReservationHandler) AddRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Svc.AddRoomToReservation(c.Request().Context(), id, roomID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// RemoveRoom handles DELETE /v1/reservations/:id/rooms/:roomId.
// Removing an unlinked room is a no-op and still returns 200 with the
// current state.
func (h *ReservationHandler) RemoveRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	roomID, err := pathID(c, "roomId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Svc.RemoveRoomFromReservation(c.Request().Context(), id, roomID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// CheckIn handles POST /v1/reservations/:id/check-in.
func (h *ReservationHandler) CheckIn(c echo.Context) error {
	return h.lifecycle(c, h.Svc.CheckIn, "")
}

// CheckOut handles POST /v1/reservations/:id/check-out.
func (h *ReservationHandler) CheckOut(c echo.Context) error {
	return h.lifecycle(c, h.Svc.CheckOut, "")
}

// Cancel handles POST /v1/reservations/:id/cancel and publishes a
// reservation.cancelled event on success.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.lifecycle(c, h.Svc.CancelReservation, queue.EventReservationCancelled)
}

func (h *ReservationHandler) lifecycle(c echo.Context, op func(ctx context.Context, id uint64) (*model.Reservation, error), event string) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := op(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if event != "" {
		h.publish(c, event, res)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": res})
}

// Delete handles DELETE /v1/reservations/:id. Only cancelled
// reservations are deletable; the room links are cascaded.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Svc.DeleteReservation(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// publish sends a lifecycle event to the broker. Failures are logged
// and ignored: the reservation is already durable and notification
// delivery carries no guarantee.
func (h *ReservationHandler) publish(c echo.Context, event string, res *model.Reservation) {
	roomNumbers := make([]string, 0, len(res.Rooms))
	for i := range res.Rooms {
		roomNumbers = append(roomNumbers, res.Rooms[i].RoomNumber)
	}
	evt := queue.ReservationEvent{
		Event:         event,
		ReservationID: res.ID,
		GuestID:       res.GuestID,
		CheckIn:       res.CheckIn.Format(dateLayout),
		CheckOut:      res.CheckOut.Format(dateLayout),
		Status:        string(res.Status),
		RoomNumbers:   roomNumbers,
		TotalAmount:   res.TotalAmount.StringFixed(2),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := publisher.PublishReservationEvent(c.Request().Context(), evt); err != nil {
		log.Printf("reservation handler: publish %s for reservation %d failed: %v", event, res.ID, err)
	}
}
