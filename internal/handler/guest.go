package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-backoffice/internal/model"
	"github.com/iliyamo/hotel-backoffice/internal/repository"
)

// GuestHandler exposes guest profile CRUD. Accounts themselves live
// with the external identity provider; a profile is registered here
// on first contact and carries the provider's subject id from then
// on.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

// NewGuestHandler constructs a GuestHandler.
func NewGuestHandler(guests *repository.GuestRepo) *GuestHandler {
	if guests == nil {
		panic("nil repository passed to NewGuestHandler")
	}
	return &GuestHandler{Guests: guests}
}

type guestRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	ExternalID string `json:"external_id,omitempty"`
}

// Create handles POST /v1/guests. When external_id is omitted the
// profile is linked to the authenticated caller's own subject, which
// is the self-registration path; the back office passes an explicit
// subject when creating profiles on a guest's behalf.
func (h *GuestHandler) Create(c echo.Context) error {
	var req guestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.FullName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and email are required"})
	}
	if req.ExternalID == "" {
		sub, ok := subject(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		req.ExternalID = sub
	}
	guest, err := h.Guests.Create(c.Request().Context(), &model.Guest{
		ExternalID: req.ExternalID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": guest})
}

// Get handles GET /v1/guests/:id.
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	guest, err := h.Guests.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": guest})
}

// Me handles GET /v1/guests/me, resolving the caller's own profile
// through the token subject.
func (h *GuestHandler) Me(c echo.Context) error {
	sub, ok := subject(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	guest, err := h.Guests.FindGuestByExternalID(c.Request().Context(), sub)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": guest})
}

// List handles GET /v1/guests.
func (h *GuestHandler) List(c echo.Context) error {
	guests, err := h.Guests.List(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": guests})
}

// Update handles PUT /v1/guests/:id. Only profile fields move; the
// external identity link is immutable.
func (h *GuestHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req guestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.FullName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and email are required"})
	}
	guest, err := h.Guests.Update(c.Request().Context(), &model.Guest{
		ID:       id,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": guest})
}

// Delete handles DELETE /v1/guests/:id. Guests still referenced by
// reservations are not deletable and fail with 409.
func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Guests.Delete(c.Request().Context(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
