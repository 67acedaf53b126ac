package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operational status tags for rooms. These describe housekeeping /
// front-desk state only; booking conflicts are always derived from the
// reservation set, never from this field.
const (
	RoomStatusAvailable   = "AVAILABLE"
	RoomStatusOccupied    = "OCCUPIED"
	RoomStatusReserved    = "RESERVED"
	RoomStatusMaintenance = "MAINTENANCE"
)

// RoomType describes a category of rooms sharing a nightly rate.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – type name (e.g. "Deluxe Double").
//  Description   – free-text description.
//  PricePerNight – nightly rate; invalid (NULL) when the type has no
//                  rate defined yet, in which case it prices as zero.
type RoomType struct {
	ID            uint64              `json:"id"`              // room_types.id
	Name          string              `json:"name"`            // room_types.name
	Description   string              `json:"description"`     // room_types.description
	PricePerNight decimal.NullDecimal `json:"price_per_night"` // room_types.price_per_night DECIMAL(10,2)
}

// Room is a bookable hotel room. The room number is the business key;
// the operational Status tag is informational only.
//
// Fields:
//  ID         – primary key identifier.
//  RoomNumber – unique business key (e.g. "204B").
//  RoomTypeID – foreign key into room_types.
//  Type       – hydrated room type, populated on reads.
//  Status     – operational tag (AVAILABLE, OCCUPIED, RESERVED, MAINTENANCE).
//  Floor      – floor number.
//  Note       – free-text operational note.
//  Images     – ordered image list, primary image first.
type Room struct {
	ID         uint64      `json:"id"`             // rooms.id
	RoomNumber string      `json:"room_number"`    // rooms.room_number
	RoomTypeID uint64      `json:"room_type_id"`   // rooms.room_type_id
	Type       *RoomType   `json:"type,omitempty"` // joined from room_types
	Status     string      `json:"status"`         // rooms.status
	Floor      int16       `json:"floor"`          // rooms.floor
	Note       string      `json:"note"`           // rooms.note
	Images     []RoomImage `json:"images"`         // joined from room_images
}

// RoomImage is one entry of a room's ordered image list.
type RoomImage struct {
	ID           uint64    `json:"id"`            // room_images.id
	RoomID       uint64    `json:"room_id"`       // room_images.room_id
	ImageURL     string    `json:"image_url"`     // room_images.image_url
	Description  string    `json:"description"`   // room_images.description
	IsPrimary    bool      `json:"is_primary"`    // room_images.is_primary
	DisplayOrder int16     `json:"display_order"` // room_images.display_order
	CreatedAt    time.Time `json:"created_at"`    // room_images.created_at
}

// NightlyRate returns the room's effective nightly rate. Rooms whose
// type is missing or has no rate defined price as zero rather than
// erroring, matching how availability quotes are produced.
func (r *Room) NightlyRate() decimal.Decimal {
	if r.Type == nil || !r.Type.PricePerNight.Valid {
		return decimal.Zero
	}
	return r.Type.PricePerNight.Decimal
}
