// Package repository implements the MySQL persistence layer: guest
// and room directories plus the conflict-safe reservation store
// consumed by the booking engine. Lookup failures are translated to
// the booking package's typed errors at this boundary so no caller
// ever sees sql.ErrNoRows.
package repository

import "errors"

// ErrDuplicateRoomNumber is returned when creating or renumbering a
// room would collide with an existing room number. Handlers translate
// this into an HTTP 409 response.
var ErrDuplicateRoomNumber = errors.New("room number already in use")

// ErrInUse is returned when a delete cannot proceed because dependent
// records still reference the row: a guest with reservations, or a
// room that is linked to an active reservation or operationally
// occupied. Handlers translate this into an HTTP 409 response.
var ErrInUse = errors.New("resource is referenced by existing records")
