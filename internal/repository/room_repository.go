package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-backoffice/internal/booking"
	"github.com/iliyamo/hotel-backoffice/internal/model"
)

// RoomRepo provides CRUD operations for rooms, their types and their
// image lists. Reads always hydrate the room type so callers have the
// nightly rate at hand; images are loaded in display order with the
// primary image first.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomSelect = `SELECT r.id, r.room_number, r.room_type_id, r.status, r.floor, r.note,
                           t.id, t.name, t.description, t.price_per_night
                    FROM rooms r
                    JOIN room_types t ON t.id = r.room_type_id`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
	var rm model.Room
	var note sql.NullString
	var rt model.RoomType
	var desc sql.NullString
	if err := row.Scan(&rm.ID, &rm.RoomNumber, &rm.RoomTypeID, &rm.Status, &rm.Floor, &note,
		&rt.ID, &rt.Name, &desc, &rt.PricePerNight); err != nil {
		return nil, err
	}
	rm.Note = note.String
	rt.Description = desc.String
	rm.Type = &rt
	rm.Images = []model.RoomImage{}
	return &rm, nil
}

// Create inserts a room after checking that the room number is not
// taken. Both the pre-check and the unique index on room_number guard
// the business key; a race that slips past the pre-check still fails
// the index and maps to ErrDuplicateRoomNumber.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) (*model.Room, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE room_number = ?)`, rm.RoomNumber).Scan(&exists); err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, rm.RoomNumber)
	}
	const q = `INSERT INTO rooms (room_number, room_type_id, status, floor, note) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, rm.RoomNumber, rm.RoomTypeID, rm.Status, rm.Floor, rm.Note)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, rm.RoomNumber)
		}
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindRoomByID(ctx, uint64(id))
}

// FindRoomByID returns a room with its type and images hydrated, or
// booking.ErrRoomNotFound. It implements booking.RoomDirectory.
func (r *RoomRepo) FindRoomByID(ctx context.Context, id uint64) (*model.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, roomSelect+` WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", booking.ErrRoomNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	images, err := r.imagesFor(ctx, []uint64{id})
	if err != nil {
		return nil, err
	}
	rm.Images = images[id]
	if rm.Images == nil {
		rm.Images = []model.RoomImage{}
	}
	return rm, nil
}

// List returns all rooms ordered by room number, types hydrated and
// image lists populated in one extra query.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, roomSelect+` ORDER BY r.room_number`)
}

// ListByStatus filters rooms on the operational status tag. The tag
// is informational; availability queries go through the booking
// engine instead.
func (r *RoomRepo) ListByStatus(ctx context.Context, status string) ([]model.Room, error) {
	return r.list(ctx, roomSelect+` WHERE r.status = ? ORDER BY r.room_number`, status)
}

func (r *RoomRepo) list(ctx context.Context, query string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roomList := make([]model.Room, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		roomList = append(roomList, *rm)
		ids = append(ids, rm.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(roomList) == 0 {
		return roomList, nil
	}
	images, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range roomList {
		if imgs, ok := images[roomList[i].ID]; ok {
			roomList[i].Images = imgs
		}
	}
	return roomList, nil
}

// imagesFor loads the ordered image lists for a set of rooms in a
// single query, keyed by room id.
func (r *RoomRepo) imagesFor(ctx context.Context, roomIDs []uint64) (map[uint64][]model.RoomImage, error) {
	placeholders := make([]string, len(roomIDs))
	args := make([]any, len(roomIDs))
	for i, id := range roomIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := `SELECT id, room_id, image_url, description, is_primary, display_order, created_at
	          FROM room_images
	          WHERE room_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY room_id, is_primary DESC, display_order`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64][]model.RoomImage)
	for rows.Next() {
		var img model.RoomImage
		var desc sql.NullString
		if err := rows.Scan(&img.ID, &img.RoomID, &img.ImageURL, &desc, &img.IsPrimary, &img.DisplayOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		img.Description = desc.String
		out[img.RoomID] = append(out[img.RoomID], img)
	}
	return out, rows.Err()
}

// Update edits a room, re-checking room number uniqueness when the
// number changes.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) (*model.Room, error) {
	current, err := r.FindRoomByID(ctx, rm.ID)
	if err != nil {
		return nil, err
	}
	if current.RoomNumber != rm.RoomNumber {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM rooms WHERE room_number = ? AND id != ?)`, rm.RoomNumber, rm.ID).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, rm.RoomNumber)
		}
	}
	const q = `UPDATE rooms SET room_number = ?, room_type_id = ?, status = ?, floor = ?, note = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, rm.RoomNumber, rm.RoomTypeID, rm.Status, rm.Floor, rm.Note, rm.ID); err != nil {
		return nil, err
	}
	return r.FindRoomByID(ctx, rm.ID)
}

// Delete removes a room and its images. Rooms that are operationally
// occupied/reserved, or still linked to an active reservation, are
// not deletable and fail with ErrInUse.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	rm, err := r.FindRoomByID(ctx, id)
	if err != nil {
		return err
	}
	if rm.Status == model.RoomStatusOccupied || rm.Status == model.RoomStatusReserved {
		return fmt.Errorf("%w: room %s has status %s", ErrInUse, rm.RoomNumber, rm.Status)
	}
	const check = `SELECT COUNT(*)
	               FROM reservation_rooms rr
	               JOIN reservations res ON res.id = rr.reservation_id
	               WHERE rr.room_id = ? AND res.status IN ('PENDING', 'CHECKED_IN')`
	var n int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: room %s is linked to %d active reservations", ErrInUse, rm.RoomNumber, n)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `DELETE FROM room_images WHERE room_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
