package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/hotel-backoffice/internal/booking"
	"github.com/iliyamo/hotel-backoffice/internal/model"
)

// ReservationRepo is the conflict-safe reservation store. It persists
// reservations and their room links and guarantees that the overlap
// scan and the write cannot race another writer: SaveReservation
// locks the affected room rows (ascending id order, so concurrent
// multi-room saves cannot deadlock) and re-runs the conflict scan
// inside the same transaction. It implements booking.ReservationStore.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for callers that need to compose
// transactions across repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const dateLayout = "2006-01-02"

// conflictQuery finds any active reservation whose stay overlaps the
// requested range on a room. Bounds are inclusive on both ends
// (check_in <= requestedCheckOut AND check_out >= requestedCheckIn),
// so same-day turnover counts as a conflict. CANCELLED and
// CHECKED_OUT reservations never conflict.
const conflictQuery = `SELECT EXISTS(
    SELECT 1 FROM reservation_rooms rr
    JOIN reservations res ON res.id = rr.reservation_id
    WHERE rr.room_id = ?
      AND res.status NOT IN ('CANCELLED', 'CHECKED_OUT')
      AND res.check_in <= ? AND res.check_out >= ?`

// HasConflictingReservation implements booking.ConflictScanner.
// excludeReservationID omits one reservation from the scan; pass 0 to
// scan all.
func (r *ReservationRepo) HasConflictingReservation(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeReservationID uint64) (bool, error) {
	return hasConflict(ctx, r.db, roomID, checkIn, checkOut, excludeReservationID)
}

// querier abstracts *sql.DB and *sql.Tx for the conflict scan. When
// run inside SaveReservation's transaction the scan rides on the room
// row locks taken there; the query itself stays identical.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func hasConflict(ctx context.Context, q querier, roomID uint64, checkIn, checkOut time.Time, excludeReservationID uint64) (bool, error) {
	query := conflictQuery
	args := []any{roomID, checkOut.Format(dateLayout), checkIn.Format(dateLayout)}
	if excludeReservationID != 0 {
		query += ` AND res.id != ?`
		args = append(args, excludeReservationID)
	}
	query += `)`
	var conflict bool
	if err := q.QueryRowContext(ctx, query, args...).Scan(&conflict); err != nil {
		return false, err
	}
	return conflict, nil
}

// SaveReservation atomically upserts a reservation and replaces its
// room-link set. Inside one transaction it:
//
//  1. locks the affected room rows in ascending id order (FOR UPDATE),
//     serializing against any other save touching the same rooms;
//  2. re-runs the conflict scan per room while holding the locks, so a
//     concurrent creation that committed after the caller's pre-check
//     is caught here and surfaces as *booking.RoomUnavailableError —
//     indistinguishable from a pre-check conflict, as the orchestrator
//     requires;
//  3. inserts or updates the reservation row (status, dates, total and
//     updated_at move together or not at all);
//  4. deletes and re-inserts the reservation_rooms links.
//
// No partial room set is ever observable: readers either see the
// previous link set or the complete new one.
func (r *ReservationRepo) SaveReservation(ctx context.Context, res *model.Reservation, rooms []model.Room) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if len(rooms) > 0 {
		sorted := make([]model.Room, len(rooms))
		copy(sorted, rooms)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

		placeholders := make([]string, len(sorted))
		args := make([]any, len(sorted))
		for i, rm := range sorted {
			placeholders[i] = "?"
			args[i] = rm.ID
		}
		lockQ := `SELECT id FROM rooms WHERE id IN (` + strings.Join(placeholders, ",") + `) ORDER BY id FOR UPDATE`
		lockRows, err := tx.QueryContext(ctx, lockQ, args...)
		if err != nil {
			return nil, err
		}
		locked := 0
		for lockRows.Next() {
			var id uint64
			if err := lockRows.Scan(&id); err != nil {
				lockRows.Close()
				return nil, err
			}
			locked++
		}
		if err := lockRows.Err(); err != nil {
			lockRows.Close()
			return nil, err
		}
		lockRows.Close()
		if locked != len(sorted) {
			return nil, fmt.Errorf("%w: a requested room no longer exists", booking.ErrRoomNotFound)
		}

		// Re-check conflicts under lock, but only when this reservation
		// will occupy the rooms; a save that cancels or checks out never
		// conflicts with anything.
		if res.Status.Active() {
			for _, rm := range sorted {
				conflict, err := hasConflict(ctx, tx, rm.ID, res.CheckIn, res.CheckOut, res.ID)
				if err != nil {
					return nil, err
				}
				if conflict {
					return nil, &booking.RoomUnavailableError{RoomID: rm.ID, RoomNumber: rm.RoomNumber}
				}
			}
		}
	}

	if res.ID == 0 {
		const ins = `INSERT INTO reservations (guest_id, check_in, check_out, status, total_amount) VALUES (?, ?, ?, ?, ?)`
		result, err := tx.ExecContext(ctx, ins, res.GuestID,
			res.CheckIn.Format(dateLayout), res.CheckOut.Format(dateLayout),
			string(res.Status), res.TotalAmount.StringFixed(2))
		if err != nil {
			return nil, err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, err
		}
		res.ID = uint64(id)
	} else {
		const upd = `UPDATE reservations SET check_in = ?, check_out = ?, status = ?, total_amount = ?, updated_at = NOW() WHERE id = ?`
		if _, err := tx.ExecContext(ctx, upd,
			res.CheckIn.Format(dateLayout), res.CheckOut.Format(dateLayout),
			string(res.Status), res.TotalAmount.StringFixed(2), res.ID); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_rooms WHERE reservation_id = ?`, res.ID); err != nil {
			return nil, err
		}
	}

	if len(rooms) > 0 {
		linkQ := `INSERT INTO reservation_rooms (reservation_id, room_id) VALUES `
		linkArgs := make([]any, 0, len(rooms)*2)
		for i, rm := range rooms {
			if i > 0 {
				linkQ += ","
			}
			linkQ += "(?, ?)"
			linkArgs = append(linkArgs, res.ID, rm.ID)
		}
		if _, err := tx.ExecContext(ctx, linkQ, linkArgs...); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return r.FindReservationByID(ctx, res.ID)
}

// DeleteReservation removes a reservation and cascades its room
// links. The orchestrator has already verified the CANCELLED guard.
func (r *ReservationRepo) DeleteReservation(ctx context.Context, id uint64) error {
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
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_rooms WHERE reservation_id = ?`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", booking.ErrReservationNotFound, id)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const reservationColumns = `id, guest_id, check_in, check_out, status, total_amount, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	if err := row.Scan(&res.ID, &res.GuestID, &res.CheckIn, &res.CheckOut,
		&res.Status, &res.TotalAmount, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	res.Rooms = []model.Room{}
	return &res, nil
}

// FindReservationByID returns a fully hydrated reservation: dates,
// status, total and the complete room set with types.
func (r *ReservationRepo) FindReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", booking.ErrReservationNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	hydrated, err := r.hydrateRooms(ctx, []model.Reservation{*res})
	if err != nil {
		return nil, err
	}
	return &hydrated[0], nil
}

// ListReservations returns every reservation, newest first.
func (r *ReservationRepo) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return r.listWhere(ctx, ``, nil)
}

// ListReservationsByGuest returns a guest's reservations, newest
// first.
func (r *ReservationRepo) ListReservationsByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	return r.listWhere(ctx, `WHERE guest_id = ?`, []any{guestID})
}

// ListReservationsByDateRange returns reservations whose check-in
// date falls inside [start, end], matching the back-office calendar
// view.
func (r *ReservationRepo) ListReservationsByDateRange(ctx context.Context, start, end time.Time) ([]model.Reservation, error) {
	return r.listWhere(ctx, `WHERE check_in BETWEEN ? AND ?`,
		[]any{start.Format(dateLayout), end.Format(dateLayout)})
}

func (r *ReservationRepo) listWhere(ctx context.Context, where string, args []any) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations ` + where + ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.hydrateRooms(ctx, list)
}

// hydrateRooms populates the room sets for a batch of reservations in
// a single query, rooms ordered by room number within each
// reservation.
func (r *ReservationRepo) hydrateRooms(ctx context.Context, list []model.Reservation) ([]model.Reservation, error) {
	if len(list) == 0 {
		return list, nil
	}
	index := make(map[uint64]int, len(list))
	placeholders := make([]string, len(list))
	args := make([]any, len(list))
	for i := range list {
		index[list[i].ID] = i
		placeholders[i] = "?"
		args[i] = list[i].ID
	}
	q := `SELECT rr.reservation_id,
	             rm.id, rm.room_number, rm.room_type_id, rm.status, rm.floor, rm.note,
	             t.id, t.name, t.description, t.price_per_night
	      FROM reservation_rooms rr
	      JOIN rooms rm ON rm.id = rr.room_id
	      JOIN room_types t ON t.id = rm.room_type_id
	      WHERE rr.reservation_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY rr.reservation_id, rm.room_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var resID uint64
		var rm model.Room
		var note, desc sql.NullString
		var rt model.RoomType
		if err := rows.Scan(&resID,
			&rm.ID, &rm.RoomNumber, &rm.RoomTypeID, &rm.Status, &rm.Floor, &note,
			&rt.ID, &rt.Name, &desc, &rt.PricePerNight); err != nil {
			return nil, err
		}
		rm.Note = note.String
		rt.Description = desc.String
		rm.Type = &rt
		rm.Images = []model.RoomImage{}
		if i, ok := index[resID]; ok {
			list[i].Rooms = append(list[i].Rooms, rm)
		}
	}
	return list, rows.Err()
}
