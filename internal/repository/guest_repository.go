package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-backoffice/internal/booking"
	"github.com/iliyamo/hotel-backoffice/internal/model"
)

// GuestRepo provides CRUD operations for guest profiles. The guests
// table stores only profile data; credentials live with the external
// identity provider and are referenced through the external_id
// column. All timestamps are stored in UTC.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

const guestColumns = `id, external_id, full_name, email, phone, address, created_at, updated_at`

func scanGuest(row interface{ Scan(...any) error }) (*model.Guest, error) {
	var g model.Guest
	var phone, address sql.NullString
	if err := row.Scan(&g.ID, &g.ExternalID, &g.FullName, &g.Email, &phone, &address, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.Phone = phone.String
	g.Address = address.String
	return &g, nil
}

// Create inserts a new guest profile linked to the given external
// subject id and returns the stored row. A duplicate external id or
// email surfaces the driver's duplicate-entry error unchanged.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) (*model.Guest, error) {
	const q = `INSERT INTO guests (external_id, full_name, email, phone, address) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, g.ExternalID, g.FullName, g.Email, g.Phone, g.Address)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a guest by primary key, or booking.ErrGuestNotFound.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	const q = `SELECT ` + guestColumns + ` FROM guests WHERE id = ?`
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", booking.ErrGuestNotFound, id)
	}
	return g, err
}

// FindGuestByExternalID resolves a guest by the identity provider's
// subject id. It implements booking.GuestDirectory.
func (r *GuestRepo) FindGuestByExternalID(ctx context.Context, externalID string) (*model.Guest, error) {
	const q = `SELECT ` + guestColumns + ` FROM guests WHERE external_id = ?`
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, externalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: external_id %s", booking.ErrGuestNotFound, externalID)
	}
	return g, err
}

// GetByEmail returns a guest by contact email.
func (r *GuestRepo) GetByEmail(ctx context.Context, email string) (*model.Guest, error) {
	const q = `SELECT ` + guestColumns + ` FROM guests WHERE email = ?`
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: email %s", booking.ErrGuestNotFound, email)
	}
	return g, err
}

// List returns all guests ordered by creation time descending.
func (r *GuestRepo) List(ctx context.Context) ([]model.Guest, error) {
	const q = `SELECT ` + guestColumns + ` FROM guests ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	guests := make([]model.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

// Update edits the mutable profile fields. The external identity link
// is immutable and deliberately not part of the statement.
func (r *GuestRepo) Update(ctx context.Context, g *model.Guest) (*model.Guest, error) {
	if _, err := r.GetByID(ctx, g.ID); err != nil {
		return nil, err
	}
	const q = `UPDATE guests SET full_name = ?, email = ?, phone = ?, address = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, g.FullName, g.Email, g.Phone, g.Address, g.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, g.ID)
}

// Delete removes a guest. Guests that still own reservations are not
// deletable and fail with ErrInUse; the check relies on the foreign
// key from reservations.guest_id being RESTRICT.
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	const check = `SELECT COUNT(*) FROM reservations WHERE guest_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: guest %d has %d reservations", ErrInUse, id, n)
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1451 { // FK restriction lost the race with a new reservation
			return fmt.Errorf("%w: guest %d", ErrInUse, id)
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", booking.ErrGuestNotFound, id)
	}
	return nil
}
