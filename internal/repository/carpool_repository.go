package repository // repository for carpool persistence backed by MySQL

import (
	"context"      // context for managing deadlines
	"database/sql" // sql provides DB interfaces
	"errors"       // errors.Is for sentinel comparisons

	"github.com/vanklomk/zoo-school-carpool/internal/model" // carpool record type
	"github.com/vanklomk/zoo-school-carpool/internal/store" // store boundary and sentinel errors
)

// CarpoolRepo encapsulates database operations for carpools.  It is
// the durable implementation of store.CarpoolStore; all timestamp
// fields are stored in UTC.
type CarpoolRepo struct {
	db *sql.DB
}

// NewCarpoolRepo constructs a CarpoolRepo given a DB handle.
func NewCarpoolRepo(db *sql.DB) *CarpoolRepo { return &CarpoolRepo{db: db} }

// interface guard
var _ store.CarpoolStore = (*CarpoolRepo)(nil)

// Create inserts a new carpool row and populates the generated ID and
// default fields on the passed record.  SeatCapacity is pinned to the
// initial seat count so the seats-never-exceed-capacity invariant can
// be checked for the lifetime of the row.
func (r *CarpoolRepo) Create(ctx context.Context, cp *model.Carpool) error {
	if cp.SeatCapacity == 0 {
		cp.SeatCapacity = cp.AvailableSeats
	}
	const q = `INSERT INTO carpools (driver_name, destination, departure_time, available_seats, seat_capacity, notes)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		cp.DriverName, cp.Destination, cp.DepartureTime.UTC(),
		cp.AvailableSeats, cp.SeatCapacity, cp.Notes,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	cp.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	fresh, err := r.GetByID(ctx, cp.ID)
	if err != nil {
		return err
	}
	*cp = *fresh
	return nil
}

// GetByID returns a single carpool by primary key.  It returns
// store.ErrCarpoolNotFound when no row matches.
func (r *CarpoolRepo) GetByID(ctx context.Context, id uint64) (*model.Carpool, error) {
	const q = `SELECT id, driver_name, destination, departure_time, available_seats, seat_capacity, notes, created_at, updated_at
	           FROM carpools WHERE id = ?`
	var cp model.Carpool
	var notes sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&cp.ID, &cp.DriverName, &cp.Destination, &cp.DepartureTime,
		&cp.AvailableSeats, &cp.SeatCapacity, &notes, &cp.CreatedAt, &cp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCarpoolNotFound
		}
		return nil, err
	}
	if notes.Valid {
		cp.Notes = notes.String
	}
	return &cp, nil
}

// List returns every carpool ordered by departure time ascending with
// ties broken by ID.  Ordering in SQL keeps the list and calendar
// views in agreement regardless of insertion order.
func (r *CarpoolRepo) List(ctx context.Context) ([]model.Carpool, error) {
	const q = `SELECT id, driver_name, destination, departure_time, available_seats, seat_capacity, notes, created_at, updated_at
	           FROM carpools
	           ORDER BY departure_time ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Carpool, 0)
	for rows.Next() {
		var cp model.Carpool
		var notes sql.NullString
		if err := rows.Scan(
			&cp.ID, &cp.DriverName, &cp.Destination, &cp.DepartureTime,
			&cp.AvailableSeats, &cp.SeatCapacity, &notes, &cp.CreatedAt, &cp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if notes.Valid {
			cp.Notes = notes.String
		}
		out = append(out, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ConditionalUpdateSeats performs the single atomic mutation the
// reservation protocol is built on.  The UPDATE commits only when the
// persisted seat count still equals expected; MySQL evaluates the
// WHERE clause and the assignment as one atomic statement, so no
// in-process locking is needed.  When no row was updated the query
// below distinguishes a missing carpool from a lost race.
func (r *CarpoolRepo) ConditionalUpdateSeats(ctx context.Context, id uint64, expected, next int) error {
	const q = `UPDATE carpools
	           SET available_seats = ?, updated_at = NOW()
	           WHERE id = ? AND available_seats = ?`
	result, err := r.db.ExecContext(ctx, q, next, id, expected)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	// Zero rows affected: either the carpool does not exist or the
	// expected seat count was stale.
	const check = `SELECT 1 FROM carpools WHERE id = ?`
	var one int
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrCarpoolNotFound
		}
		return err
	}
	return store.ErrSeatConflict
}
