package repository // repository defines data access for expos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
)

// ErrExpoNotFound is returned when an expo lookup yields no rows.
var ErrExpoNotFound = errors.New("expo not found")

// ExpoRepo provides methods to work with expos in the database.
type ExpoRepo struct {
	db *sql.DB
}

// NewExpoRepo constructs an ExpoRepo with the given DB handle.
func NewExpoRepo(db *sql.DB) *ExpoRepo {
	return &ExpoRepo{db: db}
}

// Create inserts an expo record. On success the expo's ID is populated.
func (r *ExpoRepo) Create(ctx context.Context, e *model.Expo) error {
	const q = `INSERT INTO expos (organizer_id, name, description, venue, organizer_name, start_date, end_date)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.OrganizerID, e.Name, e.Description, e.Venue, e.OrganizerName, e.StartDate, e.EndDate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID retrieves an expo by its id (no ownership check).
func (r *ExpoRepo) GetByID(ctx context.Context, id uint64) (*model.Expo, error) {
	const q = `SELECT id, organizer_id, name, description, venue, organizer_name, start_date, end_date, created_at, updated_at
	           FROM expos WHERE id = ?`
	var e model.Expo
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&e.ID, &e.OrganizerID, &e.Name, &e.Description, &e.Venue,
		&e.OrganizerName, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpoNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List retrieves all expos ordered by start date descending.
func (r *ExpoRepo) List(ctx context.Context) ([]model.Expo, error) {
	const q = `SELECT id, organizer_id, name, description, venue, organizer_name, start_date, end_date, created_at, updated_at
	           FROM expos ORDER BY start_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Expo
	for rows.Next() {
		var e model.Expo
		if err := rows.Scan(
			&e.ID, &e.OrganizerID, &e.Name, &e.Description, &e.Venue,
			&e.OrganizerName, &e.StartDate, &e.EndDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update edits an expo's metadata while enforcing ownership. The booth
// inventory is untouched; only descriptive attributes change.
func (r *ExpoRepo) Update(ctx context.Context, e *model.Expo, organizerID uint64) error {
	const q = `UPDATE expos
	           SET name = ?, description = ?, venue = ?, organizer_name = ?, start_date = ?, end_date = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND organizer_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.Description, e.Venue, e.OrganizerName, e.StartDate, e.EndDate, e.ID, organizerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.missingOrForbidden(ctx, e.ID)
	}
	return nil
}

// Delete removes an expo and its booths inside one transaction; the
// booths' request rows follow via the schema's cascade. The delete is
// refused with ErrConflict while any booth of the expo is BOOKED, so
// accepted allocations cannot vanish under an exhibitor.
func (r *ExpoRepo) Delete(ctx context.Context, id, organizerID uint64) error {
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

	var ownerID uint64
	err = tx.QueryRowContext(ctx, `SELECT organizer_id FROM expos WHERE id = ?`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrExpoNotFound
		}
		return err
	}
	if ownerID != organizerID {
		return ErrForbidden
	}

	var booked int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM booths WHERE expo_id = ? AND state = ?`,
		id, model.BoothBooked).Scan(&booked); err != nil {
		return err
	}
	if booked > 0 {
		return ErrConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booths WHERE expo_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM expos WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CountAll returns the total number of expos for the stats endpoint.
func (r *ExpoRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expos`).Scan(&n)
	return n, err
}

// missingOrForbidden distinguishes a zero-row update between an absent
// expo and one owned by someone else.
func (r *ExpoRepo) missingOrForbidden(ctx context.Context, id uint64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM expos WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrExpoNotFound
	}
	return ErrForbidden
}
