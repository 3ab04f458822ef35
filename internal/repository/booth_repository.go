package repository // repository defines data access for booths

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
)

// ErrBoothNotFound is returned when a booth lookup yields no rows.
var ErrBoothNotFound = errors.New("booth not found")

// ErrBoothNumberExists is returned when an insert violates the
// expo+floor+number uniqueness constraint.
var ErrBoothNumberExists = errors.New("booth number already exists on this floor")

// BoothRepo is the booth ledger: the durable record of every booth of
// an expo and its allocation state. All state mutation goes through
// the conditional methods below so that two writers racing on the same
// booth cannot both win. Reads carry no side effects.
type BoothRepo struct {
	db *sql.DB
}

// NewBoothRepo constructs a BoothRepo with the given DB handle.
func NewBoothRepo(db *sql.DB) *BoothRepo {
	return &BoothRepo{db: db}
}

// DB exposes the underlying handle so callers can open transactions
// spanning booths and requests.
func (r *BoothRepo) DB() *sql.DB { return r.db }

// Create inserts a single booth in AVAILABLE state. On success the
// booth's ID is populated.
func (r *BoothRepo) Create(ctx context.Context, b *model.Booth) error {
	const q = `INSERT INTO booths (expo_id, booth_number, floor, state)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.ExpoID, b.BoothNumber, b.Floor, model.BoothAvailable)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrBoothNumberExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.State = model.BoothAvailable
	return nil
}

// CreateBulk inserts multiple booths in a single statement. All booths
// start AVAILABLE. Used by floor provisioning at expo-creation time.
func (r *BoothRepo) CreateBulk(ctx context.Context, booths []model.Booth) error {
	if len(booths) == 0 {
		return nil
	}
	query := `INSERT INTO booths (expo_id, booth_number, floor, state) VALUES `
	args := make([]interface{}, 0, len(booths)*4)
	for i, b := range booths {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, b.ExpoID, b.BoothNumber, b.Floor, model.BoothAvailable)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil && isDuplicateEntry(err) {
		return ErrBoothNumberExists
	}
	return err
}

// GetByID retrieves a booth by its id.
func (r *BoothRepo) GetByID(ctx context.Context, id uint64) (*model.Booth, error) {
	const q = `SELECT id, expo_id, booth_number, floor, state, assigned_company_id, created_at, updated_at
	           FROM booths WHERE id = ?`
	var b model.Booth
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.ExpoID, &b.BoothNumber, &b.Floor, &b.State,
		&b.AssignedCompanyID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByExpo retrieves all booths of an expo ordered by floor then
// booth number.
func (r *BoothRepo) ListByExpo(ctx context.Context, expoID uint64) ([]model.Booth, error) {
	const q = `SELECT id, expo_id, booth_number, floor, state, assigned_company_id, created_at, updated_at
	           FROM booths
	           WHERE expo_id = ?
	           ORDER BY floor, booth_number`
	rows, err := r.db.QueryContext(ctx, q, expoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Booth
	for rows.Next() {
		var b model.Booth
		if err := rows.Scan(
			&b.ID, &b.ExpoID, &b.BoothNumber, &b.Floor, &b.State,
			&b.AssignedCompanyID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetState performs a conditional state transition: the update applies
// only when the booth is currently in the expected state. When the
// guard fails the method reports ErrStateConflict (or ErrBoothNotFound
// when the booth does not exist at all) and the row is untouched. The
// assignee column is cleared for every target state except BOOKED;
// use Book for the transition that records an assignee.
func (r *BoothRepo) SetState(ctx context.Context, id uint64, next, expected model.BoothState) error {
	const q = `UPDATE booths
	           SET state = ?, assigned_company_id = NULL, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND state = ?`
	res, err := r.db.ExecContext(ctx, q, next, id, expected)
	if err != nil {
		return err
	}
	return r.checkGuard(ctx, res, id)
}

// Book moves a booth from PENDING to BOOKED and records the winning
// company in one conditional statement. ErrStateConflict means another
// request already booked the booth or the state drifted since the
// caller last read it.
func (r *BoothRepo) Book(ctx context.Context, id, companyID uint64) error {
	const q = `UPDATE booths
	           SET state = ?, assigned_company_id = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND state = ?`
	res, err := r.db.ExecContext(ctx, q, model.BoothBooked, companyID, id, model.BoothPending)
	if err != nil {
		return err
	}
	return r.checkGuard(ctx, res, id)
}

// Release moves a booth from PENDING back to AVAILABLE, but only
// while no pending or accepted request references it. The emptiness
// check lives inside the UPDATE itself, so a request inserted
// concurrently either lands before the statement and blocks the
// release, or after it and finds the booth AVAILABLE — there is no
// window in which the booth is released over a live request.
func (r *BoothRepo) Release(ctx context.Context, id uint64) error {
	const q = `UPDATE booths
	           SET state = ?, assigned_company_id = NULL, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND state = ?
	             AND NOT EXISTS (
	               SELECT 1 FROM requests
	               WHERE booth_id = ? AND status IN (?, ?))`
	res, err := r.db.ExecContext(ctx, q,
		model.BoothAvailable, id, model.BoothPending,
		id, model.RequestPending, model.RequestAccepted,
	)
	if err != nil {
		return err
	}
	return r.checkGuard(ctx, res, id)
}

// checkGuard interprets the affected-row count of a conditional
// update: zero rows means either the booth is missing or the expected
// state did not match.
func (r *BoothRepo) checkGuard(ctx context.Context, res sql.Result, id uint64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM booths WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrBoothNotFound
	}
	return ErrStateConflict
}

// Delete removes a booth unless any non-rejected request still
// references it, in which case ErrConflict is returned. Rejected
// request rows on the booth go with it via the schema's cascade.
// Ownership of the surrounding expo is enforced by the caller.
func (r *BoothRepo) Delete(ctx context.Context, id uint64) error {
	var active int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM requests WHERE booth_id = ? AND status <> ?`,
		id, model.RequestRejected).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM booths WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBoothNotFound
	}
	return nil
}

// CountAll returns the total number of booths. Used by the stats
// endpoint.
func (r *BoothRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM booths`).Scan(&n)
	return n, err
}
