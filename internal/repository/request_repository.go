package repository // repository for exhibitor request persistence

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
)

// ErrRequestNotFound is returned when a request lookup yields no rows.
var ErrRequestNotFound = errors.New("request not found")

// RequestRepo is the request store: the durable, append-style record
// of every exhibitor request. Rows are never deleted; decisions only
// flip the status column through the conditional update below, so the
// full bidding history of a booth stays auditable.
type RequestRepo struct {
	db *sql.DB
}

// NewRequestRepo constructs a RequestRepo bound to the provided database.
func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

// Create inserts a new request in PENDING state. On success the
// request's ID, status and creation timestamp are populated.
func (r *RequestRepo) Create(ctx context.Context, req *model.Request) error {
	const q = `INSERT INTO requests (booth_id, company_id, submitter_id, product_name, product_description, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		req.BoothID, req.CompanyID, req.SubmitterID,
		req.ProductName, req.ProductDescription, model.RequestPending,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	req.Status = model.RequestPending
	return nil
}

// GetByID retrieves a request by its id.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (*model.Request, error) {
	const q = `SELECT id, booth_id, company_id, submitter_id, product_name, product_description,
	                  status, decided_by, created_at, updated_at
	           FROM requests WHERE id = ?`
	var req model.Request
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&req.ID, &req.BoothID, &req.CompanyID, &req.SubmitterID,
		&req.ProductName, &req.ProductDescription,
		&req.Status, &req.DecidedBy, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// RequestFilter narrows List results. Zero values mean "no filter" for
// that dimension. ExpoID filters through the booth join.
type RequestFilter struct {
	ExpoID      uint64
	CompanyID   uint64
	SubmitterID uint64
	Status      model.RequestStatus
}

// List retrieves requests matching the filter, newest first.
func (r *RequestRepo) List(ctx context.Context, f RequestFilter) ([]model.Request, error) {
	q := `SELECT r.id, r.booth_id, r.company_id, r.submitter_id, r.product_name, r.product_description,
	             r.status, r.decided_by, r.created_at, r.updated_at
	      FROM requests r`
	var conds []string
	var args []interface{}
	if f.ExpoID != 0 {
		q += ` JOIN booths b ON b.id = r.booth_id`
		conds = append(conds, "b.expo_id = ?")
		args = append(args, f.ExpoID)
	}
	if f.CompanyID != 0 {
		conds = append(conds, "r.company_id = ?")
		args = append(args, f.CompanyID)
	}
	if f.SubmitterID != 0 {
		conds = append(conds, "r.submitter_id = ?")
		args = append(args, f.SubmitterID)
	}
	if f.Status != "" {
		conds = append(conds, "r.status = ?")
		args = append(args, f.Status)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY r.created_at DESC, r.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(
			&req.ID, &req.BoothID, &req.CompanyID, &req.SubmitterID,
			&req.ProductName, &req.ProductDescription,
			&req.Status, &req.DecidedBy, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SetStatus performs a conditional status transition mirroring the
// booth ledger's guard: the update applies only while the request is
// still in the expected status. decidedBy records the administrator
// for explicit decisions and stays NULL for automatic sibling
// rejections. Zero affected rows yields ErrStateConflict, or
// ErrRequestNotFound when the row does not exist.
func (r *RequestRepo) SetStatus(ctx context.Context, id uint64, next, expected model.RequestStatus, decidedBy *uint64) error {
	const q = `UPDATE requests
	           SET status = ?, decided_by = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, next, decidedBy, id, expected)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM requests WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrRequestNotFound
	}
	return ErrStateConflict
}

// RejectSiblings marks every other PENDING request on the same booth
// as REJECTED and returns how many rows were touched. decided_by stays
// NULL so automatic rejections remain distinguishable from explicit
// ones. Used as best-effort cleanup after a booth is booked.
func (r *RequestRepo) RejectSiblings(ctx context.Context, boothID, exceptID uint64) (int64, error) {
	const q = `UPDATE requests
	           SET status = ?, updated_at = UTC_TIMESTAMP()
	           WHERE booth_id = ? AND id <> ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, model.RequestRejected, boothID, exceptID, model.RequestPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// HasActive reports whether the company already has a non-rejected
// request on the booth. Used for duplicate detection at submission
// time.
func (r *RequestRepo) HasActive(ctx context.Context, boothID, companyID uint64) (bool, error) {
	const q = `SELECT EXISTS(
	             SELECT 1 FROM requests
	             WHERE booth_id = ? AND company_id = ? AND status <> ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, boothID, companyID, model.RequestRejected).Scan(&exists)
	return exists, err
}

// HasActiveOlderThan reports whether the company holds a non-rejected
// request on the booth with an id lower than the given one. The
// submission path re-checks this after its own insert: of several
// racing submissions only the oldest sees no predecessor, so exactly
// one survives.
func (r *RequestRepo) HasActiveOlderThan(ctx context.Context, boothID, companyID, id uint64) (bool, error) {
	const q = `SELECT EXISTS(
	             SELECT 1 FROM requests
	             WHERE booth_id = ? AND company_id = ? AND status <> ? AND id < ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, boothID, companyID, model.RequestRejected, id).Scan(&exists)
	return exists, err
}
