package repository // repository defines data access for company profiles

import (
	"context"
	"database/sql"
	"errors"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
)

// ErrCompanyNotFound is returned when a company lookup yields no rows.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepo provides methods to work with company profiles.
type CompanyRepo struct {
	db *sql.DB
}

// NewCompanyRepo constructs a CompanyRepo with the given DB handle.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `id, user_id, name, description, address, email, contact, service, document_ref, created_at, updated_at`

func scanCompany(row interface{ Scan(...interface{}) error }, c *model.Company) error {
	return row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.Address,
		&c.Email, &c.Contact, &c.Service, &c.DocumentRef,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

// Create inserts a company profile. On success the company's ID is
// populated.
func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) error {
	const q = `INSERT INTO companies (user_id, name, description, address, email, contact, service, document_ref)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		c.UserID, c.Name, c.Description, c.Address, c.Email, c.Contact, c.Service, c.DocumentRef)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a company by its id (no ownership check).
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE id = ?`
	var c model.Company
	if err := scanCompany(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByIDAndOwner retrieves a company by its id while enforcing that
// it belongs to the given account.
func (r *CompanyRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE id = ? AND user_id = ?`
	var c model.Company
	if err := scanCompany(r.db.QueryRowContext(ctx, q, id, userID), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByOwner retrieves all companies registered by an account.
func (r *CompanyRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Company
	for rows.Next() {
		var c model.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update edits a company profile while enforcing ownership.
func (r *CompanyRepo) Update(ctx context.Context, c *model.Company, userID uint64) error {
	const q = `UPDATE companies
	           SET name = ?, description = ?, address = ?, email = ?, contact = ?, service = ?, document_ref = ?, updated_at = UTC_TIMESTAMP()
	           WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		c.Name, c.Description, c.Address, c.Email, c.Contact, c.Service, c.DocumentRef, c.ID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.missingOrForbidden(ctx, c.ID)
	}
	return nil
}

// Delete removes a company profile while enforcing ownership. A
// company that still has booth requests or a booked booth is pinned by
// the schema's foreign keys; that refusal surfaces as ErrConflict so
// the handler can answer 409 instead of a bare 500.
func (r *CompanyRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return r.missingOrForbidden(ctx, id)
	}
	return nil
}

// CountAll returns the total number of companies for the stats
// endpoint.
func (r *CompanyRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n)
	return n, err
}

func (r *CompanyRepo) missingOrForbidden(ctx context.Context, id uint64) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE id = ?)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrCompanyNotFound
	}
	return ErrForbidden
}
