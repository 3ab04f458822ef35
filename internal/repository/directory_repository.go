package repository // read-side projections for the public directory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
)

// AcceptedExhibitor is one row of the public directory: the accepted
// request joined with the company that won and the booth it occupies.
type AcceptedExhibitor struct {
	Request model.Request
	Company model.Company
	Booth   model.Booth
}

// ContactInfo carries the attributes handed to the notification
// collaborator after a contact-exchange read. Status is included so
// callers can refuse the exchange for anything but ACCEPTED requests.
type ContactInfo struct {
	RequestID      uint64
	Status         model.RequestStatus
	CompanyName    string
	CompanyEmail   string
	CompanyContact string
	SubmitterName  string
	SubmitterEmail string
	SubmitterPhone string
}

// DirectoryRepo serves the read-only projections consumed by external
// collaborators: the accepted-exhibitor directory, the administrator
// queue (via RequestRepo.List) and the contact-exchange lookup. It
// never mutates state.
type DirectoryRepo struct {
	db *sql.DB
}

// NewDirectoryRepo constructs a DirectoryRepo with the given DB handle.
func NewDirectoryRepo(db *sql.DB) *DirectoryRepo {
	return &DirectoryRepo{db: db}
}

// AcceptedByExpo returns every accepted request of an expo joined with
// its company and booth, ordered by floor then booth number.
func (r *DirectoryRepo) AcceptedByExpo(ctx context.Context, expoID uint64) ([]AcceptedExhibitor, error) {
	const q = `SELECT r.id, r.booth_id, r.company_id, r.submitter_id, r.product_name, r.product_description,
	                  r.status, r.created_at,
	                  c.id, c.name, c.description, c.email, c.contact, c.service,
	                  b.id, b.expo_id, b.booth_number, b.floor, b.state
	           FROM requests r
	           JOIN companies c ON c.id = r.company_id
	           JOIN booths b ON b.id = r.booth_id
	           WHERE b.expo_id = ? AND r.status = ?
	           ORDER BY b.floor, b.booth_number`
	rows, err := r.db.QueryContext(ctx, q, expoID, model.RequestAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AcceptedExhibitor
	for rows.Next() {
		var a AcceptedExhibitor
		if err := rows.Scan(
			&a.Request.ID, &a.Request.BoothID, &a.Request.CompanyID, &a.Request.SubmitterID,
			&a.Request.ProductName, &a.Request.ProductDescription,
			&a.Request.Status, &a.Request.CreatedAt,
			&a.Company.ID, &a.Company.Name, &a.Company.Description,
			&a.Company.Email, &a.Company.Contact, &a.Company.Service,
			&a.Booth.ID, &a.Booth.ExpoID, &a.Booth.BoothNumber, &a.Booth.Floor, &a.Booth.State,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ContactExchange fetches the contact attributes for a request. The
// caller must check Status and refuse the exchange unless it is
// ACCEPTED; the query itself does not filter so the handler can answer
// 403 rather than 404 for undecided requests.
func (r *DirectoryRepo) ContactExchange(ctx context.Context, requestID uint64) (*ContactInfo, error) {
	const q = `SELECT r.id, r.status,
	                  c.name, c.email, c.contact,
	                  u.name, u.email, u.phone
	           FROM requests r
	           JOIN companies c ON c.id = r.company_id
	           JOIN users u ON u.id = r.submitter_id
	           WHERE r.id = ?`
	var info ContactInfo
	err := r.db.QueryRowContext(ctx, q, requestID).Scan(
		&info.RequestID, &info.Status,
		&info.CompanyName, &info.CompanyEmail, &info.CompanyContact,
		&info.SubmitterName, &info.SubmitterEmail, &info.SubmitterPhone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &info, nil
}
