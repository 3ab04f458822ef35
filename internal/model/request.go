package model

import "time"

// RequestStatus is the decision state of an exhibitor request.
// PENDING is the only non-terminal status; ACCEPTED and REJECTED are
// terminal for a request.  A rejected company may submit again, which
// creates a new request rather than reviving the old one.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestRejected RequestStatus = "REJECTED"
)

// Valid reports whether s is one of the three defined request statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s RequestStatus) Terminal() bool { return s != RequestPending }

// Request is a company's bid to occupy a specific booth.  Requests
// reference one booth, one company and the submitting account.  They
// are created on submission, have their status mutated only by the
// allocation workflow, and are never physically deleted so that the
// decision history stays auditable.
//
// Fields:
//  ID                 – primary key identifier.
//  BoothID            – booth this request bids for.
//  CompanyID          – company on whose behalf the bid is made.
//  SubmitterID        – account that submitted the request.
//  ProductName        – name of the product/service to exhibit.
//  ProductDescription – free-form description of the exhibit.
//  Status             – decision state (PENDING, ACCEPTED, REJECTED).
//  DecidedBy          – administrator who decided the request; nil while
//                       pending and nil for automatic sibling rejections.
//  CreatedAt          – submission timestamp.
//  UpdatedAt          – last status change timestamp.
type Request struct {
	ID                 uint64        // requests.id
	BoothID            uint64        // requests.booth_id
	CompanyID          uint64        // requests.company_id
	SubmitterID        uint64        // requests.submitter_id
	ProductName        string        // requests.product_name
	ProductDescription string        // requests.product_description
	Status             RequestStatus // requests.status
	DecidedBy          *uint64       // requests.decided_by (nullable)
	CreatedAt          time.Time     // requests.created_at
	UpdatedAt          time.Time     // requests.updated_at
}
