package model

import "time"

// Company is an exhibitor's registered business profile.  A company
// belongs to the account that registered it and must exist before the
// exhibitor can submit booth requests.  Its lifecycle is independent of
// booths; deleting a company does not touch the request audit trail.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – submitting account that owns this profile.
//  Name        – company name.
//  Description – what the company does.
//  Address     – postal address.
//  Email       – contact email for the exchange lookup.
//  Contact     – contact phone number.
//  Service     – service or product category.
//  DocumentRef – reference (URL/path) to the supporting document.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Company struct {
	ID          uint64    // companies.id
	UserID      uint64    // companies.user_id
	Name        string    // companies.name
	Description string    // companies.description
	Address     string    // companies.address
	Email       string    // companies.email
	Contact     string    // companies.contact
	Service     string    // companies.service
	DocumentRef string    // companies.document_ref
	CreatedAt   time.Time // companies.created_at
	UpdatedAt   time.Time // companies.updated_at
}
