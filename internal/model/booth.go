package model

import "time"

// BoothState is the allocation state of a booth.  It is a pure function
// of the set of requests referencing the booth: BOOKED when exactly one
// request is accepted, PENDING when at least one request is pending and
// none accepted, AVAILABLE otherwise.  The tagged state replaces the
// independent isBooked/isTemporaryBooked flags of earlier schemas so
// that illegal combinations cannot be stored.
type BoothState string

const (
	BoothAvailable BoothState = "AVAILABLE" // no accepted and no pending request
	BoothPending   BoothState = "PENDING"   // at least one pending request, none accepted
	BoothBooked    BoothState = "BOOKED"    // exactly one accepted request
)

// Valid reports whether s is one of the three defined booth states.
func (s BoothState) Valid() bool {
	switch s {
	case BoothAvailable, BoothPending, BoothBooked:
		return true
	}
	return false
}

// Booth describes a physical booth within an expo.  Booths are uniquely
// identified by their expo, floor and booth number.  State transitions
// go exclusively through the allocation workflow; provisioning and
// deletion are organizer operations.
//
// Fields:
//  ID                – primary key identifier.
//  ExpoID            – expo to which this booth belongs.
//  BoothNumber       – number of the booth, unique per expo+floor.
//  Floor             – floor the booth is located on.
//  State             – allocation state (AVAILABLE, PENDING, BOOKED).
//  AssignedCompanyID – company holding the booth when BOOKED (nil otherwise).
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Booth struct {
	ID                uint64     // booths.id
	ExpoID            uint64     // booths.expo_id
	BoothNumber       string     // booths.booth_number
	Floor             uint32     // booths.floor
	State             BoothState // booths.state
	AssignedCompanyID *uint64    // booths.assigned_company_id (nullable)
	CreatedAt         time.Time  // booths.created_at
	UpdatedAt         time.Time  // booths.updated_at
}
