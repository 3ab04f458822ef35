package model

import "time"

// Expo represents a scheduled exhibition event with a fixed booth
// inventory.  Expos are created by organizers; once booths have been
// provisioned the inventory is fixed and only the descriptive metadata
// may still be edited.  This struct corresponds to a row in the
// `expos` table.
//
// Fields:
//  ID            – primary key identifier.
//  OrganizerID   – user ID of the organizer who created the expo.
//  Name          – display name of the exhibition.
//  Description   – free-form description shown on the public listing.
//  Venue         – physical location of the exhibition.
//  OrganizerName – contact name shown to exhibitors.
//  StartDate     – first day of the exhibition.
//  EndDate       – last day of the exhibition (not before StartDate).
//  CreatedAt     – timestamp when the expo was created.
//  UpdatedAt     – timestamp of last update.
type Expo struct {
	ID            uint64    // expos.id
	OrganizerID   uint64    // expos.organizer_id
	Name          string    // expos.name
	Description   string    // expos.description
	Venue         string    // expos.venue
	OrganizerName string    // expos.organizer_name
	StartDate     time.Time // expos.start_date
	EndDate       time.Time // expos.end_date
	CreatedAt     time.Time // expos.created_at
	UpdatedAt     time.Time // expos.updated_at
}
