package models

import "time"

// DefaultInvitedLocation is used when an InviteGroup does not name a location.
const DefaultInvitedLocation = "Canada"

// AttendingStatus is the per-guest RSVP state kept by the invite store.
type AttendingStatus string

const (
	StatusPending      AttendingStatus = ""
	StatusCanada       AttendingStatus = "Canada Only"
	StatusAustralia    AttendingStatus = "Australia Only"
	StatusBoth         AttendingStatus = "Both Australia and Canada"
	StatusNotAttending AttendingStatus = "Not Attending"
)

// GuestRecord is one parsed guest, in the invite store's wire shape.
type GuestRecord struct {
	FirstName           string          `json:"firstName" bson:"firstName"`
	LastName            string          `json:"lastName" bson:"lastName"`
	DietaryRequirements string          `json:"dietaryRequirements" bson:"dietaryRequirements"`
	AttendingStatus     AttendingStatus `json:"attendingStatus" bson:"attendingStatus"`
}

// InviteGroup is the unit of submission: one household sharing an invite.
type InviteGroup struct {
	Guests          []GuestRecord `json:"guests"`
	GivenPlusOne    bool          `json:"givenPlusOne"`
	InvitedLocation string        `json:"invitedLocation"`
}

// StoredInvite is an invite document as persisted in the document store.
type StoredInvite struct {
	ID              any           `bson:"_id"`
	Guests          []GuestRecord `bson:"guests"`
	HasRSVPd        bool          `bson:"hasRSVPd"`
	GivenPlusOne    bool          `bson:"givenPlusOne"`
	InvitedLocation string        `bson:"invitedLocation"`
}

// Row is one line of tabular input. Index is zero-based over data rows.
type Row struct {
	Index   int
	Guests  string
	Emails  string
	PlusOne string
}

// DispatchResult is the append-only record written for every processed row.
type DispatchResult struct {
	Guests       string
	Emails       []string
	InviteID     string
	InviteLink   string
	GoogleLink   string
	DownloadLink string
	EmailSent    bool
	Error        string
	Timestamp    time.Time
}

// Failed reports whether the row ended with an error.
func (r DispatchResult) Failed() bool {
	return r.Error != ""
}

// RSVPEntry is one guest line of the invite store's RSVP summary.
type RSVPEntry struct {
	Name     string `json:"name"`
	InviteID string `json:"inviteId"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

// RSVP summary categories, in report order.
const (
	RSVPYes          = "Yes"
	RSVPNo           = "No"
	RSVPNotResponded = "Not Responded"
)

// RSVPCategories lists the summary categories in report order.
var RSVPCategories = []string{RSVPYes, RSVPNo, RSVPNotResponded}

// RSVPSummary groups guests by response category.
type RSVPSummary map[string][]RSVPEntry
