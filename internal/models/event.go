package models

import "time"

// Event represents a calendar event.
// This is an internal representation, independent of any specific calendar provider.
type Event struct {
	UID         string        // The iCalendar UID
	Title       string        // Summary or title of the event
	Description string        // Detailed description of the event
	Location    string        // Venue and address
	StartTime   time.Time     // Start time of the event
	EndTime     time.Time     // End time of the event
	Reminder    time.Duration // How long before StartTime to alert; zero disables the alarm
}

// EventConfig is the fixed metadata of one mailing: the event being announced,
// the message template and how calendar links are built.
type EventConfig struct {
	Key         string
	Title       string
	DisplayDate string // e.g. "23 AUGUST 2025 | 5:00 PM EDT"
	Subject     string
	Template    string // template file name under render/templates

	StartUTC    string // "YYYYMMDDTHHMMSSZ"
	EndUTC      string
	Location    string
	Description string

	// AppendInviteLink adds the guest's web invite link to the calendar details.
	AppendInviteLink bool

	InvitedLocation string

	// ICSPath is appended to the API base URL. When ICSPerInvite is set the
	// invite id is appended as the final path segment.
	ICSPath      string
	ICSPerInvite bool

	// GoogleExtra holds additional Google Calendar template parameters.
	GoogleExtra map[string]string

	ImageContentID string

	// CreateInvites controls whether rows are submitted to the invite store.
	CreateInvites bool
}
