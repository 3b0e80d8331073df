package invites

import (
	"net/url"
	"strings"

	"weddinginvites/internal/models"
)

const googleCalendarBase = "https://www.google.com/calendar/render?"

// Links bundles every URL mailed for one invite.
type Links struct {
	Invite   string // empty when no invite was created
	Google   string
	Download string
}

// Linker builds the navigation links for one event. All methods are pure
// string formatting and cannot fail.
type Linker struct {
	Website      string // public site serving /invite/<id>
	APIBase      string // invite store serving the ICS endpoints
	ICSPath      string
	ICSPerInvite bool
	GoogleExtra  map[string]string
}

// NewLinker creates a Linker for an event mailing.
func NewLinker(website, apiBase string, event models.EventConfig) Linker {
	return Linker{
		Website:      strings.TrimSuffix(website, "/"),
		APIBase:      strings.TrimSuffix(apiBase, "/"),
		ICSPath:      event.ICSPath,
		ICSPerInvite: event.ICSPerInvite,
		GoogleExtra:  event.GoogleExtra,
	}
}

// InviteLink returns the public web page for an invite.
func (l Linker) InviteLink(inviteID string) string {
	return l.Website + "/invite/" + inviteID
}

// CalendarLinks builds the Google Calendar template link and the ICS download
// link. Query parameters are emitted in sorted key order.
func (l Linker) CalendarLinks(title, startUTC, endUTC, location, description, inviteID string) (googleLink, downloadLink string) {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", title)
	params.Set("dates", startUTC+"/"+endUTC)
	params.Set("details", description)
	params.Set("location", location)
	for k, v := range l.GoogleExtra {
		params.Set(k, v)
	}

	downloadLink = l.APIBase + l.ICSPath
	if l.ICSPerInvite {
		downloadLink += inviteID
	}
	return googleCalendarBase + params.Encode(), downloadLink
}

// Build derives all links for one row of an event mailing. inviteID is empty
// when the event does not create invites.
func (l Linker) Build(event models.EventConfig, inviteID string) Links {
	var links Links
	description := event.Description
	if inviteID != "" {
		links.Invite = l.InviteLink(inviteID)
		if event.AppendInviteLink {
			description += "\n\nLink to invite: " + links.Invite
		}
	}
	links.Google, links.Download = l.CalendarLinks(event.Title, event.StartUTC, event.EndUTC, event.Location, description, inviteID)
	return links
}
