// Package events holds the fixed metadata of each mailing.
package events

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"weddinginvites/internal/models"
)

// DefaultReminder is how long before an event its calendar alarm fires.
const DefaultReminder = 48 * time.Hour

const (
	CanadaInvite          = "canada-invite"
	CanadaSaveTheDate     = "canada-save-the-date"
	AustraliaSaveTheDate  = "australia-save-the-date"
	canadaVenue           = "Sheraton Parkway Toronto North Hotel & Suites, 600 Hwy 7, Richmond Hill, ON L4B 1B2"
	australiaVenue        = "Tiffany's Maleny, 409 Mountain View Road, Maleny QLD 4552"
	canadaTitle           = "Nicholas & Natasha's Wedding"
	canadaDate            = "23 AUGUST 2025 | 5:00 PM EDT"
	canadaStartUTC        = "20250823T210000Z"
	canadaEndUTC          = "20250824T040000Z"
	canadaDescription     = "Join us to celebrate the wedding of Nicholas and Natasha!"
	australiaInvitedPlace = "Australia"
)

var presets = map[string]models.EventConfig{
	CanadaInvite: {
		Key:              CanadaInvite,
		Title:            canadaTitle,
		DisplayDate:      canadaDate,
		Subject:          "Invitation to Nicholas and Natasha's Toronto Wedding Reception",
		Template:         "invite.html",
		StartUTC:         canadaStartUTC,
		EndUTC:           canadaEndUTC,
		Location:         canadaVenue,
		Description:      canadaDescription,
		AppendInviteLink: true,
		InvitedLocation:  models.DefaultInvitedLocation,
		ICSPath:          "/api/download-ics/",
		ICSPerInvite:     true,
		ImageContentID:   "wedding_photo",
		CreateInvites:    true,
	},
	CanadaSaveTheDate: {
		Key:              CanadaSaveTheDate,
		Title:            canadaTitle,
		DisplayDate:      canadaDate,
		Subject:          "Save the Date - Nick & Tash's Wedding Celebration",
		Template:         "save_the_date_canada.html",
		StartUTC:         canadaStartUTC,
		EndUTC:           canadaEndUTC,
		Location:         canadaVenue,
		Description:      canadaDescription,
		AppendInviteLink: true,
		InvitedLocation:  models.DefaultInvitedLocation,
		ICSPath:          "/api/download-ics/",
		ICSPerInvite:     true,
		CreateInvites:    true,
	},
	AustraliaSaveTheDate: {
		Key:             AustraliaSaveTheDate,
		Title:           "Nicholas & Natasha's 🇦🇺 Wedding",
		DisplayDate:     "11 October 2025 | 3:00 PM AEST",
		Subject:         "Save the Date - Nicholas and Natasha's 🇦🇺 Wedding !",
		Template:        "save_the_date_australia.html",
		StartUTC:        "20251011T050000Z",
		EndUTC:          "20251011T130000Z",
		Location:        australiaVenue,
		Description:     "Join us to celebrate Nicholas and Natasha's wedding!",
		InvitedLocation: australiaInvitedPlace,
		ICSPath:         "/api/download-australia-ics/",
		GoogleExtra: map[string]string{
			"guestsCanInviteOthers":   "false",
			"guestsCanSeeOtherGuests": "false",
		},
		ImageContentID: "save_the_date_photo",
	},
}

// Lookup returns a copy of the named preset.
func Lookup(key string) (models.EventConfig, error) {
	cfg, ok := presets[key]
	if !ok {
		return models.EventConfig{}, fmt.Errorf("unknown event %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if cfg.GoogleExtra != nil {
		extra := make(map[string]string, len(cfg.GoogleExtra))
		for k, v := range cfg.GoogleExtra {
			extra[k] = v
		}
		cfg.GoogleExtra = extra
	}
	return cfg, nil
}

// Keys lists the preset names in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(presets))
	for k := range presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const utcStampLayout = "20060102T150405Z"

// Event converts a preset into a calendar event with a two-day reminder.
func Event(cfg models.EventConfig, uid string) (models.Event, error) {
	start, err := time.Parse(utcStampLayout, cfg.StartUTC)
	if err != nil {
		return models.Event{}, fmt.Errorf("invalid start time for %s: %w", cfg.Key, err)
	}
	end, err := time.Parse(utcStampLayout, cfg.EndUTC)
	if err != nil {
		return models.Event{}, fmt.Errorf("invalid end time for %s: %w", cfg.Key, err)
	}
	return models.Event{
		UID:         uid,
		Title:       cfg.Title,
		Description: cfg.Description,
		Location:    cfg.Location,
		StartTime:   start,
		EndTime:     end,
		Reminder:    DefaultReminder,
	}, nil
}
