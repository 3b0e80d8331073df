// Package ics renders wedding events as iCalendar documents.
package ics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"weddinginvites/internal/models"
)

const (
	ProductID = "-//NickAndTashWedding//NONSGML v1.0//EN"
	uidDomain = "nick-and-tash-wedding"

	// LocalLayout is the accepted format for command line timestamps.
	LocalLayout = "2006-01-02 15:04:05"
)

// Clock abstracts time.Now for deterministic DTSTAMP values.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// NewUID returns a globally unique event identifier.
func NewUID() string {
	return uuid.NewString() + "@" + uidDomain
}

// ParseLocal parses a LocalLayout timestamp in loc and returns it in UTC.
func ParseLocal(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(LocalLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, want %s: %w", value, LocalLayout, err)
	}
	return t.UTC(), nil
}

// Generator builds calendar documents.
type Generator struct {
	Clock Clock
}

// Calendar wraps the event in a VCALENDAR.
func (g Generator) Calendar(event models.Event) (*ical.Calendar, error) {
	if event.UID == "" {
		return nil, fmt.Errorf("event %q has no UID", event.Title)
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, fmt.Errorf("event %q ends before it starts", event.Title)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Children = append(cal.Children, g.Component(event))
	return cal, nil
}

// Component converts an Event into a VEVENT.
func (g Generator) Component(event models.Event) *ical.Component {
	clock := g.Clock
	if clock == nil {
		clock = RealClock{}
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.UID)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, clock.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.StartTime.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EndTime.UTC())
	ve.Props.SetText(ical.PropSummary, event.Title)
	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	if event.Location != "" {
		ve.Props.SetText(ical.PropLocation, event.Location)
	}
	ve.Props.SetText(ical.PropStatus, "CONFIRMED")
	setRaw(ve, ical.PropSequence, "0")
	ve.Props.SetText(ical.PropTransparency, "OPAQUE")

	if event.Reminder > 0 {
		addAlarm(ve, Trigger(event.Reminder), "Reminder: "+event.Title)
	}
	return ve
}

// Encode writes the event as an iCalendar document.
func (g Generator) Encode(w io.Writer, event models.Event) error {
	cal, err := g.Calendar(event)
	if err != nil {
		return err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// WriteFile encodes the event to path and returns the absolute path written.
func (g Generator) WriteFile(path string, event models.Event) (string, error) {
	var buf bytes.Buffer
	if err := g.Encode(&buf, event); err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// Trigger formats a reminder lead time as a negative ISO 8601 duration.
func Trigger(d time.Duration) string {
	if d%(24*time.Hour) == 0 {
		return fmt.Sprintf("-P%dD", d/(24*time.Hour))
	}
	if d%time.Hour == 0 {
		return fmt.Sprintf("-PT%dH", d/time.Hour)
	}
	return fmt.Sprintf("-PT%dM", d/time.Minute)
}

// addAlarm appends a DISPLAY alarm. TRIGGER is set raw so no VALUE=TEXT
// parameter is emitted.
func addAlarm(event *ical.Component, trigger, description string) {
	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, description)

	setRaw(alarm, ical.PropTrigger, trigger)

	event.Children = append(event.Children, alarm)
}

func setRaw(comp *ical.Component, name, value string) {
	prop := ical.NewProp(name)
	prop.Value = value
	comp.Props.Set(prop)
}
