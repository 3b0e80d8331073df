package ics_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddinginvites/internal/ics"
	"weddinginvites/internal/models"
)

type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time { return m.CurrentTime }

func canadaEvent() models.Event {
	return models.Event{
		UID:         "fixed-uid@nick-and-tash-wedding",
		Title:       "Nicholas & Natasha's Wedding",
		Description: "Join us to celebrate the wedding of Nicholas and Natasha!",
		Location:    "Richmond Hill, ON",
		StartTime:   time.Date(2025, 8, 23, 21, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 8, 24, 4, 0, 0, 0, time.UTC),
		Reminder:    48 * time.Hour,
	}
}

func TestEncode(t *testing.T) {
	gen := ics.Generator{Clock: MockClock{CurrentTime: time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC)}}

	var buf bytes.Buffer
	require.NoError(t, gen.Encode(&buf, canadaEvent()))
	out := buf.String()

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ics.ProductID,
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:fixed-uid@nick-and-tash-wedding",
		"DTSTAMP:20250501T123000Z",
		"DTSTART:20250823T210000Z",
		"DTEND:20250824T040000Z",
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"TRANSP:OPAQUE",
		"BEGIN:VALARM",
		"ACTION:DISPLAY",
		"TRIGGER:-P2D",
		"END:VCALENDAR",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "VALUE=TEXT")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

func TestEncode_NoReminder(t *testing.T) {
	ev := canadaEvent()
	ev.Reminder = 0

	var buf bytes.Buffer
	require.NoError(t, ics.Generator{}.Encode(&buf, ev))

	assert.NotContains(t, buf.String(), "VALARM")
}

func TestEncode_Invalid(t *testing.T) {
	ev := canadaEvent()
	ev.EndTime = ev.StartTime
	assert.Error(t, ics.Generator{}.Encode(&bytes.Buffer{}, ev))

	ev = canadaEvent()
	ev.UID = ""
	assert.Error(t, ics.Generator{}.Encode(&bytes.Buffer{}, ev))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wedding_invite.ics")

	written, err := ics.Generator{}.WriteFile(path, canadaEvent())

	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(written))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Nicholas & Natasha's Wedding")
}

func TestParseLocal(t *testing.T) {
	toronto, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)

	got, err := ics.ParseLocal("2025-08-23 17:00:00", toronto)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 23, 21, 0, 0, 0, time.UTC), got)

	got, err = ics.ParseLocal("2025-08-23 17:00:00", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 23, 17, 0, 0, 0, time.UTC), got)

	_, err = ics.ParseLocal("23/08/2025", time.UTC)
	assert.Error(t, err)
}

func TestTrigger(t *testing.T) {
	assert.Equal(t, "-P2D", ics.Trigger(48*time.Hour))
	assert.Equal(t, "-PT3H", ics.Trigger(3*time.Hour))
	assert.Equal(t, "-PT90M", ics.Trigger(90*time.Minute))
}

func TestNewUID(t *testing.T) {
	a, b := ics.NewUID(), ics.NewUID()

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "@nick-and-tash-wedding"))
}
