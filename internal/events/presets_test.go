package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddinginvites/internal/events"
	"weddinginvites/internal/render"
)

func TestPresets_Integrity(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)

	for _, key := range events.Keys() {
		t.Run(key, func(t *testing.T) {
			cfg, err := events.Lookup(key)
			require.NoError(t, err)

			assert.Equal(t, key, cfg.Key)
			assert.NotEmpty(t, cfg.Title)
			assert.NotEmpty(t, cfg.Subject)
			assert.NotEmpty(t, cfg.ICSPath)
			assert.True(t, r.Has(cfg.Template), "template %s must be embedded", cfg.Template)

			ev, err := events.Event(cfg, "uid-1")
			require.NoError(t, err)
			assert.True(t, ev.EndTime.After(ev.StartTime), "event must end after it starts")
			assert.Equal(t, time.UTC, ev.StartTime.Location())
		})
	}
}

func TestLookup_Variants(t *testing.T) {
	invite, err := events.Lookup(events.CanadaInvite)
	require.NoError(t, err)
	assert.True(t, invite.CreateInvites)
	assert.True(t, invite.ICSPerInvite)

	australia, err := events.Lookup(events.AustraliaSaveTheDate)
	require.NoError(t, err)
	assert.False(t, australia.CreateInvites)
	assert.False(t, australia.ICSPerInvite)
	assert.Equal(t, "Australia", australia.InvitedLocation)

	australia.GoogleExtra["mutated"] = "yes"
	again, err := events.Lookup(events.AustraliaSaveTheDate)
	require.NoError(t, err)
	assert.NotContains(t, again.GoogleExtra, "mutated", "Lookup returns copies")
}

func TestLookup_Unknown(t *testing.T) {
	_, err := events.Lookup("paris-elopement")

	require.Error(t, err)
	assert.Contains(t, err.Error(), events.CanadaInvite)
}

func TestEvent_CanadaTimes(t *testing.T) {
	cfg, err := events.Lookup(events.CanadaInvite)
	require.NoError(t, err)

	ev, err := events.Event(cfg, "uid-1")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 23, 21, 0, 0, 0, time.UTC), ev.StartTime)
	assert.Equal(t, time.Date(2025, 8, 24, 4, 0, 0, 0, time.UTC), ev.EndTime)
	assert.Equal(t, events.DefaultReminder, ev.Reminder)
	assert.Equal(t, "uid-1", ev.UID)
}
