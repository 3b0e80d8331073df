package invites_test

import (
	"net/url"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddinginvites/internal/invites"
	"weddinginvites/internal/models"
)

func testLinker() invites.Linker {
	return invites.Linker{
		Website:      "https://wedding.example",
		APIBase:      "https://api.wedding.example",
		ICSPath:      "/api/download-ics/",
		ICSPerInvite: true,
	}
}

func TestInviteLink_RoundTrip(t *testing.T) {
	l := testLinker()
	for _, id := range []string{"65a1f0c2e4b0a1b2c3d4e5f6", "abc", "x-1_2"} {
		link := l.InviteLink(id)
		assert.Equal(t, link, l.InviteLink(id), "must be deterministic")

		u, err := url.Parse(link)
		require.NoError(t, err)
		assert.Equal(t, id, path.Base(u.Path))
	}
	assert.Equal(t, "https://wedding.example/invite/abc", l.InviteLink("abc"))
}

func TestCalendarLinks(t *testing.T) {
	l := testLinker()

	google, download := l.CalendarLinks(
		"Nicholas & Natasha's Wedding",
		"20250823T210000Z", "20250824T040000Z",
		"600 Hwy 7, Richmond Hill",
		"Join us!\n\nSee you there",
		"abc123",
	)

	assert.Equal(t, "https://api.wedding.example/api/download-ics/abc123", download)

	u, err := url.Parse(google)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Nicholas & Natasha's Wedding", q.Get("text"))
	assert.Equal(t, "20250823T210000Z/20250824T040000Z", q.Get("dates"))
	assert.Equal(t, "600 Hwy 7, Richmond Hill", q.Get("location"))
	assert.Equal(t, "Join us!\n\nSee you there", q.Get("details"))

	again, _ := l.CalendarLinks("Nicholas & Natasha's Wedding", "20250823T210000Z", "20250824T040000Z",
		"600 Hwy 7, Richmond Hill", "Join us!\n\nSee you there", "abc123")
	assert.Equal(t, google, again, "parameter order must be stable")
	assert.Contains(t, google, "action=TEMPLATE&dates=", "keys are sorted")
}

func TestCalendarLinks_GlobalEndpoint(t *testing.T) {
	l := invites.Linker{
		APIBase:     "https://api.wedding.example/",
		ICSPath:     "/api/download-australia-ics/",
		GoogleExtra: map[string]string{"guestsCanInviteOthers": "false"},
	}
	l = invites.NewLinker("https://wedding.example", l.APIBase, models.EventConfig{
		ICSPath:     l.ICSPath,
		GoogleExtra: l.GoogleExtra,
	})

	google, download := l.CalendarLinks("T", "A", "B", "L", "D", "ignored")

	assert.Equal(t, "https://api.wedding.example/api/download-australia-ics/", download)
	u, err := url.Parse(google)
	require.NoError(t, err)
	assert.Equal(t, "false", u.Query().Get("guestsCanInviteOthers"))
}

func TestLinker_Build(t *testing.T) {
	l := testLinker()
	event := models.EventConfig{
		Title:            "Wedding",
		StartUTC:         "20250823T210000Z",
		EndUTC:           "20250824T040000Z",
		Location:         "Toronto",
		Description:      "Join us!",
		AppendInviteLink: true,
	}

	t.Run("WithInvite", func(t *testing.T) {
		links := l.Build(event, "id42")

		assert.Equal(t, "https://wedding.example/invite/id42", links.Invite)
		assert.Equal(t, "https://api.wedding.example/api/download-ics/id42", links.Download)
		u, err := url.Parse(links.Google)
		require.NoError(t, err)
		assert.Equal(t, "Join us!\n\nLink to invite: https://wedding.example/invite/id42", u.Query().Get("details"))
	})

	t.Run("WithoutInvite", func(t *testing.T) {
		links := l.Build(event, "")

		assert.Empty(t, links.Invite)
		u, err := url.Parse(links.Google)
		require.NoError(t, err)
		assert.Equal(t, "Join us!", u.Query().Get("details"))
	})
}
