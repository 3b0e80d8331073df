package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddinginvites/internal/render"
)

func TestFormatGreeting(t *testing.T) {
	tests := []struct {
		input []string
		want  string
	}{
		{[]string{"Amy"}, "Amy"},
		{[]string{"Amy", "Bo"}, "Amy and Bo"},
		{[]string{"Amy", "Bo", "Cy"}, "Amy, Bo, and Cy"},
		{[]string{"Amy", "Bo", "Cy", "Di"}, "Amy, Bo, Cy, and Di"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := render.FormatGreeting(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatGreeting_Empty(t *testing.T) {
	_, err := render.FormatGreeting(nil)
	assert.ErrorIs(t, err, render.ErrEmptyGuestList)
}

func TestSubstitutions_WithPlusOne(t *testing.T) {
	subs := render.Substitutions{Greeting: "Amy"}

	assert.Equal(t, render.PlusOneText, subs.WithPlusOne(true).PlusOne)
	assert.Empty(t, subs.WithPlusOne(true).WithPlusOne(false).PlusOne)
	assert.Empty(t, subs.PlusOne, "receiver is not modified")
}

func TestRender_Invite(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)

	html, err := r.Render("invite.html", render.Substitutions{
		Greeting:     "Jane Smith and Bob",
		Title:        "Nicholas & Natasha",
		Date:         "23 AUGUST 2025 | 5:00 PM EDT",
		InviteLink:   "https://wedding.example/invite/abc123",
		GoogleLink:   "https://www.google.com/calendar/render?action=TEMPLATE&text=Wedding",
		DownloadLink: "https://api.wedding.example/api/download-ics/abc123",
		ImageCID:     "wedding_photo",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "Dear Jane Smith and Bob,")
	assert.Contains(t, html, `href="https://wedding.example/invite/abc123"`)
	assert.Contains(t, html, `href="https://api.wedding.example/api/download-ics/abc123"`)
	assert.Contains(t, html, `src="cid:wedding_photo"`)
	assert.Contains(t, html, "action=TEMPLATE&amp;text=Wedding")
	assert.Contains(t, html, "Nicholas &amp; Natasha")
	assert.NotContains(t, html, render.PlusOneText)
}

func TestRender_PlusOneClause(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)

	base := render.Substitutions{Greeting: "Amy", InviteLink: "https://wedding.example/invite/x"}

	with, err := r.Render("save_the_date_canada.html", base.WithPlusOne(true))
	require.NoError(t, err)
	assert.Contains(t, with, render.PlusOneText)

	without, err := r.Render("save_the_date_canada.html", base.WithPlusOne(false))
	require.NoError(t, err)
	assert.NotContains(t, without, render.PlusOneText)
}

func TestRender_EscapesGreeting(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)

	html, err := r.Render("save_the_date_australia.html", render.Substitutions{Greeting: "<b>Amy</b>"})

	require.NoError(t, err)
	assert.Contains(t, html, "&lt;b&gt;Amy&lt;/b&gt;")
	assert.NotContains(t, html, "cid:", "image is omitted without a content id")
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := render.New()
	require.NoError(t, err)

	assert.False(t, r.Has("missing.html"))
	_, err = r.Render("missing.html", render.Substitutions{})
	assert.Error(t, err)
}
