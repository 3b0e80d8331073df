// Package render formats greetings and renders the HTML message bodies.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrEmptyGuestList is returned when a greeting is requested for nobody.
var ErrEmptyGuestList = errors.New("empty guest list")

// PlusOneText is the optional clause shown to households given a plus one.
const PlusOneText = "You are welcome to bring a plus one to our celebration!"

// FormatGreeting joins names into a natural greeting:
// "A", "A and B", "A, B, and C".
func FormatGreeting(names []string) (string, error) {
	switch len(names) {
	case 0:
		return "", ErrEmptyGuestList
	case 1:
		return names[0], nil
	case 2:
		return names[0] + " and " + names[1], nil
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1], nil
	}
}

// Substitutions is the fixed set of values a message template may use.
type Substitutions struct {
	Greeting     string
	Title        string
	Date         string
	InviteLink   string
	GoogleLink   string
	DownloadLink string
	ImageCID     string
	PlusOne      string // empty unless the household has a plus one
}

// WithPlusOne sets the plus-one clause when given is true and clears it otherwise.
func (s Substitutions) WithPlusOne(given bool) Substitutions {
	s.PlusOne = ""
	if given {
		s.PlusOne = PlusOneText
	}
	return s
}

// Renderer renders the embedded message templates.
type Renderer struct {
	templates *template.Template
}

// New parses every embedded template.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse message templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Has reports whether a template with the given name exists.
func (r *Renderer) Has(name string) bool {
	return r.templates.Lookup(name) != nil
}

// Render executes the named template with the given substitutions.
func (r *Renderer) Render(name string, subs Substitutions) (string, error) {
	tmpl := r.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown message template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, subs); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
