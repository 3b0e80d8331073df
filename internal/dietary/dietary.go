// Package dietary exports guests with real dietary requirements from the
// invite store's document database.
package dietary

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"weddinginvites/internal/models"
)

// DefaultExclude lists normalized answers that mean "no requirement".
var DefaultExclude = []string{"no", "none", "na", "nil", "nope", "notattending", "norestrictions"}

// Header is the column order of the export.
var Header = []string{"firstName", "lastName", "dietaryRequirements"}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

// InviteSource yields every stored invite.
type InviteSource interface {
	Invites(ctx context.Context) ([]models.StoredInvite, error)
}

// Normalizer decides whether a free-text answer is a real requirement.
type Normalizer struct {
	exclude map[string]struct{}
}

// NewNormalizer builds a Normalizer. An empty list falls back to DefaultExclude.
func NewNormalizer(exclude []string) Normalizer {
	if len(exclude) == 0 {
		exclude = DefaultExclude
	}
	n := Normalizer{exclude: make(map[string]struct{}, len(exclude))}
	for _, e := range exclude {
		if c := Clean(e); c != "" {
			n.exclude[c] = struct{}{}
		}
	}
	return n
}

// Clean strips punctuation and spaces and lowercases value.
func Clean(value string) string {
	cleaned := nonAlphanumeric.ReplaceAllString(value, "")
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cleaned), " ", ""))
}

// IsMeaningful reports whether value states an actual requirement.
func (n Normalizer) IsMeaningful(value string) bool {
	c := Clean(value)
	if c == "" {
		return false
	}
	_, excluded := n.exclude[c]
	return !excluded
}

// Filter flattens invites into the guests with meaningful requirements.
func (n Normalizer) Filter(invites []models.StoredInvite) []models.GuestRecord {
	var out []models.GuestRecord
	for _, inv := range invites {
		for _, g := range inv.Guests {
			if n.IsMeaningful(g.DietaryRequirements) {
				out = append(out, g)
			}
		}
	}
	return out
}

// Write writes guests as CSV.
func Write(w io.Writer, guests []models.GuestRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, g := range guests {
		if err := writer.Write([]string{g.FirstName, g.LastName, g.DietaryRequirements}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Export reads all invites from src and writes the filtered guests to path.
// It returns the number of guests exported.
func Export(ctx context.Context, src InviteSource, n Normalizer, path string) (count int, err error) {
	invites, err := src.Invites(ctx)
	if err != nil {
		return 0, err
	}
	guests := n.Filter(invites)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Write(f, guests); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(guests), nil
}
