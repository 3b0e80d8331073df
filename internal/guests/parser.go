// Package guests turns free-text guest lists into structured guest records.
package guests

import (
	"fmt"
	"strings"

	"weddinginvites/internal/models"
)

// InvalidGuestNameError is returned when a guest name is empty after trimming.
type InvalidGuestNameError struct {
	Position int    // zero-based position in the group
	Raw      string // the offending input
}

func (e *InvalidGuestNameError) Error() string {
	return fmt.Sprintf("invalid guest name at position %d: %q", e.Position, e.Raw)
}

// Parse converts the display names of one household into guest records.
//
// A single-token name borrows the group's surname when exactly one distinct
// explicit surname appears among the multi-token names; otherwise it gets an
// empty last name. Multi-token names always keep their own surname.
func Parse(names []string) ([]models.GuestRecord, error) {
	tokenized := make([][]string, len(names))
	surnames := make(map[string]struct{})

	for i, name := range names {
		parts := strings.Fields(name)
		if len(parts) == 0 {
			return nil, &InvalidGuestNameError{Position: i, Raw: name}
		}
		tokenized[i] = parts
		if len(parts) > 1 {
			surnames[strings.Join(parts[1:], " ")] = struct{}{}
		}
	}

	shared := ""
	if len(surnames) == 1 {
		for s := range surnames {
			shared = s
		}
	}

	records := make([]models.GuestRecord, 0, len(names))
	for _, parts := range tokenized {
		last := shared
		if len(parts) > 1 {
			last = strings.Join(parts[1:], " ")
		}
		records = append(records, models.GuestRecord{
			FirstName: parts[0],
			LastName:  last,
		})
	}
	return records, nil
}

// SplitList splits a comma-separated cell into trimmed entries.
// Empty entries are kept so that Parse can reject them.
func SplitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	parts := strings.Split(cell, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// PlusOne reports whether a plus-one cell is truthy ("yes", any case).
func PlusOne(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), "yes")
}
