package workflow

import "weddinginvites/internal/models"

// Summary counts the outcomes of a mailing run.
type Summary struct {
	Total  int
	Sent   int
	Failed int
}

// Summarize tallies results. Dry-run rows are neither sent nor failed.
func Summarize(results []models.DispatchResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Failed():
			s.Failed++
		case r.EmailSent:
			s.Sent++
		}
	}
	return s
}
