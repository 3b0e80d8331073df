// Package report writes the RSVP summary as an xlsx workbook and derives
// headline statistics from it.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"weddinginvites/internal/models"
)

// Headers is the column order of every sheet.
var Headers = []string{"Guest Name", "RSVP Status", "Invited Location", "Invite ID"}

const defaultSheet = "Sheet1"

// FileName returns the timestamped report name.
func FileName(now time.Time) string {
	return fmt.Sprintf("wedding_rsvp_report_%s.xlsx", now.Format("20060102_150405"))
}

// Write saves one sheet per RSVP category to path.
func Write(path string, summary models.RSVPSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for _, category := range models.RSVPCategories {
		if _, err := f.NewSheet(category); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", category, err)
		}
		if err := writeSheet(f, category, summary[category], headerStyle); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	f.SetActiveSheet(0)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, entries []models.RSVPEntry, headerStyle int) error {
	widths := make([]int, len(Headers))
	for i, h := range Headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	if err := f.SetSheetRow(sheet, "A1", &Headers); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}
	last, _ := excelize.ColumnNumberToName(len(Headers))
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}

	for i, e := range entries {
		values := []string{e.Name, e.Status, e.Location, e.InviteID}
		for j, v := range values {
			if n := utf8.RuneCountInString(v); n > widths[j] {
				widths[j] = n
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(w+2)); err != nil {
			return fmt.Errorf("failed to size column %s of %s: %w", col, sheet, err)
		}
	}
	return nil
}

// Count is a labelled tally.
type Count struct {
	Label string
	Count int
}

// Stats summarises RSVP responses.
type Stats struct {
	Total        int
	Yes          int
	No           int
	NotResponded int
	// ByStatus breaks down the attending guests by their chosen events.
	ByStatus []Count
}

// Percent returns n as a percentage of Total.
func (s Stats) Percent(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}

// ResponseRate is the share of guests who answered either way.
func (s Stats) ResponseRate() float64 {
	return s.Percent(s.Yes + s.No)
}

// Summarize computes Stats from a summary.
func Summarize(summary models.RSVPSummary) Stats {
	s := Stats{
		Yes:          len(summary[models.RSVPYes]),
		No:           len(summary[models.RSVPNo]),
		NotResponded: len(summary[models.RSVPNotResponded]),
	}
	s.Total = s.Yes + s.No + s.NotResponded

	counts := make(map[string]int)
	for _, e := range summary[models.RSVPYes] {
		label := e.Status
		if label == "" {
			label = "Unknown"
		}
		counts[label]++
	}
	for label, n := range counts {
		s.ByStatus = append(s.ByStatus, Count{Label: label, Count: n})
	}
	sort.Slice(s.ByStatus, func(i, j int) bool {
		if s.ByStatus[i].Count != s.ByStatus[j].Count {
			return s.ByStatus[i].Count > s.ByStatus[j].Count
		}
		return s.ByStatus[i].Label < s.ByStatus[j].Label
	})
	return s
}

// Print writes a human readable summary of s.
func Print(w io.Writer, s Stats) {
	fmt.Fprintln(w, "\n===== WEDDING RSVP SUMMARY =====")
	fmt.Fprintf(w, "Total Guests: %d\n", s.Total)
	fmt.Fprintf(w, "Attending: %d (%.1f%%)\n", s.Yes, s.Percent(s.Yes))
	fmt.Fprintf(w, "Not Attending: %d (%.1f%%)\n", s.No, s.Percent(s.No))
	fmt.Fprintf(w, "Not Responded: %d (%.1f%%)\n", s.NotResponded, s.Percent(s.NotResponded))
	fmt.Fprintf(w, "Response Rate: %.1f%%\n", s.ResponseRate())

	if len(s.ByStatus) > 0 {
		fmt.Fprintln(w, "\n----- Attending By Event -----")
		for _, c := range s.ByStatus {
			fmt.Fprintf(w, "%s: %d guests (%.1f%%)\n", c.Label, c.Count, float64(c.Count)/float64(s.Yes)*100)
		}
	}
	fmt.Fprintln(w, "================================")
}
