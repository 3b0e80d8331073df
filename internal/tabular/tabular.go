// Package tabular reads guest rows from CSV and writes the dispatch result log.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"weddinginvites/internal/models"
)

// Input column names, matched case-insensitively.
const (
	ColumnGuests  = "Guests"
	ColumnEmail   = "email"
	ColumnPlusOne = "plus one"
)

// ResultHeader is the column order of the result log.
var ResultHeader = []string{
	"guests", "emails", "invite_id", "invite_link", "google_link",
	"download_link", "email_sent", "error", "timestamp",
}

// ReadRows parses CSV guest rows. The Guests and email columns are required;
// plus one is optional.
func ReadRows(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	guestsCol, ok := index[strings.ToLower(ColumnGuests)]
	if !ok {
		return nil, fmt.Errorf("csv is missing the %q column", ColumnGuests)
	}
	emailCol, ok := index[strings.ToLower(ColumnEmail)]
	if !ok {
		return nil, fmt.Errorf("csv is missing the %q column", ColumnEmail)
	}
	plusOneCol, hasPlusOne := index[ColumnPlusOne]

	var rows []models.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(rows)+1, err)
		}
		row := models.Row{
			Index:  len(rows),
			Guests: field(record, guestsCol),
			Emails: field(record, emailCol),
		}
		if hasPlusOne {
			row.PlusOne = field(record, plusOneCol)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadRowsFile reads guest rows from a CSV file.
func ReadRowsFile(path string) ([]models.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRows(f)
}

// WriteResults writes the result log as CSV.
func WriteResults(w io.Writer, results []models.DispatchResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ResultHeader); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Guests,
			strings.Join(r.Emails, ", "),
			r.InviteID,
			r.InviteLink,
			r.GoogleLink,
			r.DownloadLink,
			strconv.FormatBool(r.EmailSent),
			r.Error,
			r.Timestamp.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteResultsFile writes the result log to path, creating parent directories.
func WriteResultsFile(path string, results []models.DispatchResult) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteResults(f, results)
}

func field(record []string, i int) string {
	if i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}
