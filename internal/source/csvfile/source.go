package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Source reads records from a local CSV file with a header row. The file is
// re-read on every fetch, so edits show up on the next cycle just like a
// live spreadsheet.
type Source struct {
	logger contracts.Logger
	path   string
}

// New creates a CSV source for the given path.
func New(logger contracts.Logger, path string) *Source {
	return &Source{logger: logger, path: path}
}

// Fetch reads the whole file and returns the current row set.
func (s *Source) Fetch(ctx context.Context) ([]contracts.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows are padded below
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	records := make([]contracts.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(contracts.Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				record[name] = strings.TrimSpace(row[i])
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Close releases the source.
func (s *Source) Close() error { return nil }
