package gsheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Error definitions for Google Sheets source issues.
var (
	ErrMissingSpreadsheetID = errors.New("missing spreadsheet ID")
	ErrMissingCredentials   = errors.New("missing credentials file")
)

// defaultReadRange covers the first sheet when no range is configured.
const defaultReadRange = "A1:Z1000"

// Source polls one Google spreadsheet through the Sheets values API. The
// first row is the header; every following row becomes one Record keyed by
// it. Authentication uses a service-account secrets file.
type Source struct {
	logger        contracts.Logger
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

// New creates a Sheets source from the given configuration.
func New(ctx context.Context, logger contracts.Logger, cfg *contracts.SheetConfig) (*Source, error) {
	if cfg.SpreadsheetID == "" {
		return nil, ErrMissingSpreadsheetID
	}
	if cfg.CredentialsFile == "" {
		return nil, ErrMissingCredentials
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	readRange := cfg.ReadRange
	if readRange == "" {
		readRange = defaultReadRange
	}

	logger.Info("spreadsheet source ready",
		logger.Field().String("url", "https://docs.google.com/spreadsheets/d/"+cfg.SpreadsheetID))

	return &Source{
		logger:        logger,
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     readRange,
	}, nil
}

// Fetch reads the configured range and returns the current row set.
func (s *Source) Fetch(ctx context.Context) ([]contracts.Record, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch values: %w", err)
	}
	return recordsFromRows(resp.Values), nil
}

// Close releases the source. The Sheets client holds no long-lived
// connection state worth tearing down explicitly.
func (s *Source) Close() error { return nil }

// recordsFromRows turns a header row plus data rows into records. Cells past
// the header width are dropped; rows shorter than the header are padded with
// empty values, which the parser treats as absent.
func recordsFromRows(rows [][]interface{}) []contracts.Record {
	if len(rows) < 2 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	records := make([]contracts.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(contracts.Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				record[name] = strings.TrimSpace(fmt.Sprint(row[i]))
			} else {
				record[name] = ""
			}
		}
		records = append(records, record)
	}
	return records
}
