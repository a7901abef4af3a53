package contracts

import "time"

// SheetConfig holds configuration for the Google Sheets record source.
type SheetConfig struct {
	SpreadsheetID   string // ID of the spreadsheet to poll.
	CredentialsFile string // Path to the service-account secrets JSON file.
	ReadRange       string // A1-notation range to read; defaults to the first sheet.
}

// SinkConfig holds configuration for the MIDI output sink.
type SinkConfig struct {
	ClientName string // Name of the MIDI client as seen by the DAW.
	PortName   string // Preferred output port; first available when empty.
}

// PlayerOptions defines the configuration options for the player.
type PlayerOptions struct {
	Logger          Logger        // Logger for logging events and errors.
	LogLevel        LogLevel      // Level of logging to use.
	ReceiveInterval time.Duration // Coarse interval between source fetches.
	SendInterval    time.Duration // Fine poll interval of the dispatch loop.
	Sheet           *SheetConfig  // Google Sheets source configuration.
	CSVFile         string        // Local CSV source path; alternative to Sheet.
	Sink            *SinkConfig   // MIDI sink configuration.
	Source          RecordSource  // Optional explicit source; overrides Sheet/CSVFile.
	EventSink       EventSink     // Optional explicit sink; overrides the OS factory.
}

// Option is a function that modifies PlayerOptions.
type Option func(*PlayerOptions)

// WithLogger sets the logger for the player.
func WithLogger(l Logger) Option {
	return func(opts *PlayerOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the player.
func WithLogLevel(level LogLevel) Option {
	return func(opts *PlayerOptions) {
		opts.LogLevel = level
	}
}

// WithReceiveInterval sets the interval between source fetches.
func WithReceiveInterval(d time.Duration) Option {
	return func(opts *PlayerOptions) {
		opts.ReceiveInterval = d
	}
}

// WithSendInterval sets the poll interval of the dispatch loop.
func WithSendInterval(d time.Duration) Option {
	return func(opts *PlayerOptions) {
		opts.SendInterval = d
	}
}

// WithSheet sets the Google Sheets source configuration.
func WithSheet(cfg SheetConfig) Option {
	return func(opts *PlayerOptions) {
		opts.Sheet = &cfg
	}
}

// WithCSVFile sets a local CSV file as the record source.
func WithCSVFile(path string) Option {
	return func(opts *PlayerOptions) {
		opts.CSVFile = path
	}
}

// WithSinkConfig sets the MIDI sink configuration.
func WithSinkConfig(cfg SinkConfig) Option {
	return func(opts *PlayerOptions) {
		opts.Sink = &cfg
	}
}

// WithRecordSource sets an explicit record source, bypassing Sheet/CSVFile.
func WithRecordSource(src RecordSource) Option {
	return func(opts *PlayerOptions) {
		opts.Source = src
	}
}

// WithEventSink sets an explicit event sink, bypassing the OS factory.
func WithEventSink(sink EventSink) Option {
	return func(opts *PlayerOptions) {
		opts.EventSink = sink
	}
}
