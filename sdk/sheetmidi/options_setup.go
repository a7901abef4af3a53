package sheetmidi

import (
	"time"

	"github.com/sheetmidi/sheetmidi/internal/logger"
	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Defaults applied when options are not explicitly provided.
const (
	defaultClientName      = "sheetmidi"
	defaultReceiveInterval = 2 * time.Second
	defaultSendInterval    = 2 * time.Millisecond
)

// applyDefaultOptions sets default values for PlayerOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify PlayerOptions.
//
// Returns:
//   - contracts.PlayerOptions: A structure containing the finalized player options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.PlayerOptions, error) {
	options := &contracts.PlayerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Set defaults if options are not provided
	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.ReceiveInterval <= 0 {
		options.ReceiveInterval = defaultReceiveInterval
	}
	if options.SendInterval <= 0 {
		options.SendInterval = defaultSendInterval
	}
	if options.Sink == nil {
		options.Sink = &contracts.SinkConfig{}
	}
	if options.Sink.ClientName == "" {
		options.Sink.ClientName = defaultClientName
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
