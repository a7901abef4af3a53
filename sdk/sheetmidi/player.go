package sheetmidi

import (
	"context"
	"errors"

	"go.uber.org/multierr"

	"github.com/sheetmidi/sheetmidi/internal/schedule"
	"github.com/sheetmidi/sheetmidi/internal/source/csvfile"
	"github.com/sheetmidi/sheetmidi/internal/source/gsheets"
	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// ErrNoSource is returned when neither a sheet, a CSV file, nor an explicit
// record source was configured.
var ErrNoSource = errors.New("no record source configured")

// Player wires a record source to a MIDI sink through the shared event
// queue. Construct with NewPlayer, then call Run; the player streams until
// ctx is canceled or the sink fails.
type Player struct {
	logger contracts.Logger
	source contracts.RecordSource
	sink   contracts.EventSink
	queue  *schedule.EventQueue

	options contracts.PlayerOptions
}

// NewPlayer creates a new player with the specified options.
// It applies default options and initializes the source and sink.
//
// ctx context.Context: Used for source authentication during setup.
// opts ...contracts.Option: A variadic list of option functions to customize the player configuration.
//
// Returns:
//   - *Player: An instance of the player.
//   - error: An error, if any occurred during the creation of the player.
func NewPlayer(ctx context.Context, opts ...contracts.Option) (*Player, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	source, err := newRecordSource(ctx, &options)
	if err != nil {
		return nil, err
	}

	sink, err := newEventSink(&options)
	if err != nil {
		source.Close()
		return nil, err
	}

	return &Player{
		logger:  options.Logger,
		source:  source,
		sink:    sink,
		queue:   schedule.NewEventQueue(),
		options: options,
	}, nil
}

// newRecordSource resolves the configured record source. An explicit source
// wins over the sheet configuration, which wins over a CSV path.
func newRecordSource(ctx context.Context, options *contracts.PlayerOptions) (contracts.RecordSource, error) {
	switch {
	case options.Source != nil:
		return options.Source, nil
	case options.Sheet != nil:
		return gsheets.New(ctx, options.Logger, options.Sheet)
	case options.CSVFile != "":
		return csvfile.New(options.Logger, options.CSVFile), nil
	}
	return nil, ErrNoSource
}

// Run starts the fetch and dispatch loops and blocks until ctx is canceled
// or the sink fails. Both loops share one clock anchored here, so every fire
// time is relative to the moment playback began.
func (p *Player) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	now := schedule.NewRunClock()
	fetcher := schedule.NewFetcher(p.source, p.queue, p.logger, p.options.ReceiveInterval, now)
	dispatcher := schedule.NewDispatcher(p.queue, p.sink, p.logger, p.options.SendInterval, now)

	p.logger.Info("listening")

	errc := make(chan error, 2)
	go func() { errc <- fetcher.Run(ctx) }()
	go func() { errc <- dispatcher.Run(ctx) }()

	err := <-errc
	cancel()
	<-errc
	return err
}

// Devices lists the sink's available output destinations.
func (p *Player) Devices() ([]contracts.DeviceInfo, error) {
	return p.sink.Devices()
}

// Close releases the source and the sink.
func (p *Player) Close() error {
	return multierr.Append(p.source.Close(), p.sink.Close())
}
