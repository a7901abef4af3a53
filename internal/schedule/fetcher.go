package schedule

import (
	"context"
	"math"
	"time"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Fetcher keeps the queue's Start events synchronized with the external
// table. Each cycle it fetches the full row set, discards every previously
// scheduled Start, and inserts a fresh forward-looking Start per parsed row.
// Pending Stops are never touched: a note already sounding still receives its
// release even if its row was edited or deleted.
type Fetcher struct {
	source   contracts.RecordSource
	queue    *EventQueue
	logger   contracts.Logger
	interval time.Duration
	now      Clock
}

// NewFetcher creates a fetcher polling source every interval.
func NewFetcher(source contracts.RecordSource, queue *EventQueue, logger contracts.Logger, interval time.Duration, now Clock) *Fetcher {
	return &Fetcher{
		source:   source,
		queue:    queue,
		logger:   logger,
		interval: interval,
		now:      now,
	}
}

// Run fetches immediately, then on every tick until ctx is canceled.
func (f *Fetcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		f.cycle(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// cycle performs one fetch-and-merge pass. Transport failures skip the cycle;
// a bad row is logged and skipped without aborting the rest of the sheet.
func (f *Fetcher) cycle(ctx context.Context) {
	records, err := f.source.Fetch(ctx)
	if err != nil {
		f.logger.Warn("fetch failed, retrying next cycle",
			f.logger.Field().Error("error", err))
		return
	}

	// Merge protocol: obsolete Starts vanish, in-flight Stops survive.
	dropped := f.queue.DrainAndFilter(func(ev ScheduledEvent) bool {
		return ev.Kind == Stop
	})

	parseStart := time.Now()
	added, skipped := 0, 0
	for _, record := range records {
		note, err := NoteFromRecord(record)
		if err != nil {
			f.logger.Debug("row skipped",
				f.logger.Field().Error("error", err))
			skipped++
			continue
		}
		fireAt := nextOnset(note, f.now())
		f.queue.Insert(ScheduledEvent{FireAt: fireAt, Kind: Start, Note: note})
		added++
		f.logger.Debug("note scheduled",
			f.logger.Field().Int("pitch", note.Pitch),
			f.logger.Field().Float64("fire_at", fireAt))
	}
	f.logger.Info("sheet parsed",
		f.logger.Field().Float64("ms", float64(time.Since(parseStart).Microseconds())/1000),
		f.logger.Field().Int("notes", added),
		f.logger.Field().Int("skipped", skipped),
		f.logger.Field().Int("cleared", dropped))
}

// nextOnset returns the smallest fire time of the form k*loop + (onset mod
// loop) that is >= t. The schedule only ever looks forward, so a changed loop
// or onset takes effect at the next cycle boundary rather than in the past.
func nextOnset(n Note, t float64) float64 {
	phase := math.Mod(n.Onset, n.Loop)
	if phase < 0 {
		phase += n.Loop
	}
	fireAt := math.Floor(t/n.Loop)*n.Loop + phase
	for fireAt < t {
		fireAt += n.Loop
	}
	return fireAt
}
