package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Dispatcher drains due events from the queue in fire-time order and emits
// their MIDI effect, deriving the follow-up events as it goes. On every due
// Start it draws once against the note's probability; the loop-renewal Start
// is inserted regardless of the draw so a miss never shifts the note's phase.
type Dispatcher struct {
	queue    *EventQueue
	sink     contracts.EventSink
	logger   contracts.Logger
	interval time.Duration
	now      Clock
	rand     func() float64

	// sounding counts emitted note ons per note that still await their note
	// off. A Stop arriving with a zero count is a merge-protocol bug.
	sounding map[Note]int
}

// NewDispatcher creates a dispatcher polling the queue every interval.
func NewDispatcher(queue *EventQueue, sink contracts.EventSink, logger contracts.Logger, interval time.Duration, now Clock) *Dispatcher {
	return &Dispatcher{
		queue:    queue,
		sink:     sink,
		logger:   logger,
		interval: interval,
		now:      now,
		rand:     rand.Float64,
		sounding: make(map[Note]int),
	}
}

// Run dispatches events until ctx is canceled or the sink fails. A sink
// failure is fatal: there is no recovery for a broken output device
// mid-stream, so the error propagates to the caller.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		ev, err := d.queue.PopMin(ctx)
		if err != nil {
			return err
		}
		if d.now() >= ev.FireAt {
			if err := d.fire(ev); err != nil {
				return err
			}
			continue
		}

		// Not due yet: put it back and poll again shortly. The poll interval
		// bounds the latency of every fired event.
		d.queue.Insert(ev)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.interval):
		}
	}
}

// fire realizes one due event and inserts whatever follows from it.
//
// A fetch cycle can run between PopMin and the renewal insert below; its
// drain-and-reinsert then leaves two pending starts for this note until the
// next cycle's drain replaces both with one.
func (d *Dispatcher) fire(ev ScheduledEvent) error {
	switch ev.Kind {
	case Stop:
		// Releases are unconditional: no probability gate, and the Note
		// captured at Start time rides along so the note off matches the
		// note on that was actually sent.
		if d.sounding[ev.Note] > 0 {
			d.sounding[ev.Note]--
		} else {
			d.logger.Error("stop event with no sounding note",
				d.logger.Field().Int("pitch", ev.Note.Pitch),
				d.logger.Field().Float64("fire_at", ev.FireAt))
		}
		if err := d.sink.Emit(noteOff(ev.Note)); err != nil {
			return fmt.Errorf("emit note off: %w", err)
		}
		d.logger.Debug("note off",
			d.logger.Field().Int("pitch", ev.Note.Pitch),
			d.logger.Field().Float64("fire_at", ev.FireAt))

	case Start:
		if d.rand() < ev.Note.Probability {
			if err := d.sink.Emit(noteOn(ev.Note)); err != nil {
				return fmt.Errorf("emit note on: %w", err)
			}
			d.sounding[ev.Note]++
			d.queue.Insert(ScheduledEvent{
				FireAt: ev.FireAt + ev.Note.Duration,
				Kind:   Stop,
				Note:   ev.Note,
			})
			d.logger.Debug("note on",
				d.logger.Field().Int("pitch", ev.Note.Pitch),
				d.logger.Field().Float64("fire_at", ev.FireAt))
		}
		// The loop continues even on a miss.
		d.queue.Insert(ScheduledEvent{
			FireAt: ev.FireAt + ev.Note.Loop,
			Kind:   Start,
			Note:   ev.Note,
		})
	}
	return nil
}

func noteOn(n Note) contracts.MIDI {
	return contracts.MIDI{
		Command:  byte(contracts.NoteOn) + byte(n.Channel-1),
		Note:     byte(n.Pitch),
		Velocity: clampValue(n.Velocity),
	}
}

func noteOff(n Note) contracts.MIDI {
	return contracts.MIDI{
		Command:  byte(contracts.NoteOff) + byte(n.Channel-1),
		Note:     byte(n.Pitch),
		Velocity: clampValue(n.Velocity),
	}
}

func clampValue(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return byte(v)
}
