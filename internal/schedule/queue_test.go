package schedule

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEventQueueOrdering(t *testing.T) {
	q := NewEventQueue()
	q.Insert(ScheduledEvent{FireAt: 3.0, Kind: Start})
	q.Insert(ScheduledEvent{FireAt: 1.0, Kind: Start})
	q.Insert(ScheduledEvent{FireAt: 2.0, Kind: Stop})

	ctx := context.Background()
	for _, want := range []float64{1.0, 2.0, 3.0} {
		ev, err := q.PopMin(ctx)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		if ev.FireAt != want {
			t.Fatalf("fire time = %v, want %v", ev.FireAt, want)
		}
	}
}

func TestEventQueueFIFOTies(t *testing.T) {
	q := NewEventQueue()
	for pitch := 0; pitch < 8; pitch++ {
		q.Insert(ScheduledEvent{FireAt: 1.0, Kind: Start, Note: Note{Pitch: pitch}})
	}

	ctx := context.Background()
	for pitch := 0; pitch < 8; pitch++ {
		ev, err := q.PopMin(ctx)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		if ev.Note.Pitch != pitch {
			t.Fatalf("tie order: got pitch %d, want %d", ev.Note.Pitch, pitch)
		}
	}
}

func TestEventQueuePopMinBlocksUntilInsert(t *testing.T) {
	q := NewEventQueue()
	done := make(chan ScheduledEvent, 1)
	go func() {
		ev, err := q.PopMin(context.Background())
		if err != nil {
			return
		}
		done <- ev
	}()

	select {
	case <-done:
		t.Fatal("PopMin returned on an empty queue")
	case <-time.After(20 * time.Millisecond):
	}

	q.Insert(ScheduledEvent{FireAt: 1.0, Kind: Start})
	select {
	case ev := <-done:
		if ev.FireAt != 1.0 {
			t.Fatalf("fire time = %v, want 1.0", ev.FireAt)
		}
	case <-time.After(time.Second):
		t.Fatal("PopMin did not wake after Insert")
	}
}

func TestEventQueuePopMinCanceled(t *testing.T) {
	q := NewEventQueue()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if _, err := q.PopMin(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestEventQueueDrainAndFilter(t *testing.T) {
	q := NewEventQueue()
	q.Insert(ScheduledEvent{FireAt: 1.0, Kind: Start, Note: Note{Pitch: 60}})
	q.Insert(ScheduledEvent{FireAt: 1.5, Kind: Stop, Note: Note{Pitch: 60}})
	q.Insert(ScheduledEvent{FireAt: 2.0, Kind: Start, Note: Note{Pitch: 62}})
	q.Insert(ScheduledEvent{FireAt: 2.5, Kind: Stop, Note: Note{Pitch: 62}})

	keepStops := func(ev ScheduledEvent) bool { return ev.Kind == Stop }

	if dropped := q.DrainAndFilter(keepStops); dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if q.Len() != 2 {
		t.Fatalf("len = %d, want 2", q.Len())
	}

	// A second application is a no-op on an already-filtered queue.
	if dropped := q.DrainAndFilter(keepStops); dropped != 0 {
		t.Fatalf("second drain dropped = %d, want 0", dropped)
	}

	ctx := context.Background()
	for _, want := range []float64{1.5, 2.5} {
		ev, err := q.PopMin(ctx)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		if ev.Kind != Stop || ev.FireAt != want {
			t.Fatalf("got %v event at %v, want stop at %v", ev.Kind, ev.FireAt, want)
		}
	}
}

func TestEventQueueDrainKeepsTieOrder(t *testing.T) {
	q := NewEventQueue()
	for pitch := 0; pitch < 4; pitch++ {
		q.Insert(ScheduledEvent{FireAt: 1.0, Kind: Stop, Note: Note{Pitch: pitch}})
	}
	q.DrainAndFilter(func(ev ScheduledEvent) bool { return ev.Kind == Stop })

	ctx := context.Background()
	for pitch := 0; pitch < 4; pitch++ {
		ev, err := q.PopMin(ctx)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		if ev.Note.Pitch != pitch {
			t.Fatalf("tie order after drain: got pitch %d, want %d", ev.Note.Pitch, pitch)
		}
	}
}
