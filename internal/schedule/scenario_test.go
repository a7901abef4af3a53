package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Drives fetcher and dispatcher by hand against a fake clock: a row's pitch
// changes while its note is sounding; the release must still use the old
// pitch, and the next cycle must pick up the new one.
func TestPitchChangeMidCycle(t *testing.T) {
	q := NewEventQueue()
	sink := &fakeSink{}
	clock := &fakeClock{}
	src := &fakeSource{records: []contracts.Record{{"pitch": "60", "loop": "1.0", "duration": "0.5"}}}

	f := NewFetcher(src, q, nopLogger{}, time.Second, clock.now)
	d := newTestDispatcher(q, sink, clock)
	d.rand = func() float64 { return 0 }

	ctx := context.Background()

	// t=0: first fetch schedules the note, which fires at once.
	f.cycle(ctx)
	ev, _ := q.PopMin(ctx)
	clock.set(ev.FireAt)
	if err := d.fire(ev); err != nil {
		t.Fatalf("fire: %v", err)
	}
	// Now sounding: pending stop at 0.5, renewal at 1.0.

	// The row is edited to pitch 62 and fetched at t=0.25.
	clock.set(0.25)
	src.set([]contracts.Record{{"pitch": "62", "loop": "1.0", "duration": "0.5"}}, nil)
	f.cycle(ctx)

	// Run everything due up to t=1.0.
	for q.Len() > 0 {
		ev, _ := q.PopMin(ctx)
		if ev.FireAt > 1.0 {
			q.Insert(ev)
			break
		}
		clock.set(ev.FireAt)
		if err := d.fire(ev); err != nil {
			t.Fatalf("fire: %v", err)
		}
	}

	msgs := sink.emitted()
	want := []contracts.MIDI{
		{Command: 0x90, Note: 60, Velocity: 64}, // on(60) at 0
		{Command: 0x80, Note: 60, Velocity: 64}, // off(60) still at 0.5
		{Command: 0x90, Note: 62, Velocity: 64}, // on(62) at 1.0
	}
	if len(msgs) != len(want) {
		t.Fatalf("emitted %d messages, want %d: %+v", len(msgs), len(want), msgs)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Fatalf("message %d = %+v, want %+v", i, msgs[i], want[i])
		}
	}
}

// End-to-end against the wall clock: one row looping every 60ms must produce
// a strictly alternating on/off stream.
func TestEndToEndLoop(t *testing.T) {
	q := NewEventQueue()
	sink := &fakeSink{}
	src := &fakeSource{records: []contracts.Record{
		{"pitch": "60", "loop": "0.06", "duration": "0.03", "probability": "1.0"},
	}}

	now := NewRunClock()
	f := NewFetcher(src, q, nopLogger{}, 25*time.Millisecond, now)
	d := NewDispatcher(q, sink, nopLogger{}, time.Millisecond, now)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	go f.Run(ctx)
	if err := d.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run err = %v, want context.DeadlineExceeded", err)
	}

	msgs := sink.emitted()
	if len(msgs) < 4 {
		t.Fatalf("emitted %d messages in 200ms, want at least 4", len(msgs))
	}
	for i, msg := range msgs {
		wantCmd := byte(0x90)
		if i%2 == 1 {
			wantCmd = 0x80
		}
		if msg.Command != wantCmd || msg.Note != 60 {
			t.Fatalf("message %d = %+v, want command %#x on note 60", i, msg, wantCmd)
		}
	}
}
