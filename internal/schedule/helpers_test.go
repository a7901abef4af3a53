package schedule

import (
	"context"
	"sync"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// nopLogger satisfies contracts.Logger without producing output.
type nopLogger struct{}

func (nopLogger) Info(string, ...contracts.Field)  {}
func (nopLogger) Error(string, ...contracts.Field) {}
func (nopLogger) Debug(string, ...contracts.Field) {}
func (nopLogger) Warn(string, ...contracts.Field)  {}
func (nopLogger) Fatal(string, ...contracts.Field) {}
func (nopLogger) Field() contracts.Field           { return nopField{} }
func (nopLogger) SetLevel(contracts.LogLevel)      {}

type nopField struct{}

func (f nopField) Int(string, int) contracts.Field         { return f }
func (f nopField) Float64(string, float64) contracts.Field { return f }
func (f nopField) String(string, string) contracts.Field   { return f }
func (f nopField) Error(string, error) contracts.Field     { return f }

// fakeSink records every emitted message.
type fakeSink struct {
	mu   sync.Mutex
	msgs []contracts.MIDI
	err  error
}

func (s *fakeSink) Emit(msg contracts.MIDI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *fakeSink) Devices() ([]contracts.DeviceInfo, error) { return nil, nil }
func (s *fakeSink) Close() error                             { return nil }

func (s *fakeSink) emitted() []contracts.MIDI {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]contracts.MIDI, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// fakeSource serves a swappable set of records.
type fakeSource struct {
	mu      sync.Mutex
	records []contracts.Record
	err     error
}

func (s *fakeSource) Fetch(ctx context.Context) ([]contracts.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *fakeSource) Close() error { return nil }

func (s *fakeSource) set(records []contracts.Record, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.err = err
}

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu sync.Mutex
	t  float64
}

func (c *fakeClock) now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) set(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}
