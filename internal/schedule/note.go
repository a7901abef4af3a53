package schedule

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Error definitions for note parsing failures.
var (
	ErrMissingPitch = errors.New("missing required field pitch")
	ErrEmptyRecord  = errors.New("record has no recognized fields")
	ErrZeroLoop     = errors.New("loop length is zero")
	ErrOutOfRange   = errors.New("value out of range")
)

// Default field values applied when a record omits or leaves a field empty.
const (
	DefaultChannel     = 1
	DefaultLoop        = 1.0
	DefaultOnset       = 0.0
	DefaultDuration    = 0.1
	DefaultVelocity    = 64.0
	DefaultProbability = 1.0
)

// Note is the validated, immutable definition of one recurring musical event.
// A fresh set of Note values replaces the previous one on every fetch cycle.
type Note struct {
	Pitch       int     // MIDI note number, 0-127.
	Channel     int     // MIDI channel, 1-16.
	Loop        float64 // Period in seconds after which the note recurs; always > 0.
	Onset       float64 // Offset within one loop period, taken modulo Loop.
	Duration    float64 // Seconds between note on and note off.
	Velocity    float64 // Note-on velocity, clamped to 0-127 at emission.
	Probability float64 // Independent trigger chance per cycle, in [0,1].
}

// ParseError reports a record that could not be parsed into a Note,
// naming the offending field when one is known.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse record: %v", e.Err)
	}
	return fmt.Sprintf("parse field %q (value %q): %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// fieldSpec binds a column name to the function that coerces its raw cell
// text into the corresponding Note field.
type fieldSpec struct {
	name  string
	parse func(n *Note, raw string) error
}

// noteSchema is the explicit parsing schema: one entry per recognized column.
// Columns not listed here are ignored.
var noteSchema = []fieldSpec{
	{"pitch", func(n *Note, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		if v < 0 || v > 127 {
			return ErrOutOfRange
		}
		n.Pitch = v
		return nil
	}},
	{"channel", func(n *Note, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		if v < 1 || v > 16 {
			return ErrOutOfRange
		}
		n.Channel = v
		return nil
	}},
	{"loop", func(n *Note, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		if v < 0 {
			return ErrOutOfRange
		}
		n.Loop = v
		return nil
	}},
	{"onset", func(n *Note, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		n.Onset = v
		return nil
	}},
	{"duration", func(n *Note, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		if v < 0 {
			return ErrOutOfRange
		}
		n.Duration = v
		return nil
	}},
	{"velocity", func(n *Note, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		n.Velocity = v
		return nil
	}},
	{"probability", func(n *Note, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		if v < 0 || v > 1 {
			return ErrOutOfRange
		}
		n.Probability = v
		return nil
	}},
}

// NoteFromRecord converts one raw table row into a validated Note.
// Empty cells count as absent and take the documented defaults; unknown
// columns are ignored. The function is pure: it never touches shared state.
func NoteFromRecord(record contracts.Record) (Note, error) {
	note := Note{
		Channel:     DefaultChannel,
		Loop:        DefaultLoop,
		Onset:       DefaultOnset,
		Duration:    DefaultDuration,
		Velocity:    DefaultVelocity,
		Probability: DefaultProbability,
	}

	recognized := 0
	for _, spec := range noteSchema {
		raw, ok := record[spec.name]
		if !ok || raw == "" {
			continue
		}
		if err := spec.parse(&note, raw); err != nil {
			return Note{}, &ParseError{Field: spec.name, Value: raw, Err: err}
		}
		recognized++
	}

	// A row carrying no recognized values must fail even though every field
	// has a default.
	if recognized == 0 {
		return Note{}, &ParseError{Err: ErrEmptyRecord}
	}
	if raw, ok := record["pitch"]; !ok || raw == "" {
		return Note{}, &ParseError{Field: "pitch", Err: ErrMissingPitch}
	}
	if note.Loop == 0 {
		return Note{}, &ParseError{Field: "loop", Value: record["loop"], Err: ErrZeroLoop}
	}
	return note, nil
}
