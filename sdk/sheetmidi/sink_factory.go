package sheetmidi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sheetmidi/sheetmidi/internal/sink/coremidi"
	"github.com/sheetmidi/sheetmidi/internal/sink/rtmidi"
	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI sink.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// sinkInitializers maps OS names to corresponding MIDI sink initializers.
var sinkInitializers = map[string]func(*contracts.PlayerOptions) (contracts.EventSink, error){
	"darwin":  coremidi.NewEventSink, // macOS (Darwin) CoreMIDI sink initializer.
	"linux":   rtmidi.NewEventSink,   // ALSA via rtmidi.
	"windows": rtmidi.NewEventSink,   // winmm via rtmidi.
}

// newEventSink initializes a MIDI sink based on the current operating system.
// An explicit sink from the options takes precedence over the factory; the
// factory returns ErrUnsupportedOS when the OS has no initializer.
func newEventSink(options *contracts.PlayerOptions) (contracts.EventSink, error) {
	if options.EventSink != nil {
		return options.EventSink, nil
	}
	if initializer, exists := sinkInitializers[runtime.GOOS]; exists {
		return initializer(options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
