package contracts

// MIDICommand represents the status-byte base of an outbound MIDI message.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// MIDI represents one outbound MIDI message, ready to be written to a device.
// The channel is already folded into Command (status = base | channel-1).
type MIDI struct {
	Command  byte // Command carries the message type and channel (e.g. 0x90 = Note On, channel 1).
	Note     byte // Note represents the MIDI note number (0-127).
	Velocity byte // Velocity indicates the strength of the note being played (0-127).
}

// DeviceInfo contains information about a MIDI output destination.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer, when the platform exposes it.
	EntityName   string // Name of the entity to which the device belongs, when available.
}

// EventSink defines where scheduled MIDI events are emitted. There is no
// acknowledgment channel: an Emit error means the output device is broken.
type EventSink interface {
	Emit(msg MIDI) error            // Emits a single MIDI message to the output device.
	Devices() ([]DeviceInfo, error) // Lists the available output destinations.
	Close() error                   // Closes the sink and releases resources.
}
