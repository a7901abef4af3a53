package rtmidi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// ErrPortNotFound is returned when the configured output port is missing.
var ErrPortNotFound = errors.New("MIDI output port not found")

// Sink emits scheduled events through the rtmidi driver, which covers Linux
// (ALSA) and Windows. With no port configured it opens a virtual output named
// after the client, so the DAW sees a dedicated port; when virtual ports are
// unsupported it falls back to the first hardware output.
type Sink struct {
	logger contracts.Logger
	drv    *rtmididrv.Driver
	out    drivers.Out
	send   func(gomidi.Message) error
	mu     sync.Mutex
}

// NewEventSink creates an rtmidi-backed sink from the player options.
func NewEventSink(options *contracts.PlayerOptions) (contracts.EventSink, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	out, err := openOut(drv, options)
	if err != nil {
		drv.Close()
		return nil, err
	}

	send, err := gomidi.SendTo(out)
	if err != nil {
		out.Close()
		drv.Close()
		return nil, fmt.Errorf("sender for %q: %w", out.String(), err)
	}

	options.Logger.Info("MIDI output connected",
		options.Logger.Field().String("port", out.String()))

	return &Sink{
		logger: options.Logger,
		drv:    drv,
		out:    out,
		send:   send,
	}, nil
}

func openOut(drv *rtmididrv.Driver, options *contracts.PlayerOptions) (drivers.Out, error) {
	if name := options.Sink.PortName; name != "" {
		outs, err := drv.Outs()
		if err != nil {
			return nil, fmt.Errorf("list outputs: %w", err)
		}
		for _, out := range outs {
			if strings.Contains(strings.ToLower(out.String()), strings.ToLower(name)) {
				if err := out.Open(); err != nil {
					return nil, fmt.Errorf("open %q: %w", out.String(), err)
				}
				return out, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
	}

	out, err := drv.OpenVirtualOut(options.Sink.ClientName)
	if err == nil {
		return out, nil
	}
	options.Logger.Warn("virtual output unavailable, using first hardware port",
		options.Logger.Field().Error("error", err))

	outs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	if len(outs) == 0 {
		return nil, ErrPortNotFound
	}
	if err := outs[0].Open(); err != nil {
		return nil, fmt.Errorf("open %q: %w", outs[0].String(), err)
	}
	return outs[0], nil
}

// Emit writes one MIDI message to the output port.
func (s *Sink) Emit(msg contracts.MIDI) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel := msg.Command & 0x0F
	var m gomidi.Message
	switch msg.Command & 0xF0 {
	case byte(contracts.NoteOn):
		m = gomidi.NoteOn(channel, msg.Note, msg.Velocity)
	case byte(contracts.NoteOff):
		m = gomidi.NoteOff(channel, msg.Note)
	default:
		m = gomidi.Message([]byte{msg.Command, msg.Note, msg.Velocity})
	}
	if err := s.send(m); err != nil {
		return fmt.Errorf("send %s: %w", m.String(), err)
	}
	return nil
}

// Devices lists the available output ports.
func (s *Sink) Devices() ([]contracts.DeviceInfo, error) {
	outs, err := s.drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("list outputs: %w", err)
	}
	devices := make([]contracts.DeviceInfo, len(outs))
	for i, out := range outs {
		devices[i] = contracts.DeviceInfo{Name: out.String()}
	}
	return devices, nil
}

// Close shuts down the output port and the rtmidi driver.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out != nil {
		s.out.Close()
		s.out = nil
	}
	return s.drv.Close()
}
