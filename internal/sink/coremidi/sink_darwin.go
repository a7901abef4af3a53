//go:build darwin
// +build darwin

package coremidi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	cm "github.com/youpy/go-coremidi"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

// Error definitions for MIDI output connection issues.
var (
	ErrNoDestinations      = errors.New("no MIDI destinations found")
	ErrDestinationNotFound = errors.New("MIDI destination not found")
	ErrCreateOutputPort    = errors.New("error creating output port")
)

// Sink emits scheduled events to a CoreMIDI destination on Darwin (macOS)
// systems. One output port is opened at construction and reused for every
// message; Emit is serialized by a mutex since the dispatch loop is the only
// intended caller.
type Sink struct {
	logger contracts.Logger
	client cm.Client
	port   cm.OutputPort
	dest   cm.Destination
	mu     sync.Mutex
}

// NewEventSink creates a CoreMIDI-backed sink from the player options. The
// destination is chosen by case-insensitive substring match on the configured
// port name, falling back to the first destination available.
func NewEventSink(options *contracts.PlayerOptions) (contracts.EventSink, error) {
	client, err := cm.NewClient(options.Sink.ClientName)
	if err != nil {
		return nil, fmt.Errorf("coremidi client: %w", err)
	}
	options.Logger.Info("MIDI client successfully created")

	port, err := cm.NewOutputPort(client, "Output Port")
	if err != nil {
		options.Logger.Error(ErrCreateOutputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
	}

	dests, err := cm.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	if len(dests) == 0 {
		options.Logger.Warn(ErrNoDestinations.Error())
		return nil, ErrNoDestinations
	}

	dest, err := pickDestination(dests, options.Sink.PortName)
	if err != nil {
		options.Logger.Error(err.Error())
		return nil, err
	}

	options.Logger.Info("MIDI destination selected",
		options.Logger.Field().String("destination", dest.Name()))

	return &Sink{
		logger: options.Logger,
		client: client,
		port:   port,
		dest:   dest,
	}, nil
}

func pickDestination(dests []cm.Destination, name string) (cm.Destination, error) {
	if name == "" {
		return dests[0], nil
	}
	for _, dest := range dests {
		if strings.Contains(strings.ToLower(dest.Name()), strings.ToLower(name)) {
			return dest, nil
		}
	}
	return cm.Destination{}, fmt.Errorf("%w: %q", ErrDestinationNotFound, name)
}

// Emit writes one MIDI message to the selected destination.
func (s *Sink) Emit(msg contracts.MIDI) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	packet := cm.Packet{Data: []byte{msg.Command, msg.Note, msg.Velocity}}
	if err := packet.Send(&s.port, &s.dest); err != nil {
		return fmt.Errorf("send packet: %w", err)
	}
	return nil
}

// Devices lists the available CoreMIDI destinations.
func (s *Sink) Devices() ([]contracts.DeviceInfo, error) {
	dests, err := cm.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	devices := make([]contracts.DeviceInfo, len(dests))
	for i, dest := range dests {
		entity := dest.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         dest.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// Close releases the sink. CoreMIDI clients are disposed with the process.
func (s *Sink) Close() error {
	s.logger.Info("MIDI sink closed")
	return nil
}
