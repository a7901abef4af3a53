//go:build !darwin
// +build !darwin

package coremidi

import (
	"fmt"

	"github.com/sheetmidi/sheetmidi/sdk/contracts"
)

type DummySink struct {
	logger contracts.Logger
}

func NewEventSink(options *contracts.PlayerOptions) (contracts.EventSink, error) {
	options.Logger.Info("Using dummy CoreMIDI sink for non-macOS system")
	return &DummySink{
		logger: options.Logger,
	}, nil
}

func (s *DummySink) Emit(msg contracts.MIDI) error {
	s.logger.Warn("Emit called on dummy CoreMIDI sink")
	return fmt.Errorf("CoreMIDI is not available on this platform")
}

func (s *DummySink) Devices() ([]contracts.DeviceInfo, error) {
	s.logger.Warn("Devices called on dummy CoreMIDI sink")
	return nil, fmt.Errorf("CoreMIDI is not available on this platform")
}

func (s *DummySink) Close() error {
	return nil
}
