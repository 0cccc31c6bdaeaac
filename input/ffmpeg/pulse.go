package ffmpeg

import (
	"context"
	"fmt"

	"github.com/noriah/ledspec/input"
	"github.com/noriah/ledspec/input/parec"
)

func init() {
	input.RegisterBackend("ffmpeg-pulse", Pulse{})
}

// Pulse is the pulse input for FFmpeg.
type Pulse struct {
	parec.Backend
}

func (p Pulse) Start(ctx context.Context, cfg input.SessionConfig) (input.Source, error) {
	dv, ok := cfg.Device.(parec.PulseDevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	return start(ctx, pulseInput(dv), cfg)
}

type pulseInput parec.PulseDevice

func (d pulseInput) InputArgs() []string {
	return []string{"-f", "pulse", "-i", string(d)}
}
