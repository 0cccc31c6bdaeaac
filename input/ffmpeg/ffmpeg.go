// Package ffmpeg captures audio devices through ffmpeg.
package ffmpeg

import (
	"context"
	"fmt"

	"github.com/noriah/ledspec/input"
	"github.com/noriah/ledspec/input/common/execread"
)

type FFmpegBackend interface {
	InputArgs() []string
}

// NewSession returns a mono float64 capture session for the device.
func NewSession(b FFmpegBackend, cfg input.SessionConfig) *execread.Session {
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "panic"}
	args = append(args, b.InputArgs()...)
	args = append(args,
		"-ar", fmt.Sprintf("%.0f", cfg.SampleRate),
		"-ac", "1",
		"-f", "f64le",
		"-",
	)

	return execread.NewSession(args, false, 1)
}

func start(ctx context.Context, b FFmpegBackend, cfg input.SessionConfig) (input.Source, error) {
	s := NewSession(b, cfg)

	if err := s.Start(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
