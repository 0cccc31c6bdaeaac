// Package ledspec drives an LED bar spectrum display from an audio source.
package ledspec

import (
	"context"
	"log"

	"github.com/noriah/ledspec/dsp"
	"github.com/noriah/ledspec/dsp/window"
	"github.com/noriah/ledspec/input"
	"github.com/noriah/ledspec/processor"
	"github.com/pkg/errors"
)

// MinSampleSize is the smallest frame that still has bins after the DC bin.
const MinSampleSize = 4

type SetupFunc func() error
type StartFunc func(ctx context.Context) (context.Context, error)
type CleanupFunc func() error

type Config struct {
	// The name of the backend from the input package
	Backend string
	// The name of the device to pull data from
	Device string
	// The rate that samples are read
	SampleRate float64
	// The number of samples per frame
	SampleSize int
	// The number of frames per second (0 follows the sample rate, <0 unpaced)
	FrameRate int
	// Stop after this many frames (0 runs until the source ends)
	Frames int

	// Function to call when setting up the pipeline
	SetupFunc SetupFunc
	// Function to call when starting the pipeline
	StartFunc StartFunc
	// Function to call when cleaning up the pipeline
	CleanupFunc CleanupFunc
	// Where to send the display columns
	Output processor.Output
	// Method to run on data before running fft
	Windower window.Function
	// Display geometry and tuning. NumSamples is taken from SampleSize.
	Engine dsp.EngineConfig
	// Receives diagnostics when set
	Logger *log.Logger
}

// NewZeroConfig returns the settings of the original panel: 128 samples at
// 5 kHz on a 32x8 matrix.
func NewZeroConfig() Config {
	return Config{
		SampleRate: 5000,
		SampleSize: 128,
		Windower:   window.Hamming(),
		Engine:     dsp.DefaultEngineConfig(),
	}
}

// Validate checks the values the engine does not own.
func (cfg *Config) Validate() error {
	switch {
	case cfg.SampleRate <= 0:
		return errors.Errorf("sample rate %.0f must be positive", cfg.SampleRate)

	case cfg.SampleSize < MinSampleSize:
		return errors.Errorf("sample size too small (%d+ required)", MinSampleSize)

	case cfg.SampleSize%2 != 0:
		return errors.Errorf("sample size %d must be even", cfg.SampleSize)

	case cfg.SampleRate < float64(cfg.SampleSize):
		return errors.New("sample rate lower than sample size")

	case cfg.Frames < 0:
		return errors.New("frame limit must not be negative")

	case cfg.Output == nil:
		return errors.New("no output")
	}

	return nil
}

// Run builds the pipeline from cfg and runs it until the source ends, the
// frame limit is reached or ctx is done.
func Run(cfg *Config, ctx context.Context) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	engineCfg := cfg.Engine
	engineCfg.NumSamples = cfg.SampleSize
	if engineCfg.Logger == nil {
		engineCfg.Logger = cfg.Logger
	}

	engine, err := dsp.NewEngine(engineCfg)
	if err != nil {
		return err
	}

	backendName := cfg.Backend
	if backendName == "" {
		backendName = input.DefaultBackend()
	}

	backend, err := input.InitBackend(backendName)
	if err != nil {
		return err
	}
	defer backend.Close()

	sessConfig := input.SessionConfig{
		SampleSize: cfg.SampleSize,
		SampleRate: cfg.SampleRate,
	}

	if sessConfig.Device, err = input.GetDevice(backend, cfg.Device); err != nil {
		return err
	}

	if cfg.SetupFunc != nil {
		if err := cfg.SetupFunc(); err != nil {
			return err
		}
	}

	if cfg.CleanupFunc != nil {
		defer cfg.CleanupFunc()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.StartFunc != nil {
		if ctx, err = cfg.StartFunc(ctx); err != nil {
			return err
		}
	}

	audio, err := backend.Start(ctx, sessConfig)
	if err != nil {
		return errors.Wrap(err, "failed to start the input backend")
	}
	defer audio.Close()

	proc, err := processor.New(processor.Config{
		SampleRate: cfg.SampleRate,
		SampleSize: cfg.SampleSize,
		FrameRate:  cfg.FrameRate,
		Frames:     cfg.Frames,
		Source:     audio,
		Windower:   cfg.Windower,
		Engine:     engine,
		Output:     cfg.Output,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create processor")
	}

	if err := proc.Process(ctx); err != nil {
		if !errors.Is(ctx.Err(), context.Canceled) {
			return errors.Wrap(err, "failed to process input")
		}
	}

	return nil
}
