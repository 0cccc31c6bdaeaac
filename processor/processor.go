// Package processor runs the fixed-period display loop: sample, window,
// transform, render, display.
package processor

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/noriah/ledspec/dsp"
	"github.com/noriah/ledspec/dsp/window"
	"github.com/noriah/ledspec/fft"
	"github.com/noriah/ledspec/input"
	"github.com/noriah/ledspec/util"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// StatsWindow is how many frames the sampling diagnostics average over.
const StatsWindow = 32

// Output takes the display columns of each frame.
type Output interface {
	Write([]dsp.Column) error
}

type Config struct {
	SampleRate float64         // rate at which samples are read
	SampleSize int             // number of samples per frame
	FrameRate  int             // frames per second (0 follows the sample rate, <0 unpaced)
	Frames     int             // stop after this many frames (0 runs until the end)
	Source     input.Source    // sample source
	Windower   window.Function // data windower (nil is rectangle)
	Engine     *dsp.Engine     // spectrum to display mapping
	Output     Output          // data output
	Logger     *log.Logger     // sampling diagnostics (nil is off)
}

// Processor owns every buffer of the loop. Nothing is allocated per frame.
type Processor struct {
	cfg Config

	samples []float64
	fftBuf  []complex128
	mags    []float64

	plan *fft.Plan

	period time.Duration

	timing *util.MovingWindow
	peaks  *util.MovingWindow
}

// New checks cfg and allocates the processing buffers.
func New(cfg Config) (*Processor, error) {
	switch {
	case cfg.Source == nil:
		return nil, errors.New("no sample source")
	case cfg.Engine == nil:
		return nil, errors.New("no engine")
	case cfg.Output == nil:
		return nil, errors.New("no output")
	case cfg.SampleSize != cfg.Engine.Config().NumSamples:
		return nil, errors.Errorf("sample size %d does not match engine (%d)",
			cfg.SampleSize, cfg.Engine.Config().NumSamples)
	case cfg.FrameRate == 0 && cfg.SampleRate <= 0:
		return nil, errors.New("sample rate required to pace frames")
	}

	if cfg.Windower == nil {
		cfg.Windower = window.Rectangle()
	}

	p := &Processor{
		cfg:     cfg,
		samples: make([]float64, cfg.SampleSize),
		fftBuf:  make([]complex128, cfg.SampleSize/2+1),
		mags:    make([]float64, cfg.SampleSize),
		timing:  util.NewMovingWindow(StatsWindow),
		peaks:   util.NewMovingWindow(StatsWindow),
	}

	p.plan = fft.NewPlan(p.samples, p.fftBuf)

	switch {
	case cfg.FrameRate > 0:
		p.period = time.Second / time.Duration(cfg.FrameRate)
	case cfg.FrameRate == 0:
		p.period = time.Duration(float64(cfg.SampleSize) / cfg.SampleRate * float64(time.Second))
	}

	return p, nil
}

// Step runs one frame. It returns io.EOF when the source is done.
func (p *Processor) Step() error {
	start := time.Now()

	if err := p.cfg.Source.Next(p.samples); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return errors.Wrap(err, "failed to read samples")
	}

	if p.cfg.Logger != nil {
		p.logSampling(time.Since(start))
	}

	p.cfg.Windower(p.samples)
	p.plan.Execute()
	fft.Magnitudes(p.mags, p.fftBuf)

	cols := p.cfg.Engine.Render(p.mags)

	if err := p.cfg.Output.Write(p.cfg.Engine.Expand(cols)); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	return nil
}

func (p *Processor) logSampling(took time.Duration) {
	ms, _ := p.timing.Update(float64(took) / float64(time.Millisecond))
	peak, _ := p.peaks.Update(floats.Max(p.samples))

	perSample := ms / float64(p.cfg.SampleSize)

	rate := 0.0
	if perSample > 0 {
		rate = 1e3 / perSample
	}

	p.cfg.Logger.Printf(
		"sampling time: %.3fms, per sample: %.5fms, sampling frequency: %.0fHz, max value: %.3f",
		ms, perSample, rate, peak)
}

// Process runs frames until the source ends, the frame limit is reached or
// ctx is done.
func (p *Processor) Process(ctx context.Context) error {
	var tick <-chan time.Time

	if p.period > 0 {
		ticker := time.NewTicker(p.period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for frame := 0; p.cfg.Frames <= 0 || frame < p.cfg.Frames; frame++ {
		if err := p.Step(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		}
	}

	return nil
}

// Period returns the time between frames, zero when unpaced.
func (p *Processor) Period() time.Duration {
	return p.period
}
