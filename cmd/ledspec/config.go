package main

import (
	"github.com/noriah/ledspec/dsp"
	"github.com/noriah/ledspec/dsp/window"
	"github.com/noriah/ledspec/graphic"
	"github.com/pkg/errors"
)

// Output names
const (
	OutputTerminal = "term"
	OutputASCII    = "ascii"
	OutputRaw      = "raw"
)

// config holds the flag values.
type config struct {
	// backend is the backend name from list-backends
	backend string
	// device is the device name from list-devices
	device string
	// sampleRate is the rate at which samples are read
	sampleRate float64
	// sampleSize is the number of samples per frame
	sampleSize int
	// frameRate is the number of frames to draw every second (0 follows the
	// sample rate, -1 draws as fast as samples come)
	frameRate int
	// frames stops after this many frames (0 runs forever)
	frames int

	// display geometry
	width     int
	height    int
	bars      int
	lines     int
	barSize   int
	spaceSize int
	skip      int

	// scale tracking
	windowSize int
	groupSize  int
	floor      float64

	// frequency axis
	axis       string
	linearBars int
	threshold  float64
	base       float64

	binMethod string
	window    string
	noFall    bool

	output  string
	showHex bool
	debug   bool

	styles graphic.Styles
}

// newZeroConfig returns a zero config
// it is the "default"
//
// the original panel:
//   - sampleRate: 5000
//   - sampleSize: 128
//   - 32x8 leds, one column per bar
func newZeroConfig() config {
	def := dsp.DefaultEngineConfig()

	return config{
		sampleRate: 5000,
		sampleSize: def.NumSamples,
		frameRate:  0,
		width:      def.DisplayWidth,
		height:     def.DisplayHeight,
		barSize:    def.BarWidth,
		spaceSize:  def.GapWidth,
		skip:       def.SkipLowBins,
		windowSize: def.WindowSize,
		groupSize:  def.FrameGroupSize,
		floor:      def.ScaleFloor,
		axis:       def.Axis.Scale.String(),
		linearBars: def.Axis.LinearBars,
		binMethod:  "max",
		window:     "hamming",
		output:     OutputTerminal,
		styles:     graphic.DefaultStyles(),
	}
}

// validate checks the values that are not checked further down.
func (cfg *config) validate() error {
	if cfg.sampleRate < float64(cfg.sampleSize) {
		return errors.New("sample rate lower than sample size")
	}

	if cfg.sampleSize < 4 {
		return errors.New("sample size too small (4+ required)")
	}

	switch cfg.output {
	case OutputTerminal, OutputASCII, OutputRaw:
	default:
		return errors.Errorf("unknown output %q (term, ascii or raw)", cfg.output)
	}

	if _, err := window.ByName(cfg.window); err != nil {
		return err
	}

	if _, ok := dsp.BinMethodByName(cfg.binMethod); !ok {
		return errors.Errorf("unknown bin method %q (max, avg or sum)", cfg.binMethod)
	}

	if _, err := dsp.ParseAxisScale(cfg.axis); err != nil {
		return err
	}

	return nil
}

// engineConfig builds the engine settings. Call validate first.
func (cfg *config) engineConfig() dsp.EngineConfig {
	method, _ := dsp.BinMethodByName(cfg.binMethod)
	scale, _ := dsp.ParseAxisScale(cfg.axis)

	return dsp.EngineConfig{
		NumSamples:     cfg.sampleSize,
		DisplayWidth:   cfg.width,
		DisplayHeight:  cfg.height,
		NumBars:        cfg.bars,
		NumLines:       cfg.lines,
		BarWidth:       cfg.barSize,
		GapWidth:       cfg.spaceSize,
		SkipLowBins:    cfg.skip,
		WindowSize:     cfg.windowSize,
		FrameGroupSize: cfg.groupSize,
		ScaleFloor:     cfg.floor,
		Axis: dsp.AxisMapper{
			Scale:             scale,
			LinearBars:        cfg.linearBars,
			LogScaleThreshold: cfg.threshold,
			Base:              cfg.base,
		},
		BarFall:   !cfg.noFall,
		BinMethod: method,
	}
}

// displayLines is how many rows a bar may use.
func (cfg *config) displayLines() int {
	if cfg.lines > 0 {
		return cfg.lines
	}
	return cfg.height
}
