// Package dsp turns magnitude spectra into packed bar display columns.
//
// Per frame the engine updates a smoothed maximum from the magnitudes, maps
// every bar to a band of bins, reduces each band to one value, damps falling
// bars and encodes each bar as a column of lit rows.
//
// Some notes:
//
// https://dlbeer.co.nz/articles/fftvis.html
// https://github.com/hvianna/audioMotion-analyzer/blob/master/src/audioMotion-analyzer.js#L1053
package dsp

import (
	"io"
	"log"

	"github.com/pkg/errors"
)

// Engine renders frames for one display. It is not safe for concurrent use.
type Engine struct {
	cfg   EngineConfig
	axis  AxisMap
	scale *ScaleTracker
	fall  *BarFall

	cols []Column // one per bar
	out  []Column // one per display column

	log *log.Logger
}

// NewEngine validates cfg and builds an engine with all state pre-sized.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	cfg, err := cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}

	scale, err := NewScaleTracker(ScaleConfig{
		WindowSize:     cfg.WindowSize,
		FrameGroupSize: cfg.FrameGroupSize,
		Floor:          cfg.ScaleFloor,
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}

	axis, err := cfg.Axis.Map(cfg.NumBars, cfg.Bands(), cfg.SkipLowBins)
	if err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}

	e := &Engine{
		cfg:   cfg,
		axis:  axis,
		scale: scale,
		cols:  make([]Column, cfg.NumBars),
		out:   make([]Column, cfg.DisplayWidth),
		log:   cfg.Logger,
	}

	if cfg.BarFall {
		e.fall = NewBarFall(cfg.NumBars)
	}

	if e.log == nil {
		e.log = log.New(io.Discard, "", 0)
	}

	for idx := 0; idx < axis.Bars(); idx++ {
		start, end := axis.Band(idx)
		e.log.Printf("bar %d: bins %d to %d", idx, start, end)
	}

	return e, nil
}

// Render maps one frame of magnitudes to one column per bar.
// bins must hold at least NumSamples/2 values. The returned slice is reused
// by the next call.
func (e *Engine) Render(bins []float64) []Column {
	lines := e.cfg.NumLines
	half := e.cfg.NumSamples / 2

	// used to bring all values back in the interval [0, lines] (inclusive,
	// 8 leds show 9 distinct values)
	scale := 0.0
	if peak := e.scale.Update(bins[e.cfg.SkipLowBins:half], 0); peak > 0 {
		scale = float64(lines+1) / peak
	}

	for idx := range e.cols {
		start, end := e.axis.Band(idx)

		height := reduce(e.cfg.BinMethod, bins[start:end]) * scale

		if e.fall != nil {
			height = e.fall.Apply(idx, height, lines)
		}

		e.cols[idx] = EncodeBar(height, lines)
	}

	return e.cols
}

// Expand lays bar columns out over the display width. Each bar is repeated
// BarWidth times with GapWidth blank columns between bars. Columns past the
// last bar stay blank. The returned slice is reused by the next call.
func (e *Engine) Expand(cols []Column) []Column {
	for idx := range e.out {
		e.out[idx] = 0
	}

	xCol := 0
	for _, col := range cols {
		for lCol := xCol + e.cfg.BarWidth; xCol < lCol && xCol < len(e.out); xCol++ {
			e.out[xCol] = col
		}

		xCol += e.cfg.GapWidth
	}

	return e.out
}

// Config returns the validated config the engine runs with.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Bars returns the number of bars rendered per frame.
func (e *Engine) Bars() int {
	return e.cfg.NumBars
}

// Lines returns the number of rows a bar may light.
func (e *Engine) Lines() int {
	return e.cfg.NumLines
}

// Bands returns the number of bands spread over the bars.
func (e *Engine) Bands() int {
	return e.cfg.Bands()
}

// Width returns the display width in columns.
func (e *Engine) Width() int {
	return e.cfg.DisplayWidth
}

// Height returns the display height in rows.
func (e *Engine) Height() int {
	return e.cfg.DisplayHeight
}

// Axis returns the band boundaries in use.
func (e *Engine) Axis() AxisMap {
	return e.axis
}

// Scale returns the scale tracker.
func (e *Engine) Scale() *ScaleTracker {
	return e.scale
}
