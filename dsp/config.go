package dsp

import (
	"log"

	"github.com/pkg/errors"
)

// Configuration errors. NewEngine wraps them with the offending values.
var (
	// ErrGeometry means the bars or lines do not fit on the display.
	ErrGeometry = errors.New("display geometry")
	// ErrBitWidth means a column cannot hold the tallest bar.
	ErrBitWidth = errors.New("column bit width")
	// ErrBands means there are not enough frequency bands for the bars.
	ErrBands = errors.New("frequency bands")
	// ErrConfig is any other invalid setting.
	ErrConfig = errors.New("invalid setting")
)

// EngineConfig is everything the engine needs. It is fixed once the engine
// is built.
type EngineConfig struct {
	NumSamples    int // samples per frame fed to the transform
	DisplayWidth  int // display columns
	DisplayHeight int // display rows

	NumBars     int // bars to draw (0 fits as many as possible)
	NumLines    int // rows a bar may use (0 uses DisplayHeight)
	BarWidth    int // columns per bar
	GapWidth    int // blank columns between bars
	SkipLowBins int // lowest bins to ignore

	WindowSize     int     // scale tracker buckets
	FrameGroupSize int     // frames per scale tracker bucket
	ScaleFloor     float64 // lowest frame max the scale tracker accepts

	Axis      AxisMapper // frequency axis mapping
	BarFall   bool       // damp falling bars
	BinMethod BinMethod  // band reduction (nil is max)

	// Logger receives construction diagnostics. Nil discards them.
	Logger *log.Logger
}

// DefaultEngineConfig returns the settings of an 8 row, 32 column LED panel
// fed with 128 samples.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		NumSamples:     128,
		DisplayWidth:   32,
		DisplayHeight:  8,
		BarWidth:       1,
		GapWidth:       0,
		SkipLowBins:    1,
		WindowSize:     DefaultWindowSize,
		FrameGroupSize: DefaultFrameGroupSize,
		ScaleFloor:     DefaultScaleFloor,
		Axis: AxisMapper{
			Scale:      AxisLog,
			LinearBars: DefaultLinearBars,
		},
		BarFall: true,
	}
}

// Bands returns the number of usable bands for the config.
func (cfg EngineConfig) Bands() int {
	return cfg.NumSamples/2 - cfg.SkipLowBins
}

// Validate fills in the automatic values and checks that the configuration
// can be drawn. The returned config is the one the engine runs with.
func (cfg EngineConfig) Validate() (EngineConfig, error) {
	switch {
	case cfg.NumSamples < 4:
		return cfg, errors.Wrapf(ErrConfig, "sample count %d (4 min)", cfg.NumSamples)

	case cfg.DisplayWidth < 1 || cfg.DisplayHeight < 1:
		return cfg, errors.Wrapf(ErrGeometry,
			"display %dx%d is empty", cfg.DisplayWidth, cfg.DisplayHeight)

	case cfg.BarWidth < 1:
		return cfg, errors.Wrapf(ErrConfig, "bar width %d (1 min)", cfg.BarWidth)

	case cfg.GapWidth < 0:
		return cfg, errors.Wrapf(ErrConfig, "gap width %d (0 min)", cfg.GapWidth)

	case cfg.SkipLowBins < 0:
		return cfg, errors.Wrapf(ErrConfig, "skip count %d (0 min)", cfg.SkipLowBins)

	case cfg.NumBars < 0 || cfg.NumLines < 0:
		return cfg, errors.Wrapf(ErrConfig,
			"negative bar (%d) or line (%d) count", cfg.NumBars, cfg.NumLines)

	case cfg.Axis.LogScaleThreshold < 0 || cfg.Axis.LogScaleThreshold > 1:
		return cfg, errors.Wrapf(ErrConfig,
			"log scale threshold %f not in [0, 1]", cfg.Axis.LogScaleThreshold)

	case cfg.Axis.Base < 0:
		return cfg, errors.Wrapf(ErrConfig, "log base %f is negative", cfg.Axis.Base)
	}

	bands := cfg.Bands()
	if bands < 1 {
		return cfg, errors.Wrapf(ErrBands,
			"no bands left after skipping %d of %d", cfg.SkipLowBins, cfg.NumSamples/2)
	}

	if cfg.NumLines == 0 {
		cfg.NumLines = cfg.DisplayHeight
	}

	if cfg.NumLines > cfg.DisplayHeight {
		return cfg, errors.Wrapf(ErrGeometry,
			"%d lines do not fit in %d rows", cfg.NumLines, cfg.DisplayHeight)
	}

	if cfg.NumLines > MaxLines {
		return cfg, errors.Wrapf(ErrBitWidth,
			"%d lines do not fit in a %d bit column", cfg.NumLines, MaxLines)
	}

	if cfg.NumBars == 0 {
		// maximize the number of bars
		cfg.NumBars = (cfg.DisplayWidth + cfg.GapWidth) / (cfg.BarWidth + cfg.GapWidth)

		if cfg.NumBars > bands {
			cfg.NumBars = bands
		}

		if cfg.NumBars < 1 {
			return cfg, errors.Wrapf(ErrGeometry,
				"a %d column bar does not fit in %d columns", cfg.BarWidth, cfg.DisplayWidth)
		}
	}

	if used := cfg.Used(); used > cfg.DisplayWidth {
		return cfg, errors.Wrapf(ErrGeometry,
			"cannot fit %d bars with %d blanks in between in %d columns",
			cfg.NumBars, cfg.GapWidth, cfg.DisplayWidth)
	}

	if cfg.NumBars > bands {
		return cfg, errors.Wrapf(ErrBands,
			"%d bars but only %d bands", cfg.NumBars, bands)
	}

	if cfg.BinMethod == nil {
		cfg.BinMethod = MaxSampleValue()
	}

	return cfg, nil
}

// Used returns the number of display columns the bars take up.
func (cfg EngineConfig) Used() int {
	return cfg.NumBars*cfg.BarWidth + cfg.GapWidth*(cfg.NumBars-1)
}
