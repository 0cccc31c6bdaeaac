package dsp

import (
	"math"

	"github.com/pkg/errors"
)

// AxisScale selects how bars are spread over the frequency bands.
type AxisScale int

// Axis scales
const (
	// AxisLog keeps the lowest bars 1:1 and groups the rest exponentially.
	AxisLog AxisScale = iota
	// AxisLinear gives every bar the same number of bands.
	AxisLinear
)

// DefaultLinearBars is the number of 1:1 bars when no threshold is set.
const DefaultLinearBars = 8

func (s AxisScale) String() string {
	switch s {
	case AxisLog:
		return "log"
	case AxisLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseAxisScale returns the scale named name.
func ParseAxisScale(name string) (AxisScale, error) {
	switch name {
	case "log", "":
		return AxisLog, nil
	case "linear", "lin":
		return AxisLinear, nil
	default:
		return AxisLog, errors.Wrapf(ErrConfig, "unknown axis scale %q", name)
	}
}

// AxisMapper maps bar indexes to band boundaries.
type AxisMapper struct {
	Scale AxisScale

	// LinearBars is the count of low bars mapped 1:1 to bands.
	// Used when LogScaleThreshold is zero.
	LinearBars int

	// LogScaleThreshold is the fraction of bars kept linear, in (0, 1].
	LogScaleThreshold float64

	// Base overrides the computed exponential base when > 0. It is still
	// floored at the minimum base.
	Base float64
}

// Linear returns the linear threshold b0 for numBars bars.
func (am AxisMapper) Linear(numBars int) int {
	b0 := am.LinearBars
	if am.LogScaleThreshold > 0 {
		b0 = int(am.LogScaleThreshold * float64(numBars))
	}

	switch {
	case b0 < 0:
		return 0
	case b0 > numBars:
		return numBars
	}

	return b0
}

// BandBoundary returns the first band of bar idx, for idx in [0, numBars].
// BandBoundary(numBars, ...) is numBands.
//
// This is the raw curve. Use Map for a table where every bar is guaranteed
// at least one band.
func (am AxisMapper) BandBoundary(idx, numBars, numBands int) int {
	if idx >= numBars {
		return numBands
	}

	if idx <= 0 {
		return 0
	}

	if am.Scale == AxisLinear {
		return int(float64(idx) / float64(numBars) * float64(numBands))
	}

	b0 := am.Linear(numBars)
	if idx <= b0 {
		return idx
	}

	base := am.base(numBars-b0, numBands-b0)

	step := math.Pow(base, float64(idx-b0))
	if step > float64(numBands-b0) {
		return numBands
	}

	return b0 + int(step)
}

// base picks B so that B^bars is about bands, floored at log(bands)/log(bars).
func (am AxisMapper) base(bars, bands int) float64 {
	fBars, fBands := float64(bars), float64(bands)

	base := math.Pow(fBands, 1.0/fBars)
	if am.Base > 0 {
		base = am.Base
	}

	if bars > 1 {
		if minBase := math.Log(fBands) / math.Log(fBars); base < minBase {
			base = minBase
		}
	}

	return base
}

// AxisMap holds the band boundaries of every bar, skip offset included.
// Bar i covers bins [bounds[i], bounds[i+1]).
type AxisMap struct {
	bounds []int
}

// Map builds the boundary table for numBars bars over numBands bands,
// offset by skip. Each bar is given at least one band.
func (am AxisMapper) Map(numBars, numBands, skip int) (AxisMap, error) {
	if numBars < 1 {
		return AxisMap{}, errors.Wrapf(ErrConfig, "bar count %d (1 min)", numBars)
	}

	if numBars > numBands {
		return AxisMap{}, errors.Wrapf(ErrBands,
			"%d bars need at least %d bands, have %d", numBars, numBars, numBands)
	}

	bounds := make([]int, numBars+1)

	for idx := 1; idx < numBars; idx++ {
		b := am.BandBoundary(idx, numBars, numBands)

		if b <= bounds[idx-1] {
			b = bounds[idx-1] + 1
		}

		// leave room for one band per remaining bar
		if room := numBands - (numBars - idx); b > room {
			b = room
		}

		bounds[idx] = b
	}

	bounds[numBars] = numBands

	for idx := range bounds {
		bounds[idx] += skip
	}

	return AxisMap{bounds: bounds}, nil
}

// Bars returns the number of bars in the map.
func (m AxisMap) Bars() int {
	return len(m.bounds) - 1
}

// Boundary returns the first bin of bar idx. Boundary(Bars()) closes the range.
func (m AxisMap) Boundary(idx int) int {
	return m.bounds[idx]
}

// Band returns the bin range [start, end) of bar idx.
func (m AxisMap) Band(idx int) (int, int) {
	return m.bounds[idx], m.bounds[idx+1]
}
