package dsp

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Scaling defaults
const (
	// DefaultWindowSize is the number of time buckets kept by the tracker.
	DefaultWindowSize = 3

	// DefaultFrameGroupSize is how many frames share one bucket.
	DefaultFrameGroupSize = 16

	// DefaultScaleFloor keeps near-silent frames from blowing up the scale.
	DefaultScaleFloor = 1.0
)

// ScaleConfig tunes the vertical scale tracker.
type ScaleConfig struct {
	WindowSize     int     // number of buckets in the window
	FrameGroupSize int     // frames per bucket
	Floor          float64 // lowest max value a frame can report
}

// ScaleTracker keeps a smoothed running maximum over recent frames.
//
// The window holds WindowSize buckets, each the max of FrameGroupSize frames.
// sum always holds the total of every bucket except the newest one.
type ScaleTracker struct {
	buckets   []float64
	sum       float64
	count     int
	groupSize int
	floor     float64
}

// NewScaleTracker returns a tracker with a pre-sized bucket window.
func NewScaleTracker(cfg ScaleConfig) (*ScaleTracker, error) {
	if cfg.WindowSize < 1 {
		return nil, errors.Wrapf(ErrConfig, "window size %d (1 min)", cfg.WindowSize)
	}

	if cfg.FrameGroupSize < 1 {
		return nil, errors.Wrapf(ErrConfig, "frame group size %d (1 min)", cfg.FrameGroupSize)
	}

	if cfg.Floor < 0 {
		return nil, errors.Wrapf(ErrConfig, "scale floor %f is negative", cfg.Floor)
	}

	return &ScaleTracker{
		buckets:   make([]float64, cfg.WindowSize),
		groupSize: cfg.FrameGroupSize,
		floor:     cfg.Floor,
	}, nil
}

// Update feeds one frame into the tracker and returns the value the frame
// should be scaled against. Bins before skip are ignored.
func (st *ScaleTracker) Update(bins []float64, skip int) float64 {
	last := len(st.buckets) - 1

	if st.count%st.groupSize == 0 {
		st.sum -= st.buckets[0]
		st.sum += st.buckets[last]

		copy(st.buckets, st.buckets[1:])

		st.buckets[last] = 0
	}

	st.count++

	current := floats.Max(bins[skip:])
	if current < st.floor {
		current = st.floor
	}

	if st.buckets[last] < current {
		st.buckets[last] = current
	}

	avg := (st.sum + st.buckets[last]) / float64(len(st.buckets))

	if avg < current {
		return current
	}

	return avg
}

// Buckets returns a copy of the current bucket window, oldest first.
func (st *ScaleTracker) Buckets() []float64 {
	out := make([]float64, len(st.buckets))
	copy(out, st.buckets)
	return out
}

// Sum returns the running total of every bucket but the newest.
func (st *ScaleTracker) Sum() float64 {
	return st.sum
}

// Frames returns how many frames have been fed in.
func (st *ScaleTracker) Frames() int {
	return st.count
}
