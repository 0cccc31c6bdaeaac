package util

import (
	"gonum.org/v1/gonum/stat"
)

// MovingWindow keeps the last capacity values pushed into it.
//
// Values live in a fixed slice used as a ring. Until the window is full the
// valid values are the front of the slice, after that the whole slice.
type MovingWindow struct {
	values []float64
	head   int // next slot to write
	length int

	sum float64
}

// NewMovingWindow returns a new moving window.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}

	return &MovingWindow{
		values: make([]float64, size),
	}
}

// Update pushes value, dropping the oldest one once full, and returns the
// mean and standard deviation of the window.
func (mw *MovingWindow) Update(value float64) (float64, float64) {
	if mw.length < len(mw.values) {
		mw.length++
	} else {
		mw.sum -= mw.values[mw.head]
	}

	mw.values[mw.head] = value
	mw.sum += value

	if mw.head++; mw.head == len(mw.values) {
		mw.head = 0
	}

	return mw.Stats()
}

// Recalculate clears the window.
func (mw *MovingWindow) Recalculate() {
	mw.head = 0
	mw.length = 0
	mw.sum = 0
}

// Len returns how many items in the window
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns max size of window
func (mw *MovingWindow) Cap() int {
	return len(mw.values)
}

// Sum returns the total of the values in the window.
func (mw *MovingWindow) Sum() float64 {
	return mw.sum
}

// Mean is the moving window average
func (mw *MovingWindow) Mean() float64 {
	if mw.length == 0 {
		return 0
	}

	return mw.sum / float64(mw.length)
}

// Stats returns the mean and standard deviation of this window
func (mw *MovingWindow) Stats() (float64, float64) {
	switch mw.length {
	case 0:
		return 0, 0
	case 1:
		return mw.Mean(), 0
	}

	return stat.MeanStdDev(mw.values[:mw.length], nil)
}

// Max returns the largest value in the window.
func (mw *MovingWindow) Max() float64 {
	if mw.length == 0 {
		return 0
	}

	max := mw.values[0]
	for _, v := range mw.values[1:mw.length] {
		if v > max {
			max = v
		}
	}

	return max
}
