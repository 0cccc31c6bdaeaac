// Package input provides the sample sources that feed the display.
package input

import "io"

// Device is an input device of a backend.
type Device interface {
	String() string
}

// SessionConfig is the configuration of an input session.
type SessionConfig struct {
	Device     Device  // device to read from
	SampleSize int     // samples per frame
	SampleRate float64 // samples per second
}

// Source produces sample frames.
type Source interface {
	// Next fills buf with the next frame of samples. It returns io.EOF once
	// the source is exhausted.
	Next(buf []float64) error
	Close() error
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(buf []float64) error

// Next calls f(buf).
func (f SourceFunc) Next(buf []float64) error {
	return f(buf)
}

// Close does nothing.
func (f SourceFunc) Close() error {
	return nil
}

// Frames returns a Source replaying frames in order, then io.EOF.
func Frames(frames ...[]float64) Source {
	var idx int

	return SourceFunc(func(buf []float64) error {
		if idx >= len(frames) {
			return io.EOF
		}

		n := copy(buf, frames[idx])
		for i := range buf[n:] {
			buf[n+i] = 0
		}

		idx++

		return nil
	})
}
