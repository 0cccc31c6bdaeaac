// Package fft provides generic abstractions around fourier transformers.
package fft

import "math"

// NewPlan returns a plan transforming input into output.
// output must hold len(input)/2+1 values.
func NewPlan(input []float64, output []complex128) *Plan {
	p := &Plan{
		input:  input,
		output: output,
	}

	p.init()

	return p
}

// Magnitudes writes the magnitude of each coefficient in src to dst.
// Values of dst past len(src) are zeroed.
func Magnitudes(dst []float64, src []complex128) {
	n := len(src)
	if n > len(dst) {
		n = len(dst)
	}

	for idx, cmplx := range src[:n] {
		dst[idx] = math.Hypot(real(cmplx), imag(cmplx))
	}

	for idx := range dst[n:] {
		dst[n+idx] = 0
	}
}
