// Package window provides Window Functions for singnal analysis
//
// See https://wikipedia.org/wiki/Window_function
package window

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	gowindow "github.com/mjibson/go-dsp/window"
)

// Function is a function that will do window things for you
type Function func(buf []float64)

// Rectangle is just do nothing
func Rectangle() Function {
	return func([]float64) {}
}

// Hamming weighs the buffer with a Hamming window.
func Hamming() Function {
	return fromCoefficients(gowindow.Hamming)
}

// Hann weighs the buffer with a Hann window.
func Hann() Function {
	return fromCoefficients(gowindow.Hann)
}

// Bartlett weighs the buffer with a Bartlett window.
func Bartlett() Function {
	return fromCoefficients(gowindow.Bartlett)
}

// Blackman weighs the buffer with a Blackman window.
func Blackman() Function {
	return fromCoefficients(gowindow.Blackman)
}

// FlatTop weighs the buffer with a flat top window.
func FlatTop() Function {
	return fromCoefficients(gowindow.FlatTop)
}

// fromCoefficients caches the coefficients for the last buffer length seen.
func fromCoefficients(gen func(int) []float64) Function {
	var coeffs []float64

	return func(buf []float64) {
		if len(coeffs) != len(buf) {
			coeffs = gen(len(buf))
		}

		floats.Mul(buf, coeffs)
	}
}

var functions = map[string]func() Function{
	"rectangle": Rectangle,
	"hamming":   Hamming,
	"hann":      Hann,
	"bartlett":  Bartlett,
	"blackman":  Blackman,
	"flattop":   FlatTop,
}

// ByName returns a new window function by name.
func ByName(name string) (Function, error) {
	fn, ok := functions[name]
	if !ok {
		return nil, errors.Errorf("unknown window %q; one of %v", name, Names())
	}

	return fn(), nil
}

// Names returns all window names, sorted.
func Names() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
