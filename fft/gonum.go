package fft

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan holds a gonum FFT plan.
type Plan struct {
	input  []float64
	output []complex128
	fft    *fourier.FFT
}

func (p *Plan) init() {
	p.fft = fourier.NewFFT(len(p.input))
}

// Execute executes the gonum plan.
func (p *Plan) Execute() {
	p.fft.Coefficients(p.output, p.input)
}

// Input returns the buffer the plan reads from.
func (p *Plan) Input() []float64 {
	return p.input
}

// Output returns the buffer the plan writes to.
func (p *Plan) Output() []complex128 {
	return p.output
}
