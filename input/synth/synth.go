// Package synth generates test signals so the display can run without any
// audio hardware.
package synth

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/noriah/ledspec/input"
	"github.com/pkg/errors"
)

// Defaults match a 2 kHz tone read by a 5 kHz ADC with a 50 step swing.
const (
	DefaultFrequency = 2000.0
	DefaultAmplitude = 50.0

	// SweepPeriod is how long a sweep takes to climb to the top, in seconds.
	SweepPeriod = 4.0

	sweepLow = 20.0
)

func init() {
	input.RegisterBackend("synth", Backend{})
}

// Wave is the shape of a generated signal.
type Wave int

// Waves
const (
	Sine Wave = iota
	Square
	Sweep
	Silence
)

var waveNames = []string{"sine", "square", "sweep", "silence"}

func (w Wave) String() string {
	if w < 0 || int(w) >= len(waveNames) {
		return "unknown"
	}
	return waveNames[w]
}

// ParseWave looks a wave up by name.
func ParseWave(name string) (Wave, error) {
	for idx, n := range waveNames {
		if n == name {
			return Wave(idx), nil
		}
	}

	return 0, errors.Errorf("unknown wave %q", name)
}

// Device describes a generated signal. Its name is wave[:frequency[:amplitude]].
type Device struct {
	Wave      Wave
	Frequency float64
	Amplitude float64
}

func (d Device) String() string {
	if d.Frequency == DefaultFrequency && d.Amplitude == DefaultAmplitude {
		return d.Wave.String()
	}

	return d.Wave.String() + ":" +
		strconv.FormatFloat(d.Frequency, 'g', -1, 64) + ":" +
		strconv.FormatFloat(d.Amplitude, 'g', -1, 64)
}

// ParseDevice parses wave[:frequency[:amplitude]].
func ParseDevice(name string) (Device, error) {
	parts := strings.Split(name, ":")
	if len(parts) > 3 {
		return Device{}, errors.Errorf("bad synth device %q; want wave[:freq[:amp]]", name)
	}

	wave, err := ParseWave(parts[0])
	if err != nil {
		return Device{}, err
	}

	dv := Device{
		Wave:      wave,
		Frequency: DefaultFrequency,
		Amplitude: DefaultAmplitude,
	}

	if len(parts) > 1 {
		if dv.Frequency, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return Device{}, errors.Wrapf(err, "bad frequency in %q", name)
		}
	}

	if len(parts) > 2 {
		if dv.Amplitude, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return Device{}, errors.Wrapf(err, "bad amplitude in %q", name)
		}
	}

	return dv, nil
}

type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

func (b Backend) Devices() ([]input.Device, error) {
	devices := make([]input.Device, len(waveNames))
	for idx := range waveNames {
		devices[idx] = Device{
			Wave:      Wave(idx),
			Frequency: DefaultFrequency,
			Amplitude: DefaultAmplitude,
		}
	}

	return devices, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return Device{Wave: Sine, Frequency: DefaultFrequency, Amplitude: DefaultAmplitude}, nil
}

// OpenDevice accepts any wave[:frequency[:amplitude]] name.
func (b Backend) OpenDevice(name string) (input.Device, error) {
	return ParseDevice(name)
}

func (b Backend) Start(_ context.Context, cfg input.SessionConfig) (input.Source, error) {
	dv, ok := cfg.Device.(Device)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	if cfg.SampleRate <= 0 {
		return nil, errors.Errorf("sample rate %f must be positive", cfg.SampleRate)
	}

	return &Generator{
		Wave:      dv.Wave,
		Frequency: dv.Frequency,
		Amplitude: dv.Amplitude,
		Rate:      cfg.SampleRate,
	}, nil
}

// Generator produces an endless signal. The phase carries over between
// frames.
type Generator struct {
	Wave      Wave
	Frequency float64 // Hz
	Amplitude float64 // peak to peak
	Offset    float64 // added to every sample
	Rate      float64 // samples per second

	phase float64
	n     int
}

// Next fills buf with the next samples. It never fails.
func (g *Generator) Next(buf []float64) error {
	half := g.Amplitude / 2.0

	for idx := range buf {
		var v float64

		switch g.Wave {
		case Sine, Sweep:
			v = math.Sin(g.phase)
		case Square:
			if math.Sin(g.phase) >= 0 {
				v = 1
			} else {
				v = -1
			}
		}

		buf[idx] = g.Offset + half*v

		g.phase = math.Mod(g.phase+2*math.Pi*g.frequency()/g.Rate, 2*math.Pi)
		g.n++
	}

	return nil
}

func (g *Generator) frequency() float64 {
	if g.Wave != Sweep {
		return g.Frequency
	}

	period := int(SweepPeriod * g.Rate)
	if period < 1 {
		return g.Frequency
	}

	pos := float64(g.n%period) / float64(period)
	top := g.Rate / 2

	return sweepLow * math.Pow(top/sweepLow, pos)
}

// Close does nothing.
func (g *Generator) Close() error {
	return nil
}
