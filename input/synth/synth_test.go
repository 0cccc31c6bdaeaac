package synth

import (
	"context"
	"math"
	"testing"

	"github.com/noriah/ledspec/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDevice(t *testing.T) {
	tests := []struct {
		in   string
		want Device
	}{
		{"sine", Device{Sine, DefaultFrequency, DefaultAmplitude}},
		{"square:440", Device{Square, 440, DefaultAmplitude}},
		{"sweep:100:2", Device{Sweep, 100, 2}},
		{"silence", Device{Silence, DefaultFrequency, DefaultAmplitude}},
	}

	for _, tc := range tests {
		got, err := ParseDevice(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"saw", "sine:x", "sine:1:y", "sine:1:2:3"} {
		_, err := ParseDevice(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "square:440:50", Device{Square, 440, 50}.String())
	assert.Equal(t, "sine", Device{Sine, DefaultFrequency, DefaultAmplitude}.String())
	assert.Equal(t, "unknown", Wave(9).String())
}

func TestGeneratorSine(t *testing.T) {
	g := &Generator{Wave: Sine, Frequency: 1250, Amplitude: 50, Rate: 5000}

	// a quarter of the rate gives 0, peak, 0, -peak
	buf := make([]float64, 8)
	require.NoError(t, g.Next(buf))

	want := []float64{0, 25, 0, -25, 0, 25, 0, -25}
	for idx := range want {
		assert.InDelta(t, want[idx], buf[idx], 1e-9, "sample %d", idx)
	}

	// phase carries into the next frame
	require.NoError(t, g.Next(buf[:2]))
	assert.InDelta(t, 0, buf[0], 1e-9)
	assert.InDelta(t, 25, buf[1], 1e-9)
}

func TestGeneratorSquareAndSilence(t *testing.T) {
	g := &Generator{Wave: Square, Frequency: 1250, Amplitude: 2, Offset: 1, Rate: 5000}

	buf := make([]float64, 4)
	require.NoError(t, g.Next(buf))

	for _, v := range buf {
		assert.True(t, v == 0 || v == 2, "value %f", v)
	}

	g = &Generator{Wave: Silence, Frequency: 100, Amplitude: 50, Rate: 5000}
	require.NoError(t, g.Next(buf))
	assert.Equal(t, []float64{0, 0, 0, 0}, buf)
}

func TestGeneratorSweepClimbs(t *testing.T) {
	g := &Generator{Wave: Sweep, Amplitude: 2, Rate: 1000}

	assert.InDelta(t, sweepLow, g.frequency(), 1e-9)

	buf := make([]float64, 2000)
	require.NoError(t, g.Next(buf))

	assert.Greater(t, g.frequency(), sweepLow)
	assert.Less(t, g.frequency(), 500.0)

	for _, v := range buf {
		assert.LessOrEqual(t, math.Abs(v), 1.0+1e-9)
	}
}

func TestBackend(t *testing.T) {
	backend, err := input.InitBackend("synth")
	require.NoError(t, err)

	dv, err := input.GetDevice(backend, "sine:1250:50")
	require.NoError(t, err)

	src, err := backend.Start(context.Background(), input.SessionConfig{
		Device:     dv,
		SampleSize: 4,
		SampleRate: 5000,
	})
	require.NoError(t, err)
	defer src.Close()

	buf := make([]float64, 4)
	require.NoError(t, src.Next(buf))
	assert.InDelta(t, 25, buf[1], 1e-9)

	devices, err := backend.Devices()
	require.NoError(t, err)
	assert.Len(t, devices, 4)

	_, err = backend.Start(context.Background(), input.SessionConfig{Device: dv})
	assert.Error(t, err)
}
