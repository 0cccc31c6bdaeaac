package dsp

import (
	"bytes"
	"log"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.NumSamples = 16
	cfg.DisplayWidth = 8
	cfg.DisplayHeight = 8
	cfg.SkipLowBins = 0
	return cfg
}

func lit(col Column) int {
	return bits.OnesCount64(uint64(col))
}

func TestEngineConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*EngineConfig)
		want   error
	}{
		{"too wide", func(c *EngineConfig) { c.NumBars = 5; c.BarWidth = 2 }, ErrGeometry},
		{"gaps too wide", func(c *EngineConfig) { c.NumBars = 3; c.BarWidth = 2; c.GapWidth = 2 }, ErrGeometry},
		{"too tall", func(c *EngineConfig) { c.NumLines = 9 }, ErrGeometry},
		{"empty display", func(c *EngineConfig) { c.DisplayWidth = 0 }, ErrGeometry},
		{"bar wider than display", func(c *EngineConfig) { c.BarWidth = 9 }, ErrGeometry},
		{"bit width", func(c *EngineConfig) { c.DisplayHeight = 80; c.NumLines = 65 }, ErrBitWidth},
		{"more bars than bands", func(c *EngineConfig) { c.DisplayWidth = 9; c.NumBars = 9 }, ErrBands},
		{"skip everything", func(c *EngineConfig) { c.SkipLowBins = 8 }, ErrBands},
		{"few samples", func(c *EngineConfig) { c.NumSamples = 2 }, ErrConfig},
		{"zero bar width", func(c *EngineConfig) { c.BarWidth = 0 }, ErrConfig},
		{"negative gap", func(c *EngineConfig) { c.GapWidth = -1 }, ErrConfig},
		{"negative skip", func(c *EngineConfig) { c.SkipLowBins = -1 }, ErrConfig},
		{"negative bars", func(c *EngineConfig) { c.NumBars = -1 }, ErrConfig},
		{"threshold", func(c *EngineConfig) { c.Axis.LogScaleThreshold = 1.5 }, ErrConfig},
		{"base", func(c *EngineConfig) { c.Axis.Base = -2 }, ErrConfig},
		{"window", func(c *EngineConfig) { c.WindowSize = 0 }, ErrConfig},
		{"group", func(c *EngineConfig) { c.FrameGroupSize = 0 }, ErrConfig},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.modify(&cfg)

			e, err := NewEngine(cfg)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEngineConfigFits(t *testing.T) {
	cfg := testConfig()
	cfg.NumBars = 3
	cfg.BarWidth = 2
	cfg.GapWidth = 1

	e, err := NewEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Bars())
	assert.Equal(t, 8, e.Config().Used())
}

func TestEngineAutoSize(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.NumSamples = 256
	cfg.DisplayWidth = 32
	cfg.BarWidth = 3
	cfg.GapWidth = 1

	e, err := NewEngine(cfg)
	require.NoError(t, err)

	assert.Equal(t, 8, e.Bars())
	assert.Equal(t, 8, e.Lines())
	assert.Equal(t, 127, e.Bands())
	assert.Equal(t, 32, e.Width())
	assert.Equal(t, 8, e.Height())

	// capped to the bands available
	cfg = DefaultEngineConfig()
	cfg.NumSamples = 16

	e, err = NewEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 7, e.Bars())
}

func TestEngineRenderLength(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.NumSamples = 512
	cfg.DisplayWidth = 40

	e, err := NewEngine(cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	frame := make([]float64, cfg.NumSamples)

	for i := 0; i < 50; i++ {
		for j := range frame {
			frame[j] = rng.Float64() * 300
		}

		cols := e.Render(frame)
		require.Len(t, cols, e.Bars())

		for _, col := range cols {
			assert.LessOrEqual(t, lit(col), e.Lines())
		}
	}
}

func TestEngineBarFall(t *testing.T) {
	e, err := NewEngine(testConfig())
	require.NoError(t, err)
	require.Equal(t, 8, e.Bars())

	frame := make([]float64, 16)
	frame[3] = 100

	cols := e.Render(frame)
	assert.Equal(t, 8, lit(cols[3]))
	assert.Equal(t, 0, lit(cols[2]))

	frame[3] = 0
	for want := 7; want >= 0; want-- {
		cols = e.Render(frame)
		assert.Equal(t, want, lit(cols[3]))
	}

	assert.Equal(t, 0, lit(e.Render(frame)[3]))
}

func TestEngineNoBarFall(t *testing.T) {
	cfg := testConfig()
	cfg.BarFall = false

	e, err := NewEngine(cfg)
	require.NoError(t, err)

	frame := make([]float64, 16)
	frame[5] = 100
	assert.Equal(t, 8, lit(e.Render(frame)[5]))

	frame[5] = 0
	assert.Equal(t, 0, lit(e.Render(frame)[5]))
}

func TestEngineIgnoresSkippedBins(t *testing.T) {
	cfg := testConfig()
	cfg.SkipLowBins = 2
	cfg.DisplayWidth = 6

	e, err := NewEngine(cfg)
	require.NoError(t, err)
	require.Equal(t, 6, e.Bars())

	frame := make([]float64, 16)
	frame[0] = 1e6
	frame[1] = 1e6
	frame[2] = 50

	cols := e.Render(frame)
	assert.Equal(t, 8, lit(cols[0]))
	assert.Equal(t, 2, e.Axis().Boundary(0))
	assert.Equal(t, 8, e.Axis().Boundary(6))
}

func TestEngineSilence(t *testing.T) {
	cfg := testConfig()
	cfg.ScaleFloor = 0

	e, err := NewEngine(cfg)
	require.NoError(t, err)

	for _, col := range e.Render(make([]float64, 16)) {
		assert.Equal(t, Column(0), col)
	}
}

func TestEngineExpand(t *testing.T) {
	cfg := testConfig()
	cfg.DisplayWidth = 10
	cfg.NumBars = 3
	cfg.BarWidth = 2
	cfg.GapWidth = 1

	e, err := NewEngine(cfg)
	require.NoError(t, err)

	out := e.Expand([]Column{0x1, 0x3, 0x7})
	assert.Equal(t, []Column{1, 1, 0, 3, 3, 0, 7, 7, 0, 0}, out)

	out = e.Expand([]Column{0xf, 0, 0})
	assert.Equal(t, []Column{0xf, 0xf, 0, 0, 0, 0, 0, 0, 0, 0}, out)
}

func TestEngineLogsBands(t *testing.T) {
	var buf bytes.Buffer

	cfg := testConfig()
	cfg.NumBars = 2
	cfg.Logger = log.New(&buf, "", 0)

	_, err := NewEngine(cfg)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "bar 0: bins 0 to 1")
	assert.Contains(t, buf.String(), "bar 1: bins 1 to 8")
}

func BenchmarkRender(b *testing.B) {
	cfg := DefaultEngineConfig()
	cfg.NumSamples = 2048
	cfg.DisplayWidth = 200
	cfg.DisplayHeight = 32

	e, err := NewEngine(cfg)
	require.NoError(b, err)

	frame := make([]float64, cfg.NumSamples)
	rng := rand.New(rand.NewSource(1))
	for i := range frame {
		frame[i] = rng.Float64()
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Expand(e.Render(frame))
	}
}
