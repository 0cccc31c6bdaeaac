package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarFallDropsOneRowPerFrame(t *testing.T) {
	bf := NewBarFall(2)

	assert.Equal(t, 6.0, bf.Apply(0, 6, 8))
	assert.Equal(t, 6, bf.Height(0))

	for want := 5; want >= 0; want-- {
		got := bf.Apply(0, 0, 8)
		assert.Equal(t, float64(want), got)
		assert.Equal(t, want, bf.Height(0))
	}

	// stays at rest
	assert.Equal(t, 0.0, bf.Apply(0, 0, 8))

	// other bars are untouched
	assert.Equal(t, 0, bf.Height(1))
	assert.Equal(t, 2, bf.Len())
}

func TestBarFallRisesImmediately(t *testing.T) {
	bf := NewBarFall(1)

	bf.Apply(0, 2, 8)
	assert.Equal(t, 7.5, bf.Apply(0, 7.5, 8))
	assert.Equal(t, 7, bf.Height(0))
}

func TestBarFallSmallDropsPass(t *testing.T) {
	bf := NewBarFall(1)

	bf.Apply(0, 5, 8)
	assert.Equal(t, 4.5, bf.Apply(0, 4.5, 8))
	assert.Equal(t, 4, bf.Height(0))
}

func TestBarFallSaturatedStartsFalling(t *testing.T) {
	bf := NewBarFall(1)

	bf.Apply(0, 20, 8)
	assert.Equal(t, 8, bf.Height(0))
	assert.Equal(t, 7.0, bf.Apply(0, 0, 8))
}
