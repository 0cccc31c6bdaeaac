package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinMethods(t *testing.T) {
	band := []float64{2, 8, 4, 6}

	tests := []struct {
		name string
		want float64
	}{
		{"", 8},
		{"max", 8},
		{"avg", 5},
		{"average", 5},
		{"sum", 20},
	}

	for _, tc := range tests {
		method, ok := BinMethodByName(tc.name)
		require.True(t, ok, tc.name)
		assert.InDelta(t, tc.want, reduce(method, band), 1e-12, tc.name)
	}

	_, ok := BinMethodByName("median")
	assert.False(t, ok)
}
