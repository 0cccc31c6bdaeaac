package dsp

const (
	// MinChange is the most a bar may fall, in rows, between two frames.
	MinChange = 1
)

// BarFall limits how fast bars drop. Rises are taken as is.
type BarFall struct {
	prev []int
}

// NewBarFall returns fall state for count bars, all at rest.
func NewBarFall(count int) *BarFall {
	return &BarFall{prev: make([]int, count)}
}

// Apply damps the new height of bar idx and records what will be displayed.
// The recorded height is clamped to [0, numLines] so a saturated bar starts
// falling on the very next frame.
func (bf *BarFall) Apply(idx int, height float64, numLines int) float64 {
	prev := bf.prev[idx]

	if height < float64(prev) {
		if floor := float64(prev - MinChange); height < floor {
			height = floor
		}
	}

	if height < 0 {
		height = 0
	}

	shown := int(height)
	if shown > numLines {
		shown = numLines
	}

	bf.prev[idx] = shown

	return height
}

// Height returns the last displayed height of bar idx.
func (bf *BarFall) Height(idx int) int {
	return bf.prev[idx]
}

// Len returns the number of bars tracked.
func (bf *BarFall) Len() int {
	return len(bf.prev)
}
