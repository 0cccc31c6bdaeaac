package dsp

// Column is one display column. Bit k set means row k (from the bottom) is lit.
type Column uint64

// MaxLines is the tallest bar a Column can hold.
const MaxLines = 64

// EncodeBar packs a bar height into a column, filling rows from the bottom.
// Heights at or above numLines saturate to all rows lit.
func EncodeBar(height float64, numLines int) Column {
	if height >= float64(numLines) {
		return fill(numLines)
	}

	// catches NaN as well
	if !(height > 0) {
		return 0
	}

	return fill(int(height))
}

func fill(rows int) Column {
	if rows >= MaxLines {
		return ^Column(0)
	}

	return (Column(1) << uint(rows)) - 1
}

// Lit reports whether row is lit in the column.
func (c Column) Lit(row int) bool {
	return c&(Column(1)<<uint(row)) != 0
}
