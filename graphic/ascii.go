package graphic

import (
	"bytes"
	"fmt"
	"io"

	"github.com/noriah/ledspec/dsp"
)

// ASCII dumps every frame as a text bar chart, top row first.
type ASCII struct {
	w       io.Writer
	lines   int
	showHex bool

	buf bytes.Buffer
}

// NewASCII returns a chart writer for bars of lines rows. With showHex the
// packed column values are printed above each chart.
func NewASCII(w io.Writer, lines int, showHex bool) *ASCII {
	return &ASCII{
		w:       w,
		lines:   lines,
		showHex: showHex,
	}
}

// Write prints one frame.
func (a *ASCII) Write(cols []dsp.Column) error {
	a.buf.Reset()

	if a.showHex {
		a.buf.WriteString("columns:")
		for _, col := range cols {
			fmt.Fprintf(&a.buf, " %X", uint64(col))
		}
		a.buf.WriteByte('\n')
	}

	for row := a.lines - 1; row >= 0; row-- {
		for _, col := range cols {
			if col.Lit(row) {
				a.buf.WriteByte('#')
			} else {
				a.buf.WriteByte(' ')
			}
		}
		a.buf.WriteByte('\n')
	}

	a.buf.Write(bytes.Repeat([]byte{'-'}, len(cols)))
	a.buf.WriteByte('\n')

	_, err := a.w.Write(a.buf.Bytes())
	return err
}
