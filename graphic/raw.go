package graphic

import (
	"io"
	"strconv"

	"github.com/noriah/ledspec/dsp"
)

// Raw writes one line per frame: the lowercase hex value of every column, space
// separated. Meant for piping into a real LED driver.
type Raw struct {
	w   io.Writer
	buf []byte
}

// NewRaw returns a raw column writer.
func NewRaw(w io.Writer) *Raw {
	return &Raw{w: w}
}

// Write prints one frame.
func (r *Raw) Write(cols []dsp.Column) error {
	r.buf = r.buf[:0]

	for idx, col := range cols {
		if idx > 0 {
			r.buf = append(r.buf, ' ')
		}
		r.buf = strconv.AppendUint(r.buf, uint64(col), 16)
	}

	r.buf = append(r.buf, '\n')

	_, err := r.w.Write(r.buf)
	return err
}
