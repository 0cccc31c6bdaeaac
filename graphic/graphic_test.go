package graphic

import (
	"bytes"
	"os"
	"testing"

	"github.com/noriah/ledspec/dsp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCII(t *testing.T) {
	var buf bytes.Buffer

	a := NewASCII(&buf, 3, true)
	require.NoError(t, a.Write([]dsp.Column{0x7, 0x1, 0x0, 0x3}))

	expected := "" +
		"columns: 7 1 0 3\n" +
		"#   \n" +
		"#  #\n" +
		"## #\n" +
		"----\n"

	assert.Equal(t, expected, buf.String())

	buf.Reset()
	a = NewASCII(&buf, 2, false)
	require.NoError(t, a.Write([]dsp.Column{0x2, 0x0}))
	assert.Equal(t, "# \n  \n--\n", buf.String())
}

func TestRaw(t *testing.T) {
	var buf bytes.Buffer

	r := NewRaw(&buf)
	require.NoError(t, r.Write([]dsp.Column{0xff, 0x0, 0x1f}))
	require.NoError(t, r.Write([]dsp.Column{0x1}))

	assert.Equal(t, "ff 0 1f\n1\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestWriteErrors(t *testing.T) {
	assert.Error(t, NewRaw(failWriter{}).Write([]dsp.Column{1}))
	assert.Error(t, NewASCII(failWriter{}, 1, false).Write([]dsp.Column{1}))
}

type cell struct {
	x, y int
	lit  bool
}

func TestTerminalDraw(t *testing.T) {
	term := NewTerminal(2)

	var cells []cell
	term.draw([]dsp.Column{0x1, 0x3}, 8, 4, func(x, y int, lit bool) {
		cells = append(cells, cell{x, y, lit})
	})

	// 4 cells wide, centered at x 2, rows 1 (top) and 2 (bottom)
	expected := []cell{
		{2, 2, true}, {3, 2, true},
		{2, 1, false}, {3, 1, false},
		{4, 2, true}, {5, 2, true},
		{4, 1, true}, {5, 1, true},
	}

	assert.Equal(t, expected, cells)
}

func TestTerminalDrawClips(t *testing.T) {
	term := NewTerminal(4)

	count := 0
	term.draw(make([]dsp.Column, 10), 5, 2, func(x, y int, _ bool) {
		assert.True(t, x >= 0 && x < 5)
		assert.True(t, y >= 0 && y < 2)
		count++
	})

	// 5 columns of 2 rows fit
	assert.Equal(t, 10, count)
}

func TestStyles(t *testing.T) {
	fg, bg, off := DefaultStyles().AsUInt16s()
	assert.Equal(t, DefaultStyles(), StylesFromUInt16(fg, bg, off))
}

func TestNormalizeTerminal(t *testing.T) {
	prevTERM, hadTERM := os.LookupEnv("TERM")
	prevTERMINFO, hadTERMINFO := os.LookupEnv("TERMINFO")

	defer func() {
		if hadTERM {
			os.Setenv("TERM", prevTERM)
		} else {
			os.Unsetenv("TERM")
		}

		if hadTERMINFO {
			os.Setenv("TERMINFO", prevTERMINFO)
		} else {
			os.Unsetenv("TERMINFO")
		}
	}()

	os.Setenv("TERM", "tmux-256color")
	os.Setenv("TERMINFO", "/tmp/terminfo")

	restore, err := normalizeTerminal()
	require.NoError(t, err)

	_, ok := os.LookupEnv("TERMINFO")
	assert.False(t, ok)

	restore()
	assert.Equal(t, "/tmp/terminfo", os.Getenv("TERMINFO"))
}
