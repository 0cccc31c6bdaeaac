package graphic

import (
	"context"
	"os"
	"strings"

	"github.com/noriah/ledspec/dsp"
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
)

const (
	// LEDRune is drawn for a lit LED.
	LEDRune = '█'
	// OffRune is drawn for an unlit LED.
	OffRune = '·'
	// CellWidth is how many terminal cells one LED takes. Terminal cells are
	// about twice as tall as wide.
	CellWidth = 2
)

// Terminal emulates the LED matrix on a termbox screen.
type Terminal struct {
	lines  int
	styles Styles

	restore func()
}

// NewTerminal returns a terminal display for bars of lines rows.
func NewTerminal(lines int) *Terminal {
	return &Terminal{
		lines:  lines,
		styles: DefaultStyles(),
	}
}

// SetStyles sets the colors of the matrix.
func (t *Terminal) SetStyles(styles Styles) {
	t.styles = styles
}

// Init sets up the terminal. Call Close when done.
func (t *Terminal) Init() error {
	restore, err := normalizeTerminal()
	if err != nil {
		return errors.Wrap(err, "failed to normalize terminal")
	}

	if err := termbox.Init(); err != nil {
		restore()
		return errors.Wrap(err, "failed to init termbox")
	}

	termbox.HideCursor()
	t.restore = restore

	return nil
}

// Close cleans up the terminal.
func (t *Terminal) Close() error {
	if t.restore == nil {
		return nil
	}

	termbox.Close()
	t.restore()
	t.restore = nil

	return nil
}

// Start starts the key poller. The returned context is cancelled when the
// user quits with q, Esc or Ctrl-C.
func (t *Terminal) Start(ctx context.Context) context.Context {
	dispCtx, dispCancel := context.WithCancel(ctx)
	go eventPoller(dispCtx, dispCancel)
	return dispCtx
}

// Stop wakes the poller so it can exit.
func (t *Terminal) Stop() {
	termbox.Interrupt()
}

func eventPoller(ctx context.Context, fn context.CancelFunc) {
	defer fn()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := termbox.PollEvent()

		switch ev.Type {
		case termbox.EventKey:
			switch ev.Key {
			case termbox.KeyEsc, termbox.KeyCtrlC:
				return
			}

			if ev.Ch == 'q' || ev.Ch == 'Q' {
				return
			}

		case termbox.EventInterrupt, termbox.EventError:
			return
		}
	}
}

// Write draws one frame, centered on the screen.
func (t *Terminal) Write(cols []dsp.Column) error {
	if err := termbox.Clear(t.styles.Background, t.styles.Background); err != nil {
		return err
	}

	width, height := termbox.Size()

	t.draw(cols, width, height, func(x, y int, lit bool) {
		if lit {
			termbox.SetCell(x, y, LEDRune, t.styles.Foreground, t.styles.Background)
		} else {
			termbox.SetCell(x, y, OffRune, t.styles.Off, t.styles.Background)
		}
	})

	return termbox.Flush()
}

// draw calls set for every visible cell of the matrix. Row 0 is the bottom.
func (t *Terminal) draw(cols []dsp.Column, width, height int, set func(x, y int, lit bool)) {
	xOff := (width - len(cols)*CellWidth) / 2
	if xOff < 0 {
		xOff = 0
	}

	yOff := (height - t.lines) / 2
	if yOff < 0 {
		yOff = 0
	}

	for xCol, col := range cols {
		for row := 0; row < t.lines; row++ {
			y := yOff + t.lines - 1 - row
			if y >= height {
				continue
			}

			lit := col.Lit(row)

			for xCell := 0; xCell < CellWidth; xCell++ {
				x := xOff + xCol*CellWidth + xCell
				if x >= width {
					break
				}

				set(x, y, lit)
			}
		}
	}
}

// normalizeTerminal looks for incompatibilities in the terminal configuration
// with the underlying rendering libraries (Termbox) and makes some adjustments
// to avoid problems.
//
// Returns a function that allows you to restore the terminal configuration to its original state.
func normalizeTerminal() (func(), error) {
	prevTERMINFO, hadTERMINFO := os.LookupEnv("TERMINFO")

	if strings.HasPrefix(os.Getenv("TERM"), "tmux") {
		// Some combinations of TERMINFO with TERM in some Tmux value
		// will cause Termbox to fail.
		if err := os.Unsetenv("TERMINFO"); err != nil {
			return nil, err
		}
	}

	restore := func() {
		if !hadTERMINFO {
			os.Unsetenv("TERMINFO")
			return
		}

		if err := os.Setenv("TERMINFO", prevTERMINFO); err != nil {
			panic(err)
		}
	}

	return restore, nil
}
