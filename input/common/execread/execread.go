// Package execread provides a shared struct that wraps around cmd.
package execread

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Reader decodes little endian float frames from a byte stream. Interleaved
// channels are averaged down to one.
type Reader struct {
	r        io.Reader
	raw      []byte
	channels int
	width    int // bytes per value
}

// NewReader returns a reader of float32 (f32mode) or float64 values.
func NewReader(r io.Reader, f32mode bool, channels int) *Reader {
	if channels < 1 {
		channels = 1
	}

	width := 8
	if f32mode {
		width = 4
	}

	return &Reader{
		r:        r,
		channels: channels,
		width:    width,
	}
}

// Next fills buf with the next frame. A stream ending mid frame is io.EOF.
func (fr *Reader) Next(buf []float64) error {
	size := len(buf) * fr.channels * fr.width
	if cap(fr.raw) < size {
		fr.raw = make([]byte, size)
	}

	raw := fr.raw[:size]

	if _, err := io.ReadFull(fr.r, raw); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return io.EOF
		}
		return err
	}

	scale := 1.0 / float64(fr.channels)

	for idx := range buf {
		sum := 0.0
		for ch := 0; ch < fr.channels; ch++ {
			sum += fr.value(raw)
			raw = raw[fr.width:]
		}

		buf[idx] = sum * scale
	}

	return nil
}

func (fr *Reader) value(b []byte) float64 {
	if fr.width == 8 {
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}

	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}

// Session is a session that reads floating-point audio values from a Cmd.
type Session struct {
	// prevents cmd.Stderr from poiting to os.Stderr. false by default.
	DisconnectedStderr bool

	argv     []string
	f32mode  bool
	channels int

	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *Reader
}

// NewSession creates a new execread session. It never returns an error.
func NewSession(argv []string, f32mode bool, channels int) *Session {
	if len(argv) < 1 {
		panic("argv has no arg0")
	}

	return &Session{
		argv:     argv,
		f32mode:  f32mode,
		channels: channels,
	}
}

// Start runs the command. It is killed when ctx is done.
func (s *Session) Start(ctx context.Context) error {
	s.cmd = exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)

	if !s.DisconnectedStderr {
		s.cmd.Stderr = os.Stderr
	}

	o, err := s.cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	if err := s.cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start "+s.argv[0])
	}

	s.stdout = o
	s.reader = NewReader(o, s.f32mode, s.channels)

	return nil
}

// Next reads the next frame from the command output.
func (s *Session) Next(buf []float64) error {
	if s.reader == nil {
		return errors.New("session not started")
	}

	return s.reader.Next(buf)
}

// Close stops the command.
func (s *Session) Close() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}

	s.stdout.Close()
	s.cmd.Process.Kill()
	// the command was killed, its exit status says nothing useful
	s.cmd.Wait()

	return nil
}

// Args returns the command line of the session.
func (s *Session) Args() []string {
	return s.argv
}
