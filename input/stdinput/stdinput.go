// Package stdinput reads raw mono float32le samples from stdin.
package stdinput

import (
	"context"
	"io"
	"os"

	"github.com/noriah/ledspec/input"
	"github.com/noriah/ledspec/input/common/execread"
)

func init() {
	input.RegisterBackend("stdin", StdinBackend{})
}

type StdinBackend struct{}

func (b StdinBackend) Init() error {
	return nil
}

func (b StdinBackend) Close() error {
	return nil
}

func (b StdinBackend) Devices() ([]input.Device, error) {
	return []input.Device{StdInputDevice{}}, nil
}

func (b StdinBackend) DefaultDevice() (input.Device, error) {
	return StdInputDevice{}, nil
}

func (b StdinBackend) Start(_ context.Context, _ input.SessionConfig) (input.Source, error) {
	return NewSession(os.Stdin), nil
}

type StdInputDevice struct{}

func (d StdInputDevice) String() string {
	return "stdin"
}

// Session reads frames from a stream of float32le samples.
type Session struct {
	r      io.Reader
	reader *execread.Reader
}

// NewSession returns a session reading from r.
func NewSession(r io.Reader) *Session {
	return &Session{
		r:      r,
		reader: execread.NewReader(r, true, 1),
	}
}

func (s *Session) Next(buf []float64) error {
	return s.reader.Next(buf)
}

func (s *Session) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
