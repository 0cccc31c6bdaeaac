// Package wavfile plays samples from a WAV file.
package wavfile

import (
	"context"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/noriah/ledspec/input"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("wav", Backend{})
}

type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

// Devices lists nothing, any WAV file path is a device.
func (b Backend) Devices() ([]input.Device, error) {
	return nil, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return nil, errors.New("no default device; give a file path")
}

// OpenDevice checks that name is a readable file.
func (b Backend) OpenDevice(name string) (input.Device, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat wav file")
	}

	if info.IsDir() {
		return nil, errors.Errorf("%q is a directory", name)
	}

	return FileDevice(name), nil
}

func (b Backend) Start(_ context.Context, cfg input.SessionConfig) (input.Source, error) {
	dv, ok := cfg.Device.(FileDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	return Open(string(dv))
}

// FileDevice is the path of a WAV file.
type FileDevice string

func (d FileDevice) String() string {
	return string(d)
}

// Source reads mono frames from a WAV file. Channels are averaged.
type Source struct {
	file    io.Closer
	dec     *wav.Decoder
	pcm     audio.IntBuffer
	signed  bool
	done    bool
	maxAbs  float64
	channel int
}

// Open opens the WAV file at path.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open wav file")
	}

	src, err := NewSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	src.file = f

	return src, nil
}

// NewSource reads from an already open WAV stream.
func NewSource(r io.ReadSeeker) (*Source, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, errors.Wrap(err, "failed to find PCM data")
	}

	depth := int(dec.BitDepth)
	if depth < 8 || depth > 32 {
		return nil, errors.Errorf("unsupported bit depth %d", depth)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, errors.Errorf("bad channel count %d", channels)
	}

	return &Source{
		dec: dec,
		pcm: audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  int(dec.SampleRate),
			},
			SourceBitDepth: depth,
		},
		// 8 bit WAV data is unsigned
		signed:  depth > 8,
		maxAbs:  float64(int64(1) << uint(depth-1)),
		channel: channels,
	}, nil
}

// SampleRate returns the rate the file was recorded at.
func (s *Source) SampleRate() int {
	return s.pcm.Format.SampleRate
}

// Channels returns the channel count of the file.
func (s *Source) Channels() int {
	return s.channel
}

// Next fills buf with the next frame. The last partial frame is padded with
// silence, after that Next returns io.EOF.
func (s *Source) Next(buf []float64) error {
	if s.done {
		return io.EOF
	}

	size := len(buf) * s.channel
	if cap(s.pcm.Data) < size {
		s.pcm.Data = make([]int, size)
	}

	s.pcm.Data = s.pcm.Data[:size]

	n, err := s.dec.PCMBuffer(&s.pcm)
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "failed to read PCM data")
	}

	if n == 0 {
		s.done = true
		return io.EOF
	}

	if n < size {
		s.done = true
	}

	scale := 1.0 / (s.maxAbs * float64(s.channel))

	for idx := range buf {
		sum := 0.0

		for ch := 0; ch < s.channel; ch++ {
			pos := idx*s.channel + ch
			if pos >= n {
				break
			}

			v := float64(s.pcm.Data[pos])
			if !s.signed {
				v -= s.maxAbs
			}

			sum += v
		}

		buf[idx] = sum * scale
	}

	return nil
}

// Close closes the file if Open opened it.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}

	return s.file.Close()
}
