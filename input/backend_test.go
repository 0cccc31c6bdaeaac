package input

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedDevice string

func (d namedDevice) String() string { return string(d) }

type fakeBackend struct {
	inits int
	open  bool
}

func (b *fakeBackend) Init() error  { b.inits++; return nil }
func (b *fakeBackend) Close() error { return nil }

func (b *fakeBackend) Devices() ([]Device, error) {
	return []Device{namedDevice("one"), namedDevice("two")}, nil
}

func (b *fakeBackend) DefaultDevice() (Device, error) {
	return namedDevice("two"), nil
}

func (b *fakeBackend) Start(context.Context, SessionConfig) (Source, error) {
	return Frames(), nil
}

type openingBackend struct{ fakeBackend }

func (b *openingBackend) OpenDevice(name string) (Device, error) {
	if name == "bad" {
		return nil, errors.New("bad device")
	}
	return namedDevice("opened:" + name), nil
}

func TestBackendRegistry(t *testing.T) {
	fake := &fakeBackend{}
	RegisterBackend("test-fake", fake)

	assert.True(t, HasBackend("test-fake"))
	assert.False(t, HasBackend("test-missing"))
	assert.Contains(t, GetAllBackendNames(), "test-fake")

	backend, err := InitBackend("test-fake")
	require.NoError(t, err)
	assert.Equal(t, 1, fake.inits)

	_, err = InitBackend("test-missing")
	assert.Error(t, err)

	dv, err := GetDevice(backend, "")
	require.NoError(t, err)
	assert.Equal(t, "two", dv.String())

	dv, err = GetDevice(backend, "one")
	require.NoError(t, err)
	assert.Equal(t, "one", dv.String())

	_, err = GetDevice(backend, "three")
	assert.Error(t, err)
}

func TestGetDeviceOpener(t *testing.T) {
	RegisterBackend("test-opening", &openingBackend{})

	backend, err := InitBackend("test-opening")
	require.NoError(t, err)

	dv, err := GetDevice(backend, "one")
	require.NoError(t, err)
	assert.Equal(t, "one", dv.String())

	dv, err = GetDevice(backend, "/tmp/x.wav")
	require.NoError(t, err)
	assert.Equal(t, "opened:/tmp/x.wav", dv.String())

	_, err = GetDevice(backend, "bad")
	assert.Error(t, err)
}

func TestFrames(t *testing.T) {
	src := Frames([]float64{1, 2, 3}, []float64{4})

	buf := make([]float64, 3)
	require.NoError(t, src.Next(buf))
	assert.Equal(t, []float64{1, 2, 3}, buf)

	require.NoError(t, src.Next(buf))
	assert.Equal(t, []float64{4, 0, 0}, buf)

	assert.Equal(t, io.EOF, src.Next(buf))
	assert.NoError(t, src.Close())
}
