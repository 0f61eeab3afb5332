package dds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamer(t *testing.T) {
	e := NewEngine(DefaultParams(), sawConfig())
	buf := make([][2]float64, 3)
	n, ok := Streamer{e}.Stream(buf)
	require.True(t, ok)
	require.Equal(t, 3, n)
	assert.Equal(t, [2]float64{Float(0), Float(0)}, buf[0])
	assert.Equal(t, [2]float64{Float(4), Float(4)}, buf[1])
	assert.Equal(t, uint64(3), e.Ticks())
	assert.NoError(t, Streamer{e}.Err())
}

func TestWriteWAV(t *testing.T) {
	e := NewEngine(Params{TickRate: 48000}, DefaultConfig())
	path := filepath.Join(t.TempDir(), "sine.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, e, 4800, 0))
	require.NoError(t, f.Close())
	assert.Equal(t, uint64(4800), e.Ticks())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	s, format, err := wav.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 48000, int(format.SampleRate))
	assert.Equal(t, 1, format.NumChannels)
	assert.Equal(t, 4800, s.Len())
}

func TestWriteWAVRate(t *testing.T) {
	e := NewEngine(DefaultParams(), DefaultConfig())
	path := filepath.Join(t.TempDir(), "slow.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, e, 1000, 44100))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	s, format, err := wav.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 44100, int(format.SampleRate))
	assert.Equal(t, 1000, s.Len())

	assert.Error(t, WriteWAV(f, e, 10, -1))
}
