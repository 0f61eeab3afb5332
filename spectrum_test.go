package dds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpectrumSize(t *testing.T) {
	for _, n := range []int{0, 3, 1000, 4097} {
		_, err := NewSpectrum(n)
		assert.ErrorIs(t, err, ErrSpectrumSize, "size %d", n)
	}
	s, err := NewSpectrum(1024)
	require.NoError(t, err)
	assert.Equal(t, 1024, s.Size())
}

func TestSpectrumMeasuresEngineFrequency(t *testing.T) {
	const tickRate = 1e6
	s, err := NewSpectrum(1 << 14)
	require.NoError(t, err)

	for _, w := range []Waveform{Sine, Sawtooth, Triangle, Pulse} {
		for _, freq := range []int{1000, 12345, 100000} {
			c := DefaultConfig()
			c.Waveform = w
			c.BaseFrequency = freq
			e := NewEngine(Params{TickRate: tickRate}, c)
			buf := make([]Sample, s.Size())
			e.Fill(buf)

			got := s.PeakFrequency(buf, tickRate)
			binWidth := tickRate / float64(s.Size())
			assert.InDelta(t, float64(freq), got, binWidth/2, "%v at %d Hz", w, freq)
		}
	}
}
