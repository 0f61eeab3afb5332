package dds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSineTableEndpoints(t *testing.T) {
	tab := NewSineTable()
	assert.Equal(t, uint16(0), tab[0])
	assert.Equal(t, uint16(sineAmplitude), tab[sineTableSize-1])
	for i := 1; i < sineTableSize; i++ {
		require.GreaterOrEqual(t, tab[i], tab[i-1], "index %d", i)
		require.LessOrEqual(t, tab[i], uint16(sineAmplitude))
	}
}

func TestSineLookupQuadrants(t *testing.T) {
	tab := NewSineTable()
	for phase, want := range map[uint16]Sample{
		0:    2048,
		1023: 4095,
		1024: 4095,
		2047: 2048,
		2048: 2048,
		3071: 1,
		3072: 1,
		4095: 2048,
	} {
		assert.Equal(t, want, tab.Lookup(phase), "phase %d", phase)
	}
}

func TestSineHalfCycleSymmetry(t *testing.T) {
	tab := NewSineTable()
	for p := 0; p < 2048; p++ {
		a := tab.Lookup(uint16(p))
		b := tab.Lookup(uint16(p + 2048))
		require.Equal(t, 4096, int(a)+int(b), "phase %d", p)
	}
}

func TestSineLookupTracksSin(t *testing.T) {
	tab := NewSineTable()
	for p := 0; p <= SampleMax; p++ {
		want := sineAmplitude * math.Sin(2*math.Pi*float64(p)/4096)
		got := float64(tab.Signed(uint16(p)))
		// Mirrored quadrants are offset by one table step.
		require.InDelta(t, want, got, 4, "phase %d", p)
	}
}

func BenchmarkSineLookup(b *testing.B) {
	tab := NewSineTable()
	var s Sample
	for i := 0; i < b.N; i++ {
		s += tab.Lookup(uint16(i) & SampleMax)
	}
	_ = s
}
