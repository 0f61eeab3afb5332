package dds

import "math"

const (
	PhaseBits    = 32 // width of the phase register
	SampleBits   = 12 // phase bits exposed to the shapers, and sample resolution
	SampleMax    = 1<<SampleBits - 1
	SampleCenter = 1 << (SampleBits - 1)

	sineTableBits = SampleBits - 2
	sineTableSize = 1 << sineTableBits
	sineAmplitude = SampleCenter - 1
)

// Sample is an unsigned 12-bit output value.
type Sample uint16

// SineTable holds a quarter wave: entry i is sin(π/2 · i/1024) scaled to
// [0, 2047].  It is never written after construction, so one table can be
// shared by any number of readers.
type SineTable [sineTableSize]uint16

var sineTable = NewSineTable()

func NewSineTable() *SineTable {
	t := new(SineTable)
	for i := range t {
		t[i] = uint16(math.Round(sineAmplitude * math.Sin(math.Pi/2*float64(i)/sineTableSize)))
	}
	return t
}

// Lookup reconstructs a full cycle from the quarter wave.  phase is in
// [0, 4095]; the result is centred on 2048.
func (t *SineTable) Lookup(phase uint16) Sample {
	quadrant := phase >> sineTableBits & 3
	index := phase & (sineTableSize - 1)
	if quadrant&1 != 0 {
		index = sineTableSize - 1 - index
	}
	v := SampleCenter + Sample(t[index])
	if quadrant&2 != 0 {
		v = 2*SampleCenter - v
	}
	return v
}

// Signed returns the lookup recentred on zero, in [-2047, 2047].
func (t *SineTable) Signed(phase uint16) int {
	return int(t.Lookup(phase)) - SampleCenter
}
