package dds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSawIsIdentity(t *testing.T) {
	for p := 0; p <= SampleMax; p++ {
		require.Equal(t, Sample(p), SawSample(uint16(p)))
	}
}

func TestTriangle(t *testing.T) {
	assert.Equal(t, Sample(0), TriangleSample(0))
	assert.Equal(t, Sample(4094), TriangleSample(2047))
	assert.Equal(t, Sample(4095), TriangleSample(2048))
	assert.Equal(t, Sample(1), TriangleSample(4095))

	peak := 0
	for p := 1; p <= SampleMax; p++ {
		a, b := int(TriangleSample(uint16(p-1))), int(TriangleSample(uint16(p)))
		require.LessOrEqual(t, abs(b-a), 2, "phase %d", p)
		if b > int(TriangleSample(uint16(peak))) {
			peak = p
		}
	}
	assert.Equal(t, 2048, peak)
}

func TestDutyThreshold(t *testing.T) {
	c := DefaultConfig()
	for d, want := range map[DutyFraction]uint16{
		DutyHalf:        2048,
		DutyThird:       1365,
		DutyQuarter:     1024,
		DutySeventh:     585,
		DutyFraction(9): 2048,
	} {
		c.DutyFraction = d
		assert.Equal(t, want, DutyThreshold(c), "duty %v", d)
	}

	c.ContinuousDuty = true
	for pct, want := range map[int]uint16{
		1:   41,
		50:  2050,
		99:  4059,
		0:   41,
		150: 4059,
	} {
		c.DutyPercent = pct
		assert.Equal(t, want, DutyThreshold(c), "duty %d%%", pct)
	}
	for pct := 1; pct <= 99; pct++ {
		c.DutyPercent = pct
		exact := float64(pct) * 4096 / 100
		assert.InDelta(t, exact, float64(DutyThreshold(c)), 41, "duty %d%%", pct)
	}
}

func TestPulseHalfDuty(t *testing.T) {
	c := DefaultConfig()
	c.Waveform = Pulse
	high := 0
	for p := 0; p <= SampleMax; p++ {
		switch s := Shape(uint16(p), c); s {
		case SampleMax:
			high++
		case 0:
		default:
			t.Fatalf("phase %d: sample %d is neither high nor low", p, s)
		}
	}
	assert.Equal(t, 2048, high)
}

func TestPulseContinuousFifty(t *testing.T) {
	c := DefaultConfig()
	c.Waveform = Pulse
	c.ContinuousDuty = true
	c.DutyPercent = 50
	assert.Equal(t, Sample(SampleMax), Shape(2049, c))
	assert.Equal(t, Sample(0), Shape(2050, c))
}

func TestShapeDispatch(t *testing.T) {
	c := DefaultConfig()
	for w, want := range map[Waveform]Sample{
		Sine:     SineSample(1000),
		Sawtooth: 1000,
		Triangle: 2000,
		Pulse:    SampleMax,
	} {
		c.Waveform = w
		assert.Equal(t, want, Shape(1000, c), "waveform %v", w)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
