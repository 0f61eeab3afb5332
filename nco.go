package dds

import "math"

const phaseModulus = 1 << PhaseBits

// NCO is a numerically controlled oscillator: a 32-bit phase register that
// wraps on overflow.  Only the top SampleBits of the phase are used for
// shaping; the rest carry the fractional precision that keeps the average
// frequency exact over long runs.
type NCO struct {
	Params Params
	phase  uint32
	offset uint32
}

// Increment converts a frequency in Hz to a phase increment per tick.
func (o *NCO) Increment(freq int) uint32 {
	return PhaseIncrement(freq, o.Params)
}

func PhaseIncrement(freq int, p Params) uint32 {
	if freq <= 0 {
		return 0
	}
	if p.Increment == IncrementApprox43 {
		return uint32(uint64(freq) * 43)
	}
	inc := math.Round(float64(freq) * phaseModulus / p.TickRate)
	return uint32(uint64(inc))
}

// SetPhaseOffset sets a static phase bias in units of 2π/1000.
func (o *NCO) SetPhaseOffset(units int) {
	units = clamp(units, 0, MaxPhaseOffset)
	o.offset = uint32((uint64(units)*phaseModulus + 500) / 1000)
}

// Advance adds inc to the phase register, wrapping modulo 2^32.
func (o *NCO) Advance(inc uint32) {
	o.phase += inc
}

// Phase is the raw accumulator.
func (o *NCO) Phase() uint32 { return o.phase }

// Combined is the accumulator plus the phase offset.
func (o *NCO) Combined() uint32 { return o.phase + o.offset }

// Top returns the top SampleBits of the combined phase.
func (o *NCO) Top() uint16 {
	return uint16(o.Combined() >> (PhaseBits - SampleBits))
}

func (o *NCO) Reset() { o.phase = 0 }
