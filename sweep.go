package dds

import "math"

const (
	MinFrequency      = 1000
	MaxFrequency      = 999000
	OverrideFrequency = 3000000

	// Deviation is tracked in millihertz so that adjustable slew rates below
	// 1 Hz/µs still move.  A rate in Hz/ms is the same number in mHz/µs.
	milli = 1000

	fixedRise  = 1000 * milli // per µs
	fixedFall  = 1 * milli
	fixedRange = 20000 * milli

	// Peak rate of change of the sinusoidal sweep, at its zero crossings.
	sinePeakSlew = 1000 // Hz/µs
)

type Direction int

const (
	Rising Direction = iota
	Falling
)

func (d Direction) String() string {
	if d == Falling {
		return "falling"
	}
	return "rising"
}

// SweepState is owned by a Sweep.  Offset is in millihertz and is used by
// every mode; Phase and Increment drive the sinusoidal mode.
type SweepState struct {
	Offset    int64
	Direction Direction
	Phase     uint32
	Increment uint32
}

// Sweep computes the instantaneous frequency fed to the NCO.  The deviation
// trajectory is stepped once per microsecond of ticks; the output is
// recomputed and clamped every tick.
type Sweep struct {
	Params Params
	tb     Timebase
	acc    int64 // microseconds owed, scaled by tb.Ticks
	mode   SweepMode
	state  SweepState
	freq   int
}

func (s *Sweep) InitDDS(p Params) {
	s.Params = p
	s.tb = p.Timebase()
	s.Reset()
}

func (s *Sweep) Reset() {
	s.state = SweepState{}
	s.acc = 0
}

func (s *Sweep) State() SweepState { return s.state }

// Deviation is the current offset from the base frequency, in Hz.
func (s *Sweep) Deviation() int { return int(s.state.Offset / milli) }

// Frequency is the value most recently returned by Next.
func (s *Sweep) Frequency() int { return s.freq }

// Next advances the sweep by one tick under c and returns the clamped
// instantaneous frequency.
func (s *Sweep) Next(c Config) int {
	if s.tb.Ticks <= 0 {
		panic("dds: Sweep.Next called before InitDDS")
	}
	if c.SweepMode != s.mode {
		s.mode = c.SweepMode
		s.Reset()
	}
	if s.mode != SweepNone {
		s.acc += s.tb.Micros
		for s.acc >= s.tb.Ticks {
			s.acc -= s.tb.Ticks
			s.step(c)
		}
	}

	if c.PulseOverride {
		s.freq = OverrideFrequency
	} else {
		s.freq = clamp(c.BaseFrequency+s.Deviation(), MinFrequency, MaxFrequency)
	}
	return s.freq
}

// step advances the trajectory by one microsecond.
func (s *Sweep) step(c Config) {
	switch s.mode {
	case SweepLinearFixed:
		s.linear(fixedRise, fixedFall, fixedRange)
	case SweepLinearAdjustable:
		// Hz/ms is mHz/µs, so the floor of one unit per µs is 1 mHz/µs here
		// rather than 1 Hz/µs; speeds under 1000 Hz/ms keep their own rate.
		speed := int64(clamp(c.SweepSpeed, 1, MaxSweepSpeed))
		s.linear(speed, speed, int64(clamp(c.SweepRange, 0, MaxSweepRange))*milli)
	case SweepSinusoidal:
		s.sinusoid(clamp(c.SweepRange, 0, MaxSweepRange))
	}
}

// linear moves the offset towards the bound in the current direction.  On
// reaching a bound it clamps there and reverses.
func (s *Sweep) linear(up, down, bound int64) {
	st := &s.state
	st.Offset = clamp(st.Offset, -bound, bound)
	switch st.Direction {
	case Rising:
		st.Offset += up
		if st.Offset >= bound {
			st.Offset = bound
			st.Direction = Falling
		}
	case Falling:
		st.Offset -= down
		if st.Offset <= -bound {
			st.Offset = -bound
			st.Direction = Rising
		}
	}
}

func (s *Sweep) sinusoid(rangeHz int) {
	st := &s.state
	st.Increment = SineSweepIncrement(rangeHz)
	st.Phase += st.Increment
	v := sineTable.Signed(uint16(st.Phase >> (PhaseBits - SampleBits)))
	st.Offset = int64(rangeHz) * milli * int64(v) / sineAmplitude
}

// SineSweepIncrement returns the per-µs modulation phase increment for a
// sinusoidal sweep of the given range.  The increment is inversely
// proportional to the range so that the peak slew rate, rangeHz·dθ/dt, is
// fixed at 1 kHz/µs.
func SineSweepIncrement(rangeHz int) uint32 {
	if rangeHz <= 0 {
		return 0
	}
	// Below about 160 Hz the increment exceeds one full turn; only its
	// remainder modulo 2^32 matters.
	inc := math.Round(sinePeakSlew * phaseModulus / (2 * math.Pi * float64(rangeHz)))
	return uint32(uint64(inc))
}
