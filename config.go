package dds

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownWaveform  = errors.New("dds: unknown waveform")
	ErrUnknownSweepMode = errors.New("dds: unknown sweep mode")
	ErrUnknownDuty      = errors.New("dds: unknown duty fraction")
	ErrUnknownIncrement = errors.New("dds: unknown increment mode")
)

type Waveform int

const (
	Sine Waveform = iota
	Sawtooth
	Triangle
	Pulse
)

var waveformNames = []string{"sine", "sawtooth", "triangle", "pulse"}

func (w Waveform) String() string { return enumName(waveformNames, int(w)) }

func ParseWaveform(s string) (Waveform, error) {
	i, err := parseEnum(waveformNames, s, ErrUnknownWaveform)
	return Waveform(i), err
}

type SweepMode int

const (
	SweepNone SweepMode = iota
	SweepLinearFixed
	SweepSinusoidal
	SweepLinearAdjustable
)

var sweepModeNames = []string{"none", "linear-fixed", "sinusoidal", "linear-adjustable"}

func (m SweepMode) String() string { return enumName(sweepModeNames, int(m)) }

func ParseSweepMode(s string) (SweepMode, error) {
	i, err := parseEnum(sweepModeNames, s, ErrUnknownSweepMode)
	return SweepMode(i), err
}

type DutyFraction int

const (
	DutyHalf DutyFraction = iota
	DutyThird
	DutyQuarter
	DutySeventh
)

var dutyNames = []string{"1/2", "1/3", "1/4", "1/7"}

func (d DutyFraction) String() string { return enumName(dutyNames, int(d)) }

func ParseDutyFraction(s string) (DutyFraction, error) {
	i, err := parseEnum(dutyNames, s, ErrUnknownDuty)
	return DutyFraction(i), err
}

// IncrementMode selects how a frequency is converted into a phase increment.
type IncrementMode int

const (
	// IncrementExact computes round(f * 2^32 / tickRate).
	IncrementExact IncrementMode = iota
	// IncrementApprox43 multiplies by 43, the shortcut used by the
	// 100 MHz hardware.  It runs about 0.1% sharp.
	IncrementApprox43
)

var incrementNames = []string{"exact", "approx43"}

func (m IncrementMode) String() string { return enumName(incrementNames, int(m)) }

func ParseIncrementMode(s string) (IncrementMode, error) {
	i, err := parseEnum(incrementNames, s, ErrUnknownIncrement)
	return IncrementMode(i), err
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(names []string, s string, unknown error) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %q", unknown, s)
}

const (
	MinBaseFrequency = 1000
	MaxBaseFrequency = 999999
	MaxPhaseOffset   = 999
	MaxSweepRange    = 50000
	MaxSweepSpeed    = 4000
	MinDutyPercent   = 1
	MaxDutyPercent   = 99
)

// Config is the record produced by the front panel.  The engine reads a
// clamped copy of it once per tick.
type Config struct {
	Waveform       Waveform
	BaseFrequency  int // Hz
	PhaseOffset    int // units of 2π/1000
	SweepMode      SweepMode
	SweepRange     int // Hz
	SweepSpeed     int // Hz/ms
	DutyFraction   DutyFraction
	DutyPercent    int
	ContinuousDuty bool
	PulseOverride  bool
}

func DefaultConfig() Config {
	return Config{
		Waveform:      Sine,
		BaseFrequency: 100000,
		SweepRange:    20000,
		SweepSpeed:    1000,
		DutyFraction:  DutyHalf,
		DutyPercent:   50,
	}
}

// Clamp returns c with every field forced into range.  Nothing is rejected.
func (c Config) Clamp() Config {
	d := DefaultConfig()
	if c.Waveform < Sine || c.Waveform > Pulse {
		c.Waveform = d.Waveform
	}
	if c.SweepMode < SweepNone || c.SweepMode > SweepLinearAdjustable {
		c.SweepMode = d.SweepMode
	}
	if c.DutyFraction < DutyHalf || c.DutyFraction > DutySeventh {
		c.DutyFraction = d.DutyFraction
	}
	c.BaseFrequency = clamp(c.BaseFrequency, MinBaseFrequency, MaxBaseFrequency)
	c.PhaseOffset = clamp(c.PhaseOffset, 0, MaxPhaseOffset)
	c.SweepRange = clamp(c.SweepRange, 0, MaxSweepRange)
	c.SweepSpeed = clamp(c.SweepSpeed, 0, MaxSweepSpeed)
	c.DutyPercent = clamp(c.DutyPercent, MinDutyPercent, MaxDutyPercent)
	return c
}

func (c Config) String() string {
	s := fmt.Sprintf("%s %dHz phase=%d", c.Waveform, c.BaseFrequency, c.PhaseOffset)
	if c.SweepMode != SweepNone {
		s += fmt.Sprintf(" sweep=%s range=%dHz speed=%dHz/ms", c.SweepMode, c.SweepRange, c.SweepSpeed)
	}
	if c.Waveform == Pulse {
		if c.ContinuousDuty {
			s += fmt.Sprintf(" duty=%d%%", c.DutyPercent)
		} else {
			s += " duty=" + c.DutyFraction.String()
		}
	}
	if c.PulseOverride {
		s += " override"
	}
	return s
}

func clamp[T ~int | ~int64](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
