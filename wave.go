package dds

// Duty thresholds for the fixed fractions 1/2, 1/3, 1/4 and 1/7 of a cycle.
var dutyThresholds = [...]uint16{2048, 1365, 1024, 585}

// dutyStep approximates 4096/100 so that percent·dutyStep is within 1% of
// the exact threshold.
const dutyStep = 41

// Shape maps the top SampleBits of phase to a sample for the waveform
// selected in c.  It is a pure function.
func Shape(phase uint16, c Config) Sample {
	phase &= SampleMax
	switch c.Waveform {
	case Sawtooth:
		return SawSample(phase)
	case Triangle:
		return TriangleSample(phase)
	case Pulse:
		return PulseSample(phase, DutyThreshold(c))
	default:
		return SineSample(phase)
	}
}

func SineSample(phase uint16) Sample { return sineTable.Lookup(phase) }

func SawSample(phase uint16) Sample { return Sample(phase) }

// TriangleSample rises over the first half cycle and falls over the second.
func TriangleSample(phase uint16) Sample {
	if phase < SampleCenter {
		return Sample(2 * phase)
	}
	return Sample(2*(SampleMax-phase) + 1)
}

// PulseSample is full scale while phase is below threshold.
func PulseSample(phase, threshold uint16) Sample {
	if phase < threshold {
		return SampleMax
	}
	return 0
}

func DutyThreshold(c Config) uint16 {
	if c.ContinuousDuty {
		return uint16(clamp(c.DutyPercent, MinDutyPercent, MaxDutyPercent) * dutyStep)
	}
	if c.DutyFraction < DutyHalf || c.DutyFraction > DutySeventh {
		return dutyThresholds[DutyHalf]
	}
	return dutyThresholds[c.DutyFraction]
}
