package dds

import (
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Streamer adapts an Engine to beep.Streamer.  Every sample is one tick,
// written to both channels.
type Streamer struct {
	Engine *Engine
}

var _ beep.Streamer = Streamer{}

func (s Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		x := Float(s.Engine.Tick())
		samples[i][0], samples[i][1] = x, x
	}
	return len(samples), true
}

func (Streamer) Err() error { return nil }

// WriteWAV encodes ticks samples from e as mono 16-bit PCM with a header
// sample rate of rate, or of the engine's tick rate if rate is 0.  Samples
// are not resampled: a rate other than the tick rate plays back at a
// proportionally shifted pitch.
func WriteWAV(w io.WriteSeeker, e *Engine, ticks, rate int) error {
	if rate < 0 {
		return fmt.Errorf("dds: negative WAV sample rate %d", rate)
	}
	if rate == 0 {
		rate = int(e.Params.TickRate)
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 1,
		Precision:   2,
	}
	return wav.Encode(w, beep.Take(ticks, Streamer{e}), format)
}
