package dds

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
)

// Engine is the synthesis core.  Each Tick runs the sweep, the phase
// accumulator and the waveform shaper, in that order, against one
// configuration.  Configuration published with SetConfig is picked up at the
// start of the next tick, never part way through one.
//
// Tick, Fill, Reset and the Schedule must be used from a single goroutine.
// SetConfig may be called from any goroutine.
type Engine struct {
	Params   Params
	Sweep    Sweep
	NCO      NCO
	Schedule Schedule

	config  Config
	pending atomic.Pointer[Config]
	ticks   uint64
}

func NewEngine(p Params, c Config) *Engine {
	e := new(Engine)
	Init(e, p)
	e.apply(c.Clamp())
	return e
}

// SetConfig publishes c, clamped, for the next tick boundary.  A later call
// before that boundary replaces an earlier one.
func (e *Engine) SetConfig(c Config) {
	c = c.Clamp()
	e.pending.Store(&c)
}

// SetConfigAfter applies c at the first tick boundary d of tick time from
// now.  A SetConfig published for the same boundary takes precedence.
func (e *Engine) SetConfigAfter(d time.Duration, c Config) error {
	return e.Schedule.After(d, c)
}

// Config is the configuration in effect for the most recent tick.
func (e *Engine) Config() Config { return e.config }

func (e *Engine) apply(c Config) {
	e.config = c
	e.NCO.SetPhaseOffset(c.PhaseOffset)
}

// Tick produces one sample.  The sample is shaped from the phase held at the
// start of the tick; the accumulator then advances by the increment for this
// tick's frequency.
func (e *Engine) Tick() Sample {
	if c, ok := e.Schedule.Step(); ok {
		e.apply(c)
	}
	if c := e.pending.Swap(nil); c != nil {
		e.apply(*c)
	}
	freq := e.Sweep.Next(e.config)
	s := Shape(e.NCO.Top(), e.config)
	e.NCO.Advance(e.NCO.Increment(freq))
	e.ticks++
	return s
}

func (e *Engine) Fill(buf []Sample) {
	for i := range buf {
		buf[i] = e.Tick()
	}
}

// Reset zeroes the phase register and the sweep trajectory.
func (e *Engine) Reset() {
	e.NCO.Reset()
	e.Sweep.Reset()
	e.ticks = 0
}

func (e *Engine) Ticks() uint64  { return e.ticks }
func (e *Engine) Phase() uint32  { return e.NCO.Phase() }
func (e *Engine) Frequency() int { return e.Sweep.Frequency() }
func (e *Engine) Deviation() int { return e.Sweep.Deviation() }

// Run fills buffers of bufLen samples on a new goroutine and sends them on
// the returned channel until ctx is done, then closes it.  The engine must
// not be ticked by anyone else while Run is active.
func (e *Engine) Run(ctx context.Context, bufLen int) <-chan []Sample {
	ch := make(chan []Sample, 2)
	go func() {
		defer close(ch)
		for {
			buf := make([]Sample, bufLen)
			e.Fill(buf)
			select {
			case <-ctx.Done():
				glog.V(1).Infof("engine stopped after %d ticks", e.Ticks())
				return
			case ch <- buf:
			}
		}
	}()
	return ch
}

// Float maps a sample to [-1, 1).
func Float(s Sample) float64 {
	return (float64(s) - SampleCenter) / SampleCenter
}
