package dds

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var ErrNegativeDelay = errors.New("dds: schedule delay is negative")

// Schedule is a timeline of configuration records, each taking effect at a
// tick boundary a given number of ticks from now.  A record scheduled for
// a boundary that already has one replaces it.
type Schedule struct {
	Params  Params
	now     uint64
	changes []scheduledConfig // ordered by tick
}

type scheduledConfig struct {
	tick   uint64
	config Config
}

// After schedules c for the first tick boundary at least d of tick time
// from now.
func (s *Schedule) After(d time.Duration, c Config) error {
	if s.Params.TickRate == 0 {
		panic("dds: Schedule.After called before InitDDS")
	}
	if d < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeDelay, d)
	}
	return s.AfterTicks(int(math.Ceil(d.Seconds()*s.Params.TickRate-1e-9)), c)
}

// AfterTicks schedules c, clamped, to be applied by the n-th call to Step
// from now.  n == 0 is treated as 1, the next boundary.
func (s *Schedule) AfterTicks(n int, c Config) error {
	if n < 0 {
		return fmt.Errorf("%w: %d ticks", ErrNegativeDelay, n)
	}
	tick := s.now + uint64(max(n, 1))
	i := sort.Search(len(s.changes), func(i int) bool { return s.changes[i].tick >= tick })
	if i < len(s.changes) && s.changes[i].tick == tick {
		s.changes[i].config = c.Clamp()
		return nil
	}
	s.changes = append(s.changes, scheduledConfig{})
	copy(s.changes[i+1:], s.changes[i:])
	s.changes[i] = scheduledConfig{tick, c.Clamp()}
	return nil
}

// Step moves to the next tick boundary and returns the record due there.
func (s *Schedule) Step() (Config, bool) {
	s.now++
	if len(s.changes) == 0 || s.changes[0].tick > s.now {
		return Config{}, false
	}
	c := s.changes[0].config
	s.changes = s.changes[1:]
	return c, true
}

// Pending is the number of scheduled records not yet applied.
func (s *Schedule) Pending() int { return len(s.changes) }

// Clear drops every pending record.
func (s *Schedule) Clear() { s.changes = nil }
