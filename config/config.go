// Package config loads engine parameters and the front-panel configuration
// record from a file and the environment.
//
// Keys, with their defaults:
//
//	tick_rate:       100000000
//	increment:       exact          # or approx43
//	waveform:        sine           # sawtooth, triangle, pulse
//	frequency:       100000         # Hz
//	phase:           0              # units of 2π/1000
//	sweep.mode:      none           # linear-fixed, sinusoidal, linear-adjustable
//	sweep.range:     20000          # Hz
//	sweep.speed:     1000           # Hz/ms
//	duty.fraction:   1/2            # 1/3, 1/4, 1/7
//	duty.percent:    50
//	duty.continuous: false
//	pulse_override:  false
//
// Every key may be overridden by an environment variable named DDS_ followed
// by the key in upper case with dots replaced by underscores, for example
// DDS_SWEEP_MODE.
package config

import (
	"fmt"
	"strings"

	"github.com/gordonklaus/dds"
	"github.com/spf13/viper"
)

type Settings struct {
	Params dds.Params
	Config dds.Config
}

// Load reads path, if it is not empty, over the defaults.  Numeric values are
// clamped into range; unknown enumeration names are errors.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}
	return decode(v)
}

func setDefaults(v *viper.Viper) {
	p, c := dds.DefaultParams(), dds.DefaultConfig()
	v.SetDefault("tick_rate", p.TickRate)
	v.SetDefault("increment", p.Increment.String())
	v.SetDefault("waveform", c.Waveform.String())
	v.SetDefault("frequency", c.BaseFrequency)
	v.SetDefault("phase", c.PhaseOffset)
	v.SetDefault("sweep.mode", c.SweepMode.String())
	v.SetDefault("sweep.range", c.SweepRange)
	v.SetDefault("sweep.speed", c.SweepSpeed)
	v.SetDefault("duty.fraction", c.DutyFraction.String())
	v.SetDefault("duty.percent", c.DutyPercent)
	v.SetDefault("duty.continuous", c.ContinuousDuty)
	v.SetDefault("pulse_override", c.PulseOverride)
}

func decode(v *viper.Viper) (Settings, error) {
	var s Settings
	var err error

	s.Params.TickRate = v.GetFloat64("tick_rate")
	if s.Params.TickRate <= 0 {
		return Settings{}, fmt.Errorf("config: tick_rate must be positive, got %v", s.Params.TickRate)
	}
	if s.Params.Increment, err = dds.ParseIncrementMode(v.GetString("increment")); err != nil {
		return Settings{}, fmt.Errorf("config: increment: %w", err)
	}

	c := &s.Config
	if c.Waveform, err = dds.ParseWaveform(v.GetString("waveform")); err != nil {
		return Settings{}, fmt.Errorf("config: waveform: %w", err)
	}
	if c.SweepMode, err = dds.ParseSweepMode(v.GetString("sweep.mode")); err != nil {
		return Settings{}, fmt.Errorf("config: sweep.mode: %w", err)
	}
	if c.DutyFraction, err = dds.ParseDutyFraction(v.GetString("duty.fraction")); err != nil {
		return Settings{}, fmt.Errorf("config: duty.fraction: %w", err)
	}
	c.BaseFrequency = v.GetInt("frequency")
	c.PhaseOffset = v.GetInt("phase")
	c.SweepRange = v.GetInt("sweep.range")
	c.SweepSpeed = v.GetInt("sweep.speed")
	c.DutyPercent = v.GetInt("duty.percent")
	c.ContinuousDuty = v.GetBool("duty.continuous")
	c.PulseOverride = v.GetBool("pulse_override")
	*c = c.Clamp()
	return s, nil
}
