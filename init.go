package dds

import (
	"errors"
	"fmt"
	"reflect"
)

// DefaultTickRate is the reference hardware clock, in ticks per second.
const DefaultTickRate = 100000000

var ErrTickRate = errors.New("dds: tick rate must be a positive whole number of ticks per second")

// An Initer receives the engine parameters before its first tick.
type Initer interface {
	InitDDS(Params)
}

type Params struct {
	TickRate  float64
	Increment IncrementMode
}

func DefaultParams() Params { return Params{TickRate: DefaultTickRate} }

func (p *Params) InitDDS(q Params) { *p = q }

func (p Params) validate() error {
	if p.TickRate < 1 || p.TickRate != float64(int64(p.TickRate)) {
		return fmt.Errorf("%w, got %v", ErrTickRate, p.TickRate)
	}
	if p.Increment < IncrementExact || p.Increment > IncrementApprox43 {
		return fmt.Errorf("%w %d", ErrUnknownIncrement, p.Increment)
	}
	return nil
}

// Timebase is the time step of one tick as the exact fraction
// micros/ticks of a microsecond.  Sweep trajectories are stepped against it
// so that any tick rate, above or below 1 MHz, keeps real-time slew rates.
type Timebase struct {
	Micros int64
	Ticks  int64
}

func (p Params) Timebase() Timebase {
	return Timebase{Micros: 1e6, Ticks: int64(p.TickRate)}
}

// Init validates p and hands it to every Initer reachable from x through
// pointers, exported struct fields, slices and arrays.  An Initer found by
// value, where only its pointer type implements the interface, cannot be
// initialised and is reported with its field path.
func Init(x interface{}, p Params) {
	if err := p.validate(); err != nil {
		panic("dds.Init: " + err.Error())
	}
	if err := initValue(reflect.ValueOf(x), p, fmt.Sprintf("%T", x)); err != nil {
		panic("dds.Init: " + err.Error())
	}
}

var initerType = reflect.TypeOf(new(Initer)).Elem()

func initValue(v reflect.Value, p Params, path string) error {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	switch {
	case v.Kind() == reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		if x, ok := v.Interface().(Initer); ok {
			x.InitDDS(p)
			return nil
		}
		return initValue(v.Elem(), p, path)
	case v.Kind() == reflect.Interface:
		return initValue(v.Elem(), p, path)
	case v.CanAddr():
		if x, ok := v.Addr().Interface().(Initer); ok {
			x.InitDDS(p)
			return nil
		}
	case reflect.PointerTo(v.Type()).Implements(initerType):
		return fmt.Errorf("%s: %s is held by value; pass a pointer so it can be initialised", path, v.Type())
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if err := initValue(v.Field(i), p, path+"."+t.Field(i).Name); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := initValue(v.Index(i), p, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
