package dds

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

const playBufferSize = 1024

var (
	initOnce    sync.Once
	initErr     error
	initialized bool
)

// Play sends e to the default audio output and blocks for as long as the
// stream runs.  It returns at once if the device cannot be started.  The
// device sample rate is the engine's tick rate, so e should be built with
// an audio rate such as 48000.
func Play(e *Engine) error {
	c, err := StartPlaying(e)
	if err != nil {
		return err
	}
	<-c.Done
	return nil
}

// StartPlaying opens the default audio output for e and returns a control
// that stops it.
func StartPlaying(e *Engine) (PlayControl, error) {
	stream, err := startPlaying(e)
	if err != nil {
		return PlayControl{}, fmt.Errorf("dds: starting playback: %w", err)
	}
	glog.Infof("dds: playing at %g samples/s", e.Params.TickRate)

	c := PlayControl{make(chan struct{}, 1), make(chan struct{})}
	go func() {
		<-c.stop
		if err := stream.Close(); err != nil {
			glog.Errorf("dds: stopping playback: %v", err)
		}
		close(c.Done)
	}()
	return c, nil
}

// PlayAsync is StartPlaying for callers with no use for the error; a
// failure is logged and the returned control is already done.
func PlayAsync(e *Engine) PlayControl {
	c, err := StartPlaying(e)
	if err != nil {
		glog.Error(err)
		c = PlayControl{make(chan struct{}, 1), make(chan struct{})}
		close(c.Done)
	}
	return c
}

type PlayControl struct {
	stop, Done chan struct{}
}

func (c PlayControl) Stop() {
	select {
	case c.stop <- struct{}{}:
	default:
	}
}

func startPlaying(e *Engine) (*portaudio.Stream, error) {
	initOnce.Do(func() {
		initErr = portaudio.Initialize()
		initialized = initErr == nil
	})
	if initErr != nil {
		return nil, initErr
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, e.Params.TickRate, playBufferSize, func(out []float32) {
		for i := range out {
			out[i] = float32(Float(e.Tick()))
		}
	})
	if err != nil {
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, err
	}
	return stream, nil
}

// Terminate releases the audio system.  Streams must be stopped first.
func Terminate() error {
	if !initialized {
		return nil
	}
	return portaudio.Terminate()
}
