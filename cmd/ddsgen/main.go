// Command ddsgen runs the synthesis engine and sends its samples to one sink:
// text on stdout, a WAV file, or the default audio device.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"
	"github.com/gordonklaus/dds"
	"github.com/gordonklaus/dds/config"
	"golang.org/x/sync/errgroup"
)

const bufferSize = 4096

var (
	configPath = flag.String("config", "", "configuration file (yaml, json or toml)")
	ticks      = flag.Int("ticks", 1000000, "number of samples to generate")
	out        = flag.String("out", "-", "WAV file to write, or - for one sample per line on stdout")
	play       = flag.Bool("play", false, "play through the default audio device until interrupted")
	rate       = flag.Float64("rate", 0, "tick rate in ticks/s, overriding the configuration")
	analyze    = flag.Int("analyze", 0, "log the measured frequency of the first N samples (power of two)")
	wavRate    = flag.Int("wavrate", 0, "sample rate written to the WAV header; 0 uses the tick rate")
)

// startPlayback is replaced in tests.
var startPlayback = dds.StartPlaying

func main() {
	flag.Parse()
	defer glog.Flush()

	s, err := config.Load(*configPath)
	if err != nil {
		glog.Exit(err)
	}
	if *rate > 0 {
		s.Params.TickRate = *rate
	}
	e := dds.NewEngine(s.Params, s.Config)
	glog.Infof("generating %s at %g ticks/s (%s increments)", e.Config(), s.Params.TickRate, s.Params.Increment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if sink := analyzeIgnoredBy(*play, *out, *analyze); sink != "" {
		glog.Warningf("-analyze only measures text output on stdout; ignored with %s", sink)
	}
	switch {
	case *play:
		err = playUntilDone(ctx, e)
	case *out != "-":
		err = writeWAV(e, *out, *ticks, *wavRate)
	default:
		err = generate(ctx, e, *ticks, os.Stdout, *analyze)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		glog.Exit(err)
	}
	glog.Infof("done after %d ticks", e.Ticks())
}

// analyzeIgnoredBy names the sink flag that makes -analyze a no-op, or
// returns "" if the analysis will run.
func analyzeIgnoredBy(play bool, out string, analyze int) string {
	switch {
	case analyze <= 0:
		return ""
	case play:
		return "-play"
	case out != "-":
		return "-out " + out
	}
	return ""
}

func playUntilDone(ctx context.Context, e *dds.Engine) error {
	c, err := startPlayback(e)
	if err != nil {
		return errors.Join(err, dds.Terminate())
	}
	select {
	case <-ctx.Done():
		c.Stop()
		<-c.Done
	case <-c.Done:
	}
	return dds.Terminate()
}

func writeWAV(e *dds.Engine, path string, n, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dds.WriteWAV(f, e, n, rate); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// generate writes n samples to w while, if analyzeSize is set, a second
// goroutine measures the output frequency.
func generate(ctx context.Context, e *dds.Engine, n int, w io.Writer, analyzeSize int) error {
	var spectrum *dds.Spectrum
	if analyzeSize > 0 {
		var err error
		if spectrum, err = dds.NewSpectrum(analyzeSize); err != nil {
			return err
		}
	}

	configured := e.Config().BaseFrequency
	g, ctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(ctx)
	bufs := e.Run(runCtx, bufferSize)
	defer func() {
		// Wait for Run to return so the engine is ours again.
		stop()
		for range bufs {
		}
	}()
	tee := make(chan []dds.Sample, 4)

	g.Go(func() error {
		defer close(tee)
		defer stop()
		bw := bufio.NewWriter(w)
		var line []byte
		for written := 0; written < n; {
			buf, ok := <-bufs
			if !ok {
				return ctx.Err()
			}
			buf = buf[:min(len(buf), n-written)]
			for _, s := range buf {
				line = strconv.AppendUint(line[:0], uint64(s), 10)
				line = append(line, '\n')
				if _, err := bw.Write(line); err != nil {
					return err
				}
			}
			written += len(buf)
			if spectrum != nil {
				select {
				case tee <- buf:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		return bw.Flush()
	})

	if spectrum != nil {
		g.Go(func() error {
			var block []dds.Sample
			for buf := range tee {
				if len(block) < spectrum.Size() {
					block = append(block, buf...)
				}
			}
			if len(block) == 0 {
				return nil
			}
			if len(block) < spectrum.Size() {
				glog.Warningf("only %d samples for a %d point spectrum", len(block), spectrum.Size())
			}
			f := spectrum.PeakFrequency(block, e.Params.TickRate)
			glog.Infof("measured %.1f Hz, configured %d Hz", f, configured)
			return nil
		})
	}
	return g.Wait()
}
