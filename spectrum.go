package dds

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

var ErrSpectrumSize = errors.New("dds: spectrum size must be a power of two")

// Spectrum measures the dominant frequency of a block of samples.
type Spectrum struct {
	fft fft.FFT
	buf []complex128
	env []float64
}

func NewSpectrum(size int) (*Spectrum, error) {
	if size < 4 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrSpectrumSize, size)
	}
	f, err := fft.New(size)
	if err != nil {
		return nil, err
	}
	env := make([]float64, size)
	for i := range env {
		env[i] = (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
	}
	return &Spectrum{fft: f, buf: make([]complex128, size), env: env}, nil
}

func (s *Spectrum) Size() int { return len(s.buf) }

// PeakFrequency returns the frequency, in Hz, of the strongest non-DC bin of
// the windowed samples, refined by parabolic interpolation between
// neighbouring bins.  Short input is zero padded.
func (s *Spectrum) PeakFrequency(samples []Sample, tickRate float64) float64 {
	n := len(s.buf)
	if len(samples) > n {
		samples = samples[:n]
	}
	var mean float64
	for _, x := range samples {
		mean += float64(x)
	}
	if len(samples) > 0 {
		mean /= float64(len(samples))
	}
	for i := range s.buf {
		var x float64
		if i < len(samples) {
			x = float64(samples[i]) - mean
		}
		s.buf[i] = complex(x*s.env[i], 0)
	}
	s.buf = s.fft.Transform(s.buf)

	k := 1
	for i := 2; i < n/2; i++ {
		if cmplx.Abs(s.buf[i]) > cmplx.Abs(s.buf[k]) {
			k = i
		}
	}
	bin := float64(k)
	if k > 1 && k < n/2-1 {
		a, b, c := cmplx.Abs(s.buf[k-1]), cmplx.Abs(s.buf[k]), cmplx.Abs(s.buf[k+1])
		if d := a - 2*b + c; d != 0 {
			bin += (a - c) / (2 * d)
		}
	}
	return bin * tickRate / float64(n)
}
