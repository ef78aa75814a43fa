package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/wavescope/dsp/spectrum"
	"github.com/cwbudde/wavescope/dsp/window"
)

const defaultSegmentCap = 1024

// Config holds short-time Fourier transform parameters.
//
// Zero values are normalized: SegmentSize from [AutoSegment], HopSize to
// half a segment, FFTSize to the next power of two at or above the segment
// size, and Window to Hann.
type Config struct {
	SampleRate  float64
	SegmentSize int
	HopSize     int
	FFTSize     int
	Window      window.Type
}

// Result holds a one-sided short-time power spectrum.
//
// Power is indexed [frame][bin] and density-scaled, so integrating a frame
// over frequency approximates the signal power within that segment.
type Result struct {
	Power       [][]float64
	Frequencies []float64
	Times       []float64
	SegmentSize int
	HopSize     int
	FFTSize     int
}

// Bins returns the number of frequency bins per frame.
func (r *Result) Bins() int {
	return len(r.Frequencies)
}

// Frames returns the number of time frames.
func (r *Result) Frames() int {
	return len(r.Power)
}

// AutoSegment returns the default segment size for a signal of n samples:
// an eighth of the signal, capped at 1024.
func AutoSegment(n int) int {
	seg := n / 8
	if seg > defaultSegmentCap {
		seg = defaultSegmentCap
	}
	if seg < 2 {
		seg = 2
	}
	return seg
}

// Compute runs a short-time Fourier transform over samples and returns the
// one-sided power spectrogram.
func Compute(samples []float64, cfg Config) (*Result, error) {
	cfg = normalizeConfig(len(samples), cfg)

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("stft sample rate must be > 0: %g", cfg.SampleRate)
	}
	if cfg.SegmentSize < 2 {
		return nil, fmt.Errorf("stft segment size must be >= 2: %d", cfg.SegmentSize)
	}
	if len(samples) < cfg.SegmentSize {
		return nil, fmt.Errorf("stft needs at least %d samples: %d", cfg.SegmentSize, len(samples))
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("stft fft plan: %w", err)
	}

	coeffs := window.Periodic(cfg.Window, cfg.SegmentSize)
	scale := densityScale(cfg.SampleRate, coeffs)

	bins := cfg.FFTSize/2 + 1
	frames := (len(samples)-cfg.SegmentSize)/cfg.HopSize + 1

	res := &Result{
		Power:       make([][]float64, frames),
		Frequencies: spectrum.Frequencies(bins, cfg.FFTSize, cfg.SampleRate),
		Times:       make([]float64, frames),
		SegmentSize: cfg.SegmentSize,
		HopSize:     cfg.HopSize,
		FFTSize:     cfg.FFTSize,
	}

	inData := make([]complex128, cfg.FFTSize)
	out := make([]complex128, cfg.FFTSize)

	for f := 0; f < frames; f++ {
		start := f * cfg.HopSize

		for i := 0; i < cfg.SegmentSize; i++ {
			inData[i] = complex(samples[start+i]*coeffs[i], 0)
		}
		for i := cfg.SegmentSize; i < cfg.FFTSize; i++ {
			inData[i] = 0
		}

		if err := plan.Forward(out, inData); err != nil {
			return nil, fmt.Errorf("stft frame %d: %w", f, err)
		}

		row := make([]float64, bins)
		for k := 0; k < bins; k++ {
			re := real(out[k])
			im := imag(out[k])
			p := (re*re + im*im) * scale

			// One-sided spectrum: interior bins carry the energy of both
			// the positive and negative frequency.
			if k != 0 && k != bins-1 {
				p *= 2
			}
			row[k] = p
		}

		res.Power[f] = row
		res.Times[f] = (float64(start) + float64(cfg.SegmentSize)/2) / cfg.SampleRate
	}

	return res, nil
}

func normalizeConfig(n int, cfg Config) Config {
	if cfg.SegmentSize <= 0 {
		cfg.SegmentSize = AutoSegment(n)
	}
	if cfg.HopSize <= 0 {
		cfg.HopSize = cfg.SegmentSize / 2
	}
	if cfg.FFTSize < cfg.SegmentSize {
		cfg.FFTSize = nextPowerOf2(cfg.SegmentSize)
	}
	if cfg.Window == 0 {
		cfg.Window = window.TypeHann
	}
	return cfg
}

func densityScale(sampleRate float64, coeffs []float64) float64 {
	npg := window.NoisePowerGain(coeffs)
	if npg <= 0 || sampleRate <= 0 {
		return 0
	}
	return 1 / (sampleRate * npg)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
