// Package analysis runs the measurement pipeline over a decoded clip and
// assembles the results into a single report. The CLI and the dashboard
// both sit on top of this package.
package analysis

import (
	"fmt"
	"time"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/wavescope/audio"
	"github.com/cwbudde/wavescope/dsp/filter/butter"
	"github.com/cwbudde/wavescope/dsp/spectrum"
	"github.com/cwbudde/wavescope/dsp/window"
	"github.com/cwbudde/wavescope/measure/harmonics"
	"github.com/cwbudde/wavescope/stats/levels"
	"github.com/cwbudde/wavescope/stats/spectral"
)

// FilterSpec runs the clip through a zero-phase Butterworth filter before
// any statistics are computed. Low and High are the passband edges in Hz:
// lowpass uses High, highpass uses Low, bandpass uses both. A non-positive
// Order selects butter.DefaultOrder.
type FilterSpec struct {
	Kind  butter.Kind
	Low   float64
	High  float64
	Order int
}

// Options tunes the pipeline. Zero values defer to the package defaults:
// the FFT size rounds the clip length up to a power of two, the window is
// rectangular, MaxPeaks is 10 and no filter runs.
type Options struct {
	FFTSize  int
	Window   window.Type
	MaxPeaks int
	Filter   *FilterSpec
}

// Report is the combined result of one analysis run.
type Report struct {
	Path      string
	Info      audio.Info
	Levels    levels.Stats
	Spectral  spectral.Stats
	Harmonics *harmonics.Result
	Elapsed   time.Duration
}

// Analyze computes level, spectral shape and harmonic statistics for the
// clip. When opts.Filter is set the filtered signal feeds every stage, and
// filter design errors (including cutoffs outside (0, Nyquist), see
// butter.ErrCutoffOutOfRange) abort the run.
func Analyze(clip *audio.Clip, opts Options) (*Report, error) {
	start := time.Now()

	if clip == nil || len(clip.Samples) == 0 {
		return nil, fmt.Errorf("analyze: empty clip")
	}

	samples := clip.Samples
	sampleRate := float64(clip.Info.SampleRate)

	if f := opts.Filter; f != nil {
		filtered, err := butter.Apply(samples, sampleRate, f.Kind, f.Low, f.High, f.Order)
		if err != nil {
			return nil, fmt.Errorf("analyze: %s filter: %w", f.Kind, err)
		}

		samples = filtered
	}

	fftSize := opts.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(samples))
	}

	mags, err := magnitudeSpectrum(samples, fftSize, opts.Window)
	if err != nil {
		return nil, err
	}

	harm, err := harmonics.AnalyzeSignal(samples, harmonics.Config{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Window:     opts.Window,
		MaxPeaks:   opts.MaxPeaks,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	return &Report{
		Path:      clip.Path,
		Info:      clip.Info,
		Levels:    levels.Calculate(samples),
		Spectral:  spectral.Calculate(mags, sampleRate),
		Harmonics: harm,
		Elapsed:   time.Since(start),
	}, nil
}

// AnalyzeFile loads a WAV file and analyzes it.
func AnalyzeFile(path string, opts Options) (*Report, error) {
	clip, err := audio.Load(path)
	if err != nil {
		return nil, err
	}

	return Analyze(clip, opts)
}

// magnitudeSpectrum returns the one-sided magnitude spectrum, DC through
// Nyquist. Signals shorter than the FFT size are zero padded, longer ones
// truncated.
func magnitudeSpectrum(samples []float64, fftSize int, win window.Type) ([]float64, error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analyze: fft plan: %w", err)
	}

	n := min(len(samples), fftSize)
	coeffs := window.Generate(win, n)

	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)

	for i := 0; i < n; i++ {
		in[i] = complex(samples[i]*coeffs[i], 0)
	}

	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("analyze: fft: %w", err)
	}

	return spectrum.Magnitude(out[:fftSize/2+1]), nil
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
