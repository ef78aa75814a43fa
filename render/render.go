package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/wavescope/analysis"
	"github.com/cwbudde/wavescope/audio"
	"github.com/cwbudde/wavescope/dsp/spectrum"
	"github.com/cwbudde/wavescope/dsp/stft"
	"github.com/cwbudde/wavescope/dsp/welch"
)

// Render draws one chart kind from a decoded clip, computing whatever
// intermediate transform the kind needs.
func Render(kind Kind, clip *audio.Clip, st Style) (*Chart, error) {
	if clip == nil || len(clip.Samples) == 0 {
		return nil, fmt.Errorf("render %s: empty clip", kind)
	}
	sampleRate := float64(clip.Info.SampleRate)

	switch kind {
	case KindWaveform:
		return Waveform(clip, st)
	case KindSpectrogram:
		res, err := stft.Compute(clip.Samples, stft.Config{SampleRate: sampleRate})
		if err != nil {
			return nil, fmt.Errorf("render spectrogram: %w", err)
		}
		return Spectrogram(res, st)
	case KindSpectrum:
		freqs, mags, err := fullSpectrum(clip.Samples, sampleRate)
		if err != nil {
			return nil, err
		}
		return Spectrum(freqs, mags, st)
	case KindPSD:
		est, err := welch.PSD(clip.Samples, welch.Config{SampleRate: sampleRate})
		if err != nil {
			return nil, fmt.Errorf("render psd: %w", err)
		}
		return PSD(est, st)
	case KindPhase:
		return Phase(clip.Samples, sampleRate, st)
	case KindHistogram:
		return Histogram(clip.Samples, st)
	}

	return nil, fmt.Errorf("unknown chart kind: %q", kind.String())
}

// All renders the full figure set for a clip into dir, one PNG per
// chart kind named <base>_<kind>.png after the analyzed file. The
// report, when given, supplies the file name for titles; a nil report
// falls back to the clip path. Written paths come back in figure-set
// order.
func All(rep *analysis.Report, clip *audio.Clip, dir string) ([]string, error) {
	if clip == nil || len(clip.Samples) == 0 {
		return nil, fmt.Errorf("render: empty clip")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	name := ""
	if rep != nil {
		name = rep.Path
	}
	if name == "" {
		name = clip.Path
	}
	base := chartBase(name)

	var paths []string
	for _, kind := range Kinds() {
		st := DefaultStyle()
		st.Title = kind.Title()
		if name != "" {
			st.Title += " - " + filepath.Base(name)
		}

		c, err := Render(kind, clip, st)
		if err != nil {
			return nil, err
		}

		out := filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, kind))
		if err := c.SavePNG(out); err != nil {
			return nil, err
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// chartBase strips directory and extension from the analyzed file name.
func chartBase(path string) string {
	if path == "" {
		return "audio"
	}
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// fullSpectrum computes the positive-frequency half of the signal's
// magnitude spectrum, zero-padded to a power-of-two FFT size.
func fullSpectrum(samples []float64, sampleRate float64) (freqs, mags []float64, err error) {
	if sampleRate <= 0 {
		return nil, nil, fmt.Errorf("spectrum: sample rate must be > 0: %g", sampleRate)
	}

	out, n, err := fftBins(samples)
	if err != nil {
		return nil, nil, fmt.Errorf("spectrum: %w", err)
	}
	bins := out[1 : n/2]
	if len(bins) == 0 {
		return nil, nil, fmt.Errorf("spectrum: signal too short: %d samples", len(samples))
	}

	mags = spectrum.Magnitude(bins)
	freqs = make([]float64, len(bins))
	for i := range freqs {
		freqs[i] = spectrum.BinFrequency(i+1, n, sampleRate)
	}
	return freqs, mags, nil
}

// fftBins transforms the signal at the next power-of-two size and
// returns the complex spectrum alongside that size.
func fftBins(samples []float64) ([]complex128, int, error) {
	if len(samples) < 2 {
		return nil, 0, fmt.Errorf("need at least 2 samples: %d", len(samples))
	}

	n := nextPowerOf2(len(samples))
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, 0, fmt.Errorf("fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, s := range samples {
		in[i] = complex(s, 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("fft: %w", err)
	}
	return out, n, nil
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
