// Package harmonics detects spectral peaks and harmonic structure in
// time-domain signals.
package harmonics

import (
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/wavescope/dsp/spectrum"
	"github.com/cwbudde/wavescope/dsp/window"
)

const (
	defaultSampleRate     = 44100.0
	defaultMaxPeaks       = 10
	defaultMinHeightRatio = 0.01

	// harmonicTolerance is the relative deviation allowed when matching a
	// peak frequency to an integer multiple of the fundamental.
	harmonicTolerance = 0.03

	// relativeLevelFloor keeps the relative level finite for zero bins.
	relativeLevelFloor = 1e-10
)

// Config holds peak detection parameters.
//
// Zero values are normalized: SampleRate to 44.1 kHz, FFTSize to the next
// power of two at or above the signal length, Window to rectangular,
// MaxPeaks to 10 and MinHeightRatio to 1% of the strongest bin.
type Config struct {
	SampleRate     float64
	FFTSize        int
	Window         window.Type
	MaxPeaks       int
	MinHeightRatio float64
}

// Peak is a local maximum of the positive-frequency magnitude spectrum.
// RelativeLevel_dB is the level relative to the strongest bin, so the top
// peak sits at 0 dB.
//
//nolint:revive
type Peak struct {
	Frequency        float64
	Magnitude        float64
	RelativeLevel_dB float64
	Bin              int
}

// Result holds detected peaks ordered by descending magnitude and the
// harmonic metrics derived from them.
//
//nolint:revive
type Result struct {
	Peaks       []Peak
	Fundamental float64
	THD         float64
	THD_dB      float64
}

// Calculator performs peak analysis with a reusable FFT plan. The plan is
// rebuilt only when the required transform size changes, so repeated
// analyses of equally sized signals share one plan.
type Calculator struct {
	cfg  Config
	plan *algofft.Plan[complex128]
	size int
	in   []complex128
	out  []complex128
}

// NewCalculator creates a peak calculator.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: normalizeConfig(cfg)}
}

// AnalyzeSignal is a one-shot peak analysis of a time-domain signal.
func AnalyzeSignal(signal []float64, cfg Config) (*Result, error) {
	return NewCalculator(cfg).AnalyzeSignal(signal)
}

// AnalyzeSignal windows the signal, transforms it and detects spectral
// peaks. Signals shorter than the FFT size are zero padded; longer signals
// are truncated to the first FFT-size samples. An all-zero signal yields an
// empty peak list rather than an error.
func (c *Calculator) AnalyzeSignal(signal []float64) (*Result, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("harmonics needs a non-empty signal")
	}

	fftSize := c.cfg.FFTSize
	if fftSize <= 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if err := c.ensurePlan(fftSize); err != nil {
		return nil, err
	}

	n := min(len(signal), fftSize)
	coeffs := window.Generate(c.cfg.Window, n)

	for i := 0; i < n; i++ {
		c.in[i] = complex(signal[i]*coeffs[i], 0)
	}
	for i := n; i < fftSize; i++ {
		c.in[i] = 0
	}

	if err := c.plan.Forward(c.out, c.in); err != nil {
		return nil, fmt.Errorf("harmonics fft: %w", err)
	}

	mags := spectrum.Magnitude(c.out[:fftSize/2+1])

	return c.detect(mags, fftSize), nil
}

// detect scans the positive-frequency bins for local maxima at or above
// the height threshold. DC and the Nyquist bin never count as peaks.
func (c *Calculator) detect(mags []float64, fftSize int) *Result {
	res := &Result{Peaks: []Peak{}}

	if len(mags) < 3 {
		return res
	}

	specMax := 0.0
	for _, m := range mags[1 : len(mags)-1] {
		if m > specMax {
			specMax = m
		}
	}

	if specMax <= 0 {
		return res
	}

	minHeight := specMax * c.cfg.MinHeightRatio

	for i := 1; i < len(mags)-1; i++ {
		m := mags[i]
		if m < minHeight || m <= mags[i-1] || m <= mags[i+1] {
			continue
		}

		res.Peaks = append(res.Peaks, Peak{
			Frequency:        spectrum.BinFrequency(i, fftSize, c.cfg.SampleRate),
			Magnitude:        m,
			RelativeLevel_dB: 20 * math.Log10(m/specMax+relativeLevelFloor),
			Bin:              i,
		})
	}

	sort.Slice(res.Peaks, func(i, j int) bool {
		if res.Peaks[i].Magnitude != res.Peaks[j].Magnitude {
			return res.Peaks[i].Magnitude > res.Peaks[j].Magnitude
		}

		return res.Peaks[i].Bin < res.Peaks[j].Bin
	})

	if len(res.Peaks) > c.cfg.MaxPeaks {
		res.Peaks = res.Peaks[:c.cfg.MaxPeaks]
	}

	if len(res.Peaks) == 0 {
		return res
	}

	res.Fundamental = res.Peaks[0].Frequency
	res.THD = c.thd(res.Peaks)
	res.THD_dB = ratioToDB(res.THD)

	return res
}

// thd relates the energy of peaks sitting near integer multiples of the
// fundamental to the fundamental itself.
func (c *Calculator) thd(peaks []Peak) float64 {
	fundamental := peaks[0]
	if fundamental.Magnitude <= 0 || fundamental.Frequency <= 0 {
		return 0
	}

	sumSq := 0.0

	for _, p := range peaks[1:] {
		k := math.Round(p.Frequency / fundamental.Frequency)
		if k < 2 {
			continue
		}

		target := k * fundamental.Frequency
		if math.Abs(p.Frequency-target) > harmonicTolerance*target {
			continue
		}

		sumSq += p.Magnitude * p.Magnitude
	}

	return math.Sqrt(sumSq) / fundamental.Magnitude
}

func (c *Calculator) ensurePlan(fftSize int) error {
	if c.plan != nil && c.size == fftSize {
		return nil
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return fmt.Errorf("harmonics fft plan: %w", err)
	}

	c.plan = plan
	c.size = fftSize
	c.in = make([]complex128, fftSize)
	c.out = make([]complex128, fftSize)

	return nil
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}

	if cfg.MaxPeaks <= 0 {
		cfg.MaxPeaks = defaultMaxPeaks
	}

	if cfg.MinHeightRatio <= 0 || cfg.MinHeightRatio > 1 {
		cfg.MinHeightRatio = defaultMinHeightRatio
	}

	return cfg
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
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
