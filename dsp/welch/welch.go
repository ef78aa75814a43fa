package welch

import (
	"fmt"

	"github.com/cwbudde/wavescope/dsp/stft"
	"github.com/cwbudde/wavescope/dsp/window"
)

const defaultSegmentCap = 1024

// Config holds Welch estimation parameters. Zero values are normalized
// like [stft.Config], except the default segment size comes from
// [AutoSegment].
type Config struct {
	SampleRate  float64
	SegmentSize int
	HopSize     int
	FFTSize     int
	Window      window.Type
}

// Estimate holds a one-sided power spectral density in power per Hz.
type Estimate struct {
	Power       []float64
	Frequencies []float64
	SegmentSize int
	Segments    int
}

// AutoSegment returns the default segment size for a signal of n samples:
// a quarter of the signal, capped at 1024.
func AutoSegment(n int) int {
	seg := n / 4
	if seg > defaultSegmentCap {
		seg = defaultSegmentCap
	}
	if seg < 2 {
		seg = 2
	}
	return seg
}

// PSD estimates the power spectral density of samples by averaging
// overlapped, windowed periodograms.
func PSD(samples []float64, cfg Config) (*Estimate, error) {
	if cfg.SegmentSize <= 0 {
		cfg.SegmentSize = AutoSegment(len(samples))
	}
	if len(samples) < cfg.SegmentSize {
		return nil, fmt.Errorf("welch needs at least %d samples: %d", cfg.SegmentSize, len(samples))
	}

	res, err := stft.Compute(samples, stft.Config{
		SampleRate:  cfg.SampleRate,
		SegmentSize: cfg.SegmentSize,
		HopSize:     cfg.HopSize,
		FFTSize:     cfg.FFTSize,
		Window:      cfg.Window,
	})
	if err != nil {
		return nil, fmt.Errorf("welch psd: %w", err)
	}

	power := make([]float64, res.Bins())
	for _, row := range res.Power {
		for k, p := range row {
			power[k] += p
		}
	}

	inv := 1 / float64(res.Frames())
	for k := range power {
		power[k] *= inv
	}

	return &Estimate{
		Power:       power,
		Frequencies: res.Frequencies,
		SegmentSize: res.SegmentSize,
		Segments:    res.Frames(),
	}, nil
}
