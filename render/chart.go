package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
)

// Chart is a rendered figure.
type Chart struct {
	img image.Image
}

// Image returns the rendered picture.
func (c *Chart) Image() image.Image { return c.img }

// EncodePNG writes the chart to w as PNG.
func (c *Chart) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

// SavePNG writes the chart to path as PNG.
func (c *Chart) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	if err := png.Encode(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// Kind selects one of the six chart types.
type Kind int

const (
	KindWaveform Kind = iota
	KindSpectrogram
	KindSpectrum
	KindPSD
	KindPhase
	KindHistogram
)

var kindNames = map[Kind]string{
	KindWaveform:    "waveform",
	KindSpectrogram: "spectrogram",
	KindSpectrum:    "spectrum",
	KindPSD:         "psd",
	KindPhase:       "phase",
	KindHistogram:   "histogram",
}

var kindTitles = map[Kind]string{
	KindWaveform:    "Waveform",
	KindSpectrogram: "Spectrogram",
	KindSpectrum:    "Frequency Spectrum",
	KindPSD:         "Power Spectral Density",
	KindPhase:       "Phase Response",
	KindHistogram:   "Amplitude Distribution",
}

// Kinds returns every chart kind in figure-set order.
func Kinds() []Kind {
	return []Kind{
		KindWaveform, KindSpectrogram, KindSpectrum,
		KindPSD, KindPhase, KindHistogram,
	}
}

// String returns the lowercase kind name used in file names and URLs.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Title returns the figure heading for the kind.
func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}

	return k.String()
}

// ParseKind resolves a chart kind name as used in CLI flags and URLs.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "waveform":
		return KindWaveform, nil
	case "spectrogram":
		return KindSpectrogram, nil
	case "spectrum":
		return KindSpectrum, nil
	case "psd":
		return KindPSD, nil
	case "phase":
		return KindPhase, nil
	case "histogram":
		return KindHistogram, nil
	}

	return KindWaveform, fmt.Errorf("unknown chart kind: %q", name)
}
