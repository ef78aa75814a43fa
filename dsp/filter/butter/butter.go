package butter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/wavescope/dsp/filter/biquad"
)

// DefaultOrder is used by [Apply] when no order is given.
const DefaultOrder = 5

// ErrCutoffOutOfRange reports a cutoff frequency outside (0, Nyquist),
// or a bandpass with low >= high.
var ErrCutoffOutOfRange = errors.New("cutoff out of range")

// Kind selects the filter response shape.
type Kind int

const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
)

var kindNames = map[Kind]string{
	KindLowpass:  "lowpass",
	KindHighpass: "highpass",
	KindBandpass: "bandpass",
}

// String returns the canonical lowercase name of the filter kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a filter kind name as used in configuration and CLI flags.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lowpass", "low", "lp":
		return KindLowpass, nil
	case "highpass", "high", "hp":
		return KindHighpass, nil
	case "bandpass", "band", "bp":
		return KindBandpass, nil
	}

	return KindLowpass, fmt.Errorf("unknown filter kind: %q", name)
}

// Lowpass designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func Lowpass(cutoff float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := checkDesign(cutoff, order, sampleRate); err != nil {
		return nil, err
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, rbjLowpass(cutoff, sectionQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderLowpass(cutoff, sampleRate))
	}

	return sections, nil
}

// Highpass designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func Highpass(cutoff float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := checkDesign(cutoff, order, sampleRate); err != nil {
		return nil, err
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, rbjHighpass(cutoff, sectionQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, firstOrderHighpass(cutoff, sampleRate))
	}

	return sections, nil
}

// Bandpass designs a bandpass cascade: a highpass at low followed by a
// lowpass at high, both at the given order. Each corner sits at -3 dB
// when the corners are well separated.
func Bandpass(low, high float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if low >= high {
		return nil, fmt.Errorf("%w: low %g Hz >= high %g Hz", ErrCutoffOutOfRange, low, high)
	}

	hp, err := Highpass(low, order, sampleRate)
	if err != nil {
		return nil, err
	}

	lp, err := Lowpass(high, order, sampleRate)
	if err != nil {
		return nil, err
	}

	return append(hp, lp...), nil
}

func checkDesign(cutoff float64, order int, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0: %g", sampleRate)
	}
	if order <= 0 {
		return fmt.Errorf("filter order must be > 0: %d", order)
	}
	if cutoff <= 0 || cutoff >= sampleRate/2 || math.IsNaN(cutoff) {
		return fmt.Errorf("%w: %g Hz with nyquist %g Hz", ErrCutoffOutOfRange, cutoff, sampleRate/2)
	}

	return nil
}

// sectionQ returns the quality factor of the i-th biquad section of a
// Butterworth filter. index ranges from 0 to order/2-1.
func sectionQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}

func rbjLowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func rbjHighpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func firstOrderLowpass(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func firstOrderHighpass(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
