package butter

import (
	"fmt"

	"github.com/cwbudde/wavescope/dsp/filter/biquad"
)

// Filter runs samples through the cascade once and returns a new slice.
// The input is not modified.
func Filter(samples []float64, sections []biquad.Coefficients) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	biquad.NewChain(sections).ProcessBlock(out)

	return out
}

// ZeroPhase filters samples forward and backward through the cascade,
// giving zero net phase shift and the squared magnitude response.
//
// The signal is extended at both ends by odd reflection before filtering
// so that edge transients land in the padding rather than the output.
// The input is not modified.
func ZeroPhase(samples []float64, sections []biquad.Coefficients) []float64 {
	n := len(samples)
	out := make([]float64, n)

	if n == 0 || len(sections) == 0 {
		copy(out, samples)
		return out
	}

	chain := biquad.NewChain(sections)

	padlen := 3 * (chain.Order() + 1)
	if padlen > n-1 {
		padlen = n - 1
	}

	ext := oddExtend(samples, padlen)

	chain.ProcessBlock(ext)
	reverse(ext)
	chain.Reset()
	chain.ProcessBlock(ext)
	reverse(ext)

	copy(out, ext[padlen:padlen+n])

	return out
}

// Apply designs and applies a zero-phase Butterworth filter in one call.
//
// Low and High are the passband edges in Hz: lowpass uses High, highpass
// uses Low, bandpass uses both. A non-positive order selects
// [DefaultOrder]. When the cutoffs are invalid the input slice is
// returned unchanged together with an error wrapping
// [ErrCutoffOutOfRange], so callers can fall back to the unfiltered
// signal.
func Apply(samples []float64, sampleRate float64, kind Kind, low, high float64, order int) ([]float64, error) {
	if order <= 0 {
		order = DefaultOrder
	}

	var (
		sections []biquad.Coefficients
		err      error
	)

	switch kind {
	case KindLowpass:
		sections, err = Lowpass(high, order, sampleRate)
	case KindHighpass:
		sections, err = Highpass(low, order, sampleRate)
	case KindBandpass:
		sections, err = Bandpass(low, high, order, sampleRate)
	default:
		return samples, fmt.Errorf("unknown filter kind: %d", kind)
	}

	if err != nil {
		return samples, err
	}

	return ZeroPhase(samples, sections), nil
}

// oddExtend returns samples with padlen odd-reflected values prepended
// and appended. Odd reflection mirrors around the end point value, which
// keeps the extension continuous in both value and slope.
func oddExtend(x []float64, padlen int) []float64 {
	n := len(x)
	ext := make([]float64, padlen+n+padlen)

	for i := 0; i < padlen; i++ {
		ext[i] = 2*x[0] - x[padlen-i]
	}

	copy(ext[padlen:], x)

	for j := 0; j < padlen; j++ {
		ext[padlen+n+j] = 2*x[n-1] - x[n-2-j]
	}

	return ext
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
