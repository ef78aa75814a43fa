package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// This function uses SIMD-optimized implementations when available (AVX2, SSE2, NEON)
// for improved performance on large spectrum arrays. Scratch buffers are pooled
// internally, so in steady state this allocates only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// This is the zero-allocation fast path for callers that already have real and
// imaginary parts in separate slices. All three slices must have the same length.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// PhaseDegrees returns arg(X[k]) for each bin in degrees, in [-180, 180].
func PhaseDegrees(in []complex128) []float64 {
	out := Phase(in)
	for i := range out {
		out[i] *= 180 / math.Pi
	}
	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// Half returns the positive-frequency bins of a real-input FFT, including DC
// and Nyquist. For an N-point transform that is N/2+1 bins.
func Half(in []complex128) []complex128 {
	if len(in) == 0 {
		return nil
	}
	n := len(in)/2 + 1
	out := make([]complex128, n)
	copy(out, in[:n])
	return out
}

// MagnitudeTodB converts linear magnitudes to decibels relative to ref.
//
// floor is added to the ratio before the logarithm so that zero bins map to
// a finite level instead of -Inf. A ref of 0 yields a flat floor-level slice.
func MagnitudeTodB(mags []float64, ref, floor float64) []float64 {
	if len(mags) == 0 {
		return nil
	}
	out := make([]float64, len(mags))
	if ref == 0 {
		level := 20 * math.Log10(floor)
		for i := range out {
			out[i] = level
		}
		return out
	}
	inv := 1 / ref
	for i, m := range mags {
		out[i] = 20 * math.Log10(m*inv+floor)
	}
	return out
}

// SmoothMovingAverage returns a centered moving average of width points.
//
// Edges shrink the averaging span to the available neighborhood. A width
// below 2 returns a copy of the input.
func SmoothMovingAverage(values []float64, width int) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	if width < 2 {
		copy(out, values)
		return out
	}

	half := width / 2
	for i := range values {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(values) {
			hi = len(values) - 1
		}

		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// BinFrequency returns the center frequency of an FFT bin.
func BinFrequency(bin, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(fftSize)
}

// Frequencies returns the center frequencies of the first n bins of an
// fftSize-point transform.
func Frequencies(n, fftSize int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = BinFrequency(i, fftSize, sampleRate)
	}
	return out
}
