// Package levels computes time-domain level statistics for audio buffers.
package levels

import "math"

// dbRef is the reference for absolute decibel levels. Amplitudes and
// mean-square powers are both reported against 1e-6, so a full-scale
// sine comes out near 117 dB RMS.
const dbRef = 1e-6

// Stats holds time-domain level statistics.
//
//nolint:revive
type Stats struct {
	Length int

	Mean   float64 // DC offset
	StdDev float64
	RMS    float64

	Max float64 // largest sample value
	Min float64 // smallest sample value

	Peak       float64 // max |x|
	PeakPos    int
	MinNonzero float64 // smallest nonzero |x|; 0 for all-zero input

	Energy float64 // sum of squares
	Power  float64 // energy / length

	AvgPower_dB     float64
	RMS_dB          float64
	Peak_dB         float64
	Min_dB          float64 // level of the quietest nonzero sample
	DynamicRange_dB float64
	CrestFactor_dB  float64

	ZeroCrossings int
}

// ampTodB converts an amplitude to an absolute level: 20 * log10(a / 1e-6).
// Returns -Inf for zero.
func ampTodB(a float64) float64 {
	if a <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a/dbRef)
}

// powerTodB converts a mean-square power to an absolute level:
// 10 * log10(p / 1e-6). Returns -Inf for zero.
func powerTodB(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(p/dbRef)
}

// ratioTodB converts a linear amplitude ratio to decibels: 20 * log10(value).
// Returns -Inf for zero values.
func ratioTodB(value float64) float64 {
	if value == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(value)
}

// emptyStats returns a zero-valued Stats with -Inf for the absolute dB
// levels. DynamicRange_dB and CrestFactor_dB stay 0 so silence never
// reports an infinite range.
func emptyStats() Stats {
	return Stats{
		AvgPower_dB: math.Inf(-1),
		RMS_dB:      math.Inf(-1),
		Peak_dB:     math.Inf(-1),
		Min_dB:      math.Inf(-1),
	}
}

// Calculate computes all time-domain level statistics in a single pass
// using Welford's online update for a numerically stable variance.
func Calculate(samples []float64) Stats {
	n := len(samples)
	if n == 0 {
		return emptyStats()
	}

	var (
		mean  float64
		m2    float64
		sumSq float64

		peak       float64
		peakPos    int
		minNonzero float64

		zeroCrossings int
	)
	maxS := samples[0]
	minS := samples[0]

	for i, x := range samples {
		// Welford update. The statement order matches StreamingStats.Update
		// so both paths produce bit-identical results.
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxS {
			maxS = x
		}
		if x < minS {
			minS = x
		}

		a := math.Abs(x)
		if a > peak {
			peak = a
			peakPos = i
		}

		if a != 0 && (minNonzero == 0 || a < minNonzero) {
			minNonzero = a
		}

		if i > 0 && samples[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	return summarize(n, mean, m2, sumSq, maxS, minS, peak, peakPos, minNonzero, zeroCrossings)
}

// summarize derives the final Stats from single-pass accumulators.
func summarize(n int, mean, m2, sumSq, maxS, minS, peak float64, peakPos int, minNonzero float64, zeroCrossings int) Stats {
	nf := float64(n)
	power := sumSq / nf
	rms := math.Sqrt(power)

	var crestdB float64
	if rms > 0 {
		crestdB = ratioTodB(peak / rms)
	}

	// Silence has no measurable range; report 0 rather than -Inf or NaN.
	var dynRange float64
	if minNonzero > 0 {
		dynRange = ratioTodB(peak / minNonzero)
	}

	return Stats{
		Length:          n,
		Mean:            mean,
		StdDev:          math.Sqrt(m2 / nf),
		RMS:             rms,
		Max:             maxS,
		Min:             minS,
		Peak:            peak,
		PeakPos:         peakPos,
		MinNonzero:      minNonzero,
		Energy:          sumSq,
		Power:           power,
		AvgPower_dB:     powerTodB(power),
		RMS_dB:          ampTodB(rms),
		Peak_dB:         ampTodB(peak),
		Min_dB:          ampTodB(minNonzero),
		DynamicRange_dB: dynRange,
		CrestFactor_dB:  crestdB,
		ZeroCrossings:   zeroCrossings,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Mean returns the mean (DC offset) of the signal.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	peak := math.Abs(signal[0])
	for _, x := range signal[1:] {
		a := math.Abs(x)
		if a > peak {
			peak = a
		}
	}

	return peak
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	if len(signal) < 2 {
		return 0
	}

	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// StreamingStats accumulates level statistics incrementally across multiple
// blocks of samples. It processes each sample individually to guarantee
// bit-for-bit identical results with [Calculate] on the concatenated input.
type StreamingStats struct {
	n             int
	mean          float64
	m2            float64
	sumSq         float64
	maxSample     float64
	minSample     float64
	peak          float64
	peakPos       int
	minNonzero    float64
	zeroCrossings int
	lastSample    float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.n++

		delta := x - s.mean
		s.mean += delta / float64(s.n)
		s.m2 += delta * (x - s.mean)

		s.sumSq += x * x

		if s.n == 1 || x > s.maxSample {
			s.maxSample = x
		}
		if s.n == 1 || x < s.minSample {
			s.minSample = x
		}

		a := math.Abs(x)
		if a > s.peak {
			s.peak = a
			s.peakPos = s.n - 1
		}

		if a != 0 && (s.minNonzero == 0 || a < s.minNonzero) {
			s.minNonzero = a
		}

		if s.n > 1 && s.lastSample*x < 0 {
			s.zeroCrossings++
		}

		s.lastSample = x
	}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	return summarize(s.n, s.mean, s.m2, s.sumSq, s.maxSample, s.minSample, s.peak, s.peakPos, s.minNonzero, s.zeroCrossings)
}

// Reset clears all accumulated data, allowing the StreamingStats to be reused.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
