package levels

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

// generateSine creates a sine wave with the given amplitude, frequency, and sample rate.
// It generates exactly numCycles full cycles.
func generateSine(amplitude, freq, sampleRate float64, numCycles int) []float64 {
	samplesPerCycle := int(sampleRate / freq)
	n := samplesPerCycle * numCycles
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

// generateDC creates a constant signal.
func generateDC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// generateSquare creates a +val/-val alternating square wave.
func generateSquare(val float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i%2 == 0 {
			out[i] = val
		} else {
			out[i] = -val
		}
	}
	return out
}

// generateUniform creates a uniformly spaced signal from -1 to +1 (inclusive).
func generateUniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = -1 + 2*float64(i)/float64(n-1)
	}
	return out
}

func TestCalculate_DCSignal(t *testing.T) {
	signal := generateDC(1.0, 1000)
	s := Calculate(signal)

	if s.Length != 1000 {
		t.Errorf("Length: got %d, want 1000", s.Length)
	}
	if !almostEqual(s.Mean, 1.0, tolerance) {
		t.Errorf("Mean: got %g, want 1.0", s.Mean)
	}
	if !almostEqual(s.RMS, 1.0, tolerance) {
		t.Errorf("RMS: got %g, want 1.0", s.RMS)
	}
	if !almostEqual(s.Peak, 1.0, tolerance) {
		t.Errorf("Peak: got %g, want 1.0", s.Peak)
	}
	if !almostEqual(s.MinNonzero, 1.0, tolerance) {
		t.Errorf("MinNonzero: got %g, want 1.0", s.MinNonzero)
	}
	if !almostEqual(s.Max, 1.0, tolerance) || !almostEqual(s.Min, 1.0, tolerance) {
		t.Errorf("Max/Min: got %g/%g, want 1.0/1.0", s.Max, s.Min)
	}
	if s.ZeroCrossings != 0 {
		t.Errorf("ZeroCrossings: got %d, want 0", s.ZeroCrossings)
	}
	if !almostEqual(s.StdDev, 0, tolerance) {
		t.Errorf("StdDev: got %g, want 0", s.StdDev)
	}
	if !almostEqual(s.Energy, 1000, tolerance) {
		t.Errorf("Energy: got %g, want 1000", s.Energy)
	}
	if !almostEqual(s.Power, 1.0, tolerance) {
		t.Errorf("Power: got %g, want 1.0", s.Power)
	}
	// dB checks: amplitude 1.0 against the 1e-6 reference.
	if !almostEqual(s.AvgPower_dB, 60, 1e-9) {
		t.Errorf("AvgPower_dB: got %g, want 60", s.AvgPower_dB)
	}
	if !almostEqual(s.RMS_dB, 120, 1e-9) {
		t.Errorf("RMS_dB: got %g, want 120", s.RMS_dB)
	}
	if !almostEqual(s.Peak_dB, 120, 1e-9) {
		t.Errorf("Peak_dB: got %g, want 120", s.Peak_dB)
	}
	if !almostEqual(s.Min_dB, 120, 1e-9) {
		t.Errorf("Min_dB: got %g, want 120", s.Min_dB)
	}
	if !almostEqual(s.DynamicRange_dB, 0, tolerance) {
		t.Errorf("DynamicRange_dB: got %g, want 0", s.DynamicRange_dB)
	}
	if !almostEqual(s.CrestFactor_dB, 0, tolerance) {
		t.Errorf("CrestFactor_dB: got %g, want 0", s.CrestFactor_dB)
	}
}

func TestCalculate_SineWave(t *testing.T) {
	// 1000 Hz sine at 48000 SR, 10 full cycles.
	signal := generateSine(1.0, 1000, 48000, 10)
	s := Calculate(signal)

	expectedRMS := 1.0 / math.Sqrt(2)
	if !almostEqual(s.RMS, expectedRMS, 1e-6) {
		t.Errorf("RMS: got %g, want %g", s.RMS, expectedRMS)
	}
	if !almostEqual(s.Mean, 0, 1e-10) {
		t.Errorf("Mean: got %g, want ~0", s.Mean)
	}
	// Peak should be very close to 1.0 (sample 12 hits sin(pi/2)).
	if !almostEqual(s.Peak, 1.0, 1e-3) {
		t.Errorf("Peak: got %g, want ~1.0", s.Peak)
	}
	// Crest factor of a sine is sqrt(2) = 3.01 dB.
	if !almostEqual(s.CrestFactor_dB, 20*math.Log10(math.Sqrt2), 1e-3) {
		t.Errorf("CrestFactor_dB: got %g, want %g", s.CrestFactor_dB, 20*math.Log10(math.Sqrt2))
	}
	// StdDev of a zero-mean sine is its RMS.
	if !almostEqual(s.StdDev, expectedRMS, 1e-6) {
		t.Errorf("StdDev: got %g, want %g", s.StdDev, expectedRMS)
	}
	// The half-cycle samples land within a few ulp of zero rather than on
	// it, so MinNonzero is tiny but nonzero; only check consistency.
	if s.MinNonzero <= 0 || s.MinNonzero > s.Peak {
		t.Errorf("MinNonzero: got %g, want in (0, %g]", s.MinNonzero, s.Peak)
	}
	wantRange := 20 * math.Log10(s.Peak/s.MinNonzero)
	if !almostEqual(s.DynamicRange_dB, wantRange, 1e-6) {
		t.Errorf("DynamicRange_dB: got %g, want %g", s.DynamicRange_dB, wantRange)
	}
	// Zero crossings: 2 per cycle nominally, but sin(0) = 0 exactly at
	// every half-cycle boundary (samples 0, 24, 48, ...), so the product
	// signal[i-1]*signal[i] is 0 rather than negative, losing one crossing
	// at the very start. This yields 19 crossings for 10 full cycles.
	if s.ZeroCrossings != 19 {
		t.Errorf("ZeroCrossings: got %d, want 19", s.ZeroCrossings)
	}
}

func TestCalculate_SquareWave(t *testing.T) {
	signal := generateSquare(1.0, 1000)
	s := Calculate(signal)

	if !almostEqual(s.Mean, 0, tolerance) {
		t.Errorf("Mean: got %g, want 0", s.Mean)
	}
	if !almostEqual(s.RMS, 1.0, tolerance) {
		t.Errorf("RMS: got %g, want 1.0", s.RMS)
	}
	if !almostEqual(s.Peak, 1.0, tolerance) {
		t.Errorf("Peak: got %g, want 1.0", s.Peak)
	}
	if !almostEqual(s.MinNonzero, 1.0, tolerance) {
		t.Errorf("MinNonzero: got %g, want 1.0", s.MinNonzero)
	}
	if !almostEqual(s.Max, 1.0, tolerance) {
		t.Errorf("Max: got %g, want 1.0", s.Max)
	}
	if !almostEqual(s.Min, -1.0, tolerance) {
		t.Errorf("Min: got %g, want -1.0", s.Min)
	}
	if !almostEqual(s.DynamicRange_dB, 0, tolerance) {
		t.Errorf("DynamicRange_dB: got %g, want 0", s.DynamicRange_dB)
	}
	if !almostEqual(s.CrestFactor_dB, 0, tolerance) {
		t.Errorf("CrestFactor_dB: got %g, want 0", s.CrestFactor_dB)
	}
	// Every adjacent pair changes sign: 999 crossings.
	if s.ZeroCrossings != 999 {
		t.Errorf("ZeroCrossings: got %d, want 999", s.ZeroCrossings)
	}
	// StdDev of +1/-1 square wave = 1.
	if !almostEqual(s.StdDev, 1.0, tolerance) {
		t.Errorf("StdDev: got %g, want 1.0", s.StdDev)
	}
}

func TestCalculate_EmptySignal(t *testing.T) {
	s := Calculate(nil)

	if s.Length != 0 {
		t.Errorf("Length: got %d, want 0", s.Length)
	}
	if s.Mean != 0 {
		t.Errorf("Mean: got %g, want 0", s.Mean)
	}
	if s.RMS != 0 {
		t.Errorf("RMS: got %g, want 0", s.RMS)
	}
	if s.Max != 0 || s.Min != 0 {
		t.Errorf("Max/Min: got %g/%g, want 0/0", s.Max, s.Min)
	}
	if !math.IsInf(s.AvgPower_dB, -1) {
		t.Errorf("AvgPower_dB: got %g, want -Inf", s.AvgPower_dB)
	}
	if !math.IsInf(s.RMS_dB, -1) {
		t.Errorf("RMS_dB: got %g, want -Inf", s.RMS_dB)
	}
	if !math.IsInf(s.Peak_dB, -1) {
		t.Errorf("Peak_dB: got %g, want -Inf", s.Peak_dB)
	}
	if !math.IsInf(s.Min_dB, -1) {
		t.Errorf("Min_dB: got %g, want -Inf", s.Min_dB)
	}
	if s.DynamicRange_dB != 0 {
		t.Errorf("DynamicRange_dB: got %g, want 0", s.DynamicRange_dB)
	}
	if s.CrestFactor_dB != 0 {
		t.Errorf("CrestFactor_dB: got %g, want 0", s.CrestFactor_dB)
	}
}

func TestCalculate_ZeroSignal(t *testing.T) {
	signal := make([]float64, 100)
	s := Calculate(signal)

	if s.Length != 100 {
		t.Errorf("Length: got %d, want 100", s.Length)
	}
	if !almostEqual(s.RMS, 0, tolerance) {
		t.Errorf("RMS: got %g, want 0", s.RMS)
	}
	if s.MinNonzero != 0 {
		t.Errorf("MinNonzero: got %g, want 0", s.MinNonzero)
	}
	if !math.IsInf(s.AvgPower_dB, -1) {
		t.Errorf("AvgPower_dB: got %g, want -Inf", s.AvgPower_dB)
	}
	if !math.IsInf(s.RMS_dB, -1) {
		t.Errorf("RMS_dB: got %g, want -Inf", s.RMS_dB)
	}
	if !math.IsInf(s.Peak_dB, -1) {
		t.Errorf("Peak_dB: got %g, want -Inf", s.Peak_dB)
	}
	if !math.IsInf(s.Min_dB, -1) {
		t.Errorf("Min_dB: got %g, want -Inf", s.Min_dB)
	}
	// Silence reports a zero range, never -Inf or NaN.
	if s.DynamicRange_dB != 0 {
		t.Errorf("DynamicRange_dB: got %g, want 0", s.DynamicRange_dB)
	}
	if s.CrestFactor_dB != 0 {
		t.Errorf("CrestFactor_dB: got %g, want 0", s.CrestFactor_dB)
	}
}

func TestCalculate_SingleSample(t *testing.T) {
	s := Calculate([]float64{3.5})

	if s.Length != 1 {
		t.Errorf("Length: got %d, want 1", s.Length)
	}
	if !almostEqual(s.Mean, 3.5, tolerance) {
		t.Errorf("Mean: got %g, want 3.5", s.Mean)
	}
	if !almostEqual(s.RMS, 3.5, tolerance) {
		t.Errorf("RMS: got %g, want 3.5", s.RMS)
	}
	if !almostEqual(s.Peak, 3.5, tolerance) {
		t.Errorf("Peak: got %g, want 3.5", s.Peak)
	}
	if s.PeakPos != 0 {
		t.Errorf("PeakPos: got %d, want 0", s.PeakPos)
	}
	if !almostEqual(s.Max, 3.5, tolerance) || !almostEqual(s.Min, 3.5, tolerance) {
		t.Errorf("Max/Min: got %g/%g, want 3.5/3.5", s.Max, s.Min)
	}
	if !almostEqual(s.MinNonzero, 3.5, tolerance) {
		t.Errorf("MinNonzero: got %g, want 3.5", s.MinNonzero)
	}
	if !almostEqual(s.StdDev, 0, tolerance) {
		t.Errorf("StdDev: got %g, want 0", s.StdDev)
	}
	if !almostEqual(s.CrestFactor_dB, 0, tolerance) {
		t.Errorf("CrestFactor_dB: got %g, want 0", s.CrestFactor_dB)
	}
	if !almostEqual(s.DynamicRange_dB, 0, tolerance) {
		t.Errorf("DynamicRange_dB: got %g, want 0", s.DynamicRange_dB)
	}
}

func TestCalculate_PeakPosition(t *testing.T) {
	signal := []float64{0, 1, -2, 3, -4, 5}
	s := Calculate(signal)

	if !almostEqual(s.Peak, 5, tolerance) {
		t.Errorf("Peak: got %g, want 5", s.Peak)
	}
	if s.PeakPos != 5 {
		t.Errorf("PeakPos: got %d, want 5", s.PeakPos)
	}
	if !almostEqual(s.Max, 5, tolerance) {
		t.Errorf("Max: got %g, want 5", s.Max)
	}
	if !almostEqual(s.Min, -4, tolerance) {
		t.Errorf("Min: got %g, want -4", s.Min)
	}
	if !almostEqual(s.MinNonzero, 1, tolerance) {
		t.Errorf("MinNonzero: got %g, want 1", s.MinNonzero)
	}
	if s.ZeroCrossings != 4 {
		t.Errorf("ZeroCrossings: got %d, want 4", s.ZeroCrossings)
	}
}

func TestCalculate_dBValues(t *testing.T) {
	signal := generateDC(2.0, 100)
	s := Calculate(signal)

	wantAvg := 10 * math.Log10(4.0/1e-6)
	if !almostEqual(s.AvgPower_dB, wantAvg, 1e-9) {
		t.Errorf("AvgPower_dB: got %g, want %g", s.AvgPower_dB, wantAvg)
	}
	wantAmp := 20 * math.Log10(2.0/1e-6)
	if !almostEqual(s.RMS_dB, wantAmp, 1e-9) {
		t.Errorf("RMS_dB: got %g, want %g", s.RMS_dB, wantAmp)
	}
	if !almostEqual(s.Peak_dB, wantAmp, 1e-9) {
		t.Errorf("Peak_dB: got %g, want %g", s.Peak_dB, wantAmp)
	}
	// The power reference is also 1e-6, so the two scales sit 60 dB apart.
	if !almostEqual(s.RMS_dB-s.AvgPower_dB, 60, 1e-9) {
		t.Errorf("RMS_dB-AvgPower_dB: got %g, want 60", s.RMS_dB-s.AvgPower_dB)
	}
}

func TestCalculate_DynamicRange(t *testing.T) {
	// Peak 1.0, smallest nonzero 0.01: a clean 40 dB range.
	signal := []float64{1.0, 0.01, 0, -0.5}
	s := Calculate(signal)

	if !almostEqual(s.MinNonzero, 0.01, tolerance) {
		t.Errorf("MinNonzero: got %g, want 0.01", s.MinNonzero)
	}
	if !almostEqual(s.Min_dB, 80, 1e-9) {
		t.Errorf("Min_dB: got %g, want 80", s.Min_dB)
	}
	if !almostEqual(s.DynamicRange_dB, 40, 1e-9) {
		t.Errorf("DynamicRange_dB: got %g, want 40", s.DynamicRange_dB)
	}
	// The range is the distance between the two absolute levels.
	if !almostEqual(s.Peak_dB-s.Min_dB, s.DynamicRange_dB, 1e-9) {
		t.Errorf("Peak_dB-Min_dB: got %g, want %g", s.Peak_dB-s.Min_dB, s.DynamicRange_dB)
	}
}

func TestCalculate_UniformStdDev(t *testing.T) {
	// Large uniform distribution from -1 to +1 for a known variance.
	n := 100001
	signal := generateUniform(n)
	s := Calculate(signal)

	if !almostEqual(s.Mean, 0, 1e-10) {
		t.Errorf("Mean: got %g, want ~0", s.Mean)
	}
	// Population variance of uniform [-1, 1] = 1/3.
	if !almostEqual(s.StdDev, math.Sqrt(1.0/3.0), 1e-4) {
		t.Errorf("StdDev: got %g, want %g", s.StdDev, math.Sqrt(1.0/3.0))
	}
}

// --- Individual function tests ---

func TestRMS(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"dc", generateDC(1.0, 100), 1.0},
		{"single", []float64{4.0}, 4.0},
		{"square", generateSquare(1.0, 1000), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RMS(tt.signal)
			if !almostEqual(got, tt.want, 1e-10) {
				t.Errorf("RMS(%s): got %g, want %g", tt.name, got, tt.want)
			}
		})
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"dc", generateDC(3.0, 100), 3.0},
		{"symmetric", generateSquare(1.0, 1000), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.signal)
			if !almostEqual(got, tt.want, 1e-10) {
				t.Errorf("Mean(%s): got %g, want %g", tt.name, got, tt.want)
			}
		})
	}
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"positive", []float64{1, 2, 3}, 3},
		{"negative", []float64{-5, -1, -3}, 5},
		{"mixed", []float64{2, -7, 3}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Peak(tt.signal)
			if !almostEqual(got, tt.want, tolerance) {
				t.Errorf("Peak(%s): got %g, want %g", tt.name, got, tt.want)
			}
		})
	}
}

func TestZeroCrossings(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   int
	}{
		{"empty", nil, 0},
		{"single", []float64{1}, 0},
		{"no_crossings", []float64{1, 2, 3}, 0},
		{"one_crossing", []float64{1, -1}, 1},
		{"alternating", generateSquare(1.0, 10), 9},
		{"through_zero", []float64{1, 0, -1}, 0}, // 1*0=0, 0*(-1)=0, neither < 0
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ZeroCrossings(tt.signal)
			if got != tt.want {
				t.Errorf("ZeroCrossings(%s): got %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

// --- Individual functions match Calculate ---

func TestIndividualFunctionsMatchCalculate(t *testing.T) {
	signals := map[string][]float64{
		"dc":     generateDC(2.5, 500),
		"sine":   generateSine(1.0, 1000, 48000, 5),
		"square": generateSquare(1.0, 1000),
	}

	for name, signal := range signals {
		t.Run(name, func(t *testing.T) {
			s := Calculate(signal)

			rms := RMS(signal)
			if !almostEqual(rms, s.RMS, tolerance) {
				t.Errorf("RMS: standalone=%g, Calculate=%g", rms, s.RMS)
			}

			mean := Mean(signal)
			// Mean uses Kahan summation so may differ very slightly from
			// the Welford mean. Use a slightly looser tolerance.
			if !almostEqual(mean, s.Mean, 1e-9) {
				t.Errorf("Mean: standalone=%g, Calculate=%g", mean, s.Mean)
			}

			peak := Peak(signal)
			if !almostEqual(peak, s.Peak, tolerance) {
				t.Errorf("Peak: standalone=%g, Calculate=%g", peak, s.Peak)
			}

			zc := ZeroCrossings(signal)
			if zc != s.ZeroCrossings {
				t.Errorf("ZeroCrossings: standalone=%d, Calculate=%d", zc, s.ZeroCrossings)
			}
		})
	}
}

// --- Streaming stats tests ---

func TestStreamingStats_MatchesCalculate(t *testing.T) {
	signals := map[string][]float64{
		"dc":      generateDC(1.0, 1000),
		"sine":    generateSine(1.0, 1000, 48000, 10),
		"square":  generateSquare(1.0, 1000),
		"uniform": generateUniform(10001),
	}

	// Block sizes to split the signal into.
	blockSizes := []int{1, 7, 64, 256, 1000}

	for name, signal := range signals {
		for _, bs := range blockSizes {
			t.Run(name+"/block_"+itoa(bs), func(t *testing.T) {
				expected := Calculate(signal)
				ss := NewStreamingStats()

				for i := 0; i < len(signal); i += bs {
					end := i + bs
					if end > len(signal) {
						end = len(signal)
					}
					ss.Update(signal[i:end])
				}

				got := ss.Result()
				compareStats(t, got, expected)
			})
		}
	}
}

func TestStreamingStats_Empty(t *testing.T) {
	ss := NewStreamingStats()
	s := ss.Result()

	if s.Length != 0 {
		t.Errorf("Length: got %d, want 0", s.Length)
	}
	if !math.IsInf(s.RMS_dB, -1) {
		t.Errorf("RMS_dB: got %g, want -Inf", s.RMS_dB)
	}
}

func TestStreamingStats_Reset(t *testing.T) {
	ss := NewStreamingStats()
	ss.Update([]float64{1, 2, 3, 4, 5})
	ss.Reset()

	s := ss.Result()
	if s.Length != 0 {
		t.Errorf("after Reset, Length: got %d, want 0", s.Length)
	}

	// Use after reset.
	ss.Update([]float64{10})
	s = ss.Result()
	if s.Length != 1 {
		t.Errorf("after Reset+Update, Length: got %d, want 1", s.Length)
	}
	if !almostEqual(s.Mean, 10, tolerance) {
		t.Errorf("after Reset+Update, Mean: got %g, want 10", s.Mean)
	}
}

func TestStreamingStats_SingleSample(t *testing.T) {
	expected := Calculate([]float64{42})

	ss := NewStreamingStats()
	ss.Update([]float64{42})
	got := ss.Result()

	compareStats(t, got, expected)
}

func TestStreamingStats_SampleBySample(t *testing.T) {
	signal := generateSine(1.0, 1000, 48000, 2)
	expected := Calculate(signal)

	ss := NewStreamingStats()
	for _, x := range signal {
		ss.Update([]float64{x})
	}
	got := ss.Result()

	compareStats(t, got, expected)
}

// compareStats checks that two Stats structs are equal within tolerance.
func compareStats(t *testing.T, got, want Stats) {
	t.Helper()

	if got.Length != want.Length {
		t.Errorf("Length: got %d, want %d", got.Length, want.Length)
	}
	checkFloat(t, "Mean", got.Mean, want.Mean)
	checkFloat(t, "StdDev", got.StdDev, want.StdDev)
	checkFloat(t, "RMS", got.RMS, want.RMS)
	checkFloat(t, "Max", got.Max, want.Max)
	checkFloat(t, "Min", got.Min, want.Min)
	checkFloat(t, "RMS_dB", got.RMS_dB, want.RMS_dB)
	checkFloat(t, "AvgPower_dB", got.AvgPower_dB, want.AvgPower_dB)
	checkFloat(t, "Peak", got.Peak, want.Peak)
	if got.PeakPos != want.PeakPos {
		t.Errorf("PeakPos: got %d, want %d", got.PeakPos, want.PeakPos)
	}
	checkFloat(t, "MinNonzero", got.MinNonzero, want.MinNonzero)
	checkFloat(t, "Peak_dB", got.Peak_dB, want.Peak_dB)
	checkFloat(t, "Min_dB", got.Min_dB, want.Min_dB)
	checkFloat(t, "DynamicRange_dB", got.DynamicRange_dB, want.DynamicRange_dB)
	checkFloat(t, "CrestFactor_dB", got.CrestFactor_dB, want.CrestFactor_dB)
	checkFloat(t, "Energy", got.Energy, want.Energy)
	checkFloat(t, "Power", got.Power, want.Power)
	if got.ZeroCrossings != want.ZeroCrossings {
		t.Errorf("ZeroCrossings: got %d, want %d", got.ZeroCrossings, want.ZeroCrossings)
	}
}

func checkFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !almostEqual(got, want, tolerance) {
		t.Errorf("%s: got %g, want %g", name, got, want)
	}
}

// itoa converts an int to a string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	buf := [20]byte{}
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
