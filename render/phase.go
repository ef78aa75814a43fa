package render

import (
	"fmt"

	"github.com/cwbudde/wavescope/dsp/spectrum"
)

// maxPhasePoints caps the marker density of the phase scatter.
const maxPhasePoints = 5000

// Phase draws the FFT phase angle in degrees against log frequency.
// Dense spectra are strided down to at most maxPhasePoints markers.
func Phase(samples []float64, sampleRate float64, st Style) (*Chart, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("phase: need at least 2 samples: %d", len(samples))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("phase: sample rate must be > 0: %g", sampleRate)
	}

	out, n, err := fftBins(samples)
	if err != nil {
		return nil, fmt.Errorf("phase: %w", err)
	}
	bins := out[1 : n/2]
	if len(bins) < 2 {
		return nil, fmt.Errorf("phase: signal too short: %d samples", len(samples))
	}

	degs := spectrum.PhaseDegrees(bins)
	freqs := make([]float64, len(bins))
	for i := range freqs {
		freqs[i] = spectrum.BinFrequency(i+1, n, sampleRate)
	}

	if len(freqs) > maxPhasePoints {
		step := (len(freqs) + maxPhasePoints - 1) / maxPhasePoints
		var fs, ds []float64
		for i := 0; i < len(freqs); i += step {
			fs = append(fs, freqs[i])
			ds = append(ds, degs[i])
		}
		freqs, degs = fs, ds
	}

	st = st.normalize()
	f, err := newFrame(st, 0)
	if err != nil {
		return nil, err
	}

	f.setLogX(freqs[0], freqs[len(freqs)-1])
	f.setYRange(-180, 180)

	xt := logTicks(f.xmin, f.xmax)
	yt := []float64{-180, -90, 0, 90, 180}
	f.drawXAxis(xt, hzLabels(xt), true)
	f.drawYAxis(yt, tickLabels(yt, 90), true)

	f.clipPlot()
	f.dc.SetColor(withAlpha(st.Palette.Secondary, 128))
	for i := range freqs {
		f.dc.DrawCircle(f.px(freqs[i]), f.py(degs[i]), 1.3)
	}
	f.dc.Fill()
	f.unclip()

	f.drawBorder()
	f.drawXLabel("Frequency (Hz)")
	f.drawYLabel("Phase (degrees)")
	return f.chart(), nil
}
