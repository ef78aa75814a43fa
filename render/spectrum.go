package render

import (
	"fmt"
	"image/color"

	"github.com/cwbudde/wavescope/dsp/spectrum"
)

// smoothAboveBins is the size past which the spectrum trace is smoothed
// with a moving average of width len/1000 before drawing.
const smoothAboveBins = 2000

// spectrumMinHz is where the log frequency axis starts, matching the
// frequency-analysis views it is modeled on.
const spectrumMinHz = 20.0

// Trace colors fixed to the Audacity-style purple regardless of palette.
var (
	spectrumLine = color.RGBA{R: 139, G: 43, B: 226, A: 255}
	spectrumFill = color.RGBA{R: 138, G: 43, B: 226, A: 128}
)

// Spectrum draws magnitude in dB relative to the strongest bin over a
// logarithmic frequency axis, in the layout of Audacity's frequency
// analysis: filled purple trace, 1-2-5 frequency ticks, a fixed -66 to
// +3 dB window with a 6 dB ladder.
//
// freqs must ascend and match mags bin for bin, the positive half of a
// one-sided spectrum.
func Spectrum(freqs, mags []float64, st Style) (*Chart, error) {
	if len(freqs) == 0 || len(mags) == 0 {
		return nil, fmt.Errorf("spectrum: empty spectrum")
	}
	if len(freqs) != len(mags) {
		return nil, fmt.Errorf("spectrum: %d magnitudes for %d frequencies", len(mags), len(freqs))
	}
	hi := freqs[len(freqs)-1]
	if hi <= 0 {
		return nil, fmt.Errorf("spectrum: frequencies must be positive")
	}

	st = st.normalize()
	f, err := newFrame(st, 0)
	if err != nil {
		return nil, err
	}

	ref := 0.0
	for _, m := range mags {
		if m > ref {
			ref = m
		}
	}
	db := spectrum.MagnitudeTodB(mags, ref, dbFloor)
	if len(db) > smoothAboveBins {
		db = spectrum.SmoothMovingAverage(db, len(db)/1000)
	}

	lo := spectrumMinHz
	if hi <= lo {
		lo = hi / 100
	}
	start := 0
	for start < len(freqs) && freqs[start] < lo {
		start++
	}
	xs := freqs[start:]
	ys := db[start:]
	if len(xs) < 2 {
		return nil, fmt.Errorf("spectrum: not enough bins above %g Hz", lo)
	}

	f.setLogX(lo, hi)
	f.setYRange(-66, 3)

	var yt []float64
	for v := -60.0; v <= 0; v += 6 {
		yt = append(yt, v)
	}
	xt := logTicks(f.xmin, f.xmax)
	f.drawXAxis(xt, hzLabels(xt), true)
	f.drawYAxis(yt, tickLabels(yt, 6), true)
	f.drawZeroLine(st.Palette.Axis)

	f.clipPlot()
	f.fillUnder(xs, ys, spectrumFill)
	f.strokeLine(xs, ys, spectrumLine, 1)
	f.unclip()

	f.drawBorder()
	f.drawXLabel("Frequency (Hz)")
	f.drawYLabel("Level (dB)")
	return f.chart(), nil
}
