package render

import (
	"fmt"
	"math"

	"github.com/cwbudde/wavescope/dsp/welch"
)

// PSD draws a Welch power spectral density as dB per Hz over a
// logarithmic frequency axis.
func PSD(est *welch.Estimate, st Style) (*Chart, error) {
	if est == nil || len(est.Power) == 0 {
		return nil, fmt.Errorf("psd: empty estimate")
	}
	if len(est.Power) != len(est.Frequencies) {
		return nil, fmt.Errorf("psd: %d power bins for %d frequencies", len(est.Power), len(est.Frequencies))
	}

	st = st.normalize()
	f, err := newFrame(st, 0)
	if err != nil {
		return nil, err
	}

	// The DC bin cannot sit on a log axis.
	start := 0
	for start < len(est.Frequencies) && est.Frequencies[start] <= 0 {
		start++
	}
	xs := est.Frequencies[start:]
	if len(xs) < 2 {
		return nil, fmt.Errorf("psd: not enough positive-frequency bins")
	}

	ys := make([]float64, len(xs))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, p := range est.Power[start:] {
		v := 10 * math.Log10(p+dbFloor)
		ys[i] = v
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi-lo < 1 {
		// A flat density still shows a trace, not a degenerate axis.
		lo, hi = lo-3, hi+3
	}
	pad := (hi - lo) * 0.05

	f.setLogX(xs[0], xs[len(xs)-1])
	f.setYRange(lo-pad, hi+pad)

	xt := logTicks(f.xmin, f.xmax)
	yt, ystep := niceTicks(f.ymin, f.ymax, 5)
	f.drawXAxis(xt, hzLabels(xt), true)
	f.drawYAxis(yt, tickLabels(yt, ystep), true)

	f.clipPlot()
	f.fillUnder(xs, ys, withAlpha(st.Palette.Accent, 77))
	f.strokeLine(xs, ys, st.Palette.Accent, 1.5)
	f.unclip()

	f.drawBorder()
	f.drawXLabel("Frequency (Hz)")
	f.drawYLabel("Power/Frequency (dB/Hz)")
	return f.chart(), nil
}
