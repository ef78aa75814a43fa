package render

import (
	"fmt"
)

// histogramBins is the fixed amplitude resolution of the distribution
// chart.
const histogramBins = 100

// Histogram draws the amplitude distribution of the signal.
func Histogram(samples []float64, st Style) (*Chart, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("histogram: empty signal")
	}

	st = st.normalize()
	f, err := newFrame(st, 0)
	if err != nil {
		return nil, err
	}

	counts, lo, hi := histogramCounts(samples, histogramBins)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	f.setXRange(lo, hi)
	f.setYRange(0, float64(maxCount)*1.05)

	xt, xstep := niceTicks(f.xmin, f.xmax, 6)
	yt, ystep := niceTicks(f.ymin, f.ymax, 5)
	if ystep < 1 {
		// Counts are whole numbers.
		yt = yt[:0]
		for v := 0.0; v <= f.ymax; v++ {
			yt = append(yt, v)
		}
		ystep = 1
	}
	f.drawXAxis(xt, tickLabels(xt, xstep), true)
	f.drawYAxis(yt, tickLabels(yt, ystep), true)

	width := (hi - lo) / histogramBins
	fill := withAlpha(st.Palette.Success, 204)
	f.clipPlot()
	for i, c := range counts {
		if c == 0 {
			continue
		}
		x := f.px(lo + float64(i)*width)
		w := f.px(lo+float64(i+1)*width) - x
		y := f.py(float64(c))

		f.dc.SetColor(fill)
		f.dc.DrawRectangle(x, y, w, f.y1-y)
		f.dc.Fill()

		f.dc.SetColor(st.Palette.Text)
		f.dc.SetLineWidth(0.5)
		f.dc.DrawRectangle(x, y, w, f.y1-y)
		f.dc.Stroke()
	}
	f.unclip()

	f.drawBorder()
	f.drawXLabel("Amplitude")
	f.drawYLabel("Count")
	return f.chart(), nil
}

// histogramCounts buckets samples into bins across their value range.
// A constant signal widens the range by one either side, so everything
// lands in a single interior bin.
func histogramCounts(samples []float64, bins int) (counts []int, lo, hi float64) {
	lo, hi = samples[0], samples[0]
	for _, s := range samples {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}

	counts = make([]int, bins)
	scale := float64(bins) / (hi - lo)
	for _, s := range samples {
		i := int((s - lo) * scale)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	return counts, lo, hi
}
