package render

import (
	"fmt"
	"math"

	"github.com/cwbudde/wavescope/audio"
)

// maxWaveformPoints caps how many samples are drawn point by point.
// Longer clips collapse to one min/max stroke per pixel column, which
// keeps transients visible where plain striding would skip them.
const maxWaveformPoints = 50000

// Waveform draws amplitude over time.
func Waveform(clip *audio.Clip, st Style) (*Chart, error) {
	if clip == nil || len(clip.Samples) == 0 {
		return nil, fmt.Errorf("waveform: empty clip")
	}
	sampleRate := float64(clip.Info.SampleRate)
	if sampleRate <= 0 {
		return nil, fmt.Errorf("waveform: sample rate must be > 0: %g", sampleRate)
	}

	st = st.normalize()
	f, err := newFrame(st, 0)
	if err != nil {
		return nil, err
	}

	samples := clip.Samples
	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		// Silence still gets a visible zero trace.
		peak = 1
	}

	f.setXRange(0, float64(len(samples))/sampleRate)
	f.setYRange(-1.05*peak, 1.05*peak)

	xt, xstep := niceTicks(f.xmin, f.xmax, 6)
	yt, ystep := niceTicks(f.ymin, f.ymax, 5)
	f.drawXAxis(xt, tickLabels(xt, xstep), true)
	f.drawYAxis(yt, tickLabels(yt, ystep), true)
	f.drawZeroLine(st.Palette.Accent)

	f.clipPlot()
	if len(samples) > maxWaveformPoints {
		f.dc.SetColor(st.Palette.Primary)
		f.dc.SetLineWidth(1)
		cols := int(f.x1 - f.x0)
		for c := 0; c < cols; c++ {
			i0 := c * len(samples) / cols
			i1 := (c + 1) * len(samples) / cols
			if i1 <= i0 {
				i1 = i0 + 1
			}
			lo, hi := samples[i0], samples[i0]
			for _, s := range samples[i0:i1] {
				if s < lo {
					lo = s
				}
				if s > hi {
					hi = s
				}
			}
			x := f.x0 + float64(c) + 0.5
			top := f.py(hi)
			bottom := f.py(lo)
			if bottom-top < 1 {
				bottom = top + 1
			}
			f.dc.DrawLine(x, top, x, bottom)
		}
		f.dc.Stroke()
	} else {
		xs := make([]float64, len(samples))
		ys := make([]float64, len(samples))
		for i, s := range samples {
			xs[i] = float64(i) / sampleRate
			ys[i] = s
		}
		f.strokeLine(xs, ys, st.Palette.Primary, 1)
	}
	f.unclip()

	f.drawBorder()
	f.drawXLabel("Time (seconds)")
	f.drawYLabel("Amplitude")
	return f.chart(), nil
}
