package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/cwbudde/wavescope/dsp/stft"
)

// maxSpectrogramHz caps the displayed band. Content above 8 kHz rarely
// carries visible structure at chart resolution.
const maxSpectrogramHz = 8000.0

const colorbarInset = 56.0

// Spectrogram draws a short-time power heat map on the viridis palette.
//
// Power is shown as 10*log10(P + 1e-10) scaled between the matrix
// minimum and maximum. The heat map is built at matrix resolution, one
// pixel per frame and bin, then resized to the plot area with Lanczos
// resampling.
func Spectrogram(res *stft.Result, st Style) (*Chart, error) {
	if res == nil || res.Frames() == 0 || res.Bins() == 0 {
		return nil, fmt.Errorf("spectrogram: empty stft result")
	}

	st = st.normalize()
	f, err := newFrame(st, colorbarInset)
	if err != nil {
		return nil, err
	}

	nyquist := res.Frequencies[res.Bins()-1]
	maxF := nyquist
	if maxF > maxSpectrogramHz {
		maxF = maxSpectrogramHz
	}
	bins := 0
	for bins < res.Bins() && res.Frequencies[bins] <= maxF {
		bins++
	}

	frames := res.Frames()
	db := make([]float64, frames*bins)
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for x := 0; x < frames; x++ {
		for y := 0; y < bins; y++ {
			v := 10 * math.Log10(res.Power[x][y]+dbFloor)
			db[x*bins+y] = v
			if v < vmin {
				vmin = v
			}
			if v > vmax {
				vmax = v
			}
		}
	}
	span := vmax - vmin

	// Low frequencies sit at the bottom, so the bin index flips.
	img := image.NewRGBA(image.Rect(0, 0, frames, bins))
	for x := 0; x < frames; x++ {
		for y := 0; y < bins; y++ {
			t := 0.0
			if span > 0 {
				t = (db[x*bins+y] - vmin) / span
			}
			img.SetRGBA(x, bins-1-y, viridis(t))
		}
	}

	plotW := int(f.x1 - f.x0)
	plotH := int(f.y1 - f.y0)
	resized := imaging.Resize(img, plotW, plotH, imaging.Lanczos)
	f.dc.DrawImage(resized, int(f.x0), int(f.y0))

	sampleRate := 2 * nyquist
	end := res.Times[frames-1]
	if sampleRate > 0 {
		end += float64(res.SegmentSize) / (2 * sampleRate)
	}
	f.setXRange(0, end)
	f.setYRange(0, maxF)

	xt, xstep := niceTicks(f.xmin, f.xmax, 6)
	yt, _ := niceTicks(f.ymin, f.ymax, 5)
	f.drawXAxis(xt, tickLabels(xt, xstep), false)
	f.drawYAxis(yt, hzLabels(yt), false)
	f.drawColorbar(vmin, vmax)

	f.drawBorder()
	f.drawXLabel("Time (seconds)")
	f.drawYLabel("Frequency (Hz)")
	return f.chart(), nil
}

// drawColorbar paints the viridis scale right of the plot with the dB
// extremes labeled.
func (f *frame) drawColorbar(vmin, vmax float64) {
	x := f.x1 + 14
	w := 14.0
	steps := int(f.y1 - f.y0)
	for i := 0; i < steps; i++ {
		t := 1 - float64(i)/float64(steps-1)
		f.dc.SetColor(viridis(t))
		f.dc.DrawRectangle(x, f.y0+float64(i), w, 1.5)
		f.dc.Fill()
	}

	f.dc.SetFontFace(f.faces.tick)
	f.dc.SetColor(f.st.Palette.Text)
	f.dc.DrawStringAnchored("dB", x+w/2, f.y0-20, 0.5, 0.5)
	f.dc.DrawStringAnchored(fmt.Sprintf("%.0f", vmax), x+w/2, f.y0-8, 0.5, 0.5)
	f.dc.DrawStringAnchored(fmt.Sprintf("%.0f", vmin), x+w/2, f.y1+8, 0.5, 0.5)
}

// viridisAnchors samples the matplotlib viridis map at eighths.
var viridisAnchors = [...][3]uint8{
	{68, 1, 84},
	{72, 40, 120},
	{62, 73, 137},
	{49, 104, 142},
	{38, 130, 142},
	{31, 158, 137},
	{53, 183, 121},
	{110, 206, 88},
	{253, 231, 37},
}

// viridis maps t in [0, 1] onto the palette, clamping values outside.
func viridis(t float64) color.RGBA {
	last := len(viridisAnchors) - 1
	if !(t > 0) {
		a := viridisAnchors[0]
		return color.RGBA{R: a[0], G: a[1], B: a[2], A: 255}
	}
	if t >= 1 {
		a := viridisAnchors[last]
		return color.RGBA{R: a[0], G: a[1], B: a[2], A: 255}
	}

	pos := t * float64(last)
	i := int(pos)
	frac := pos - float64(i)
	a, b := viridisAnchors[i], viridisAnchors[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + frac*(float64(y)-float64(x)) + 0.5)
	}
	return color.RGBA{
		R: lerp(a[0], b[0]),
		G: lerp(a[1], b[1]),
		B: lerp(a[2], b[2]),
		A: 255,
	}
}
