package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"
)

// dbFloor keeps logarithmic conversions finite for zero power.
const dbFloor = 1e-10

// Plot area margins in pixels. The top margin grows when a title is set.
const (
	marginLeft   = 76.0
	marginRight  = 28.0
	marginTop    = 26.0
	marginTitled = 48.0
	marginBottom = 58.0
)

// frame is the shared plot scaffolding: background, title, margins, the
// data-to-pixel mapping, grid, ticks, and axis labels.
type frame struct {
	dc    *gg.Context
	st    Style
	faces faceSet

	x0, y0, x1, y1 float64

	xmin, xmax float64
	ymin, ymax float64
	logX       bool
}

// newFrame prepares a context with background and title drawn and the
// plot rectangle computed. rightInset widens the right margin, used by
// the spectrogram for its color bar.
func newFrame(st Style, rightInset float64) (*frame, error) {
	faces, err := newFaces(st)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(st.Width, st.Height)
	dc.SetColor(st.Palette.Background)
	dc.Clear()

	top := marginTop
	if st.Title != "" {
		top = marginTitled
		dc.SetFontFace(faces.title)
		dc.SetColor(st.Palette.Text)
		dc.DrawStringAnchored(st.Title, float64(st.Width)/2, top/2, 0.5, 0.5)
	}

	return &frame{
		dc:    dc,
		st:    st,
		faces: faces,
		x0:    marginLeft,
		y0:    top,
		x1:    float64(st.Width) - marginRight - rightInset,
		y1:    float64(st.Height) - marginBottom,
	}, nil
}

func (f *frame) chart() *Chart {
	return &Chart{img: f.dc.Image()}
}

// setXRange sets a linear x axis. A degenerate range is widened so the
// mapping stays finite.
func (f *frame) setXRange(lo, hi float64) {
	if !(hi > lo) {
		lo, hi = lo-1, lo+1
	}
	f.logX = false
	f.xmin, f.xmax = lo, hi
}

// setLogX sets a logarithmic x axis. Callers must keep plotted x values
// positive.
func (f *frame) setLogX(lo, hi float64) {
	if !(hi > lo) {
		hi = lo * 10
	}
	f.logX = true
	f.xmin, f.xmax = lo, hi
}

func (f *frame) setYRange(lo, hi float64) {
	if !(hi > lo) {
		lo, hi = lo-1, lo+1
	}
	f.ymin, f.ymax = lo, hi
}

// px maps a data x value to a pixel column.
func (f *frame) px(x float64) float64 {
	t := 0.0
	if f.logX {
		lo, hi := math.Log10(f.xmin), math.Log10(f.xmax)
		if hi > lo {
			t = (math.Log10(x) - lo) / (hi - lo)
		}
	} else if f.xmax > f.xmin {
		t = (x - f.xmin) / (f.xmax - f.xmin)
	}
	return f.x0 + t*(f.x1-f.x0)
}

// py maps a data y value to a pixel row. Larger values sit higher.
func (f *frame) py(y float64) float64 {
	t := 0.0
	if f.ymax > f.ymin {
		t = (y - f.ymin) / (f.ymax - f.ymin)
	}
	return f.y1 - t*(f.y1-f.y0)
}

// drawXAxis draws tick labels below the plot and, when grid is set,
// vertical grid lines at each tick.
func (f *frame) drawXAxis(ticks []float64, labels []string, grid bool) {
	f.dc.SetFontFace(f.faces.tick)
	for i, v := range ticks {
		x := f.px(v)
		if grid {
			f.dc.SetColor(f.st.Palette.Grid)
			f.dc.SetLineWidth(1)
			f.dc.DrawLine(x, f.y0, x, f.y1)
			f.dc.Stroke()
		}
		f.dc.SetColor(f.st.Palette.Text)
		f.dc.DrawStringAnchored(labels[i], x, f.y1+12, 0.5, 0.5)
	}
}

// drawYAxis draws tick labels left of the plot and, when grid is set,
// horizontal grid lines at each tick.
func (f *frame) drawYAxis(ticks []float64, labels []string, grid bool) {
	f.dc.SetFontFace(f.faces.tick)
	for i, v := range ticks {
		y := f.py(v)
		if grid {
			f.dc.SetColor(f.st.Palette.Grid)
			f.dc.SetLineWidth(1)
			f.dc.DrawLine(f.x0, y, f.x1, y)
			f.dc.Stroke()
		}
		f.dc.SetColor(f.st.Palette.Text)
		f.dc.DrawStringAnchored(labels[i], f.x0-8, y, 1, 0.5)
	}
}

func (f *frame) drawXLabel(s string) {
	f.dc.SetFontFace(f.faces.label)
	f.dc.SetColor(f.st.Palette.Text)
	f.dc.DrawStringAnchored(s, (f.x0+f.x1)/2, float64(f.st.Height)-18, 0.5, 0.5)
}

func (f *frame) drawYLabel(s string) {
	cy := (f.y0 + f.y1) / 2
	f.dc.SetFontFace(f.faces.label)
	f.dc.SetColor(f.st.Palette.Text)
	f.dc.Push()
	f.dc.RotateAbout(gg.Radians(-90), 20, cy)
	f.dc.DrawStringAnchored(s, 20, cy, 0.5, 0.5)
	f.dc.Pop()
}

func (f *frame) drawBorder() {
	f.dc.SetColor(f.st.Palette.Axis)
	f.dc.SetLineWidth(1)
	f.dc.DrawRectangle(f.x0, f.y0, f.x1-f.x0, f.y1-f.y0)
	f.dc.Stroke()
}

// drawZeroLine marks y = 0 when it lies inside the y range.
func (f *frame) drawZeroLine(col color.Color) {
	if f.ymin >= 0 || f.ymax <= 0 {
		return
	}
	y := f.py(0)
	f.dc.SetColor(col)
	f.dc.SetLineWidth(1)
	f.dc.DrawLine(f.x0, y, f.x1, y)
	f.dc.Stroke()
}

// clipPlot restricts drawing to the plot rectangle until unclip.
func (f *frame) clipPlot() {
	f.dc.DrawRectangle(f.x0, f.y0, f.x1-f.x0, f.y1-f.y0)
	f.dc.Clip()
}

func (f *frame) unclip() {
	f.dc.ResetClip()
}

// strokeLine draws a polyline through the data points.
func (f *frame) strokeLine(xs, ys []float64, col color.Color, width float64) {
	if len(xs) == 0 {
		return
	}
	f.dc.SetColor(col)
	f.dc.SetLineWidth(width)
	f.dc.MoveTo(f.px(xs[0]), f.py(ys[0]))
	for i := 1; i < len(xs); i++ {
		f.dc.LineTo(f.px(xs[i]), f.py(ys[i]))
	}
	f.dc.Stroke()
}

// fillUnder fills the area between the data points and the bottom of
// the plot.
func (f *frame) fillUnder(xs, ys []float64, col color.Color) {
	if len(xs) == 0 {
		return
	}
	f.dc.SetColor(col)
	f.dc.MoveTo(f.px(xs[0]), f.y1)
	for i := range xs {
		f.dc.LineTo(f.px(xs[i]), f.py(ys[i]))
	}
	f.dc.LineTo(f.px(xs[len(xs)-1]), f.y1)
	f.dc.ClosePath()
	f.dc.Fill()
}

// withAlpha returns the color with its alpha replaced.
func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

// niceTicks returns round tick positions covering [lo, hi] and the step
// between them. Steps are 1, 2, or 5 times a power of ten.
func niceTicks(lo, hi float64, target int) ([]float64, float64) {
	if !(hi > lo) || target < 2 {
		return nil, 0
	}

	raw := (hi - lo) / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	switch norm := raw / mag; {
	case norm < 1.5:
		step = mag
	case norm < 3.5:
		step = 2 * mag
	case norm < 7.5:
		step = 5 * mag
	}

	first := math.Ceil(lo/step-1e-9) * step
	var ticks []float64
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks, step
}

// logTicks returns the 1-2-5 series within [lo, hi].
func logTicks(lo, hi float64) []float64 {
	if lo <= 0 || !(hi > lo) {
		return nil
	}

	var ticks []float64
	decade := math.Pow(10, math.Floor(math.Log10(lo)))
	for decade <= hi {
		for _, m := range []float64{1, 2, 5} {
			v := m * decade
			if v >= lo*(1-1e-9) && v <= hi*(1+1e-9) {
				ticks = append(ticks, v)
			}
		}
		decade *= 10
	}
	return ticks
}

// tickLabels formats ticks with just enough decimals for the step.
func tickLabels(ticks []float64, step float64) []string {
	dec := 0
	if step > 0 && step < 1 {
		dec = int(math.Ceil(-math.Log10(step) - 1e-9))
	}

	out := make([]string, len(ticks))
	for i, v := range ticks {
		// Accumulated rounding can leave a tiny residue where zero belongs.
		if math.Abs(v) < step*1e-6 {
			v = 0
		}
		out[i] = strconv.FormatFloat(v, 'f', dec, 64)
	}
	return out
}

// hzLabels shortens kilohertz ticks: 2000 reads "2k".
func hzLabels(ticks []float64) []string {
	out := make([]string, len(ticks))
	for i, v := range ticks {
		if v >= 1000 {
			out[i] = strconv.FormatFloat(v/1000, 'g', -1, 64) + "k"
		} else {
			out[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return out
}
