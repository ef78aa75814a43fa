package render

import (
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Default chart dimensions in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

// Charts below these dimensions have no usable plot area left once the
// margins are taken out.
const (
	minWidth  = 320
	minHeight = 200
)

// Palette holds the chart colors. Nil entries fall back to the default
// dark scheme.
type Palette struct {
	Background color.Color
	Grid       color.Color
	Axis       color.Color
	Text       color.Color

	// Trace colors, one per chart family: Primary draws the waveform,
	// Secondary the phase markers, Accent the PSD curve and zero lines,
	// Success the histogram bars.
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
}

func defaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 30, G: 30, B: 46, A: 255},
		Grid:       color.RGBA{R: 255, G: 255, B: 255, A: 28},
		Axis:       color.RGBA{R: 255, G: 255, B: 255, A: 96},
		Text:       color.RGBA{R: 250, G: 250, B: 250, A: 255},
		Primary:    color.RGBA{R: 99, G: 102, B: 241, A: 255},
		Secondary:  color.RGBA{R: 139, G: 92, B: 246, A: 255},
		Accent:     color.RGBA{R: 6, G: 182, B: 212, A: 255},
		Success:    color.RGBA{R: 16, G: 185, B: 129, A: 255},
	}
}

// Style controls chart dimensions, title, palette, and font sizes.
// Zero values are normalized: 1000x600 pixels, the default dark
// palette, and 16/13/11 point title/label/tick text.
type Style struct {
	Width  int
	Height int
	Title  string

	Palette Palette

	TitleSize float64
	LabelSize float64
	TickSize  float64
}

// DefaultStyle returns a fully populated default Style.
func DefaultStyle() Style {
	return Style{}.normalize()
}

func (s Style) normalize() Style {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	if s.Width < minWidth {
		s.Width = minWidth
	}
	if s.Height < minHeight {
		s.Height = minHeight
	}
	if s.TitleSize <= 0 {
		s.TitleSize = 16
	}
	if s.LabelSize <= 0 {
		s.LabelSize = 13
	}
	if s.TickSize <= 0 {
		s.TickSize = 11
	}

	d := defaultPalette()
	if s.Palette.Background == nil {
		s.Palette.Background = d.Background
	}
	if s.Palette.Grid == nil {
		s.Palette.Grid = d.Grid
	}
	if s.Palette.Axis == nil {
		s.Palette.Axis = d.Axis
	}
	if s.Palette.Text == nil {
		s.Palette.Text = d.Text
	}
	if s.Palette.Primary == nil {
		s.Palette.Primary = d.Primary
	}
	if s.Palette.Secondary == nil {
		s.Palette.Secondary = d.Secondary
	}
	if s.Palette.Accent == nil {
		s.Palette.Accent = d.Accent
	}
	if s.Palette.Success == nil {
		s.Palette.Success = d.Success
	}
	return s
}

var (
	fontOnce    sync.Once
	fontRegular *truetype.Font
	fontBold    *truetype.Font
	fontErr     error
)

// chartFonts parses the embedded Go fonts once. Faces are built per
// render because truetype faces are not safe for concurrent use.
func chartFonts() (regular, bold *truetype.Font, err error) {
	fontOnce.Do(func() {
		fontRegular, fontErr = truetype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		fontBold, fontErr = truetype.Parse(gobold.TTF)
	})
	return fontRegular, fontBold, fontErr
}

type faceSet struct {
	title font.Face
	label font.Face
	tick  font.Face
}

func newFaces(st Style) (faceSet, error) {
	regular, bold, err := chartFonts()
	if err != nil {
		return faceSet{}, err
	}
	return faceSet{
		title: truetype.NewFace(bold, &truetype.Options{Size: st.TitleSize}),
		label: truetype.NewFace(regular, &truetype.Options{Size: st.LabelSize}),
		tick:  truetype.NewFace(regular, &truetype.Options{Size: st.TickSize}),
	}, nil
}
