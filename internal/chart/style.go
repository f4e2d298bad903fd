// Package chart renders the shelter report charts to PNG with gonum/plot.
//
// Every render call takes an explicit Style; nothing in this package
// mutates process-wide plotting defaults.
package chart

import (
	"fmt"
	"image/color"
	"strings"

	gcolor "github.com/gookit/color"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Style is the visual theme applied to a single chart.
type Style struct {
	TitleSize      vg.Length
	LabelSize      vg.Length
	TickLabelSize  vg.Length
	LegendSize     vg.Length
	AnnotationSize vg.Length
	Width          vg.Length
	Height         vg.Length
	DPI            int
	TickLength     vg.Length
	BoxWidth       vg.Length
	Background     color.Color
}

// DefaultStyle returns the 16x10 inch, 80 DPI theme used by both reports.
func DefaultStyle() Style {
	const large, med, small = 22, 16, 12
	return Style{
		TitleSize:      vg.Points(large),
		LabelSize:      vg.Points(med),
		TickLabelSize:  vg.Points(med),
		LegendSize:     vg.Points(med),
		AnnotationSize: vg.Points(small),
		Width:          16 * vg.Inch,
		Height:         10 * vg.Inch,
		DPI:            80,
		TickLength:     vg.Points(med),
		BoxWidth:       vg.Points(40),
		Background:     color.White,
	}
}

// Apply sets the fonts and tick sizes of p from s. Minor ticks are drawn
// at half the major length by gonum/plot.
func (s Style) Apply(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = s.TitleSize
	p.X.Label.TextStyle.Font.Size = s.LabelSize
	p.Y.Label.TextStyle.Font.Size = s.LabelSize
	p.X.Tick.Label.Font.Size = s.TickLabelSize
	p.Y.Tick.Label.Font.Size = s.TickLabelSize
	p.X.Tick.Length = s.TickLength
	p.Y.Tick.Length = s.TickLength
	p.Legend.TextStyle.Font.Size = s.LegendSize
	p.BackgroundColor = s.Background
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque colour.
func ParseHexColor(hex string) (color.NRGBA, error) {
	rgb := gcolor.HexToRgb(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(rgb) != 3 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	return color.NRGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 0xff}, nil
}

// WithAlpha returns c with its alpha channel set to alpha in [0, 1].
func WithAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	n.A = uint8(alpha*255 + 0.5)
	return n
}
