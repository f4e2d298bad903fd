package chart

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
)

// Annotation is a text label drawn at a data coordinate.
type Annotation struct {
	Key  string
	X, Y float64
	Text string
}

// labelsFor converts annotations into a gonum labels plotter whose text
// styles are built by style.
func labelsFor(anns []Annotation, style func(*text.Style)) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(anns))
	texts := make([]string, len(anns))
	for i, a := range anns {
		xys[i] = plotter.XY{X: a.X, Y: a.Y}
		texts[i] = a.Text
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = color.Black
		style(&labels.TextStyle[i])
	}
	return labels, nil
}

func bold(ts *text.Style) {
	ts.Font.Weight = xfont.WeightBold
}
