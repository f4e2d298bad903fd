package chart

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dbsmedya/shelterstats/internal/stats"
)

// ErrNoCohorts is returned when a density chart has nothing to draw.
var ErrNoCohorts = errors.New("density chart has no cohorts")

// Cohort is one density curve with its mean marker.
type Cohort struct {
	Label      string
	Color      color.Color
	Density    *stats.Density
	Annotation string
}

// DensityChart overlays the density curves of several cohorts and marks
// each cohort's mean with a dashed vertical line and a text annotation.
type DensityChart struct {
	Title   string
	XLabel  string
	Cohorts []Cohort

	LineWidth vg.Length
	FillAlpha float64

	// Placer positions the mean annotations. Nil uses DefaultPlacer.
	Placer LabelPlacer
}

// DefaultPlacer places the first cohort's label right of its mean and the
// second one left of its mean at the top of the axis.
var DefaultPlacer = FractionalPlacer(
	[]Offset{{XFactor: 1.1, YFactor: 0.9}, {XFactor: 0.4, YFactor: 1.0}},
	Offset{XFactor: 1.1, YFactor: 0.8},
)

// Plot builds the chart and returns the placed mean annotations.
func (d DensityChart) Plot(s Style) (*plot.Plot, []Annotation, error) {
	if len(d.Cohorts) == 0 {
		return nil, nil, ErrNoCohorts
	}
	placer := d.Placer
	if placer == nil {
		placer = DefaultPlacer
	}

	p := plot.New()
	s.Apply(p)
	p.Title.Text = d.Title
	p.X.Label.Text = d.XLabel
	p.Legend.Top = true

	// axisMax[i] is the y-axis maximum once curves 0..i are in.
	axisMax := make([]float64, len(d.Cohorts))
	for i, c := range d.Cohorts {
		if c.Density == nil || len(c.Density.Points) == 0 {
			return nil, nil, fmt.Errorf("cohort %q has no density", c.Label)
		}
		xys := make(plotter.XYs, len(c.Density.Points))
		for i, pt := range c.Density.Points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, nil, fmt.Errorf("density for %q: %w", c.Label, err)
		}
		line.LineStyle.Width = d.LineWidth
		line.LineStyle.Color = c.Color
		line.FillColor = WithAlpha(c.Color, d.FillAlpha)
		p.Add(line)
		p.Legend.Add(c.Label, line)
		axisMax[i] = p.Y.Max
	}

	// Markers span the axis of the finished chart.
	yMax := p.Y.Max

	anns := make([]Annotation, 0, len(d.Cohorts))
	for i, c := range d.Cohorts {
		mean := c.Density.Mean
		marker, err := plotter.NewLine(plotter.XYs{{X: mean, Y: 0}, {X: mean, Y: yMax}})
		if err != nil {
			return nil, nil, fmt.Errorf("mean marker for %q: %w", c.Label, err)
		}
		marker.LineStyle.Width = vg.Points(2)
		marker.LineStyle.Color = c.Color
		marker.LineStyle.Dashes = []vg.Length{vg.Points(8), vg.Points(5)}
		p.Add(marker)

		x, y := placer(i, mean, axisMax[i])
		anns = append(anns, Annotation{Key: c.Label, X: x, Y: y, Text: c.Annotation})
	}

	labels, err := labelsFor(anns, func(ts *text.Style) {
		ts.XAlign = draw.XLeft
		ts.YAlign = draw.YBottom
		ts.Font.Size = s.AnnotationSize
	})
	if err != nil {
		return nil, nil, fmt.Errorf("mean labels: %w", err)
	}
	p.Add(labels)

	return p, anns, nil
}
