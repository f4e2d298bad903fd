package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dbsmedya/shelterstats/internal/stats"
)

// ErrNoCategories is returned when a box chart has nothing to draw.
var ErrNoCategories = errors.New("box chart has no categories")

// BoxChart is a categorical box-and-whisker chart whose categories carry a
// count label above their upper quantile.
type BoxChart struct {
	Title  string
	XLabel string
	YLabel string

	// Categories is the x-axis order. Each category is joined to its
	// summary in Groups by key.
	Categories []string
	Groups     []stats.GroupSummary

	// LabelOffset is added to a group's quantile to place its count label.
	LabelOffset float64
}

// Annotations returns the count label of every category, positioned at the
// category's x index and just above its quantile.
func (b BoxChart) Annotations() ([]Annotation, error) {
	if len(b.Categories) == 0 {
		return nil, ErrNoCategories
	}
	byKey := stats.IndexByKey(b.Groups)

	anns := make([]Annotation, 0, len(b.Categories))
	for i, key := range b.Categories {
		g, ok := byKey[key]
		if !ok {
			return nil, fmt.Errorf("category %q has no summary", key)
		}
		anns = append(anns, Annotation{
			Key:  key,
			X:    float64(i),
			Y:    g.Quantile + b.LabelOffset,
			Text: g.CountLabel(),
		})
	}
	return anns, nil
}

// Plot builds the chart. Outliers are neither drawn nor allowed to extend
// the y axis; they still contribute to the box statistics.
func (b BoxChart) Plot(s Style) (*plot.Plot, error) {
	anns, err := b.Annotations()
	if err != nil {
		return nil, err
	}
	byKey := stats.IndexByKey(b.Groups)

	p := plot.New()
	s.Apply(p)
	p.Title.Text = b.Title
	p.X.Label.Text = b.XLabel
	p.Y.Label.Text = b.YLabel

	for i, key := range b.Categories {
		box, err := plotter.NewBoxPlot(s.BoxWidth, float64(i), plotter.Values(byKey[key].Values))
		if err != nil {
			return nil, fmt.Errorf("box for %q: %w", key, err)
		}
		box.FillColor = color.White
		suppressOutliers(box)
		p.Add(box)
	}

	p.NominalX(b.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	labels, err := labelsFor(anns, func(ts *text.Style) {
		ts.XAlign = draw.XCenter
		ts.YAlign = draw.YBottom
		ts.Font.Size = s.AnnotationSize
		bold(ts)
	})
	if err != nil {
		return nil, fmt.Errorf("count labels: %w", err)
	}
	p.Add(labels)

	return p, nil
}

func suppressOutliers(box *plotter.BoxPlot) {
	box.Outside = nil
	box.Min = box.AdjLow
	box.Max = box.AdjHigh
}
