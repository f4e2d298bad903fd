package chart

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dbsmedya/shelterstats/internal/stats"
)

func testStyle() Style {
	s := DefaultStyle()
	// Small canvas keeps the tests fast.
	s.Width = 400
	s.Height = 300
	s.DPI = 72
	return s
}

func sampleBoxChart(t *testing.T) BoxChart {
	t.Helper()
	groups, err := stats.SummarizeGroups(map[string][]float64{
		"B": {10, 20, 30, 40},
		"A": {1, 2, 3, 4},
		"C": {5, 5, 6, 100},
	}, 0.75)
	require.NoError(t, err)
	return BoxChart{
		Title:       "Days",
		XLabel:      "Breed",
		YLabel:      "Days",
		Categories:  []string{"A", "B", "C"},
		Groups:      groups,
		LabelOffset: 0.03,
	}
}

func TestBoxChartAnnotations(t *testing.T) {
	anns, err := sampleBoxChart(t).Annotations()
	require.NoError(t, err)
	require.Len(t, anns, 3)

	assert.Equal(t, "A", anns[0].Key)
	assert.Equal(t, 0.0, anns[0].X)
	assert.InDelta(t, 3.28, anns[0].Y, 1e-9)
	assert.Equal(t, "n: 4", anns[0].Text)

	assert.Equal(t, "B", anns[1].Key)
	assert.Equal(t, 1.0, anns[1].X)
	assert.InDelta(t, 32.53, anns[1].Y, 1e-9)
}

func TestBoxChartAnnotations_JoinByKey(t *testing.T) {
	b := sampleBoxChart(t)
	// Reversed category order moves the labels with their categories.
	b.Categories = []string{"C", "B", "A"}

	anns, err := b.Annotations()
	require.NoError(t, err)
	assert.Equal(t, "A", anns[2].Key)
	assert.Equal(t, 2.0, anns[2].X)
	assert.InDelta(t, 3.28, anns[2].Y, 1e-9)
}

func TestBoxChartAnnotations_Errors(t *testing.T) {
	b := sampleBoxChart(t)
	b.Categories = []string{"A", "Z"}
	_, err := b.Annotations()
	assert.ErrorContains(t, err, `"Z"`)

	b.Categories = nil
	_, err = b.Annotations()
	assert.True(t, errors.Is(err, ErrNoCategories))
}

func TestBoxChartPlot(t *testing.T) {
	p, err := sampleBoxChart(t).Plot(testStyle())
	require.NoError(t, err)

	// The outlier at 100 does not stretch the axis.
	assert.Less(t, p.Y.Max, 100.0)
	assert.Equal(t, "Days", p.Title.Text)
}

func sampleDensityChart(t *testing.T) DensityChart {
	t.Helper()
	cats, err := stats.EstimateDensity([]float64{2, 4, 6}, 50)
	require.NoError(t, err)
	dogs, err := stats.EstimateDensity([]float64{10, 20}, 50)
	require.NoError(t, err)

	return DensityChart{
		Title:  "Days in shelter",
		XLabel: "Days",
		Cohorts: []Cohort{
			{Label: "Cats", Color: color.NRGBA{B: 0xff, A: 0xff}, Density: cats, Annotation: "cats: 4.00"},
			{Label: "Dogs", Color: color.NRGBA{R: 0xff, G: 0x7f, A: 0xff}, Density: dogs, Annotation: "dogs: 15.00"},
		},
		LineWidth: 3,
		FillAlpha: 0.3,
	}
}

func TestDensityChartPlot(t *testing.T) {
	d := sampleDensityChart(t)
	p, anns, err := d.Plot(testStyle())
	require.NoError(t, err)
	require.Len(t, anns, 2)

	yMax := p.Y.Max
	assert.Greater(t, yMax, 0.0)

	assert.Equal(t, "Cats", anns[0].Key)
	assert.InDelta(t, 4.0*1.1, anns[0].X, 1e-9)
	assert.Equal(t, "cats: 4.00", anns[0].Text)

	assert.Equal(t, "Dogs", anns[1].Key)
	assert.InDelta(t, 15.0*0.4, anns[1].X, 1e-9)
}

func TestDensityChartPlot_CustomPlacer(t *testing.T) {
	d := sampleDensityChart(t)
	d.Placer = func(idx int, mean, yMax float64) (float64, float64) {
		return mean, float64(idx)
	}

	_, anns, err := d.Plot(testStyle())
	require.NoError(t, err)
	assert.InDelta(t, 4.0, anns[0].X, 1e-9)
	assert.Equal(t, 1.0, anns[1].Y)
}

func TestDensityChartPlot_LabelHeightFollowsCurvesSoFar(t *testing.T) {
	d := sampleDensityChart(t)
	// Flat dog curve first, peaked cat curve second.
	d.Cohorts[0], d.Cohorts[1] = d.Cohorts[1], d.Cohorts[0]
	dogs, cats := d.Cohorts[0].Density, d.Cohorts[1].Density
	require.Less(t, dogs.MaxY(), cats.MaxY())

	d.Placer = func(_ int, mean, yMax float64) (float64, float64) {
		return mean, yMax
	}

	p, anns, err := d.Plot(testStyle())
	require.NoError(t, err)
	require.Len(t, anns, 2)

	assert.Equal(t, "Dogs", anns[0].Key)
	assert.InDelta(t, dogs.MaxY(), anns[0].Y, 1e-12)
	assert.Equal(t, "Cats", anns[1].Key)
	assert.InDelta(t, cats.MaxY(), anns[1].Y, 1e-12)
	assert.Less(t, anns[0].Y, anns[1].Y)
	assert.GreaterOrEqual(t, p.Y.Max, cats.MaxY())
}

func TestDensityChartPlot_NoCohorts(t *testing.T) {
	_, _, err := DensityChart{}.Plot(testStyle())
	assert.True(t, errors.Is(err, ErrNoCohorts))

	_, _, err = DensityChart{Cohorts: []Cohort{{Label: "Cats"}}}.Plot(testStyle())
	assert.ErrorContains(t, err, "Cats")
}

func TestFractionalPlacer(t *testing.T) {
	place := FractionalPlacer([]Offset{{XFactor: 2, YFactor: 0.5}}, Offset{XFactor: 1, YFactor: 1})

	x, y := place(0, 10, 4)
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 2.0, y)

	x, y = place(3, 10, 4)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 4.0, y)
}

func TestSavePNG(t *testing.T) {
	p, err := sampleBoxChart(t).Plot(testStyle())
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "box.png")
	require.NoError(t, SavePNG(p, testStyle(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())

	// Only the final image is left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// panicPlotter fails while drawing, the way gonum plotters do on bad data.
type panicPlotter struct{}

func (panicPlotter) Plot(draw.Canvas, *plot.Plot) {
	panic("bad data point")
}

func TestSavePNG_FailedRenderLeavesNoFile(t *testing.T) {
	p := plot.New()
	p.Add(panicPlotter{})

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	err := SavePNG(p, testStyle(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad data point")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "neither the image nor its temp file may remain")
}

func TestSavePNG_FailedRenderKeepsPreviousImage(t *testing.T) {
	ok, err := sampleBoxChart(t).Plot(testStyle())
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "box.png")
	require.NoError(t, SavePNG(ok, testStyle(), path))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	broken := plot.New()
	broken.Add(panicPlotter{})
	require.Error(t, SavePNG(broken, testStyle(), path))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSavePNG_MissingDirectory(t *testing.T) {
	p, err := sampleBoxChart(t).Plot(testStyle())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "images", "box.png")
	err = SavePNG(p, testStyle(), path)
	require.Error(t, err)
	assert.True(t, IsMissingDir(err))
	assert.NoFileExists(t, path)
}

func TestSavePNG_NotDirectory(t *testing.T) {
	p, err := sampleBoxChart(t).Plot(testStyle())
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err = SavePNG(p, testStyle(), filepath.Join(file, "box.png"))
	assert.True(t, errors.Is(err, ErrNotDirectory))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1f77b4")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, c)

	_, err = ParseHexColor("not-a-color")
	assert.Error(t, err)
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, 0.3)
	assert.Equal(t, uint8(77), c.A)
	assert.Equal(t, uint8(10), c.R)

	assert.Equal(t, uint8(0xff), WithAlpha(color.Black, 2).A)
}
