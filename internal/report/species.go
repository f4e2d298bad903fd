package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/dbsmedya/shelterstats/internal/chart"
	"github.com/dbsmedya/shelterstats/internal/config"
	"github.com/dbsmedya/shelterstats/internal/shelter"
	"github.com/dbsmedya/shelterstats/internal/stats"
)

// CohortResult describes one curve of a written species report.
type CohortResult struct {
	Label      string
	Species    string
	Mean       float64
	Count      int
	Annotation string
	Density    *stats.Density
}

// SpeciesResult describes a written species report.
type SpeciesResult struct {
	Path    string
	Cohorts []CohortResult
}

// CohortSlice is the slice a configured cohort filters on.
func (r *Reporter) CohortSlice(c config.CohortConfig) shelter.Slice {
	return shelter.Slice{
		Species:     c.Species,
		Year:        r.cfg.Slice.Year,
		OutcomeType: r.cfg.Slice.OutcomeType,
	}
}

// MeanAnnotation is the text drawn next to a cohort's mean marker.
func MeanAnnotation(label string, mean float64) string {
	return fmt.Sprintf("Mean days in shelter for %s: %.2f", strings.ToLower(label), mean)
}

// CohortDensities filters ds once per configured cohort and estimates each
// cohort's density and mean. Any empty cohort is an error.
func (r *Reporter) CohortDensities(ds shelter.Dataset) ([]CohortResult, error) {
	sc := r.cfg.Species
	out := make([]CohortResult, 0, len(sc.Cohorts))
	for _, c := range sc.Cohorts {
		slice := r.CohortSlice(c)
		rows, err := ds.Filter(slice).Require(slice)
		if err != nil {
			return nil, err
		}
		density, err := stats.EstimateDensity(rows.Durations(), sc.GridPoints)
		if err != nil {
			return nil, fmt.Errorf("cohort %q: %w", c.Label, err)
		}
		out = append(out, CohortResult{
			Label:      c.Label,
			Species:    c.Species,
			Mean:       density.Mean,
			Count:      density.N,
			Annotation: MeanAnnotation(c.Label, density.Mean),
			Density:    density,
		})
	}
	return out, nil
}

// SpeciesDistribution writes the overlaid density plot of days in shelter
// for the configured cohorts, with a dashed marker and a text label at each
// cohort's mean.
func (r *Reporter) SpeciesDistribution(ds shelter.Dataset, fileName string) (*SpeciesResult, error) {
	log := r.runLogger("species_distribution")

	path, err := r.OutputPath(fileName)
	if err != nil {
		return nil, err
	}

	cohorts, err := r.CohortDensities(ds)
	if err != nil {
		return nil, err
	}

	sc := r.cfg.Species
	chartCohorts := make([]chart.Cohort, len(cohorts))
	offsets := make([]chart.Offset, len(cohorts))
	for i, c := range cohorts {
		cc := sc.Cohorts[i]
		col, err := chart.ParseHexColor(cc.Color)
		if err != nil {
			return nil, fmt.Errorf("cohort %q color: %w", cc.Label, err)
		}
		chartCohorts[i] = chart.Cohort{
			Label:      c.Label,
			Color:      col,
			Density:    c.Density,
			Annotation: c.Annotation,
		}
		offsets[i] = chart.Offset{XFactor: cc.LabelXFactor, YFactor: cc.LabelYFactor}
		log.Debugw("Estimated density", "cohort", c.Label, "n", c.Count,
			"mean", c.Mean, "bandwidth", c.Density.Bandwidth)
	}

	dc := chart.DensityChart{
		Title:     sc.Title,
		XLabel:    sc.XLabel,
		Cohorts:   chartCohorts,
		LineWidth: vg.Points(sc.LineWidth),
		FillAlpha: sc.FillAlpha,
		Placer:    chart.FractionalPlacer(offsets, chart.Offset{XFactor: 1.1, YFactor: 0.8}),
	}
	p, _, err := dc.Plot(r.style)
	if err != nil {
		return nil, fmt.Errorf("failed to build species chart: %w", err)
	}
	if err := chart.SavePNG(p, r.style, path); err != nil {
		return nil, fmt.Errorf("failed to write species chart: %w", err)
	}

	log.Infow("Wrote chart", "path", path, "cohorts", len(cohorts))
	return &SpeciesResult{Path: path, Cohorts: cohorts}, nil
}
