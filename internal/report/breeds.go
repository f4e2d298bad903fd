package report

import (
	"fmt"

	"github.com/dbsmedya/shelterstats/internal/chart"
	"github.com/dbsmedya/shelterstats/internal/shelter"
	"github.com/dbsmedya/shelterstats/internal/stats"
)

// BreedResult describes a written breed report.
type BreedResult struct {
	Path  string
	Slice shelter.Slice
	// Breeds is ordered by breed name, the x-axis order of the chart.
	Breeds      []stats.GroupSummary
	Annotations []chart.Annotation
}

// Categories returns the breed names in x-axis order.
func (r *BreedResult) Categories() []string {
	out := make([]string, len(r.Breeds))
	for i, b := range r.Breeds {
		out[i] = b.Key
	}
	return out
}

// BreedSlice is the slice the breed report filters on.
func (r *Reporter) BreedSlice() shelter.Slice {
	return shelter.Slice{
		Species:     r.cfg.Breeds.Species,
		Year:        r.cfg.Slice.Year,
		OutcomeType: r.cfg.Slice.OutcomeType,
	}
}

// BreedSummaries filters ds to the breed slice, keeps the top-N breeds and
// returns their quantile and count summaries ordered by breed name.
func (r *Reporter) BreedSummaries(ds shelter.Dataset) ([]stats.GroupSummary, error) {
	bc := r.cfg.Breeds
	slice := r.BreedSlice()

	rows, err := ds.Filter(slice).Require(slice)
	if err != nil {
		return nil, err
	}

	tb, err := stats.ParseTieBreak(bc.TieBreak)
	if err != nil {
		return nil, err
	}
	ranked := stats.Rank(rows.Breeds(), tb)
	if stats.TiedAtCutoff(ranked, bc.TopN) {
		r.logger.Debugw("Breeds tied at top-N cutoff", "top_n", bc.TopN, "tie_break", string(tb))
	}
	universe := stats.Keys(stats.Head(ranked, bc.TopN))

	summaries, err := stats.SummarizeGroups(rows.FilterBreeds(universe).DurationsByBreed(), bc.Quantile)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize breeds: %w", err)
	}
	return summaries, nil
}

// BreedDaysInShelter writes a box plot of days in shelter for the most
// frequent breeds of the configured slice, each box labelled with its
// observation count.
func (r *Reporter) BreedDaysInShelter(ds shelter.Dataset, fileName string) (*BreedResult, error) {
	log := r.runLogger("breed_days_in_shelter")

	path, err := r.OutputPath(fileName)
	if err != nil {
		return nil, err
	}

	summaries, err := r.BreedSummaries(ds)
	if err != nil {
		return nil, err
	}
	log.Debugw("Summarized breeds", "slice", r.BreedSlice().String(), "breeds", len(summaries))

	categories := make([]string, len(summaries))
	for i, s := range summaries {
		categories[i] = s.Key
	}

	bc := r.cfg.Breeds
	box := chart.BoxChart{
		Title:       bc.Title,
		XLabel:      bc.XLabel,
		YLabel:      bc.YLabel,
		Categories:  categories,
		Groups:      summaries,
		LabelOffset: bc.LabelOffset,
	}
	anns, err := box.Annotations()
	if err != nil {
		return nil, err
	}
	p, err := box.Plot(r.style)
	if err != nil {
		return nil, fmt.Errorf("failed to build breed chart: %w", err)
	}
	if err := chart.SavePNG(p, r.style, path); err != nil {
		return nil, fmt.Errorf("failed to write breed chart: %w", err)
	}

	log.Infow("Wrote chart", "path", path, "breeds", len(summaries))
	return &BreedResult{
		Path:        path,
		Slice:       r.BreedSlice(),
		Breeds:      summaries,
		Annotations: anns,
	}, nil
}
