package report

import (
	"github.com/dbsmedya/shelterstats/internal/shelter"
	"github.com/dbsmedya/shelterstats/internal/stats"
)

// Summary holds the numbers behind both charts without rendering them.
type Summary struct {
	BreedSlice shelter.Slice
	Breeds     []stats.GroupSummary
	Cohorts    []CohortResult
}

// Summarize computes the breed summaries and the cohort means of ds.
func (r *Reporter) Summarize(ds shelter.Dataset) (*Summary, error) {
	breeds, err := r.BreedSummaries(ds)
	if err != nil {
		return nil, err
	}
	cohorts, err := r.CohortDensities(ds)
	if err != nil {
		return nil, err
	}
	r.logger.Debugw("Summarized dataset", "rows", len(ds), "breeds", len(breeds), "cohorts", len(cohorts))
	return &Summary{
		BreedSlice: r.BreedSlice(),
		Breeds:     breeds,
		Cohorts:    cohorts,
	}, nil
}
