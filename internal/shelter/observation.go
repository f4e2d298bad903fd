// Package shelter defines the animal-shelter observation model shared by the
// dataset sources, the statistics and the reports.
package shelter

import (
	"fmt"
	"sort"
)

// Column names every dataset source must provide.
const (
	ColumnSpecies       = "species"
	ColumnBreed         = "breed"
	ColumnOutcomeType   = "outcome_type"
	ColumnYear          = "year"
	ColumnDaysInShelter = "days_in_shelter"
)

// RequiredColumns lists the columns in the order sources select them.
var RequiredColumns = []string{
	ColumnSpecies,
	ColumnBreed,
	ColumnOutcomeType,
	ColumnYear,
	ColumnDaysInShelter,
}

// Observation is one animal-shelter outcome event.
type Observation struct {
	Species       string
	Breed         string
	OutcomeType   string
	Year          int
	DaysInShelter float64
}

// Dataset is a read-only collection of observations.
type Dataset []Observation

// Slice selects observations by species, year and outcome.
type Slice struct {
	Species     string
	Year        int
	OutcomeType string
}

func (s Slice) String() string {
	return fmt.Sprintf("species=%s year=%d outcome_type=%s", s.Species, s.Year, s.OutcomeType)
}

// Matches reports whether o falls inside the slice.
func (s Slice) Matches(o Observation) bool {
	return o.Species == s.Species && o.Year == s.Year && o.OutcomeType == s.OutcomeType
}

// Filter returns the observations matching s, in input order.
// The receiver is never modified.
func (d Dataset) Filter(s Slice) Dataset {
	var out Dataset
	for _, o := range d {
		if s.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}

// FilterBreeds returns the observations whose breed is in keep.
func (d Dataset) FilterBreeds(keep []string) Dataset {
	set := make(map[string]struct{}, len(keep))
	for _, b := range keep {
		set[b] = struct{}{}
	}
	var out Dataset
	for _, o := range d {
		if _, ok := set[o.Breed]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Require returns d unchanged, or an EmptySliceError when d has no rows.
func (d Dataset) Require(s Slice) (Dataset, error) {
	if len(d) == 0 {
		return nil, &EmptySliceError{Slice: s}
	}
	return d, nil
}

// Durations returns the days-in-shelter values in input order.
func (d Dataset) Durations() []float64 {
	out := make([]float64, len(d))
	for i, o := range d {
		out[i] = o.DaysInShelter
	}
	return out
}

// Breeds returns the breed column in input order.
func (d Dataset) Breeds() []string {
	out := make([]string, len(d))
	for i, o := range d {
		out[i] = o.Breed
	}
	return out
}

// DurationsByBreed groups durations by breed. Value order within a breed
// follows input order.
func (d Dataset) DurationsByBreed() map[string][]float64 {
	out := make(map[string][]float64)
	for _, o := range d {
		out[o.Breed] = append(out[o.Breed], o.DaysInShelter)
	}
	return out
}

// MissingColumns returns the required columns absent from have, sorted.
func MissingColumns(have []string) []string {
	present := make(map[string]bool, len(have))
	for _, c := range have {
		present[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	sort.Strings(missing)
	return missing
}
