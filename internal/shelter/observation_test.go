package shelter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		{Species: "Dog", Breed: "Beagle", OutcomeType: "Adoption", Year: 2019, DaysInShelter: 4},
		{Species: "Dog", Breed: "Boxer", OutcomeType: "Adoption", Year: 2019, DaysInShelter: 10},
		{Species: "Dog", Breed: "Beagle", OutcomeType: "Transfer", Year: 2019, DaysInShelter: 7},
		{Species: "Dog", Breed: "Beagle", OutcomeType: "Adoption", Year: 2018, DaysInShelter: 2},
		{Species: "Cat", Breed: "", OutcomeType: "Adoption", Year: 2019, DaysInShelter: 3},
		{Species: "Dog", Breed: "Pug", OutcomeType: "Adoption", Year: 2019, DaysInShelter: 1},
	}
}

func TestDatasetFilter(t *testing.T) {
	ds := sampleDataset()
	dogs := ds.Filter(Slice{Species: "Dog", Year: 2019, OutcomeType: "Adoption"})

	require.Len(t, dogs, 3)
	assert.Equal(t, []string{"Beagle", "Boxer", "Pug"}, dogs.Breeds())
	assert.Equal(t, []float64{4, 10, 1}, dogs.Durations())

	// The source dataset is left untouched.
	assert.Len(t, ds, 6)
}

func TestDatasetFilter_NoMatch(t *testing.T) {
	out := sampleDataset().Filter(Slice{Species: "Rabbit", Year: 2019, OutcomeType: "Adoption"})
	assert.Empty(t, out)
}

func TestDatasetFilterBreeds(t *testing.T) {
	out := sampleDataset().FilterBreeds([]string{"Beagle", "Pug"})
	assert.Equal(t, []string{"Beagle", "Beagle", "Beagle", "Pug"}, out.Breeds())
}

func TestDatasetRequire(t *testing.T) {
	s := Slice{Species: "Dog", Year: 2020, OutcomeType: "Adoption"}

	_, err := sampleDataset().Filter(s).Require(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySlice))

	var sliceErr *EmptySliceError
	require.True(t, errors.As(err, &sliceErr))
	assert.Equal(t, s, sliceErr.Slice)
	assert.Contains(t, err.Error(), "year=2020")

	ds, err := sampleDataset().Require(s)
	require.NoError(t, err)
	assert.Len(t, ds, 6)
}

func TestDurationsByBreed(t *testing.T) {
	ds := sampleDataset().Filter(Slice{Species: "Dog", Year: 2019, OutcomeType: "Adoption"})
	groups := ds.DurationsByBreed()

	assert.Equal(t, map[string][]float64{
		"Beagle": {4},
		"Boxer":  {10},
		"Pug":    {1},
	}, groups)
}

func TestMissingColumns(t *testing.T) {
	assert.Empty(t, MissingColumns(RequiredColumns))
	assert.Equal(t, []string{"breed", "year"},
		MissingColumns([]string{"year_x", "species", "outcome_type", "days_in_shelter"}))
}

func TestMissingColumnError(t *testing.T) {
	err := &MissingColumnError{Source: "animals.csv", Columns: []string{"breed", "year"}}
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Equal(t, "missing required column: breed, year in animals.csv", err.Error())
}
