package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		q        float64
		expected float64
	}{
		{"upper quartile small", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"upper quartile large", []float64{10, 20, 30, 40}, 0.75, 32.5},
		{"unsorted input", []float64{40, 10, 30, 20}, 0.75, 32.5},
		{"median odd", []float64{5, 1, 3}, 0.5, 3},
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"min", []float64{7, 3, 9}, 0, 3},
		{"max", []float64{7, 3, 9}, 1, 9},
		{"single value", []float64{42}, 0.75, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quantile(tt.xs, tt.q)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestQuantile_DoesNotModifyInput(t *testing.T) {
	xs := []float64{4, 1, 3, 2}
	_, err := Quantile(xs, 0.75)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 1, 3, 2}, xs)
}

func TestQuantile_Errors(t *testing.T) {
	_, err := Quantile(nil, 0.5)
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = Quantile([]float64{1}, 1.5)
	assert.Error(t, err)

	_, err = Quantile([]float64{1}, -0.1)
	assert.Error(t, err)
}

func TestSummarizeGroups(t *testing.T) {
	summaries, err := SummarizeGroups(map[string][]float64{
		"B": {10, 20, 30, 40},
		"A": {1, 2, 3, 4},
	}, 0.75)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "A", summaries[0].Key)
	assert.InDelta(t, 3.25, summaries[0].Quantile, 1e-9)
	assert.Equal(t, 4, summaries[0].Count)
	assert.Equal(t, "n: 4", summaries[0].CountLabel())

	assert.Equal(t, "B", summaries[1].Key)
	assert.InDelta(t, 32.5, summaries[1].Quantile, 1e-9)

	byKey := IndexByKey(summaries)
	assert.Equal(t, 4, byKey["B"].Count)
}

func TestSummarizeGroups_EmptyGroup(t *testing.T) {
	_, err := SummarizeGroups(map[string][]float64{"A": nil}, 0.75)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Contains(t, err.Error(), `"A"`)
}
