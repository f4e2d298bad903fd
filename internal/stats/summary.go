package stats

import (
	"fmt"
	"sort"
)

// GroupSummary describes the values of one group, identified by Key.
type GroupSummary struct {
	Key      string
	Count    int
	Quantile float64
	Values   []float64
}

// CountLabel is the annotation text drawn above the group.
func (g GroupSummary) CountLabel() string {
	return fmt.Sprintf("n: %d", g.Count)
}

// SummarizeGroups computes the q-th quantile and count of every group and
// returns the summaries ordered by key ascending.
func SummarizeGroups(groups map[string][]float64, q float64) ([]GroupSummary, error) {
	out := make([]GroupSummary, 0, len(groups))
	for key, values := range groups {
		v, err := Quantile(values, q)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", key, err)
		}
		out = append(out, GroupSummary{
			Key:      key,
			Count:    len(values),
			Quantile: v,
			Values:   values,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// IndexByKey maps each summary's key to the summary.
func IndexByKey(summaries []GroupSummary) map[string]GroupSummary {
	out := make(map[string]GroupSummary, len(summaries))
	for _, s := range summaries {
		out[s.Key] = s
	}
	return out
}
