package stats

import (
	"fmt"
	"sort"

	"github.com/elliotchance/orderedmap/v2"
)

// TieBreak decides the order of keys with equal counts.
type TieBreak string

const (
	// TieBreakName orders equal counts by key ascending.
	TieBreakName TieBreak = "name"
	// TieBreakFirstSeen orders equal counts by first appearance.
	TieBreakFirstSeen TieBreak = "first_seen"
)

// ParseTieBreak converts a config value into a TieBreak.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case TieBreakName, "":
		return TieBreakName, nil
	case TieBreakFirstSeen:
		return TieBreakFirstSeen, nil
	default:
		return "", fmt.Errorf("unknown tie break %q (want %q or %q)", s, TieBreakName, TieBreakFirstSeen)
	}
}

// Count is the number of occurrences of a key.
type Count struct {
	Key string
	N   int
}

// CountOccurrences counts keys, remembering the order of first appearance.
func CountOccurrences(keys []string) *orderedmap.OrderedMap[string, int] {
	counts := orderedmap.NewOrderedMap[string, int]()
	for _, k := range keys {
		n, _ := counts.Get(k)
		counts.Set(k, n+1)
	}
	return counts
}

// Rank returns every distinct key ordered by descending count.
func Rank(keys []string, tb TieBreak) []Count {
	counts := CountOccurrences(keys)
	ranked := make([]Count, 0, counts.Len())
	for el := counts.Front(); el != nil; el = el.Next() {
		ranked = append(ranked, Count{Key: el.Key, N: el.Value})
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].N != ranked[j].N {
			return ranked[i].N > ranked[j].N
		}
		if tb == TieBreakName {
			return ranked[i].Key < ranked[j].Key
		}
		return false
	})
	return ranked
}

// Head returns the first n entries of ranked. n <= 0 keeps every entry.
func Head(ranked []Count, n int) []Count {
	if n > 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

// Keys extracts the keys of counts in order.
func Keys(counts []Count) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Key
	}
	return out
}

// TiedAtCutoff reports whether the n-th and (n+1)-th entries of ranked
// share a count, i.e. the tie-break policy decided membership in the top n.
func TiedAtCutoff(ranked []Count, n int) bool {
	if n <= 0 || len(ranked) <= n {
		return false
	}
	return ranked[n-1].N == ranked[n].N
}
