package engine

import (
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS · Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// Records whose measure is absent are skipped per aggregate, never zeroed.
// ============================================================================

// GroupBy groups a view by a dimension in first-appearance order.
// Records with an empty dimension value are left out of every group.
func GroupBy(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if key == "" {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// Sum adds the present values of a measure and reports how many were present.
func Sum(view RecordView, measure string) (float64, int) {
	var total float64
	n := 0
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			total += v
			n++
		}
	}
	return total, n
}

// Avg averages the present values of a measure. ok is false when none are present.
func Avg(view RecordView, measure string) (float64, bool) {
	total, n := Sum(view, measure)
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// Values collects the present values of a measure in view order.
func Values(view RecordView, measure string) []float64 {
	out := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if v, ok := view.Measure(i, measure); ok {
			out = append(out, v)
		}
	}
	return out
}

// Mean is the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// StdDev is the population standard deviation of values.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts groups in place.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case "label_asc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Label) < strings.ToLower(groups[j].Label) })
	default:
		// preserve grouping order
	}
}
