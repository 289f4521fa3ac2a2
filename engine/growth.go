package engine

// ============================================================================
// GROWTH BUILDER
// ============================================================================

// GrowthOf computes change between the first and last present values of a
// measure. The view must already be in chronological order; period labels
// come from the given dimension.
func GrowthOf(view RecordView, measure, periodDimension string) Growth {
	first, last := -1, -1
	for i := 0; i < view.Len(); i++ {
		if _, ok := view.Measure(i, measure); !ok {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}

	if first < 0 {
		return Growth{Direction: "insufficient data"}
	}

	earliest, _ := view.Measure(first, measure)
	latest, _ := view.Measure(last, measure)
	g := Growth{
		EarliestValue:  earliest,
		LatestValue:    latest,
		EarliestPeriod: view.Dimension(first, periodDimension),
		LatestPeriod:   view.Dimension(last, periodDimension),
		ChangeAmount:   latest - earliest,
	}

	if first == last {
		g.Direction = "insufficient data"
		return g
	}

	if earliest != 0 {
		g.ChangePercent = (g.ChangeAmount / earliest) * 100
	}

	switch {
	case g.ChangePercent > 0.5:
		g.Direction = "increased"
	case g.ChangePercent < -0.5:
		g.Direction = "decreased"
	default:
		g.Direction = "unchanged"
	}
	return g
}
