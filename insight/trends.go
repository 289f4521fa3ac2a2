package insight

import (
	"fmt"
	"sort"

	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/engine"
)

// ============================================================================
// QUARTERLY TRENDS
// ============================================================================

const (
	// Q4-over-Q1 growth below this is a decline
	declineThreshold = -5.0
	// quarter-over-quarter swings above this get their own insight
	swingThreshold = 25.0
	// swings above this carry a seasonality note
	seasonalSwing = 40.0
)

// Seasonality strengths.
const (
	SeasonalityStrong   = "strong"
	SeasonalityModerate = "moderate"
	SeasonalityNone     = "none"
)

type quarterTotals struct {
	sum     [4]float64
	present [4]bool
}

func (q quarterTotals) growth(from, to int) (float64, bool) {
	if !q.present[from] || !q.present[to] || q.sum[from] == 0 {
		return 0, false
	}
	return (q.sum[to] - q.sum[from]) / q.sum[from] * 100, true
}

// quarterly sums measure per calendar quarter.
func quarterly(records []dataset.SalesRecord, measure string) quarterTotals {
	view := SalesView(records)
	var q quarterTotals
	for i := 0; i < view.Len(); i++ {
		idx, ok := dataset.MonthIndex(view.Dimension(i, "month"))
		if !ok {
			continue
		}
		v, ok := view.Measure(i, measure)
		if !ok {
			continue
		}
		q.sum[idx/3] += v
		q.present[idx/3] = true
	}
	return q
}

func directionOf(pct, growthThreshold float64) Direction {
	switch {
	case pct > growthThreshold:
		return Increasing
	case pct < declineThreshold:
		return Decreasing
	default:
		return Steady
	}
}

func signDirection(pct float64) Direction {
	switch r := engine.RoundTo2(pct); {
	case r > 0:
		return Increasing
	case r < 0:
		return Decreasing
	default:
		return Steady
	}
}

func forecastFor(d Direction) string {
	switch d {
	case Increasing:
		return "Continued growth expected next quarter if current momentum holds"
	case Decreasing:
		return "Further decline likely next quarter without corrective action"
	default:
		return "Similar levels expected next quarter"
	}
}

// Trends compares Q4 with Q1 for sales, profit and customers, then adds a
// sales insight for every quarter-over-quarter swing above 25%. Sales and
// profit count as increasing above 15% growth, customers above 10%; below
// −5% is a decline.
func Trends(records []dataset.SalesRecord) []TrendInsight {
	var out []TrendInsight
	metrics := []struct {
		name, measure string
		threshold     float64
	}{
		{"Sales", MeasureSales, 15},
		{"Profit", MeasureProfit, 15},
		{"Customers", MeasureCustomers, 10},
	}
	for _, m := range metrics {
		pct, ok := quarterly(records, m.measure).growth(0, 3)
		if !ok {
			continue
		}
		dir := directionOf(pct, m.threshold)
		t := TrendInsight{
			Metric:           m.name,
			Period:           "Q1 to Q4",
			Direction:        dir,
			PercentageChange: engine.RoundTo1(pct),
			Forecast:         forecastFor(dir),
		}
		if m.measure == MeasureProfit {
			t.Seasonality = ProfitSeasonality(records).Summary()
		}
		out = append(out, t)
	}

	sales := quarterly(records, MeasureSales)
	for q := 0; q < 3; q++ {
		pct, ok := sales.growth(q, q+1)
		if !ok || abs(pct) <= swingThreshold {
			continue
		}
		t := TrendInsight{
			Metric:           "Sales",
			Period:           fmt.Sprintf("Q%d to Q%d", q+1, q+2),
			Direction:        signDirection(pct),
			PercentageChange: engine.RoundTo1(pct),
		}
		if abs(pct) > seasonalSwing {
			t.Seasonality = "Sharp quarter-over-quarter swing suggests a seasonal effect"
		}
		out = append(out, t)
	}
	return out
}

// ============================================================================
// SEASONALITY
// ============================================================================

// SeasonAverage is the mean monthly value of one season.
type SeasonAverage struct {
	Season  string
	Average float64
}

// Seasonality ranks seasons by average monthly profit.
type Seasonality struct {
	Strength string
	Ranking  []SeasonAverage
	// Spread is (strongest − weakest) / weakest × 100.
	Spread float64
}

// Summary renders the finding as a sentence.
func (s Seasonality) Summary() string {
	if s.Strength == SeasonalityNone || len(s.Ranking) < 2 {
		return "No significant seasonality"
	}
	top, bottom := s.Ranking[0], s.Ranking[len(s.Ranking)-1]
	switch s.Strength {
	case SeasonalityStrong:
		return fmt.Sprintf("Strong seasonality: %s is the strongest season, %s above %s",
			top.Season, engine.Percent(s.Spread), bottom.Season)
	default:
		return fmt.Sprintf("Moderate seasonality: %s leads, %s above %s",
			top.Season, engine.Percent(s.Spread), bottom.Season)
	}
}

var seasons = []struct {
	name   string
	months [3]int
}{
	{"Winter", [3]int{11, 0, 1}},
	{"Spring", [3]int{2, 3, 4}},
	{"Summer", [3]int{5, 6, 7}},
	{"Fall", [3]int{8, 9, 10}},
}

// ProfitSeasonality averages profit per season (Winter = Dec–Feb, Spring =
// Mar–May, Summer = Jun–Aug, Fall = Sep–Nov) and grades the spread between
// the best and worst season: above 30% is strong, 15–30% moderate.
func ProfitSeasonality(records []dataset.SalesRecord) Seasonality {
	byMonth := make(map[int][]float64)
	for _, r := range records {
		idx, known := dataset.MonthIndex(r.Month)
		if v, ok := r.Profit.Get(); ok && known {
			byMonth[idx] = append(byMonth[idx], v)
		}
	}

	var ranking []SeasonAverage
	for _, s := range seasons {
		var values []float64
		for _, m := range s.months {
			values = append(values, byMonth[m]...)
		}
		if len(values) == 0 {
			continue
		}
		ranking = append(ranking, SeasonAverage{Season: s.name, Average: engine.Mean(values)})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Average > ranking[j].Average
	})

	out := Seasonality{Strength: SeasonalityNone, Ranking: ranking}
	if len(ranking) < 2 {
		return out
	}
	low := ranking[len(ranking)-1].Average
	if low <= 0 {
		return out
	}
	ratio := (ranking[0].Average - low) / low
	out.Spread = engine.RoundTo1(ratio * 100)
	switch {
	case ratio > 0.30:
		out.Strength = SeasonalityStrong
	case ratio >= 0.15:
		out.Strength = SeasonalityModerate
	}
	return out
}
