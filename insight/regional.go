package insight

import (
	"fmt"
	"strings"

	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/engine"
)

const regionPrefix = "region-"

// Regional metric names.
const (
	MetricAvgMonthlySales = "Avg. Monthly Sales"
	MetricProfitMargin    = "Profit Margin"
)

// RegionStats is the per-region aggregate behind the regional insights.
type RegionStats struct {
	Code            string
	Label           string
	Months          int
	Sales           float64
	Profit          float64
	Customers       float64
	AvgMonthlySales float64
	Margin          float64
}

// RegionalStats aggregates records by region, skipping records without
// one, ordered by label.
func RegionalStats(records []dataset.SalesRecord) []RegionStats {
	groups := engine.GroupBy(SalesView(records), "region")
	for i := range groups {
		groups[i].Label = RegionLabel(groups[i].Key)
	}
	engine.SortGroups(groups, "label_asc")

	stats := make([]RegionStats, 0, len(groups))
	for _, g := range groups {
		sales, _ := engine.Sum(g.View, MeasureSales)
		profit, _ := engine.Sum(g.View, MeasureProfit)
		customers, _ := engine.Sum(g.View, MeasureCustomers)
		avg, _ := engine.Avg(g.View, MeasureSales)
		margin, _ := marginOf(g.View)
		stats = append(stats, RegionStats{
			Code:            g.Key,
			Label:           g.Label,
			Months:          g.Count,
			Sales:           sales,
			Profit:          profit,
			Customers:       customers,
			AvgMonthlySales: avg,
			Margin:          margin,
		})
	}
	return stats
}

// Regional compares each region's average monthly sales and profit margin
// against the company-wide figures, two insights per region.
func Regional(records []dataset.SalesRecord) []RegionalInsight {
	view := SalesView(records)
	companyAvg, ok := engine.Avg(view, MeasureSales)
	if !ok || companyAvg == 0 {
		return nil
	}
	companyMargin, _ := marginOf(view)

	var out []RegionalInsight
	for _, r := range RegionalStats(records) {
		salesDiff := r.AvgMonthlySales - companyAvg
		salesPct := engine.Round(salesDiff/companyAvg*100, 0)
		out = append(out, RegionalInsight{
			Region:           r.Label,
			Metric:           MetricAvgMonthlySales,
			Value:            engine.Round(r.AvgMonthlySales, 0),
			Trend:            trendOf(salesDiff),
			PercentageChange: salesPct,
			Comparison:       compareText(salesPct, "%", "company average of "+engine.FormatMoney(engine.Round(companyAvg, 0))),
		})

		marginDiff := r.Margin - companyMargin
		marginPts := engine.RoundTo1(marginDiff)
		out = append(out, RegionalInsight{
			Region:           r.Label,
			Metric:           MetricProfitMargin,
			Value:            engine.RoundTo1(r.Margin),
			Trend:            trendOf(marginDiff),
			PercentageChange: marginPts,
			Comparison:       compareText(marginPts, " pts", "company margin of "+engine.Percent(companyMargin)),
		})
	}
	return out
}

// RegionLabel turns a raw region code into a display label:
// "region-A" → "Region A".
func RegionLabel(code string) string {
	rest := strings.TrimSpace(code)
	hasPrefix := strings.HasPrefix(strings.ToLower(rest), regionPrefix)
	if hasPrefix {
		rest = rest[len(regionPrefix):]
	}
	rest = strings.NewReplacer("-", " ", "_", " ").Replace(rest)
	words := strings.Fields(rest)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	label := strings.Join(words, " ")
	if hasPrefix {
		return "Region " + label
	}
	return label
}

// trendOf classifies a difference; differences below a cent or a hundredth
// of a point are float noise and count as stable.
func trendOf(diff float64) Trend {
	switch r := engine.RoundTo2(diff); {
	case r > 0:
		return Up
	case r < 0:
		return Down
	default:
		return Stable
	}
}

func compareText(delta float64, unit, reference string) string {
	switch {
	case delta > 0:
		return fmt.Sprintf("%s%s above %s", engine.FormatNumber(delta), unit, reference)
	case delta < 0:
		return fmt.Sprintf("%s%s below %s", engine.FormatNumber(-delta), unit, reference)
	default:
		return "In line with " + reference
	}
}
