// Package insight derives structured findings from the monthly sales
// dataset: regional comparisons, quarter-over-quarter trends with a
// seasonality heuristic, and standard-deviation based anomalies.
//
// Every function is pure. Inputs are never modified and each call
// recomputes from scratch, so repeated calls on the same records return
// identical results.
package insight

import (
	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/engine"
)

// Measure keys exposed by SalesView.
const (
	MeasureSales     = "sales"
	MeasureProfit    = "profit"
	MeasureCustomers = "customers"
)

var salesAdapter = engine.NewDomainAdapter[dataset.SalesRecord]().
	Dimension("month", func(r dataset.SalesRecord) string { return r.Month }).
	Dimension("region", func(r dataset.SalesRecord) string { return r.Region }).
	Dimension("status", func(r dataset.SalesRecord) string { return r.Status }).
	Measure(MeasureSales, func(r dataset.SalesRecord) (float64, bool) { return r.Sales.Get() }).
	Measure(MeasureProfit, func(r dataset.SalesRecord) (float64, bool) { return r.Profit.Get() }).
	Measure(MeasureCustomers, func(r dataset.SalesRecord) (float64, bool) { return r.Customers.Get() })

// SalesView exposes sales records to the aggregation engine.
func SalesView(records []dataset.SalesRecord) engine.RecordView {
	return salesAdapter.Bind(records)
}

// Generate runs all three analyses over records.
func Generate(records []dataset.SalesRecord) Insights {
	return Insights{
		Regional:  Regional(records),
		Trends:    Trends(records),
		Anomalies: Anomalies(records),
	}
}

// marginOf returns total profit / total sales × 100 over records that
// carry both values.
func marginOf(view engine.RecordView) (float64, bool) {
	var sales, profit float64
	for i := 0; i < view.Len(); i++ {
		s, ok1 := view.Measure(i, MeasureSales)
		p, ok2 := view.Measure(i, MeasureProfit)
		if !ok1 || !ok2 {
			continue
		}
		sales += s
		profit += p
	}
	if sales == 0 {
		return 0, false
	}
	return profit / sales * 100, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
