package insight

import (
	"fmt"

	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/engine"
)

// ============================================================================
// ANOMALY DETECTION
// ============================================================================

const (
	// sales further than this many standard deviations from the mean are flagged
	salesSigma = 1.5

	referenceMargin = 30.0
	marginTolerance = 3.0

	referenceSalesPerCustomer = 35.0
	salesPerCustomerScale     = 5.0
	salesPerCustomerTolerance = 1.2 * salesPerCustomerScale
)

// Anomaly metric names.
const (
	MetricSales            = "Sales"
	MetricMargin           = "Profit Margin"
	MetricSalesPerCustomer = "Sales per Customer"
)

// exceeds reports whether deviation is strictly beyond k·scale.
func exceeds(deviation, scale, k float64) bool {
	return abs(deviation) > k*scale
}

func possibleCause(deviation float64, what, month string) string {
	word := "low"
	if deviation > 0 {
		word = "high"
	}
	return fmt.Sprintf("Unusually %s %s in %s", word, what, dataset.MonthName(month))
}

// Anomalies runs three independent checks over the monthly records:
// sales beyond 1.5 population standard deviations of the mean, profit
// margins more than 3 points from 30%, and sales per customer more than
// 6 away from 35. Results are ordered by check, then by month.
func Anomalies(records []dataset.SalesRecord) []AnomalyInsight {
	var out []AnomalyInsight
	out = append(out, salesAnomalies(records)...)
	out = append(out, marginAnomalies(records)...)
	out = append(out, salesPerCustomerAnomalies(records)...)
	return out
}

func salesAnomalies(records []dataset.SalesRecord) []AnomalyInsight {
	values := engine.Values(SalesView(records), MeasureSales)
	if len(values) == 0 {
		return nil
	}
	mean := engine.Mean(values)
	sd := engine.StdDev(values)
	if sd == 0 {
		return nil
	}

	var out []AnomalyInsight
	for _, r := range records {
		v, ok := r.Sales.Get()
		if !ok {
			continue
		}
		d := v - mean
		if !exceeds(d, sd, salesSigma) {
			continue
		}
		out = append(out, AnomalyInsight{
			Metric:        MetricSales,
			Value:         v,
			ExpectedRange: [2]float64{engine.Round(mean-sd, 0), engine.Round(mean+sd, 0)},
			Deviation:     engine.RoundTo2(abs(d) / sd),
			Period:        r.Month,
			PossibleCause: possibleCause(d, "sales", r.Month),
		})
	}
	return out
}

func marginAnomalies(records []dataset.SalesRecord) []AnomalyInsight {
	var out []AnomalyInsight
	for _, r := range records {
		sales, ok1 := r.Sales.Get()
		profit, ok2 := r.Profit.Get()
		if !ok1 || !ok2 || sales == 0 {
			continue
		}
		margin := profit / sales * 100
		d := margin - referenceMargin
		if !exceeds(d, marginTolerance, 1) {
			continue
		}
		out = append(out, AnomalyInsight{
			Metric:        MetricMargin,
			Value:         engine.RoundTo1(margin),
			ExpectedRange: [2]float64{referenceMargin - marginTolerance, referenceMargin + marginTolerance},
			Deviation:     engine.RoundTo2(abs(d) / marginTolerance),
			Period:        r.Month,
			PossibleCause: possibleCause(d, "profit margin", r.Month),
		})
	}
	return out
}

func salesPerCustomerAnomalies(records []dataset.SalesRecord) []AnomalyInsight {
	var out []AnomalyInsight
	for _, r := range records {
		sales, ok1 := r.Sales.Get()
		customers, ok2 := r.Customers.Get()
		if !ok1 || !ok2 || customers == 0 {
			continue
		}
		spc := sales / customers
		d := spc - referenceSalesPerCustomer
		if !exceeds(d, salesPerCustomerTolerance, 1) {
			continue
		}
		out = append(out, AnomalyInsight{
			Metric: MetricSalesPerCustomer,
			Value:  engine.RoundTo2(spc),
			ExpectedRange: [2]float64{
				referenceSalesPerCustomer - salesPerCustomerScale,
				referenceSalesPerCustomer + salesPerCustomerScale,
			},
			Deviation:     engine.RoundTo2(abs(d) / salesPerCustomerScale),
			Period:        r.Month,
			PossibleCause: possibleCause(d, "revenue per customer", r.Month),
		})
	}
	return out
}
