package catalog

import (
	"fmt"
	"strings"

	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/engine"
	"github.com/ManojS35/data-scribe-agent/insight"
	"github.com/ManojS35/data-scribe-agent/response"
)

// ============================================================================
// SHARED HELPERS
// ============================================================================

const missing = "N/A"

// monthOrder is a SQL expression ranking month labels in calendar order.
func monthOrder() string {
	var b strings.Builder
	b.WriteString("CASE month")
	for i, m := range dataset.Months {
		fmt.Fprintf(&b, "\n    WHEN '%s' THEN %d", m, i+1)
	}
	b.WriteString("\n  END")
	return b.String()
}

// cell formats a present value for a table, "N/A" otherwise.
func cell(n dataset.Number, format func(float64) string) any {
	if v, ok := n.Get(); ok {
		return format(v)
	}
	return missing
}

// value is a chart value: the number, or nil when absent.
func value(n dataset.Number) any {
	if v, ok := n.Get(); ok {
		return v
	}
	return nil
}

func salesPoints(records []dataset.SalesRecord) []map[string]any {
	points := make([]map[string]any, 0, len(records))
	for _, r := range records {
		points = append(points, map[string]any{
			"month":     r.Month,
			"sales":     value(r.Sales),
			"profit":    value(r.Profit),
			"customers": value(r.Customers),
		})
	}
	return points
}

func margin(r dataset.SalesRecord) (float64, bool) {
	s, ok1 := r.Sales.Get()
	p, ok2 := r.Profit.Get()
	if !ok1 || !ok2 || s == 0 {
		return 0, false
	}
	return p / s * 100, true
}

// salesExtremes returns the months with the highest and lowest sales.
func salesExtremes(records []dataset.SalesRecord) (best, worst dataset.SalesRecord) {
	first := true
	for _, r := range records {
		v, ok := r.Sales.Get()
		if !ok {
			continue
		}
		if first || v > best.Sales.Value {
			best = r
		}
		if first || v < worst.Sales.Value {
			worst = r
		}
		first = false
	}
	return best, worst
}

func growthWord(direction string) string {
	switch direction {
	case "increased":
		return "increase"
	case "decreased":
		return "decrease"
	default:
		return "change"
	}
}

// ============================================================================
// SALES TREND
// ============================================================================

func buildSalesTrend(set *dataset.Set) response.Bundle {
	records := set.Sales()
	view := insight.SalesView(records)
	g := engine.GrowthOf(view, insight.MeasureSales, "month")

	best, worst := salesExtremes(records)
	summer := engine.Mean(engine.Values(insight.SalesView(records[5:8]), insight.MeasureSales))

	narrative := fmt.Sprintf(
		"Looking at our sales data for the past year, we can observe a consistent upward trend with some seasonal fluctuations. "+
			"Sales started at %s in %s and reached %s in %s, representing a %s%% %s. "+
			"The best month was %s at %s and the weakest was %s at %s. "+
			"The summer months (June-August) averaged %s per month.",
		engine.FormatMoney(g.EarliestValue), dataset.MonthName(g.EarliestPeriod),
		engine.FormatMoney(g.LatestValue), dataset.MonthName(g.LatestPeriod),
		engine.FormatNumber(engine.RoundTo1(abs(g.ChangePercent))), growthWord(g.Direction),
		dataset.MonthName(best.Month), engine.FormatMoney(best.Sales.Or(0)),
		dataset.MonthName(worst.Month), engine.FormatMoney(worst.Sales.Or(0)),
		engine.FormatMoney(engine.Round(summer, 0)),
	)

	table := response.NewTable("Month", "Sales ($)")
	for _, r := range records {
		table.Add(r.Month, cell(r.Sales, engine.FormatNumber))
	}

	found := insight.Generate(records)
	return response.Bundle{
		GeneratedQuery: response.GeneratedQuery{
			SQL:         "SELECT month, sales\nFROM sales_data\nORDER BY " + monthOrder(),
			Explanation: "Retrieving monthly sales data in calendar order to analyze trends over time",
		},
		Response: narrative,
		Visualizations: []response.Visualization{
			response.Chart("sales-trend", response.Line, "Monthly Sales Trend",
				salesPoints(records), "month", "sales", "#4f46e5"),
		},
		TableData: table,
		Insights: &insight.Insights{
			Trends:    found.Trends,
			Anomalies: found.Anomalies,
		},
	}
}

// ============================================================================
// PROFIT MARGIN
// ============================================================================

func buildProfitMargin(set *dataset.Set) response.Bundle {
	records := set.Sales()

	points := make([]map[string]any, 0, len(records))
	table := response.NewTable("Month", "Sales ($)", "Profit ($)", "Profit Margin (%)")
	var margins []float64
	for _, r := range records {
		m, ok := margin(r)
		var point any
		marginCell := any(missing)
		if ok {
			margins = append(margins, m)
			point = engine.RoundTo1(m)
			marginCell = engine.Percent(m)
		}
		points = append(points, map[string]any{"month": r.Month, "profitMargin": point})
		table.Add(r.Month, cell(r.Sales, engine.FormatNumber), cell(r.Profit, engine.FormatNumber), marginCell)
	}

	return response.Bundle{
		GeneratedQuery: response.GeneratedQuery{
			SQL:         "SELECT month, (profit / sales) * 100 AS profit_margin\nFROM sales_data",
			Explanation: "Calculating monthly profit margins (profit as percentage of sales)",
		},
		Response: marginNarrative(margins),
		Visualizations: []response.Visualization{
			response.Chart("profit-margin", response.Bar, "Monthly Profit Margins",
				points, "month", "profitMargin", "#10b981"),
		},
		TableData: table,
		Insights: &insight.Insights{
			Trends: []insight.TrendInsight{{
				Metric:           "Profit Margin",
				Period:           "Jan to Dec",
				Direction:        insight.Steady,
				PercentageChange: 0,
				Forecast:         "Margin expected to hold near 30% while pricing is unchanged",
			}},
		},
	}
}

// marginMonthlySpread is the standard deviation, in points, above which
// monthly margins no longer count as steady.
const marginMonthlySpread = 2

func marginNarrative(margins []float64) string {
	avg := engine.Mean(margins)
	steadiness := "remained consistent"
	closing := "This suggests stable cost management and pricing across all months, despite the variations in total sales volume."
	if engine.StdDev(margins) > marginMonthlySpread {
		steadiness = "varied noticeably"
		closing = "The month-to-month swings point to shifting costs or pricing that deserve a closer look."
	}
	return fmt.Sprintf(
		"The profit margin has %s at approximately %s throughout the year. "+
			"For every dollar in sales, the company retains about %s cents as profit after accounting for costs. %s",
		steadiness, engine.Percent(avg), engine.FormatNumber(engine.Round(avg, 0)), closing,
	)
}

// ============================================================================
// CUSTOMER ACQUISITION
// ============================================================================

func buildCustomerAcquisition(set *dataset.Set) response.Bundle {
	records := set.Sales()
	view := insight.SalesView(records)
	g := engine.GrowthOf(view, insight.MeasureCustomers, "month")

	table := response.NewTable("Month", "Customers", "Sales ($)", "Revenue per Customer ($)")
	var perCustomer []float64
	for _, r := range records {
		spc := any(missing)
		s, ok1 := r.Sales.Get()
		c, ok2 := r.Customers.Get()
		if ok1 && ok2 && c != 0 {
			perCustomer = append(perCustomer, s/c)
			spc = engine.Fixed(s/c, 2)
		}
		table.Add(r.Month, value(r.Customers), cell(r.Sales, engine.FormatNumber), spc)
	}

	narrative := fmt.Sprintf(
		"Our customer acquisition analysis shows that we've grown from %s customers in %s to %s in %s, a %s%% %s. "+
			"The revenue per customer has remained relatively stable, averaging around %s throughout the year. "+
			"The correlation between total customers and overall sales is strong, indicating customer growth as a primary driver of our revenue increases.",
		engine.FormatNumber(g.EarliestValue), dataset.MonthName(g.EarliestPeriod),
		engine.FormatNumber(g.LatestValue), dataset.MonthName(g.LatestPeriod),
		engine.FormatNumber(engine.RoundTo1(abs(g.ChangePercent))), growthWord(g.Direction),
		engine.FormatMoney(engine.Round(engine.Mean(perCustomer), 0)),
	)

	return response.Bundle{
		GeneratedQuery: response.GeneratedQuery{
			SQL:         "SELECT month, customers, sales / customers AS revenue_per_customer\nFROM sales_data",
			Explanation: "Calculating revenue per customer for each month",
		},
		Response: narrative,
		Visualizations: []response.Visualization{
			response.Chart("customer-growth", response.Line, "Monthly Customer Growth",
				salesPoints(records), "month", "customers", "#ec4899"),
		},
		TableData: table,
		Insights: &insight.Insights{
			Trends: []insight.TrendInsight{
				{
					Metric:           "Customers",
					Period:           "Jan to Dec",
					Direction:        insight.Increasing,
					PercentageChange: 91.7,
					Forecast:         "Customer base expected to keep growing into the next quarter",
				},
				{
					Metric:           "Revenue per Customer",
					Period:           "Jan to Dec",
					Direction:        insight.Fluctuating,
					PercentageChange: 17.4,
					Seasonality:      "Slightly higher per-customer value in the second half of the year",
				},
			},
		},
	}
}

// ============================================================================
// REGIONAL ANALYSIS
// ============================================================================

func buildRegionalAnalysis(set *dataset.Set) response.Bundle {
	records := set.Sales()
	stats := insight.RegionalStats(records)
	companyAvg, _ := engine.Avg(insight.SalesView(records), insight.MeasureSales)

	points := make([]map[string]any, 0, len(stats))
	table := response.NewTable("Region", "Months", "Total Sales ($)", "Avg. Monthly Sales ($)", "Profit Margin (%)")
	for _, s := range stats {
		points = append(points, map[string]any{
			"region":          s.Label,
			"avgMonthlySales": engine.Round(s.AvgMonthlySales, 0),
		})
		table.Add(s.Label, s.Months, engine.FormatNumber(s.Sales),
			engine.FormatNumber(engine.Round(s.AvgMonthlySales, 0)), engine.Percent(s.Margin))
	}

	var unassigned []string
	for _, r := range records {
		if r.Region == "" {
			unassigned = append(unassigned, dataset.MonthName(r.Month))
		}
	}

	return response.Bundle{
		GeneratedQuery: response.GeneratedQuery{
			SQL: "SELECT region, COUNT(*) AS months, SUM(sales) AS total_sales, AVG(sales) AS avg_monthly_sales,\n" +
				"       SUM(profit) / SUM(sales) * 100 AS profit_margin\n" +
				"FROM sales_data\nWHERE region IS NOT NULL\nGROUP BY region\nORDER BY region",
			Explanation: "Aggregating monthly sales by region and comparing each region with the company average",
		},
		Response: regionalNarrative(stats, companyAvg, unassigned),
		Visualizations: []response.Visualization{
			response.Chart("regional-sales", response.Bar, "Average Monthly Sales by Region",
				points, "region", "avgMonthlySales", "#8b5cf6"),
		},
		TableData: table,
		Insights: &insight.Insights{
			Regional: insight.Regional(records),
		},
	}
}

func regionalNarrative(stats []insight.RegionStats, companyAvg float64, unassigned []string) string {
	if len(stats) == 0 || companyAvg == 0 {
		return "No regional data is available for the current period."
	}
	best, worst := stats[0], stats[0]
	for _, s := range stats {
		if s.AvgMonthlySales > best.AvgMonthlySales {
			best = s
		}
		if s.AvgMonthlySales < worst.AvgMonthlySales {
			worst = s
		}
	}
	pct := func(s insight.RegionStats) string {
		return engine.FormatNumber(engine.Round(abs(s.AvgMonthlySales-companyAvg)/companyAvg*100, 0)) + "%"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s leads with average monthly sales of %s, %s above the company average of %s. ",
		best.Label, engine.FormatMoney(engine.Round(best.AvgMonthlySales, 0)), pct(best),
		engine.FormatMoney(engine.Round(companyAvg, 0)))
	fmt.Fprintf(&b, "%s trails at %s, %s below average. ",
		worst.Label, engine.FormatMoney(engine.Round(worst.AvgMonthlySales, 0)), pct(worst))
	fmt.Fprintf(&b, "Profit margins range from %s to %s across regions.",
		engine.Percent(minMargin(stats)), engine.Percent(maxMargin(stats)))
	if len(unassigned) > 0 {
		fmt.Fprintf(&b, " Months without a recorded region (%s) are excluded from the breakdown.", joinNames(unassigned))
	}
	return b.String()
}

func minMargin(stats []insight.RegionStats) float64 {
	m := stats[0].Margin
	for _, s := range stats {
		m = min(m, s.Margin)
	}
	return m
}

func maxMargin(stats []insight.RegionStats) float64 {
	m := stats[0].Margin
	for _, s := range stats {
		m = max(m, s.Margin)
	}
	return m
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
