package catalog

import (
	"fmt"
	"strings"

	"github.com/ManojS35/data-scribe-agent/engine"
	"github.com/ManojS35/data-scribe-agent/insight"
	"github.com/ManojS35/data-scribe-agent/response"
)

// ============================================================================
// GENERAL OVERVIEW
// ============================================================================

// GeneralOverview synthesises a whole-business answer from the full sales
// dataset. The insight engine runs on every call.
func (c *Catalog) GeneralOverview() response.Bundle {
	records := c.set.Sales()
	view := insight.SalesView(records)
	found := insight.Generate(records)

	sales, _ := engine.Sum(view, insight.MeasureSales)
	profit, _ := engine.Sum(view, insight.MeasureProfit)
	customers, _ := engine.Sum(view, insight.MeasureCustomers)

	var b strings.Builder
	fmt.Fprintf(&b, "Here is an overview of the business across all %d months. ", len(records))
	fmt.Fprintf(&b, "We recorded %s in sales and %s in profit", engine.FormatMoney(sales), engine.FormatMoney(profit))
	if sales != 0 {
		fmt.Fprintf(&b, " (a %s margin)", engine.Percent(profit/sales*100))
	}
	fmt.Fprintf(&b, " from %s customers. ", engine.FormatNumber(customers))
	for _, t := range found.Trends {
		if t.Metric == "Sales" && t.Period == "Q1 to Q4" {
			fmt.Fprintf(&b, "Sales are %s, changing %s%% from Q1 to Q4. ", t.Direction, engine.FormatNumber(t.PercentageChange))
			break
		}
	}
	if n := len(found.Anomalies); n > 0 {
		fmt.Fprintf(&b, "%d unusual %s flagged for review. ", n, plural(n, "month was", "months were"))
	}
	b.WriteString("For more detail, ask about sales trends, profit margins, department performance, " +
		"product profitability, customer acquisition, or regional performance.")

	table := response.NewTable("Month", "Sales ($)", "Profit ($)", "Customers", "Region", "Status")
	for _, r := range records {
		region, status := any(missing), any(missing)
		if r.Region != "" {
			region = insight.RegionLabel(r.Region)
		}
		if r.Status != "" {
			status = r.Status
		}
		table.Add(r.Month, cell(r.Sales, engine.FormatNumber), cell(r.Profit, engine.FormatNumber),
			value(r.Customers), region, status)
	}

	return response.Bundle{
		GeneratedQuery: response.GeneratedQuery{
			SQL:         "SELECT month, sales, profit, customers, region, status\nFROM sales_data\nORDER BY " + monthOrder(),
			Explanation: "Retrieving the full sales dataset to summarise overall business performance",
		},
		Response: b.String(),
		Visualizations: []response.Visualization{
			response.Chart("business-overview", response.Area, "Monthly Sales Overview",
				salesPoints(records), "month", "sales", "#4f46e5"),
		},
		TableData: table,
		Insights:  &found,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
