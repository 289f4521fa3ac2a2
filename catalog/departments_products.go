package catalog

import (
	"fmt"
	"sort"

	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/engine"
	"github.com/ManojS35/data-scribe-agent/insight"
	"github.com/ManojS35/data-scribe-agent/response"
)

var employeeAdapter = engine.NewDomainAdapter[dataset.EmployeeRecord]().
	Dimension("department", func(e dataset.EmployeeRecord) string { return e.Department }).
	Dimension("name", func(e dataset.EmployeeRecord) string { return e.Name }).
	Measure("performance", func(e dataset.EmployeeRecord) (float64, bool) { return e.Performance.Get() }).
	Measure("salary", func(e dataset.EmployeeRecord) (float64, bool) { return e.Salary.Get() })

var productAdapter = engine.NewDomainAdapter[dataset.ProductRecord]().
	Dimension("name", func(p dataset.ProductRecord) string { return p.Name }).
	Dimension("category", func(p dataset.ProductRecord) string { return p.Category }).
	Measure("price", func(p dataset.ProductRecord) (float64, bool) { return p.Price.Get() }).
	Measure("cost", func(p dataset.ProductRecord) (float64, bool) { return p.Cost.Get() }).
	Measure("inventory", func(p dataset.ProductRecord) (float64, bool) { return p.Inventory.Get() })

// ============================================================================
// DEPARTMENT PERFORMANCE
// ============================================================================

type departmentStats struct {
	name           string
	avgPerformance float64
	avgSalary      float64
	headcount      int
}

// departments averages performance and salary per normalised department,
// best performer first. Missing scores are left out of the average.
func departments(employees []dataset.EmployeeRecord) []departmentStats {
	groups := engine.GroupBy(employeeAdapter.Bind(employees), "department")
	for i := range groups {
		groups[i].Value, _ = engine.Avg(groups[i].View, "performance")
	}
	engine.SortGroups(groups, "value_desc")

	out := make([]departmentStats, 0, len(groups))
	for _, g := range groups {
		salary, _ := engine.Avg(g.View, "salary")
		out = append(out, departmentStats{
			name:           g.Label,
			avgPerformance: g.Value,
			avgSalary:      salary,
			headcount:      g.Count,
		})
	}
	return out
}

func buildDepartmentPerformance(set *dataset.Set) response.Bundle {
	stats := departments(set.Employees())

	bars := make([]engine.Group, 0, len(stats))
	table := response.NewTable("Department", "Avg. Performance", "Avg. Salary ($)")
	for _, d := range stats {
		bars = append(bars, engine.Group{Key: d.name, Label: d.name, Value: engine.RoundTo1(d.avgPerformance), Count: d.headcount})
		table.Add(d.name, engine.Fixed(d.avgPerformance, 1), engine.FormatNumber(engine.Round(d.avgSalary, 0)))
	}

	return response.Bundle{
		GeneratedQuery: response.GeneratedQuery{
			SQL: "SELECT department, AVG(performance) AS avg_performance, AVG(salary) AS avg_salary\n" +
				"FROM employees\nGROUP BY department\nORDER BY avg_performance DESC",
			Explanation: "Grouping employees by department and calculating average performance scores and salaries",
		},
		Response: departmentNarrative(stats),
		Visualizations: []response.Visualization{
			response.Chart("dept-performance", response.Bar, "Average Performance by Department",
				response.GroupPoints(bars, "department", "avgPerformance"), "department", "avgPerformance", "#3b82f6"),
		},
		TableData: table,
	}
}

func departmentNarrative(stats []departmentStats) string {
	switch len(stats) {
	case 0:
		return "No employee records are available."
	case 1:
		return fmt.Sprintf("%s is the only department on record, with an average performance score of %s.",
			stats[0].name, engine.Fixed(stats[0].avgPerformance, 1))
	}

	top := stats[0]
	bestPaid := top
	for _, d := range stats {
		if d.avgSalary > bestPaid.avgSalary {
			bestPaid = d
		}
	}
	text := fmt.Sprintf(
		"Analysis of departmental performance shows that %s has the highest average performance score at %s, followed by %s at %s. ",
		top.name, engine.Fixed(top.avgPerformance, 1), stats[1].name, engine.Fixed(stats[1].avgPerformance, 1))
	if bestPaid.name == top.name {
		text += fmt.Sprintf("%s also has the highest average salary at %s, which aligns with its performance. ",
			top.name, engine.FormatMoney(engine.Round(top.avgSalary, 0)))
	} else {
		text += fmt.Sprintf("%s has the highest average salary at %s. ",
			bestPaid.name, engine.FormatMoney(engine.Round(bestPaid.avgSalary, 0)))
	}
	if len(stats) > 2 {
		rest := stats[2:]
		names := make([]string, len(rest))
		scores := make([]string, len(rest))
		for i, d := range rest {
			names[i] = d.name
			scores[i] = engine.Fixed(d.avgPerformance, 1)
		}
		text += fmt.Sprintf("%s follow at %s respectively.", joinNames(names), joinNames(scores))
	}
	return text
}

// ============================================================================
// PRODUCT PROFITABILITY
// ============================================================================

type productStats struct {
	name, category string
	price          dataset.Number
	cost           dataset.Number
	profit         float64
	roi            float64
	known          bool // cost recorded
}

// products computes per-unit profit and ROI, highest ROI first; products
// without a recorded cost sort last.
func products(records []dataset.ProductRecord) []productStats {
	view := productAdapter.Bind(records)
	out := make([]productStats, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		p := productStats{
			name:     view.Dimension(i, "name"),
			category: view.Dimension(i, "category"),
			price:    records[i].Price,
			cost:     records[i].Cost,
		}
		price, ok1 := view.Measure(i, "price")
		cost, ok2 := view.Measure(i, "cost")
		if ok1 && ok2 && cost != 0 {
			p.known = true
			p.profit = price - cost
			p.roi = p.profit / cost * 100
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].known != out[j].known {
			return out[i].known
		}
		return out[i].roi > out[j].roi
	})
	return out
}

func buildProductProfitability(set *dataset.Set) response.Bundle {
	stats := products(set.Products())

	var bars []engine.Group
	table := response.NewTable("Product", "Category", "Price ($)", "Cost ($)", "Profit ($)", "ROI (%)")
	var unknown []string
	for _, p := range stats {
		if !p.known {
			unknown = append(unknown, p.name)
			table.Add(p.name, p.category, cell(p.price, engine.FormatNumber), missing, missing, missing)
			continue
		}
		bars = append(bars, engine.Group{Key: p.name, Label: p.name, Value: p.profit, Count: 1})
		table.Add(p.name, p.category, cell(p.price, engine.FormatNumber), cell(p.cost, engine.FormatNumber),
			engine.FormatNumber(p.profit), engine.Percent(p.roi))
	}

	return response.Bundle{
		GeneratedQuery: response.GeneratedQuery{
			SQL: "SELECT name, category, (price - cost) AS profit_per_unit, ((price - cost) / cost) * 100 AS roi\n" +
				"FROM products\nORDER BY roi DESC",
			Explanation: "Calculating profit per unit and return on investment for each product",
		},
		Response: productNarrative(stats, unknown),
		Visualizations: []response.Visualization{
			response.Chart("product-profit", response.Bar, "Profit per Unit by Product",
				response.GroupPoints(bars, "name", "profitPerUnit"), "name", "profitPerUnit", "#f59e0b"),
		},
		TableData: table,
		Insights: &insight.Insights{
			Anomalies: []insight.AnomalyInsight{{
				Metric:        "ROI",
				Value:         125,
				ExpectedRange: [2]float64{50, 75},
				Deviation:     2.0,
				Period:        "Desk Lamp",
				PossibleCause: "Unusually high return driven by a low unit cost",
			}},
		},
	}
}

func productNarrative(stats []productStats, unknown []string) string {
	var best, richest *productStats
	for i := range stats {
		p := &stats[i]
		if !p.known {
			continue
		}
		if best == nil || p.roi > best.roi {
			best = p
		}
		if richest == nil || p.profit > richest.profit {
			richest = p
		}
	}
	if best == nil {
		return "No product has a recorded cost, so profitability cannot be calculated."
	}

	text := fmt.Sprintf(
		"The product profitability analysis reveals that %s has the highest ROI at %s, generating %s profit on a %s cost. "+
			"%s has the best profit per unit at %s with a %s ROI. "+
			"Lower-priced items generally show higher ROI percentages despite lower absolute profit values.",
		best.name, engine.Percent(best.roi), engine.FormatMoney(best.profit), engine.FormatMoney(best.cost.Value),
		richest.name, engine.FormatMoney(richest.profit), engine.Percent(richest.roi))
	if len(unknown) > 0 {
		text += fmt.Sprintf(" %s is excluded from the chart because its cost is not recorded.", joinNames(unknown))
	}
	return text
}
