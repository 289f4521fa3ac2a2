// Package catalog holds the canned answer for each analysis category.
//
// Entries are built once from the normalised datasets and never change
// afterwards; Lookup hands out deep copies. Some entries embed findings
// computed by the insight engine at build time, others carry authored
// findings. Both are reached through Insights, so callers cannot tell
// them apart. The general overview is synthesised on every call.
package catalog

import (
	"errors"
	"fmt"

	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/insight"
	"github.com/ManojS35/data-scribe-agent/response"
)

// Category identifies a kind of business question.
type Category string

const (
	SalesTrend            Category = "sales-trend"
	ProfitMargin          Category = "profit-margin"
	DepartmentPerformance Category = "department-performance"
	ProductProfitability  Category = "product-profitability"
	CustomerAcquisition   Category = "customer-acquisition"
	RegionalAnalysis      Category = "regional-analysis"
	GeneralOverview       Category = "general-overview"
)

// ErrNoDataset is returned by New when no dataset is supplied.
var ErrNoDataset = errors.New("catalog: dataset is required")

// Info describes a category for listings.
type Info struct {
	Key   Category `json:"key"`
	Title string   `json:"title"`
}

var categories = []Info{
	{SalesTrend, "Sales Trend"},
	{ProfitMargin, "Profit Margin"},
	{DepartmentPerformance, "Department Performance"},
	{ProductProfitability, "Product Profitability"},
	{CustomerAcquisition, "Customer Acquisition"},
	{RegionalAnalysis, "Regional Analysis"},
	{GeneralOverview, "General Overview"},
}

type builder func(set *dataset.Set) response.Bundle

var builders = map[Category]builder{
	SalesTrend:            buildSalesTrend,
	ProfitMargin:          buildProfitMargin,
	DepartmentPerformance: buildDepartmentPerformance,
	ProductProfitability:  buildProductProfitability,
	CustomerAcquisition:   buildCustomerAcquisition,
	RegionalAnalysis:      buildRegionalAnalysis,
}

// Catalog maps categories to prepared bundles.
type Catalog struct {
	set     *dataset.Set
	entries map[Category]response.Bundle
}

// New builds every fixed entry from set.
func New(set *dataset.Set) (*Catalog, error) {
	if set == nil {
		return nil, ErrNoDataset
	}
	if n := len(set.Sales()); n != len(dataset.Months) {
		return nil, fmt.Errorf("catalog: %w: %d sales records", dataset.ErrInvalidRecord, n)
	}

	c := &Catalog{set: set, entries: make(map[Category]response.Bundle, len(builders))}
	for key, build := range builders {
		c.entries[key] = build(set)
	}
	return c, nil
}

// Default builds a catalog over the embedded datasets.
func Default() (*Catalog, error) {
	set, err := dataset.Default()
	if err != nil {
		return nil, err
	}
	return New(set)
}

// Lookup returns a copy of the bundle for key. GeneralOverview is
// synthesised fresh; the six fixed categories always succeed.
func (c *Catalog) Lookup(key Category) (response.Bundle, bool) {
	if key == GeneralOverview {
		return c.GeneralOverview(), true
	}
	b, ok := c.entries[key]
	if !ok {
		return response.Bundle{}, false
	}
	return b.Clone(), true
}

// Insights returns the findings attached to key, if any.
func (c *Catalog) Insights(key Category) (insight.Insights, bool) {
	if key == GeneralOverview {
		return insight.Generate(c.set.Sales()), true
	}
	b, ok := c.entries[key]
	if !ok || b.Insights == nil {
		return insight.Insights{}, false
	}
	return b.Insights.Clone(), true
}

// Categories lists every category in display order.
func (c *Catalog) Categories() []Info {
	return append([]Info(nil), categories...)
}

// Title returns the display title of key.
func Title(key Category) string {
	for _, info := range categories {
		if info.Key == key {
			return info.Title
		}
	}
	return string(key)
}
