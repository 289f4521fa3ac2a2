package classifier

import (
	"strings"

	"github.com/ManojS35/data-scribe-agent/catalog"
)

// ============================================================================
// VAGUE-QUERY RESOLVER
// ============================================================================

// Flags records which topic keyword sets a question touches.
type Flags struct {
	Performance bool `json:"performance"`
	Sales       bool `json:"sales"`
	Region      bool `json:"region"`
	Profit      bool `json:"profit"`
	Product     bool `json:"product"`
	Customer    bool `json:"customer"`
	Department  bool `json:"department"`
}

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	return f.Performance || f.Sales || f.Region || f.Profit || f.Product || f.Customer || f.Department
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var (
	performanceWords = set("performance", "doing", "results", "metrics", "kpi")
	salesWords       = set("sales", "revenue", "selling", "sell", "sold", "money", "income")
	regionWords      = set("region", "area", "location", "where", "regional", "geography", "geographic")
	profitWords      = set("profit", "margin", "earnings", "roi", "return", "profitability")
	productWords     = set("product", "item", "offering", "merchandise", "goods", "inventory")
	customerWords    = set("customer", "client", "consumer", "buyer", "user", "people")
	departmentWords  = set("department", "team", "group", "division", "staff", "employee", "personnel")
)

// FlagsOf splits text on whitespace and tests each lower-cased token for
// exact membership in the topic keyword sets. Punctuation is not stripped:
// "sales?" is not "sales".
func FlagsOf(text string) Flags {
	var f Flags
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		f.Performance = f.Performance || performanceWords[tok]
		f.Sales = f.Sales || salesWords[tok]
		f.Region = f.Region || regionWords[tok]
		f.Profit = f.Profit || profitWords[tok]
		f.Product = f.Product || productWords[tok]
		f.Customer = f.Customer || customerWords[tok]
		f.Department = f.Department || departmentWords[tok]
	}
	return f
}

type resolverRule struct {
	name     string
	match    func(Flags) bool
	category catalog.Category
}

var resolverRules = []resolverRule{
	{"performance+department", func(f Flags) bool { return f.Performance && f.Department }, catalog.DepartmentPerformance},
	{"performance+product", func(f Flags) bool { return f.Performance && f.Product }, catalog.ProductProfitability},
	{"performance", func(f Flags) bool { return f.Performance }, catalog.SalesTrend},
	{"sales+region", func(f Flags) bool { return f.Sales && f.Region }, catalog.RegionalAnalysis},
	{"sales", func(f Flags) bool { return f.Sales }, catalog.SalesTrend},
	{"profit+product", func(f Flags) bool { return f.Profit && f.Product }, catalog.ProductProfitability},
	{"profit", func(f Flags) bool { return f.Profit }, catalog.ProfitMargin},
	{"customer", func(f Flags) bool { return f.Customer }, catalog.CustomerAcquisition},
	{"department", func(f Flags) bool { return f.Department }, catalog.DepartmentPerformance},
	{"product", func(f Flags) bool { return f.Product }, catalog.ProductProfitability},
	{"region", func(f Flags) bool { return f.Region }, catalog.RegionalAnalysis},
}

// RuleOverview names the decision taken when no topic flag is set.
const RuleOverview = "overview"

// Resolve picks a category from topic keywords, defaulting to the general
// overview. It also returns the name of the rule that fired.
func Resolve(text string) (catalog.Category, string) {
	return ResolveFlags(FlagsOf(text))
}

// ResolveFlags applies the resolver decision table to precomputed flags.
func ResolveFlags(f Flags) (catalog.Category, string) {
	if !f.Any() {
		return catalog.GeneralOverview, RuleOverview
	}
	for _, r := range resolverRules {
		if r.match(f) {
			return r.category, r.name
		}
	}
	return catalog.GeneralOverview, RuleOverview
}
