// Package classifier maps a free-text business question to an analysis
// category by keyword matching.
//
// Classification runs in two stages, each an ordered rule table evaluated
// top to bottom with the first match winning. Short inputs containing a
// vague phrase go straight to the keyword resolver. Everything else is
// tested against explicit keyword pairs, and anything left unmatched falls
// through to the resolver as a catch-all.
package classifier

import (
	"strings"

	"github.com/ManojS35/data-scribe-agent/catalog"
)

// Route records which path produced a decision.
type Route string

const (
	// RouteExplicit means an explicit keyword pair matched.
	RouteExplicit Route = "explicit"
	// RouteVague means the input was short and vague.
	RouteVague Route = "vague"
	// RouteFallback means no explicit pair matched.
	RouteFallback Route = "fallback"
)

// Decision is the outcome of classifying one input.
type Decision struct {
	Category catalog.Category `json:"category"`
	Route    Route            `json:"route"`
	Rule     string           `json:"rule"`
}

// Rule is one explicit classification rule. Match receives lower-cased text.
type Rule struct {
	Name     string
	Match    func(text string) bool
	Category catalog.Category
}

// VagueIndicators are phrases that mark a question as open-ended.
var VagueIndicators = []string{
	"how are we doing",
	"how is business",
	"what's going on",
	"tell me about",
	"show me",
	"give me",
	"what can you tell me",
	"what do we know",
	"overview",
	"performance",
	"summary",
}

// vagueWordLimit is the word count below which a vague phrase wins over
// explicit keywords.
const vagueWordLimit = 6

func allOf(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if !strings.Contains(text, w) {
				return false
			}
		}
		return true
	}
}

func anyOf(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

func both(a, b func(string) bool) func(string) bool {
	return func(text string) bool { return a(text) && b(text) }
}

// explicitRules are evaluated in order. Categories overlap, so position
// decides precedence.
var explicitRules = []Rule{
	{"sales+trend", allOf("sales", "trend"), catalog.SalesTrend},
	{"profit+margin", allOf("profit", "margin"), catalog.ProfitMargin},
	{"department+performance", allOf("department", "performance"), catalog.DepartmentPerformance},
	{"product+profit", both(anyOf("product"), anyOf("profitability", "profit")), catalog.ProductProfitability},
	{"customer+growth", both(anyOf("customer"), anyOf("acquisition", "growth")), catalog.CustomerAcquisition},
	{"region", anyOf("region", "regional"), catalog.RegionalAnalysis},
}

// ExplicitRules returns a copy of the explicit rule table in evaluation order.
func ExplicitRules() []Rule {
	return append([]Rule(nil), explicitRules...)
}

// IsVague reports whether text is a short open-ended question: it contains
// a vague phrase and has fewer than six words.
func IsVague(text string) bool {
	lower := strings.ToLower(text)
	if len(strings.Fields(lower)) >= vagueWordLimit {
		return false
	}
	for _, phrase := range VagueIndicators {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Classify picks the category for text. It never fails; unmatched input
// resolves to the general overview.
func Classify(text string) Decision {
	lower := strings.ToLower(text)

	if IsVague(lower) {
		category, rule := Resolve(lower)
		return Decision{Category: category, Route: RouteVague, Rule: rule}
	}

	for _, r := range explicitRules {
		if r.Match(lower) {
			return Decision{Category: r.Category, Route: RouteExplicit, Rule: r.Name}
		}
	}

	category, rule := Resolve(lower)
	return Decision{Category: category, Route: RouteFallback, Rule: rule}
}
