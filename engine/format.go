package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// Round rounds v to places decimals, half away from zero.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundTo1 rounds to 1 decimal place.
func RoundTo1(v float64) float64 { return Round(v, 1) }

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 { return Round(v, 2) }

// Fixed formats v with a fixed number of decimals ("30.0").
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatNumber formats v the way a dashboard shows counts and amounts:
// whole numbers with separators, fractional values to at most 2 decimals.
func FormatNumber(v float64) string {
	r := RoundTo2(v)
	whole := int64(r)
	if float64(whole) == r {
		return FormatInt(whole)
	}
	frac := strings.TrimRight(Fixed(r-float64(whole), 2), "0")
	frac = strings.TrimPrefix(strings.TrimPrefix(frac, "-"), "0")
	sign := ""
	if r < 0 && whole == 0 {
		sign = "-"
	}
	return sign + FormatInt(whole) + frac
}

// FormatMoney formats an amount as "$4,000".
func FormatMoney(v float64) string {
	if v < 0 {
		return "-$" + FormatNumber(-v)
	}
	return "$" + FormatNumber(v)
}

// Percent formats a percentage with one decimal ("30.0%").
func Percent(v float64) string {
	return Fixed(v, 1) + "%"
}
