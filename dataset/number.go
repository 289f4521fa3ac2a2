package dataset

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a numeric field after ingestion: either a value or absent.
// Raw cells arrive as numbers, numeric-looking text, or nulls; they are
// coerced exactly once, here, so consumers never re-parse.
type Number struct {
	Value float64
	Valid bool
}

// Some wraps a present value.
func Some(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Null is the absent value.
var Null = Number{}

// Get returns the value and whether it is present.
func (n Number) Get() (float64, bool) {
	return n.Value, n.Valid
}

// Or returns the value, or fallback when absent.
func (n Number) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Value
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Null
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*n = Some(v)
	case string:
		*n = ParseNumber(v)
	default:
		*n = Null
	}
	return nil
}

// nullTokens are cell values treated as missing.
var nullTokens = map[string]bool{
	"":     true,
	"null": true,
	"nil":  true,
	"none": true,
	"n/a":  true,
	"na":   true,
	"-":    true,
}

// ParseNumber coerces a raw cell to a Number. Currency symbols, thousands
// separators and surrounding whitespace are tolerated; anything else that
// does not parse is absent.
func ParseNumber(raw string) Number {
	s := strings.TrimSpace(raw)
	if isNullToken(s) {
		return Null
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Null
	}
	return Some(d.InexactFloat64())
}

func isNullToken(s string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(s))]
}
