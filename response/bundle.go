// Package response defines the bundle returned for every question: the
// fabricated SQL with its explanation, narrative text, chart specs, an
// optional table and optional insight blocks.
package response

import (
	"github.com/ManojS35/data-scribe-agent/insight"
)

// ============================================================================
// BUNDLE TYPES
// ============================================================================

// GeneratedQuery is the illustrative SQL shown alongside an answer.
type GeneratedQuery struct {
	SQL         string `json:"sql"`
	Explanation string `json:"explanation"`
}

// ChartType is the renderer tag of a visualization.
type ChartType string

const (
	Line ChartType = "line"
	Bar  ChartType = "bar"
	Pie  ChartType = "pie"
	Area ChartType = "area"
)

// ChartConfig carries axis and colour hints for a renderer.
type ChartConfig struct {
	XAxis   string   `json:"xAxis,omitempty"`
	YAxis   string   `json:"yAxis,omitempty"`
	DataKey string   `json:"dataKey,omitempty"`
	Colors  []string `json:"colors,omitempty"`
}

// Visualization is one chart definition.
type Visualization struct {
	ID     string           `json:"id"`
	Type   ChartType        `json:"type"`
	Title  string           `json:"title"`
	Data   []map[string]any `json:"data"`
	Config ChartConfig      `json:"config"`
}

// Table is a header row plus data rows.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// Bundle is the complete answer to one question.
type Bundle struct {
	GeneratedQuery GeneratedQuery    `json:"generatedQuery"`
	Response       string            `json:"response"`
	Visualizations []Visualization   `json:"visualizations"`
	TableData      *Table            `json:"tableData,omitempty"`
	Insights       *insight.Insights `json:"insights,omitempty"`
}

// Clone returns a deep copy of b.
func (b Bundle) Clone() Bundle {
	out := Bundle{
		GeneratedQuery: b.GeneratedQuery,
		Response:       b.Response,
	}
	if b.Visualizations != nil {
		out.Visualizations = make([]Visualization, len(b.Visualizations))
		for i, v := range b.Visualizations {
			out.Visualizations[i] = v.Clone()
		}
	}
	if b.TableData != nil {
		t := b.TableData.Clone()
		out.TableData = &t
	}
	if b.Insights != nil {
		in := b.Insights.Clone()
		out.Insights = &in
	}
	return out
}

// Clone returns a deep copy of v.
func (v Visualization) Clone() Visualization {
	out := v
	out.Config.Colors = append([]string(nil), v.Config.Colors...)
	if v.Data != nil {
		out.Data = make([]map[string]any, len(v.Data))
		for i, point := range v.Data {
			cp := make(map[string]any, len(point))
			for k, val := range point {
				cp[k] = val
			}
			out.Data[i] = cp
		}
	}
	return out
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := Table{Headers: append([]string(nil), t.Headers...)}
	if t.Rows != nil {
		out.Rows = make([][]any, len(t.Rows))
		for i, row := range t.Rows {
			out.Rows[i] = append([]any(nil), row...)
		}
	}
	return out
}

// HasInsights reports whether the bundle carries any finding.
func (b Bundle) HasInsights() bool {
	return b.Insights != nil && !b.Insights.IsEmpty()
}
