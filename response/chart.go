package response

import (
	"github.com/ManojS35/data-scribe-agent/engine"
)

// ============================================================================
// CHART BUILDER
// ============================================================================

// Palette is the default colour sequence for chart series.
var Palette = []string{
	"#4f46e5", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6",
	"#06b6d4", "#ec4899", "#84cc16", "#f97316", "#6366f1",
}

// Colors returns count palette colours, cycling when needed.
func Colors(count int) []string {
	colors := make([]string, count)
	for i := range colors {
		colors[i] = Palette[i%len(Palette)]
	}
	return colors
}

// Chart builds a single-series visualization plotting yKey against xKey.
// Rows are keyed by xKey, which is also the data key. Without explicit
// colors the first palette colour is used.
func Chart(id string, typ ChartType, title string, data []map[string]any, xKey, yKey string, colors ...string) Visualization {
	if len(colors) == 0 {
		colors = Colors(1)
	}
	if data == nil {
		data = []map[string]any{}
	}
	return Visualization{
		ID:    id,
		Type:  typ,
		Title: title,
		Data:  data,
		Config: ChartConfig{
			XAxis:   xKey,
			YAxis:   yKey,
			DataKey: xKey,
			Colors:  colors,
		},
	}
}

// GroupPoints turns aggregated groups into chart rows
// {labelKey: group label, valueKey: value rounded to 2 decimals}.
func GroupPoints(groups []engine.Group, labelKey, valueKey string) []map[string]any {
	points := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		points = append(points, map[string]any{
			labelKey: g.Label,
			valueKey: engine.RoundTo2(g.Value),
		})
	}
	return points
}
