package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ManojS35/data-scribe-agent/catalog"
	"github.com/ManojS35/data-scribe-agent/classifier"
	"github.com/ManojS35/data-scribe-agent/engine"
	"github.com/ManojS35/data-scribe-agent/insight"
	"github.com/ManojS35/data-scribe-agent/response"
)

const (
	formatJSON   = "json"
	formatPretty = "pretty"
	formatText   = "text"
	formatCSV    = "csv"
)

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatPretty, formatText, formatCSV:
		return nil
	}
	return fmt.Errorf("unsupported format %q (want json, pretty, text or csv)", format)
}

// ============================================================================
// OUTPUT TYPES
// ============================================================================

type cliOutput struct {
	Query          string              `json:"query"`
	Classification classifier.Decision `json:"classification"`
	Answer         response.Bundle     `json:"answer"`
}

func render(w io.Writer, format string, out cliOutput) error {
	switch format {
	case formatCSV:
		return writeCSV(w, out.Answer)
	case formatText:
		_, err := fmt.Fprintf(w, "%s\n\n%s\n", catalog.Title(out.Classification.Category), out.Answer.Response)
		return err
	default:
		return writeJSON(w, out, format)
	}
}

// ============================================================================
// CSV OUTPUT
// ============================================================================

// writeCSV prefers the table; otherwise it writes the first chart's points.
func writeCSV(w io.Writer, b response.Bundle) error {
	cw := csv.NewWriter(w)

	switch {
	case b.TableData != nil && len(b.TableData.Headers) > 0:
		writeTableCSV(cw, b.TableData)
	case len(b.Visualizations) > 0:
		writeChartCSV(cw, b.Visualizations[0])
	default:
		_ = cw.Write([]string{"Summary"})
		_ = cw.Write([]string{b.Response})
	}

	cw.Flush()
	return cw.Error()
}

func writeTableCSV(cw *csv.Writer, t *response.Table) {
	_ = cw.Write(t.Headers)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cellString(c)
		}
		_ = cw.Write(cells)
	}
}

func writeChartCSV(cw *csv.Writer, v response.Visualization) {
	xKey, yKey := v.Config.XAxis, v.Config.YAxis
	if xKey == "" {
		xKey = "label"
	}
	if yKey == "" {
		yKey = "value"
	}
	_ = cw.Write([]string{xKey, yKey})
	for _, point := range v.Data {
		_ = cw.Write([]string{cellString(point[xKey]), cellString(point[yKey])})
	}
}

// ============================================================================
// JSON / TEXT OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, format string) error {
	var (
		out []byte
		err error
	)
	if format == formatPretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeInsightsText(w io.Writer, in insight.Insights) {
	var lines []string
	if len(in.Regional) > 0 {
		lines = append(lines, "Regional")
		for _, r := range in.Regional {
			lines = append(lines, fmt.Sprintf("  %s  %s: %s (%s, %s)",
				r.Region, r.Metric, fmtNum(r.Value), r.Trend, r.Comparison))
		}
	}
	if len(in.Trends) > 0 {
		lines = append(lines, "Trends")
		for _, t := range in.Trends {
			line := fmt.Sprintf("  %s %s: %s %s%%", t.Metric, t.Period, t.Direction, fmtNum(t.PercentageChange))
			if t.Seasonality != "" {
				line += "; " + t.Seasonality
			}
			lines = append(lines, line)
		}
	}
	if len(in.Anomalies) > 0 {
		lines = append(lines, "Anomalies")
		for _, a := range in.Anomalies {
			lines = append(lines, fmt.Sprintf("  %s %s: %s, expected %s to %s (%s sigma)",
				a.Period, a.Metric, fmtNum(a.Value),
				fmtNum(a.ExpectedRange[0]), fmtNum(a.ExpectedRange[1]), fmtNum(a.Deviation)))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "No insights.")
	}
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

// ============================================================================
// HELPERS
// ============================================================================

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmtNum(x)
	case int:
		return fmt.Sprintf("%d", x)
	default:
		return fmt.Sprint(x)
	}
}

// fmtNum prints whole numbers bare and fractions with two decimals.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return engine.Fixed(v, 2)
}
