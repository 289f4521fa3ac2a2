package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	datascribe "github.com/ManojS35/data-scribe-agent"
	"github.com/ManojS35/data-scribe-agent/response"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "datascribe "+datascribe.Version+"\n", out)
}

func TestAskJSON(t *testing.T) {
	out, err := execute(t, "ask", "what's", "our", "sales", "trend?")
	require.NoError(t, err)

	var got cliOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "what's our sales trend?", got.Query)
	assert.Equal(t, "sales-trend", string(got.Classification.Category))
	require.NotNil(t, got.Answer.TableData)
	assert.Len(t, got.Answer.TableData.Rows, 12)
}

func TestAskText(t *testing.T) {
	out, err := execute(t, "ask", "--format", "text", "sales trend")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Sales Trend\n\n"))
	assert.Contains(t, out, "January")
}

func TestAskCSVWritesTable(t *testing.T) {
	out, err := execute(t, "ask", "-f", "csv", "show department performance")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Engineering", rows[1][0])
}

func TestAskRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "ask", "--format", "xml", "sales trend")
	assert.Error(t, err)
}

func TestAskNeedsQuestion(t *testing.T) {
	_, err := execute(t, "ask")
	assert.Error(t, err)
}

func TestInsightsText(t *testing.T) {
	out, err := execute(t, "insights")
	require.NoError(t, err)
	assert.Contains(t, out, "Regional")
	assert.Contains(t, out, "Trends")
	assert.Contains(t, out, "Anomalies")
}

func TestChartCSVFallback(t *testing.T) {
	b := response.Bundle{
		Visualizations: []response.Visualization{
			response.Chart("c", response.Bar, "t", []map[string]any{
				{"month": "Jan", "sales": 4000.0},
				{"month": "Feb", "sales": 4500.5},
			}, "month", "sales"),
		},
	}
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, b))
	assert.Equal(t, "month,sales\nJan,4000\nFeb,4500.50\n", buf.String())
}

func TestFmtNum(t *testing.T) {
	assert.Equal(t, "12", fmtNum(12))
	assert.Equal(t, "-3.25", fmtNum(-3.25))
}
