package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	month  string
	region string
	sales  float64
	hasVal bool
}

var rowAdapter = NewDomainAdapter[row]().
	Dimension("month", func(r row) string { return r.month }).
	Dimension("region", func(r row) string { return r.region }).
	Measure("sales", func(r row) (float64, bool) { return r.sales, r.hasVal })

func sampleView() RecordView {
	return rowAdapter.Bind([]row{
		{"Jan", "north", 100, true},
		{"Feb", "south", 200, true},
		{"Mar", "", 300, true},
		{"Apr", "north", 0, false},
		{"May", "north", 50, true},
	})
}

func TestGroupBySkipsEmptyKeys(t *testing.T) {
	groups := GroupBy(sampleView(), "region")
	require.Len(t, groups, 2)
	assert.Equal(t, "north", groups[0].Key)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, "south", groups[1].Key)

	total, n := Sum(groups[0].View, "sales")
	assert.Equal(t, 150.0, total)
	assert.Equal(t, 2, n)
}

func TestAvgSkipsAbsent(t *testing.T) {
	avg, ok := Avg(sampleView(), "sales")
	require.True(t, ok)
	assert.Equal(t, 162.5, avg)

	_, ok = Avg(sampleView(), "missing")
	assert.False(t, ok)
}

func TestMeanAndStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 5.0, Mean(values))
	assert.Equal(t, 2.0, StdDev(values))
	assert.Equal(t, 0.0, StdDev(nil))
	assert.False(t, math.IsNaN(Mean(nil)))
}

func TestSortGroups(t *testing.T) {
	groups := []Group{{Label: "b", Value: 1}, {Label: "a", Value: 3}, {Label: "c", Value: 2}}
	SortGroups(groups, "value_desc")
	assert.Equal(t, "a", groups[0].Label)
	SortGroups(groups, "label_asc")
	assert.Equal(t, []string{"a", "b", "c"}, []string{groups[0].Label, groups[1].Label, groups[2].Label})
}

func TestGrowthOf(t *testing.T) {
	g := GrowthOf(sampleView(), "sales", "month")
	assert.Equal(t, "Jan", g.EarliestPeriod)
	assert.Equal(t, "May", g.LatestPeriod)
	assert.Equal(t, -50.0, g.ChangeAmount)
	assert.Equal(t, -50.0, g.ChangePercent)
	assert.Equal(t, "decreased", g.Direction)

	single := rowAdapter.Bind([]row{{"Jan", "x", 10, true}})
	assert.Equal(t, "insufficient data", GrowthOf(single, "sales", "month").Direction)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "4,000", FormatNumber(4000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "33.33", FormatNumber(33.333))
	assert.Equal(t, "12.5", FormatNumber(12.5))
	assert.Equal(t, "-12.5", FormatNumber(-12.5))
	assert.Equal(t, "$9,000", FormatMoney(9000))
	assert.Equal(t, "30.0%", Percent(30))
	assert.Equal(t, "95.3", Fixed(95.333, 1))
	assert.Equal(t, 2.35, RoundTo2(2.345))
	assert.Equal(t, 79.2, RoundTo1(79.1666))
}
