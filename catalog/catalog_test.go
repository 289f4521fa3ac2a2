package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManojS35/data-scribe-agent/dataset"
	"github.com/ManojS35/data-scribe-agent/insight"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

var fixed = []Category{
	SalesTrend, ProfitMargin, DepartmentPerformance,
	ProductProfitability, CustomerAcquisition, RegionalAnalysis,
}

func TestLookupNeverFailsForFixedCategories(t *testing.T) {
	c := newCatalog(t)
	for _, key := range fixed {
		t.Run(string(key), func(t *testing.T) {
			b, ok := c.Lookup(key)
			require.True(t, ok)
			assert.NotEmpty(t, b.GeneratedQuery.SQL)
			assert.NotEmpty(t, b.GeneratedQuery.Explanation)
			assert.NotEmpty(t, b.Response)
			require.Len(t, b.Visualizations, 1)
			assert.NotEmpty(t, b.Visualizations[0].Data)
			require.NotNil(t, b.TableData)
			for _, row := range b.TableData.Rows {
				assert.Len(t, row, len(b.TableData.Headers))
			}
		})
	}

	_, ok := c.Lookup(Category("unknown"))
	assert.False(t, ok)
}

func TestNewRequiresDataset(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestLookupReturnsCopies(t *testing.T) {
	c := newCatalog(t)
	b, _ := c.Lookup(SalesTrend)
	b.TableData.Rows[0][1] = "tampered"
	b.Visualizations[0].Data[0]["sales"] = -1.0
	b.Response = ""

	again, _ := c.Lookup(SalesTrend)
	assert.Equal(t, "4,000", again.TableData.Rows[0][1])
	assert.Equal(t, 4000.0, again.Visualizations[0].Data[0]["sales"])
	assert.NotEmpty(t, again.Response)
}

func TestSalesTrendEntry(t *testing.T) {
	b, _ := newCatalog(t).Lookup(SalesTrend)

	sql := b.GeneratedQuery.SQL
	assert.Contains(t, sql, "ORDER BY CASE month")
	assert.Contains(t, sql, "WHEN 'Jan' THEN 1")
	assert.Contains(t, sql, "WHEN 'Dec' THEN 12")
	assert.Less(t, strings.Index(sql, "'Jan'"), strings.Index(sql, "'Feb'"))

	require.Len(t, b.TableData.Rows, 12)
	assert.Equal(t, []any{"Jan", "4,000"}, b.TableData.Rows[0])
	assert.Equal(t, []any{"Dec", "9,000"}, b.TableData.Rows[11])

	assert.Contains(t, b.Response, "$4,000 in January")
	assert.Contains(t, b.Response, "$9,000 in December")
	assert.Contains(t, b.Response, "125% increase")

	viz := b.Visualizations[0]
	assert.Equal(t, "line", string(viz.Type))
	assert.Equal(t, "month", viz.Config.XAxis)
	assert.Equal(t, "sales", viz.Config.YAxis)

	require.NotNil(t, b.Insights)
	assert.NotEmpty(t, b.Insights.Trends)
	assert.NotEmpty(t, b.Insights.Anomalies)
}

func TestDepartmentPerformanceUsesNormalisedDepartments(t *testing.T) {
	b, _ := newCatalog(t).Lookup(DepartmentPerformance)

	require.Len(t, b.TableData.Rows, 4)
	assert.Equal(t, []any{"Engineering", "95.3", "95,000"}, b.TableData.Rows[0])
	assert.Equal(t, []any{"Finance", "90.5", "83,500"}, b.TableData.Rows[1])
	assert.Equal(t, []any{"Sales", "88.7", "73,667"}, b.TableData.Rows[2])
	assert.Equal(t, []any{"Marketing", "88.0", "69,000"}, b.TableData.Rows[3])
	require.Len(t, b.Visualizations[0].Data, 4)
	assert.Equal(t, map[string]any{"department": "Engineering", "avgPerformance": 95.3}, b.Visualizations[0].Data[0])
	assert.Equal(t, 88.0, b.Visualizations[0].Data[3]["avgPerformance"])
	assert.Contains(t, b.Response, "Engineering has the highest average performance score at 95.3")
}

func TestProductProfitability(t *testing.T) {
	b, _ := newCatalog(t).Lookup(ProductProfitability)

	require.Len(t, b.TableData.Rows, 8)
	assert.Equal(t, "Desk Lamp", b.TableData.Rows[0][0])
	assert.Equal(t, "Home", b.TableData.Rows[0][1])
	assert.Equal(t, "125.0%", b.TableData.Rows[0][5])

	last := b.TableData.Rows[7]
	assert.Equal(t, "Coffee Maker", last[0])
	assert.Equal(t, missing, last[3])

	assert.Len(t, b.Visualizations[0].Data, 7, "products without cost stay off the chart")
	assert.Equal(t, "Desk Lamp", b.Visualizations[0].Data[0]["name"])
	assert.Contains(t, b.Response, "Desk Lamp has the highest ROI at 125.0%")
	assert.Contains(t, b.Response, "Laptop Pro has the best profit per unit at $400")
}

func TestRegionalEntryUsesEngine(t *testing.T) {
	c := newCatalog(t)
	b, _ := c.Lookup(RegionalAnalysis)

	require.NotNil(t, b.Insights)
	set, err := dataset.Default()
	require.NoError(t, err)
	assert.Equal(t, insight.Regional(set.Sales()), b.Insights.Regional)

	require.Len(t, b.TableData.Rows, 4)
	assert.Equal(t, "Region A", b.TableData.Rows[0][0])
	assert.Contains(t, b.Response, "Region D leads")
	assert.Contains(t, b.Response, "June and November")
}

func TestInsightsIsUniformAcrossEntries(t *testing.T) {
	c := newCatalog(t)
	for _, key := range []Category{SalesTrend, ProfitMargin, ProductProfitability, CustomerAcquisition, RegionalAnalysis, GeneralOverview} {
		in, ok := c.Insights(key)
		require.True(t, ok, key)
		assert.False(t, in.IsEmpty(), key)
	}
	_, ok := c.Insights(DepartmentPerformance)
	assert.False(t, ok)
}

func TestGeneralOverview(t *testing.T) {
	c := newCatalog(t)
	b := c.GeneralOverview()

	require.NotNil(t, b.Insights)
	assert.NotEmpty(t, b.Insights.Regional)
	assert.NotEmpty(t, b.Insights.Trends)
	assert.NotEmpty(t, b.Insights.Anomalies)

	require.Len(t, b.TableData.Rows, 12)
	assert.Equal(t, "N/A", b.TableData.Rows[5][4], "June has no region")
	assert.Contains(t, b.Response, "$73,000 in sales")
	assert.Contains(t, b.Response, "1,973 customers")

	again, ok := c.Lookup(GeneralOverview)
	require.True(t, ok)
	assert.Equal(t, b, again)
}

func TestCategories(t *testing.T) {
	c := newCatalog(t)
	cats := c.Categories()
	require.Len(t, cats, 7)
	assert.Equal(t, SalesTrend, cats[0].Key)
	assert.Equal(t, "Regional Analysis", Title(RegionalAnalysis))
	assert.Equal(t, "other", Title(Category("other")))
}

func TestMarginNarrativeFollowsSpread(t *testing.T) {
	steady := marginNarrative([]float64{30, 30.5, 29.5, 30})
	assert.Contains(t, steady, "remained consistent")
	assert.Contains(t, steady, "stable cost management")
	assert.NotContains(t, steady, "swings")

	varied := marginNarrative([]float64{20, 40, 25, 35})
	assert.Contains(t, varied, "varied noticeably")
	assert.Contains(t, varied, "swings")
	assert.NotContains(t, varied, "stable cost management")
}

func TestProfitMarginNarrativeOnEmbeddedData(t *testing.T) {
	b, _ := newCatalog(t).Lookup(ProfitMargin)
	assert.Contains(t, b.Response, "remained consistent")
	assert.Contains(t, b.Response, "stable cost management")
}
