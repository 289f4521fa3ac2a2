package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManojS35/data-scribe-agent/catalog"
	"github.com/ManojS35/data-scribe-agent/classifier"
	"github.com/ManojS35/data-scribe-agent/response"
)

func newAssistant(t *testing.T, opts ...Option) *Assistant {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return New(cat, append([]Option{WithDelay(0), WithMetrics(false)}, opts...)...)
}

func TestScenarioSalesTrend(t *testing.T) {
	b, err := newAssistant(t).Process(context.Background(), "sales trend")
	require.NoError(t, err)

	assert.Contains(t, b.GeneratedQuery.SQL, "ORDER BY CASE month")
	require.NotNil(t, b.TableData)
	assert.Len(t, b.TableData.Rows, 12)
}

func TestScenarioVagueBusinessQuestion(t *testing.T) {
	b, err := newAssistant(t).Process(context.Background(), "how is business")
	require.NoError(t, err)

	require.NotNil(t, b.Insights)
	assert.NotEmpty(t, b.Insights.Regional)
	assert.NotEmpty(t, b.Insights.Trends)
	assert.NotEmpty(t, b.Insights.Anomalies)
	require.NotNil(t, b.TableData)
	assert.Len(t, b.TableData.Rows, 12)
}

func TestScenarioNonsenseFallsThrough(t *testing.T) {
	ans, err := newAssistant(t).Answer(context.Background(), "xyz123 nonsense")
	require.NoError(t, err)
	assert.Equal(t, catalog.GeneralOverview, ans.Decision.Category)
	assert.Equal(t, classifier.RouteFallback, ans.Decision.Route)
	assert.True(t, ans.Bundle.HasInsights())
}

func TestScenarioDepartmentPerformance(t *testing.T) {
	b, err := newAssistant(t).Process(context.Background(), "department performance")
	require.NoError(t, err)
	require.NotNil(t, b.TableData)
	assert.Len(t, b.TableData.Rows, 4)
}

func TestEveryInputYieldsBundle(t *testing.T) {
	a := newAssistant(t)
	for _, text := range []string{"", "   ", "?!", strings.Repeat("word ", 200), "ПРОДАЖИ", "\x00\x01"} {
		b, err := a.Process(context.Background(), text)
		require.NoError(t, err, "%q", text)
		assert.NotEmpty(t, b.Response)
	}
}

func TestProcessReturnsIndependentCopies(t *testing.T) {
	a := newAssistant(t)
	first, err := a.Process(context.Background(), "profit margin")
	require.NoError(t, err)
	first.TableData.Rows = nil

	second, err := a.Process(context.Background(), "profit margin")
	require.NoError(t, err)
	assert.Len(t, second.TableData.Rows, 12)
}

func TestDelayHonoursCancellation(t *testing.T) {
	a := newAssistant(t, WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Process(ctx, "sales trend")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelayIsApplied(t *testing.T) {
	a := newAssistant(t, WithDelay(20*time.Millisecond))
	start := time.Now()
	_, err := a.Process(context.Background(), "sales trend")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

type panicSource struct{}

func (panicSource) Lookup(catalog.Category) (response.Bundle, bool) {
	panic("unexpected record shape")
}

type emptySource struct{}

func (emptySource) Lookup(catalog.Category) (response.Bundle, bool) {
	return response.Bundle{}, false
}

func TestPanicSurfacesAsProcessingFailed(t *testing.T) {
	log, hook := test.NewNullLogger()
	a := New(panicSource{}, WithDelay(0), WithMetrics(false), WithLogger(log))

	b, err := a.Process(context.Background(), "sales trend")
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrProcessingFailed)
	assert.NotContains(t, err.Error(), "unexpected record shape")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "unexpected record shape", hook.LastEntry().Data["panic"])
}

func TestMissingBundleFails(t *testing.T) {
	_, err := New(emptySource{}, WithDelay(0), WithMetrics(false)).Process(context.Background(), "sales trend")
	assert.ErrorIs(t, err, ErrProcessingFailed)

	_, err = New(nil, WithDelay(0), WithMetrics(false)).Process(context.Background(), "sales trend")
	assert.ErrorIs(t, err, ErrProcessingFailed)
}

func TestAnswerIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	_, err := newAssistant(t, WithLogger(log)).Process(context.Background(), "regional breakdown")
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "question answered", entry.Message)
	assert.Equal(t, catalog.RegionalAnalysis, entry.Data["category"])
	assert.Equal(t, classifier.RouteExplicit, entry.Data["route"])
}
