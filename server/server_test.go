package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManojS35/data-scribe-agent/assistant"
	"github.com/ManojS35/data-scribe-agent/catalog"
	"github.com/ManojS35/data-scribe-agent/config"
	"github.com/ManojS35/data-scribe-agent/insight"
	"github.com/ManojS35/data-scribe-agent/logger"
	"github.com/ManojS35/data-scribe-agent/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type panicSource struct{}

func (panicSource) Lookup(catalog.Category) (response.Bundle, bool) {
	panic("boom: internal detail")
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.RateLimit = 0
	cfg.Assistant.DelayMS = 0
	return cfg
}

func newServer(t *testing.T, cfg *config.Config, src assistant.Source, delay time.Duration) *Server {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	if src == nil {
		src = cat
	}
	a := assistant.New(src, assistant.WithDelay(delay), assistant.WithMetrics(false))
	return New(cfg, a, cat, logger.Discard())
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postQuery(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, EndPointQuery, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(s, req)
}

func TestHealth(t *testing.T) {
	rec := do(newServer(t, testConfig(), nil, 0), httptest.NewRequest(http.MethodGet, EndPointHealth, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "datascribe", body["service"])
}

func TestQueryReturnsAssistantMessage(t *testing.T) {
	rec := postQuery(newServer(t, testConfig(), nil, 0), `{"query": "sales trend"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var msg Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	_, err := uuid.Parse(msg.ID)
	assert.NoError(t, err)
	assert.Equal(t, "assistant", msg.Role)
	assert.NotEmpty(t, msg.Content)
	assert.False(t, msg.Timestamp.IsZero())
	require.NotNil(t, msg.GeneratedQuery)
	assert.Contains(t, msg.GeneratedQuery.SQL, "ORDER BY CASE month")
	require.NotNil(t, msg.TableData)
	assert.Len(t, msg.TableData.Rows, 12)
	require.NotNil(t, msg.Classification)
	assert.Equal(t, catalog.SalesTrend, msg.Classification.Category)
}

func TestQueryVagueCarriesInsights(t *testing.T) {
	rec := postQuery(newServer(t, testConfig(), nil, 0), `{"query": "how is business"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var msg Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	require.NotNil(t, msg.Insights)
	assert.NotEmpty(t, msg.Insights.Regional)
	assert.NotEmpty(t, msg.Insights.Trends)
	assert.NotEmpty(t, msg.Insights.Anomalies)
}

func TestQueryEmptyTextStillAnswers(t *testing.T) {
	rec := postQuery(newServer(t, testConfig(), nil, 0), `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "general-overview")
}

func TestQueryRejectsMalformedJSON(t *testing.T) {
	rec := postQuery(newServer(t, testConfig(), nil, 0), `{"query":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryFailureIsGeneric(t *testing.T) {
	rec := postQuery(newServer(t, testConfig(), panicSource{}, 0), `{"query": "sales trend"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), GenericError)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestQueryCancelled(t *testing.T) {
	s := newServer(t, testConfig(), nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, EndPointQuery, strings.NewReader(`{"query":"sales trend"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	rec := do(s, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), GenericError)
}

func TestCategories(t *testing.T) {
	rec := do(newServer(t, testConfig(), nil, 0), httptest.NewRequest(http.MethodGet, EndPointCategories, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []catalog.Info `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Categories, 7)
}

func TestInsightsEndpoint(t *testing.T) {
	rec := do(newServer(t, testConfig(), nil, 0), httptest.NewRequest(http.MethodGet, EndPointInsights, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var in insight.Insights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &in))
	assert.Len(t, in.Regional, 8)
	assert.NotEmpty(t, in.Anomalies)
}

func TestWelcome(t *testing.T) {
	rec := do(newServer(t, testConfig(), nil, 0), httptest.NewRequest(http.MethodGet, EndPointWelcome, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var msg Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, assistant.Welcome, msg.Content)
	assert.Nil(t, msg.TableData)
}

func TestCORS(t *testing.T) {
	cfg := testConfig()
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	s := newServer(t, cfg, nil, 0)

	req := httptest.NewRequest(http.MethodOptions, EndPointQuery, nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := do(s, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, EndPointHealth, nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = do(s, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateBurst = 1
	s := newServer(t, cfg, nil, 0)

	first := do(s, httptest.NewRequest(http.MethodGet, EndPointWelcome, nil))
	second := do(s, httptest.NewRequest(http.MethodGet, EndPointWelcome, nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, do(s, httptest.NewRequest(http.MethodGet, EndPointHealth, nil)).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(newServer(t, testConfig(), nil, 0), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
