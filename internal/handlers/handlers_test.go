package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fincore/internal/cache"
	"fincore/internal/database"
	"fincore/internal/metrics"
	"fincore/internal/models"
	"fincore/internal/repository"
	"fincore/internal/services"
)

func fp(v float64) *float64 { return &v }

func newTestRouter(t *testing.T) (*gin.Engine, *services.StoreSet) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	stores := &services.StoreSet{
		SQLite:        repository.NewSQLiteFilingRepository(db.DB),
		DefaultSource: models.SourceSQLite,
	}
	memCache := cache.NewMemoryCache(time.Minute)
	analyticsSvc := services.NewAnalyticsService(stores, memCache, metrics.AltmanManufacturing)
	projectionSvc := services.NewProjectionService(stores)
	querySvc := services.NewQueryService(repository.NewQueryRepository(db.DB))

	companyHandler := NewCompanyHandler(analyticsSvc)
	benchmarkHandler := NewBenchmarkHandler(analyticsSvc)
	projectionHandler := NewProjectionHandler(projectionSvc)
	queryHandler := NewQueryHandler(querySvc)

	router := gin.New()
	router.GET("/companies", companyHandler.List)
	router.GET("/companies/:ticker/metrics", companyHandler.Metrics)
	router.GET("/documents/:ticker", companyHandler.Document)
	router.POST("/benchmark", benchmarkHandler.Benchmark)
	router.POST("/projections", projectionHandler.Project)
	router.POST("/query", queryHandler.Query)
	router.GET("/stats", companyHandler.Stats)
	return router, stores
}

func seedCompany(t *testing.T, stores *services.StoreSet, ticker string, equity *float64) {
	t.Helper()
	rec := &models.FilingRecord{
		Ticker:             ticker,
		Year:               2023,
		Revenue:            fp(1_000_000_000),
		NetIncome:          fp(100_000_000),
		TotalAssets:        fp(900_000_000),
		TotalLiabilities:   fp(400_000_000),
		Equity:             equity,
		CurrentAssets:      fp(400_000_000),
		CurrentLiabilities: fp(200_000_000),
		RetainedEarnings:   fp(250_000_000),
		MarketValueEquity:  fp(2_000_000_000),
		AuditPass:          true,
		FetchedAt:          time.Now().UTC(),
	}
	if err := stores.SQLite.Upsert(context.Background(), rec); err != nil {
		t.Fatalf("Failed to seed %s: %v", ticker, err)
	}
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMetricsEndpoint(t *testing.T) {
	router, stores := newTestRouter(t)
	// EBIT deliberately absent: the risk score must come back partial.
	seedCompany(t, stores, "AAPL", fp(500_000_000))

	w := doRequest(router, http.MethodGet, "/companies/AAPL/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.CompanyMetricsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Ticker != "AAPL" || resp.Period != "2023" {
		t.Errorf("Unexpected header: %+v", resp)
	}
	roe, ok := resp.Ratios.Get(models.RatioReturnOnEquity).Value()
	if !ok || roe != 0.20 {
		t.Errorf("Expected ROE 0.20, got %v (defined %v)", roe, ok)
	}
	if !resp.Risk.Partial {
		t.Error("Expected a partial risk score with EBIT missing")
	}
	if len(resp.Warnings) == 0 {
		t.Error("Expected warnings attached to the response")
	}

	// The missing EBIT must appear as JSON null, not 0.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to decode raw response: %v", err)
	}
	var record map[string]json.RawMessage
	if err := json.Unmarshal(raw["record"], &record); err != nil {
		t.Fatalf("Failed to decode record: %v", err)
	}
	if string(record["ebit"]) != "null" {
		t.Errorf("Expected ebit null on the wire, got %s", record["ebit"])
	}
}

func TestMetricsEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, http.MethodGet, "/companies/NOPE/metrics", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
}

func TestBenchmarkEndpoint(t *testing.T) {
	router, stores := newTestRouter(t)
	seedCompany(t, stores, "AAPL", fp(500_000_000))
	seedCompany(t, stores, "MSFT", fp(400_000_000))

	w := doRequest(router, http.MethodPost, "/benchmark", `{"ticker":"AAPL","peers":["MSFT"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.BenchmarkResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Result.PeerSize != 1 {
		t.Errorf("Expected peer size 1, got %d", resp.Result.PeerSize)
	}
}

func TestBenchmarkEndpointRequiresTicker(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, http.MethodPost, "/benchmark", `{"peers":["MSFT"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for a missing ticker, got %d", w.Code)
	}
}

func TestProjectionEndpointRejectsBadGrowthRate(t *testing.T) {
	router, stores := newTestRouter(t)
	seedCompany(t, stores, "AAPL", fp(500_000_000))

	w := doRequest(router, http.MethodPost, "/projections", `{"ticker":"AAPL","growth_rate":-2,"horizon":3}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProjectionEndpoint(t *testing.T) {
	router, stores := newTestRouter(t)
	seedCompany(t, stores, "AAPL", fp(500_000_000))

	w := doRequest(router, http.MethodPost, "/projections", `{"ticker":"AAPL","growth_rate":0.1,"horizon":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ProjectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Series.Periods) != 2 {
		t.Errorf("Expected 2 projected periods, got %d", len(resp.Series.Periods))
	}
}

func TestQueryEndpointRejectsWrites(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, http.MethodPost, "/query", `{"sql":"DELETE FROM financials"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for a write statement, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDocumentEndpointWithoutMongo(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, http.MethodGet, "/documents/AAPL", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 without a mongo connection, got %d", w.Code)
	}
}

func TestStatsEndpointDegradesWithoutMongo(t *testing.T) {
	router, stores := newTestRouter(t)
	seedCompany(t, stores, "AAPL", fp(500_000_000))

	w := doRequest(router, http.MethodGet, "/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var stats models.StoreStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if stats.SQLiteRecords != 1 || stats.MongoError == "" {
		t.Errorf("Expected 1 sqlite record and a mongo error, got %+v", stats)
	}
}
