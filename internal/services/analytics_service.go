package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"fincore/internal/cache"
	"fincore/internal/metrics"
	"fincore/internal/models"
)

// AnalyticsService derives ratio sets, risk assessments, benchmarks and
// dashboard aggregates from stored filings. All computation is delegated to
// the pure metrics engine; this layer only loads records and surfaces
// warnings.
type AnalyticsService struct {
	stores  *StoreSet
	cache   *cache.MemoryCache
	scoring metrics.ScoringModel
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(stores *StoreSet, memCache *cache.MemoryCache, scoring metrics.ScoringModel) *AnalyticsService {
	return &AnalyticsService{stores: stores, cache: memCache, scoring: scoring}
}

// CompanyMetrics loads a company's latest record and derives its ratio set
// and risk assessment
func (s *AnalyticsService) CompanyMetrics(ctx context.Context, ticker string, source models.DataSource) (*models.CompanyMetricsResponse, error) {
	defer TrackTime("CompanyMetrics", time.Now())

	repo, _, err := s.stores.Repo(source)
	if err != nil {
		return nil, err
	}

	raw, err := repo.Get(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", ticker, err)
	}

	rec := metrics.Normalize(*raw)
	if missing := metrics.MissingFigures(rec); len(missing) > 0 {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnFiguresMissing,
			Message: fmt.Sprintf("%s %s: unavailable figures: %s", rec.Ticker, rec.Period(), strings.Join(missing, ", ")),
		})
	}
	if !raw.AuditPass {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnAuditMismatch,
			Message: fmt.Sprintf("%s %s: assets do not reconcile with liabilities + equity", rec.Ticker, rec.Period()),
		})
	}

	risk := metrics.AssessRisk(rec, s.scoring)
	if risk.Partial {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnPartialRiskScore,
			Message: fmt.Sprintf("%s %s: risk score computed without: %s", rec.Ticker, rec.Period(), strings.Join(risk.MissingInputs, ", ")),
		})
	}

	return &models.CompanyMetricsResponse{
		Ticker: rec.Ticker,
		Period: rec.Period(),
		Record: rec,
		Ratios: metrics.ComputeRatios(rec),
		Risk:   risk,
	}, nil
}

// Benchmark positions a target company against a peer group. An empty peer
// list benchmarks against every other stored company. Peer ratio sets are
// cached per peer group; the cache key changes whenever the peer set does.
func (s *AnalyticsService) Benchmark(ctx context.Context, req *models.BenchmarkRequest) (*models.BenchmarkResult, error) {
	defer TrackTime("Benchmark", time.Now())

	repo, source, err := s.stores.Repo(req.Source)
	if err != nil {
		return nil, err
	}

	targetRaw, err := repo.Get(ctx, req.Ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load target %s: %w", req.Ticker, err)
	}
	target := metrics.ComputeRatios(metrics.Normalize(*targetRaw))

	peerTickers, err := s.resolvePeers(ctx, req, targetRaw.Ticker)
	if err != nil {
		return nil, err
	}
	if len(peerTickers) == 0 {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnEmptyPeerGroup,
			Message: fmt.Sprintf("no peers available for %s; all aggregates undefined", req.Ticker),
		})
	}

	peers, err := s.peerRatios(ctx, source, peerTickers)
	if err != nil {
		return nil, err
	}

	result := metrics.Benchmark(target, peers)
	result.Ticker = targetRaw.Ticker

	for _, name := range models.AllRatios {
		bench := result.Ratios[name]
		if excluded := len(peers) - bench.PeerCount; excluded > 0 {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnPeersExcluded,
				Message: fmt.Sprintf("%s: %d peer(s) excluded from the %s aggregate (undefined)", req.Ticker, excluded, name),
			})
		}
	}
	return &result, nil
}

// resolvePeers expands an empty peer list to "every other stored company"
func (s *AnalyticsService) resolvePeers(ctx context.Context, req *models.BenchmarkRequest, target string) ([]string, error) {
	if len(req.Peers) > 0 {
		var peers []string
		for _, p := range req.Peers {
			if p = strings.ToUpper(strings.TrimSpace(p)); p != "" && p != target {
				peers = append(peers, p)
			}
		}
		return peers, nil
	}

	repo, _, err := s.stores.Repo(req.Source)
	if err != nil {
		return nil, err
	}
	items, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list peers: %w", err)
	}
	seen := map[string]bool{target: true}
	var peers []string
	for _, item := range items {
		if !seen[item.Ticker] {
			seen[item.Ticker] = true
			peers = append(peers, item.Ticker)
		}
	}
	return peers, nil
}

// peerRatios loads and computes the peer group's ratio sets, consulting the
// peer-group cache first
func (s *AnalyticsService) peerRatios(ctx context.Context, source models.DataSource, tickers []string) ([]models.RatioSet, error) {
	key := cache.PeerKey(source, tickers)
	if ratios, ok := s.cache.GetPeerRatios(key); ok {
		return ratios, nil
	}

	repo, _, err := s.stores.Repo(source)
	if err != nil {
		return nil, err
	}

	ratios := make([]models.RatioSet, 0, len(tickers))
	for _, ticker := range tickers {
		raw, err := repo.Get(ctx, ticker)
		if err != nil {
			// A requested peer that is not stored is dropped, not fatal.
			AddWarning(ctx, models.Warning{
				Code:    models.WarnPeersExcluded,
				Message: fmt.Sprintf("peer %s not found in store; dropped from peer group", ticker),
			})
			continue
		}
		ratios = append(ratios, metrics.ComputeRatios(metrics.Normalize(*raw)))
	}

	s.cache.SetPeerRatios(key, ratios)
	return ratios, nil
}

// ListCompanies returns the stored company metadata
func (s *AnalyticsService) ListCompanies(ctx context.Context, source models.DataSource) ([]*models.CompanyListItem, error) {
	repo, _, err := s.stores.Repo(source)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// Overview computes the dashboard aggregates across all stored companies.
// Sums skip unavailable figures; the average margin is the mean of the
// defined per-company profit margins and is undefined when no company
// defines one.
func (s *AnalyticsService) Overview(ctx context.Context, source models.DataSource) (*models.OverviewResponse, error) {
	defer TrackTime("Overview", time.Now())

	repo, _, err := s.stores.Repo(source)
	if err != nil {
		return nil, err
	}
	records, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load filings: %w", err)
	}

	overview := &models.OverviewResponse{
		Companies:       len(records),
		AvgProfitMargin: models.UndefinedRatio(),
	}

	var marginSum float64
	var marginCount int
	for _, raw := range records {
		rec := metrics.Normalize(*raw)
		if v, ok := rec.Revenue.Value(); ok {
			overview.TotalRevenue += v
		}
		if v, ok := rec.NetIncome.Value(); ok {
			overview.TotalNetIncome += v
		}
		if margin, ok := metrics.ComputeRatios(rec).Get(models.RatioProfitMargin).Value(); ok {
			marginSum += margin
			marginCount++
		}
	}
	if marginCount > 0 {
		overview.AvgProfitMargin = models.RatioOf(marginSum / float64(marginCount))
	}
	return overview, nil
}

// Stats reports record counts for both stores. A missing Mongo connection
// degrades to a reported error string rather than failing the request.
func (s *AnalyticsService) Stats(ctx context.Context) (*models.StoreStats, error) {
	stats := &models.StoreStats{}

	count, err := s.stores.SQLite.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sqlite records: %w", err)
	}
	stats.SQLiteRecords = count

	if s.stores.Mongo == nil {
		stats.MongoError = ErrMongoUnavailable.Error()
		return stats, nil
	}
	mongoCount, err := s.stores.Mongo.Count(ctx)
	if err != nil {
		stats.MongoError = err.Error()
		return stats, nil
	}
	stats.MongoRecords = mongoCount
	return stats, nil
}

// RawDocument returns the stored MongoDB document for a ticker, for the
// document viewer
func (s *AnalyticsService) RawDocument(ctx context.Context, ticker string) (bson.M, error) {
	if s.stores.Mongo == nil {
		return nil, ErrMongoUnavailable
	}
	return s.stores.Mongo.GetRawDocument(ctx, ticker)
}
