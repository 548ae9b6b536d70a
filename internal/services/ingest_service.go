package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fincore/internal/cache"
	"fincore/internal/edgar"
	"fincore/internal/models"
	"fincore/internal/repository"
)

// auditTolerance is how far (in dollars) assets may drift from
// liabilities + equity before the record is flagged. Source data is noisy;
// the flag is informational and never gates storage.
const auditTolerance = 1e6

// maxConcurrentFetches bounds the EDGAR fan-out. The client also rate
// limits itself, but there is no point queueing fifty in-flight requests.
const maxConcurrentFetches = 5

// FigureFetcher is the slice of the EDGAR client the ingest service needs
type FigureFetcher interface {
	GetLatestAnnualFigures(ctx context.Context, ticker string) (*edgar.CompanyFigures, error)
}

// IngestService fetches 10-K figures from EDGAR and lands them in the
// selected warehouse store
type IngestService struct {
	fetcher FigureFetcher
	stores  *StoreSet
	cache   *cache.MemoryCache
}

// StoreSet holds the repositories for both warehouse stores. Mongo may be
// nil when the document store is not connected.
type StoreSet struct {
	SQLite *repository.SQLiteFilingRepository
	Mongo  *repository.MongoFilingRepository

	DefaultSource models.DataSource
}

// ErrMongoUnavailable is returned when a request selects the document
// store but no MongoDB connection exists.
var ErrMongoUnavailable = fmt.Errorf("mongodb store not connected")

// Repo resolves a data source to its repository. An empty source selects
// the configured default.
func (s *StoreSet) Repo(source models.DataSource) (repository.FilingRepository, models.DataSource, error) {
	if source == "" {
		source = s.DefaultSource
	}
	switch source {
	case models.SourceSQLite:
		return s.SQLite, source, nil
	case models.SourceMongo:
		if s.Mongo == nil {
			return nil, source, ErrMongoUnavailable
		}
		return s.Mongo, source, nil
	default:
		return nil, source, fmt.Errorf("unknown data source %q", source)
	}
}

// NewIngestService creates a new IngestService
func NewIngestService(fetcher FigureFetcher, stores *StoreSet, memCache *cache.MemoryCache) *IngestService {
	return &IngestService{fetcher: fetcher, stores: stores, cache: memCache}
}

// IngestTickers fetches the latest 10-K figures for each ticker and upserts
// them into the selected store. Tickers are fetched concurrently with a
// bounded fan-out; a ticker that fails is reported in its result and as a
// warning, and never aborts the rest of the batch.
func (s *IngestService) IngestTickers(ctx context.Context, req *models.IngestRequest) (*models.IngestResponse, error) {
	defer TrackTime("IngestTickers", time.Now())

	repo, source, err := s.stores.Repo(req.Source)
	if err != nil {
		return nil, err
	}

	tickers := dedupeTickers(req.Tickers)
	results := make([]models.IngestTickerResult, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, ticker := range tickers {
		g.Go(func() error {
			results[i] = s.ingestOne(gctx, repo, ticker)
			return nil
		})
	}
	// Workers never return errors; failures land in their result slot.
	_ = g.Wait()

	response := &models.IngestResponse{
		Requested: len(tickers),
		Source:    source,
		Results:   results,
	}
	for _, r := range results {
		if r.Stored {
			response.Stored++
		} else {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnTickerSkipped,
				Message: fmt.Sprintf("%s skipped: %s", r.Ticker, r.Error),
			})
		}
	}

	if response.Stored > 0 {
		// New figures invalidate any cached peer aggregates.
		s.cache.Clear()
	}
	log.Infof("Ingest complete: %d/%d tickers stored to %s", response.Stored, response.Requested, source)
	return response, nil
}

// ingestOne fetches and stores a single ticker
func (s *IngestService) ingestOne(ctx context.Context, repo repository.FilingRepository, ticker string) models.IngestTickerResult {
	result := models.IngestTickerResult{Ticker: ticker}

	figures, err := s.fetcher.GetLatestAnnualFigures(ctx, ticker)
	if err != nil {
		log.Errorf("Failed to fetch %s from EDGAR: %v", ticker, err)
		result.Error = err.Error()
		return result
	}

	rec := recordFromFigures(figures)
	if err := repo.Upsert(ctx, rec); err != nil {
		log.Errorf("Failed to store %s: %v", ticker, err)
		result.Error = err.Error()
		return result
	}

	result.Stored = true
	result.AuditPass = rec.AuditPass
	return result
}

// recordFromFigures converts EDGAR output into a FilingRecord and computes
// the audit flag
func recordFromFigures(figures *edgar.CompanyFigures) *models.FilingRecord {
	rec := &models.FilingRecord{
		Ticker:             figures.Ticker,
		Year:               figures.FiscalYear,
		Revenue:            figures.Revenue,
		NetIncome:          figures.NetIncome,
		TotalAssets:        figures.TotalAssets,
		TotalLiabilities:   figures.TotalLiabilities,
		Equity:             figures.Equity,
		CurrentAssets:      figures.CurrentAssets,
		CurrentLiabilities: figures.CurrentLiabilities,
		RetainedEarnings:   figures.RetainedEarnings,
		EBIT:               figures.EBIT,
		MarketValueEquity:  figures.MarketValueEquity,
		CompanyName:        figures.CompanyName,
		CIK:                figures.CIK,
		FetchedAt:          time.Now().UTC(),
	}
	if t, err := time.Parse("2006-01-02", figures.FilingDate); err == nil {
		rec.FilingDate = &models.FlexibleDate{Time: t}
	}

	// Audit: does the balance sheet reconcile within tolerance? Only
	// checkable when all three lines were reported.
	if rec.TotalAssets != nil && rec.TotalLiabilities != nil && rec.Equity != nil {
		rec.AuditPass = math.Abs(*rec.TotalAssets-(*rec.TotalLiabilities+*rec.Equity)) < auditTolerance
	}
	return rec
}

func dedupeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	var result []string
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}
