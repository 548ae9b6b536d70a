package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"fincore/internal/database"
	"fincore/internal/models"
)

func fp(v float64) *float64 { return &v }

// newTestRepo opens an in-memory SQLite warehouse
func newTestRepo(t *testing.T) *SQLiteFilingRepository {
	t.Helper()
	db, err := database.NewSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteFilingRepository(db.DB)
}

func sampleRecord(ticker string, year int) *models.FilingRecord {
	return &models.FilingRecord{
		Ticker:           ticker,
		Year:             year,
		Revenue:          fp(1_000_000_000),
		NetIncome:        fp(100_000_000),
		TotalAssets:      fp(900_000_000),
		TotalLiabilities: fp(300_000_000),
		Equity:           fp(500_000_000),
		CompanyName:      "Test Co",
		CIK:              "0000000001",
		AuditPass:        true,
		FetchedAt:        time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

// TestUpsertAndGet tests the round trip of a record through SQLite,
// including that absent figures come back nil (not zero)
func TestUpsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := sampleRecord("nvda", 2023) // lowercase on purpose
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := repo.Get(ctx, "NVDA")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.Ticker != "NVDA" {
		t.Errorf("Expected uppercased ticker NVDA, got %s", got.Ticker)
	}
	if got.Revenue == nil || *got.Revenue != 1_000_000_000 {
		t.Errorf("Expected revenue 1B, got %v", got.Revenue)
	}
	if got.EBIT != nil {
		t.Errorf("Expected nil EBIT (never stored), got %v", *got.EBIT)
	}
	if !got.AuditPass {
		t.Error("Expected audit_pass to survive the round trip")
	}
}

// TestUpsertReplaces tests that a second upsert for the same period
// replaces rather than duplicates
func TestUpsertReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleRecord("NVDA", 2023)); err != nil {
		t.Fatalf("First upsert failed: %v", err)
	}

	updated := sampleRecord("NVDA", 2023)
	updated.Revenue = fp(2_000_000_000)
	if err := repo.Upsert(ctx, updated); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 record after upsert, got %d", count)
	}

	got, err := repo.Get(ctx, "NVDA")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Revenue == nil || *got.Revenue != 2_000_000_000 {
		t.Errorf("Expected replaced revenue 2B, got %v", got.Revenue)
	}
}

// TestGetLatestPeriod tests that Get returns the most recent year for a
// ticker with multiple stored periods
func TestGetLatestPeriod(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, year := range []int{2021, 2023, 2022} {
		if err := repo.Upsert(ctx, sampleRecord("NVDA", year)); err != nil {
			t.Fatalf("Upsert %d failed: %v", year, err)
		}
	}

	got, err := repo.Get(ctx, "NVDA")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Year != 2023 {
		t.Errorf("Expected latest year 2023, got %d", got.Year)
	}
}

// TestGetNotFound tests the typed not-found error
func TestGetNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), "MISSING")
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("Expected ErrCompanyNotFound, got %v", err)
	}
}

// TestNullFigureRoundTrip tests that a stored zero stays zero and a stored
// NULL stays nil - the stores must not conflate the two
func TestNullFigureRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := &models.FilingRecord{
		Ticker:           "ZERO",
		Year:             2023,
		TotalLiabilities: fp(0), // reported zero debt
		// Revenue deliberately nil
		FetchedAt: time.Now(),
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := repo.Get(ctx, "ZERO")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TotalLiabilities == nil || *got.TotalLiabilities != 0 {
		t.Errorf("Expected zero liabilities preserved, got %v", got.TotalLiabilities)
	}
	if got.Revenue != nil {
		t.Errorf("Expected nil revenue preserved, got %v", *got.Revenue)
	}
}

// TestQueryConsole tests the read-only console against real data, and that
// write statements are refused
func TestQueryConsole(t *testing.T) {
	db, err := database.NewSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteFilingRepository(db.DB)
	queries := NewQueryRepository(db.DB)
	ctx := context.Background()

	if err := repo.Upsert(ctx, sampleRecord("NVDA", 2023)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := repo.Upsert(ctx, sampleRecord("AAPL", 2023)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	result, err := queries.Execute(ctx, "SELECT ticker, revenue FROM financials WHERE net_income > 1000 ORDER BY ticker")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("Expected 2 rows, got %d", result.Count)
	}
	if len(result.Columns) != 2 || result.Columns[0] != "ticker" {
		t.Errorf("Unexpected columns: %v", result.Columns)
	}
	if result.Rows[0][0] != "AAPL" {
		t.Errorf("Expected AAPL first, got %v", result.Rows[0][0])
	}

	for _, bad := range []string{
		"DROP TABLE financials",
		"DELETE FROM financials",
		"SELECT 1; DROP TABLE financials",
		"",
	} {
		if _, err := queries.Execute(ctx, bad); !errors.Is(err, ErrQueryNotAllowed) {
			t.Errorf("Expected ErrQueryNotAllowed for %q, got %v", bad, err)
		}
	}
}
