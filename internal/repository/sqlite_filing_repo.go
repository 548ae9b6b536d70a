package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fincore/internal/models"
)

// SQLiteFilingRepository stores filing records in the financials table
type SQLiteFilingRepository struct {
	db *sql.DB
}

// NewSQLiteFilingRepository creates a new SQLiteFilingRepository
func NewSQLiteFilingRepository(db *sql.DB) *SQLiteFilingRepository {
	return &SQLiteFilingRepository{db: db}
}

const filingColumns = `
	ticker, year, quarter, revenue, net_income, total_assets,
	total_liabilities, equity, current_assets, current_liabilities,
	retained_earnings, ebit, market_value_equity,
	company_name, cik, filing_date, audit_pass, fetched_at
`

// Upsert inserts or replaces the record for (ticker, year, quarter)
func (r *SQLiteFilingRepository) Upsert(ctx context.Context, rec *models.FilingRecord) error {
	query := `
		INSERT INTO financials (` + filingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (ticker, year, quarter) DO UPDATE
		SET revenue = EXCLUDED.revenue, net_income = EXCLUDED.net_income,
		    total_assets = EXCLUDED.total_assets,
		    total_liabilities = EXCLUDED.total_liabilities,
		    equity = EXCLUDED.equity,
		    current_assets = EXCLUDED.current_assets,
		    current_liabilities = EXCLUDED.current_liabilities,
		    retained_earnings = EXCLUDED.retained_earnings,
		    ebit = EXCLUDED.ebit,
		    market_value_equity = EXCLUDED.market_value_equity,
		    company_name = EXCLUDED.company_name, cik = EXCLUDED.cik,
		    filing_date = EXCLUDED.filing_date,
		    audit_pass = EXCLUDED.audit_pass, fetched_at = EXCLUDED.fetched_at
	`

	var filingDate *string
	if rec.FilingDate != nil {
		s := rec.FilingDate.Format("2006-01-02")
		filingDate = &s
	}

	_, err := r.db.ExecContext(ctx, query,
		strings.ToUpper(rec.Ticker), rec.Year, rec.Quarter,
		rec.Revenue, rec.NetIncome, rec.TotalAssets, rec.TotalLiabilities,
		rec.Equity, rec.CurrentAssets, rec.CurrentLiabilities,
		rec.RetainedEarnings, rec.EBIT, rec.MarketValueEquity,
		nullString(rec.CompanyName), nullString(rec.CIK), filingDate,
		boolToInt(rec.AuditPass), rec.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert filing for %s: %w", rec.Ticker, err)
	}
	return nil
}

// Get returns the most recent stored record for a ticker
func (r *SQLiteFilingRepository) Get(ctx context.Context, ticker string) (*models.FilingRecord, error) {
	query := `
		SELECT ` + filingColumns + `
		FROM financials
		WHERE ticker = ?
		ORDER BY year DESC, quarter DESC
		LIMIT 1
	`
	rec, err := scanFiling(r.db.QueryRowContext(ctx, query, strings.ToUpper(ticker)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query filing for %s: %w", ticker, err)
	}
	return rec, nil
}

// GetAll returns every stored record
func (r *SQLiteFilingRepository) GetAll(ctx context.Context) ([]*models.FilingRecord, error) {
	query := `SELECT ` + filingColumns + ` FROM financials ORDER BY ticker, year, quarter`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query filings: %w", err)
	}
	defer rows.Close()

	var result []*models.FilingRecord
	for rows.Next() {
		rec, err := scanFiling(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan filing: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// List returns stored company metadata
func (r *SQLiteFilingRepository) List(ctx context.Context) ([]*models.CompanyListItem, error) {
	query := `SELECT ticker, year, quarter, company_name, audit_pass FROM financials ORDER BY ticker, year, quarter`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var result []*models.CompanyListItem
	for rows.Next() {
		var (
			rec   models.FilingRecord
			name  sql.NullString
			audit int
		)
		if err := rows.Scan(&rec.Ticker, &rec.Year, &rec.Quarter, &name, &audit); err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		result = append(result, &models.CompanyListItem{
			Ticker:      rec.Ticker,
			Period:      rec.Period(),
			CompanyName: name.String,
			AuditPass:   audit != 0,
		})
	}
	return result, rows.Err()
}

// Count returns the number of stored records
func (r *SQLiteFilingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM financials`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count filings: %w", err)
	}
	return count, nil
}

// rowScanner lets scanFiling serve both QueryRow and Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFiling(row rowScanner) (*models.FilingRecord, error) {
	var (
		rec        models.FilingRecord
		name, cik  sql.NullString
		filingDate sql.NullString
		fetchedAt  sql.NullString
		audit      int
	)
	err := row.Scan(
		&rec.Ticker, &rec.Year, &rec.Quarter,
		&rec.Revenue, &rec.NetIncome, &rec.TotalAssets, &rec.TotalLiabilities,
		&rec.Equity, &rec.CurrentAssets, &rec.CurrentLiabilities,
		&rec.RetainedEarnings, &rec.EBIT, &rec.MarketValueEquity,
		&name, &cik, &filingDate, &audit, &fetchedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CompanyName = name.String
	rec.CIK = cik.String
	rec.AuditPass = audit != 0
	if filingDate.Valid {
		if t, err := time.Parse("2006-01-02", filingDate.String); err == nil {
			rec.FilingDate = &models.FlexibleDate{Time: t}
		}
	}
	if fetchedAt.Valid {
		if t, err := time.Parse(time.RFC3339, fetchedAt.String); err == nil {
			rec.FetchedAt = t
		}
	}
	return &rec, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
