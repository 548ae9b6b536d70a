package models

import (
	"fmt"
	"time"
)

// FilingRecord is one company's figures for one fiscal period, exactly as
// extracted from a 10-K filing. Every figure is nullable: nil means the
// filing did not report (or we could not extract) that line item, which is
// distinct from a reported zero. The accounting identity
// assets = liabilities + equity is NOT assumed to hold - source data is
// noisy, and AuditPass only records how noisy.
type FilingRecord struct {
	Ticker  string `json:"ticker"`
	Year    int    `json:"year"`
	Quarter int    `json:"quarter,omitempty"` // 0 for annual filings

	Revenue            *float64 `json:"revenue"`
	NetIncome          *float64 `json:"net_income"`
	TotalAssets        *float64 `json:"total_assets"`
	TotalLiabilities   *float64 `json:"total_liabilities"`
	Equity             *float64 `json:"equity"`
	CurrentAssets      *float64 `json:"current_assets"`
	CurrentLiabilities *float64 `json:"current_liabilities"`
	RetainedEarnings   *float64 `json:"retained_earnings"`
	EBIT               *float64 `json:"ebit"`
	MarketValueEquity  *float64 `json:"market_value_equity"`

	// Provenance from EDGAR, informational only.
	CompanyName string        `json:"company_name,omitempty"`
	CIK         string        `json:"cik,omitempty"`
	FilingDate  *FlexibleDate `json:"filing_date,omitempty"`

	// AuditPass is true when assets reconcile with liabilities + equity
	// within $1M. Set at ingest time; never used by the metrics engine.
	AuditPass bool `json:"audit_pass"`

	FetchedAt time.Time `json:"fetched_at,omitempty"`
}

// Period returns the fiscal period identifier, e.g. "2023" or "2023Q4".
func (r *FilingRecord) Period() string {
	if r.Quarter > 0 {
		return fmt.Sprintf("%dQ%d", r.Year, r.Quarter)
	}
	return fmt.Sprintf("%d", r.Year)
}

// NormalizedRecord is a FilingRecord with nullability resolved: every figure
// is either a finite value or the explicit unavailable marker, never nil and
// never NaN/Inf. Produced by metrics.Normalize and immutable thereafter.
type NormalizedRecord struct {
	Ticker  string `json:"ticker"`
	Year    int    `json:"year"`
	Quarter int    `json:"quarter,omitempty"`

	Revenue            Figure `json:"revenue"`
	NetIncome          Figure `json:"net_income"`
	TotalAssets        Figure `json:"total_assets"`
	TotalLiabilities   Figure `json:"total_liabilities"`
	Equity             Figure `json:"equity"`
	CurrentAssets      Figure `json:"current_assets"`
	CurrentLiabilities Figure `json:"current_liabilities"`
	RetainedEarnings   Figure `json:"retained_earnings"`
	EBIT               Figure `json:"ebit"`
	MarketValueEquity  Figure `json:"market_value_equity"`
}

// Period returns the fiscal period identifier, e.g. "2023" or "2023Q4".
func (r *NormalizedRecord) Period() string {
	if r.Quarter > 0 {
		return fmt.Sprintf("%dQ%d", r.Year, r.Quarter)
	}
	return fmt.Sprintf("%d", r.Year)
}
