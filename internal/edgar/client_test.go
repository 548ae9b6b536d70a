package edgar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testTickersJSON = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 1045810, "ticker": "NVDA", "title": "NVIDIA CORP"}
}`

const testFactsJSON = `{
	"cik": 320193,
	"entityName": "Apple Inc.",
	"facts": {
		"us-gaap": {
			"Assets": {"units": {"USD": [
				{"end": "2022-09-24", "val": 352755000000, "fy": 2022, "fp": "FY", "form": "10-K", "filed": "2022-10-28"},
				{"end": "2023-09-30", "val": 352583000000, "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"},
				{"end": "2023-07-01", "val": 335038000000, "fy": 2023, "fp": "Q3", "form": "10-Q", "filed": "2023-08-04"}
			]}},
			"RevenueFromContractWithCustomerExcludingAssessedTax": {"units": {"USD": [
				{"end": "2023-09-30", "val": 383285000000, "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"}
			]}},
			"NetIncomeLoss": {"units": {"USD": [
				{"end": "2023-09-30", "val": 96995000000, "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"}
			]}},
			"StockholdersEquity": {"units": {"USD": [
				{"end": "2023-09-30", "val": 62146000000, "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"}
			]}}
		},
		"dei": {
			"EntityPublicFloat": {"units": {"USD": [
				{"end": "2023-03-31", "val": 2591000000000, "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"}
			]}}
		}
	}
}`

// newTestClient spins up a stub SEC server and points both base URLs at it
func newTestClient(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("Expected identity User-Agent header on index request")
		}
		w.Write([]byte(testTickersJSON))
	})
	mux.HandleFunc("/api/xbrl/companyfacts/CIK0000320193.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testFactsJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL("fincore-test/1.0 (test@example.com)", srv.URL, srv.URL), srv
}

// TestLookupCIK tests ticker resolution against the company index,
// including case insensitivity and zero padding
func TestLookupCIK(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	cik, err := client.LookupCIK(ctx, "aapl")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cik != "0000320193" {
		t.Errorf("Expected zero-padded CIK 0000320193, got %s", cik)
	}

	if _, err := client.LookupCIK(ctx, "NOPE"); !errors.Is(err, ErrTickerNotFound) {
		t.Errorf("Expected ErrTickerNotFound, got %v", err)
	}
}

// TestGetLatestAnnualFigures tests that the latest 10-K FY observation wins
// over older annual and newer quarterly observations, and that absent
// concepts come back nil rather than zero
func TestGetLatestAnnualFigures(t *testing.T) {
	client, _ := newTestClient(t)

	figures, err := client.GetLatestAnnualFigures(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if figures.FiscalYear != 2023 {
		t.Errorf("Expected fiscal year 2023, got %d", figures.FiscalYear)
	}
	if figures.CompanyName != "Apple Inc." {
		t.Errorf("Expected company name from entityName, got %q", figures.CompanyName)
	}
	if figures.TotalAssets == nil || *figures.TotalAssets != 352583000000 {
		t.Errorf("Expected FY2023 total assets, got %v", figures.TotalAssets)
	}
	if figures.Revenue == nil || *figures.Revenue != 383285000000 {
		t.Errorf("Expected FY2023 revenue, got %v", figures.Revenue)
	}
	if figures.MarketValueEquity == nil || *figures.MarketValueEquity != 2591000000000 {
		t.Errorf("Expected public float as market value of equity, got %v", figures.MarketValueEquity)
	}

	// Concepts absent from the stub must be nil, not zero
	if figures.TotalLiabilities != nil {
		t.Errorf("Expected nil total liabilities, got %v", *figures.TotalLiabilities)
	}
	if figures.EBIT != nil {
		t.Errorf("Expected nil EBIT, got %v", *figures.EBIT)
	}
}

// TestIndexFetchedOnce tests that the ticker index is fetched a single time
// across lookups
func TestIndexFetchedOnce(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(testTickersJSON))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClientWithBaseURL("fincore-test/1.0 (test@example.com)", srv.URL, srv.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := client.LookupCIK(ctx, "NVDA"); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 index fetch, got %d", calls)
	}
}
