package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// SEC EDGAR is a free API but requires a declared identity in the
// User-Agent header and fair-access throttling (max 10 requests/second).
// https://www.sec.gov/os/accessing-edgar-data
const (
	defaultFilesBaseURL = "https://www.sec.gov"
	defaultDataBaseURL  = "https://data.sec.gov"

	tickersPath      = "/files/company_tickers.json"
	companyFactsPath = "/api/xbrl/companyfacts/CIK%010d.json"

	secRequestsPerSecond = 10
)

var ErrTickerNotFound = errors.New("ticker not found in SEC company index")

// Client is an HTTP client for the SEC EDGAR data APIs
type Client struct {
	userAgent    string
	filesBaseURL string
	dataBaseURL  string
	httpClient   *http.Client
	limiter      *rate.Limiter

	// The ticker->CIK index changes rarely; fetch it once and reuse.
	indexOnce sync.Once
	indexErr  error
	cikIndex  map[string]tickerEntry
}

// NewClient creates a new EDGAR client. userAgent must identify the caller
// per SEC guidelines, e.g. "FinCore/1.0 (ops@example.com)".
func NewClient(userAgent string) *Client {
	return NewClientWithBaseURL(userAgent, defaultFilesBaseURL, defaultDataBaseURL)
}

// NewClientWithBaseURL creates a new EDGAR client with custom base URLs
// (for testing)
func NewClientWithBaseURL(userAgent, filesBaseURL, dataBaseURL string) *Client {
	return &Client{
		userAgent:    userAgent,
		filesBaseURL: filesBaseURL,
		dataBaseURL:  dataBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(secRequestsPerSecond), secRequestsPerSecond),
	}
}

// doGet performs a rate-limited GET with the required identity headers
func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SEC request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("SEC returned 404 for %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEC returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// loadIndex fetches and caches the company_tickers.json ticker->CIK index
func (c *Client) loadIndex(ctx context.Context) error {
	c.indexOnce.Do(func() {
		log.Debug("Fetching SEC company ticker index")
		body, err := c.doGet(ctx, c.filesBaseURL+tickersPath)
		if err != nil {
			c.indexErr = fmt.Errorf("failed to fetch company ticker index: %w", err)
			return
		}

		// The file is an object keyed by row number, not an array.
		var raw map[string]tickerEntry
		if err := json.Unmarshal(body, &raw); err != nil {
			c.indexErr = fmt.Errorf("failed to parse company ticker index: %w", err)
			return
		}

		c.cikIndex = make(map[string]tickerEntry, len(raw))
		for _, entry := range raw {
			c.cikIndex[strings.ToUpper(entry.Ticker)] = entry
		}
		log.Debugf("SEC ticker index loaded: %d entries", len(c.cikIndex))
	})
	return c.indexErr
}

// LookupCIK resolves a ticker symbol to its zero-padded 10-digit CIK
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	if err := c.loadIndex(ctx); err != nil {
		return "", err
	}
	entry, ok := c.cikIndex[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return fmt.Sprintf("%010d", entry.CIK), nil
}

// GetCompanyFacts fetches the full companyfacts document for a ticker
func (c *Client) GetCompanyFacts(ctx context.Context, ticker string) (*CompanyFactsResponse, error) {
	if err := c.loadIndex(ctx); err != nil {
		return nil, err
	}
	entry, ok := c.cikIndex[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	url := c.dataBaseURL + fmt.Sprintf(companyFactsPath, entry.CIK)
	body, err := c.doGet(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company facts for %s: %w", ticker, err)
	}

	var facts CompanyFactsResponse
	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse company facts for %s: %w", ticker, err)
	}
	return &facts, nil
}

// GetLatestAnnualFigures fetches companyfacts for a ticker and distills the
// figures reported by its most recent 10-K. Concepts absent from the filing
// come back nil; a partially reported year is normal, not an error.
func (c *Client) GetLatestAnnualFigures(ctx context.Context, ticker string) (*CompanyFigures, error) {
	facts, err := c.GetCompanyFacts(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return extractAnnualFigures(strings.ToUpper(strings.TrimSpace(ticker)), facts), nil
}
