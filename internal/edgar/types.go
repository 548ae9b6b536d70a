package edgar

// tickerEntry represents one row of the SEC company_tickers.json file,
// which is keyed by an arbitrary index ("0", "1", ...) rather than ticker
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// CompanyFactsResponse represents the companyfacts API response, trimmed to
// the taxonomies we read. Full XBRL taxonomy parsing is out of scope; we
// look up a fixed set of concepts.
type CompanyFactsResponse struct {
	CIK        int64                      `json:"cik"`
	EntityName string                     `json:"entityName"`
	Facts      map[string]map[string]Fact `json:"facts"` // taxonomy -> concept -> fact
}

// Fact holds every reported value of one concept, grouped by unit
type Fact struct {
	Label string                `json:"label"`
	Units map[string][]FactItem `json:"units"` // unit (e.g. "USD") -> observations
}

// FactItem is a single reported observation of a concept
type FactItem struct {
	Start string  `json:"start,omitempty"`
	End   string  `json:"end"` // period end date, "2006-01-02"
	Val   float64 `json:"val"`
	FY    int     `json:"fy"`   // fiscal year of the filing that reported it
	FP    string  `json:"fp"`   // fiscal period: "FY", "Q1", ...
	Form  string  `json:"form"` // "10-K", "10-Q", ...
	Filed string  `json:"filed"`
}

// CompanyFigures is the distilled output of a companyfacts lookup: one
// fiscal year's raw figures plus provenance. Nil figures mean the concept
// was not reported for that year, which is distinct from a reported zero.
type CompanyFigures struct {
	Ticker      string
	CIK         string
	CompanyName string
	FiscalYear  int
	FilingDate  string

	Revenue            *float64
	NetIncome          *float64
	TotalAssets        *float64
	TotalLiabilities   *float64
	Equity             *float64
	CurrentAssets      *float64
	CurrentLiabilities *float64
	RetainedEarnings   *float64
	EBIT               *float64
	MarketValueEquity  *float64
}
