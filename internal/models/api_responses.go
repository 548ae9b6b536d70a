package models

// DataSource selects which store a request reads from or writes to.
type DataSource string

const (
	SourceSQLite DataSource = "sqlite"
	SourceMongo  DataSource = "mongo"
)

// IngestRequest represents the request body for fetching filings from EDGAR
type IngestRequest struct {
	Tickers []string   `json:"tickers" binding:"required"`
	Source  DataSource `json:"source"`
}

// IngestTickerResult reports the outcome for a single ticker in a batch
type IngestTickerResult struct {
	Ticker    string `json:"ticker"`
	Stored    bool   `json:"stored"`
	AuditPass bool   `json:"audit_pass,omitempty"`
	Error     string `json:"error,omitempty"`
}

// IngestResponse represents the result of an ingest batch
type IngestResponse struct {
	Requested int                  `json:"requested"`
	Stored    int                  `json:"stored"`
	Source    DataSource           `json:"source"`
	Results   []IngestTickerResult `json:"results"`
	Warnings  []Warning            `json:"warnings,omitempty"`
}

// CompanyMetricsResponse carries the derived metrics for one company period
type CompanyMetricsResponse struct {
	Ticker   string           `json:"ticker"`
	Period   string           `json:"period"`
	Record   NormalizedRecord `json:"record"`
	Ratios   RatioSet         `json:"ratios"`
	Risk     RiskAssessment   `json:"risk"`
	Warnings []Warning        `json:"warnings,omitempty"`
}

// BenchmarkRequest represents the request body for benchmarking a company
// against a peer group. An empty Peers list benchmarks against every other
// stored company.
type BenchmarkRequest struct {
	Ticker string     `json:"ticker" binding:"required"`
	Peers  []string   `json:"peers"`
	Source DataSource `json:"source"`
}

// BenchmarkResponse wraps a BenchmarkResult with any processing warnings
type BenchmarkResponse struct {
	Result   BenchmarkResult `json:"result"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

// ProjectionRequest represents the request body for a forward projection
type ProjectionRequest struct {
	Ticker     string     `json:"ticker" binding:"required"`
	GrowthRate float64    `json:"growth_rate"`
	Horizon    int        `json:"horizon" binding:"required"`
	Source     DataSource `json:"source"`
}

// ProjectionResponse wraps a ProjectionSeries with any processing warnings
type ProjectionResponse struct {
	Series   ProjectionSeries `json:"series"`
	Warnings []Warning        `json:"warnings,omitempty"`
}

// QueryRequest represents the request body for the SQL console
type QueryRequest struct {
	SQL string `json:"sql" binding:"required"`
}

// QueryResponse represents the result of a SQL console query
type QueryResponse struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
	Count   int             `json:"count"`
}

// StoreStats reports record counts per store
type StoreStats struct {
	SQLiteRecords int64  `json:"sqlite_records"`
	MongoRecords  int64  `json:"mongo_records"`
	MongoError    string `json:"mongo_error,omitempty"`
}

// OverviewResponse carries the dashboard aggregates across all stored companies
type OverviewResponse struct {
	Companies       int     `json:"companies"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalNetIncome  float64 `json:"total_net_income"`
	AvgProfitMargin Ratio   `json:"avg_profit_margin"`
}

// CompanyListItem represents a stored company period (metadata only)
type CompanyListItem struct {
	Ticker      string `json:"ticker"`
	Period      string `json:"period"`
	CompanyName string `json:"company_name,omitempty"`
	AuditPass   bool   `json:"audit_pass"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
