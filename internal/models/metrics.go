package models

// RatioName identifies one of the fixed set of financial ratios the engine
// computes. The set is closed: consumers can range over AllRatios and rely
// on every RatioSet carrying exactly these keys.
type RatioName string

const (
	RatioReturnOnEquity RatioName = "return_on_equity"
	RatioDebtToEquity   RatioName = "debt_to_equity"
	RatioProfitMargin   RatioName = "profit_margin"
	RatioAssetTurnover  RatioName = "asset_turnover"
	RatioCurrentRatio   RatioName = "current_ratio"
)

// AllRatios lists every ratio name in a stable order, used for deterministic
// iteration in benchmarks and API responses.
var AllRatios = []RatioName{
	RatioReturnOnEquity,
	RatioDebtToEquity,
	RatioProfitMargin,
	RatioAssetTurnover,
	RatioCurrentRatio,
}

// RatioSet maps each ratio name to its value or the undefined marker.
// Derived from exactly one NormalizedRecord; values carry the record's
// native precision with no rounding (rounding is a presentation concern).
type RatioSet map[RatioName]Ratio

// Get returns the ratio for name, treating a missing key as undefined.
func (s RatioSet) Get(name RatioName) Ratio {
	if r, ok := s[name]; ok {
		return r
	}
	return UndefinedRatio()
}

// RiskBand is the categorical bucket derived from the composite risk score.
type RiskBand string

const (
	RiskBandSafe     RiskBand = "safe"
	RiskBandGreyZone RiskBand = "grey_zone"
	RiskBandDistress RiskBand = "distress"
)

// RiskAssessment is the composite bankruptcy-risk indicator for one record.
// Partial is true when one or more inputs were unavailable and their terms
// contributed zero to the score; consumers must treat a partial low score as
// under-determined rather than low-risk.
type RiskAssessment struct {
	Ticker        string   `json:"ticker"`
	Period        string   `json:"period"`
	Score         float64  `json:"score"`
	Band          RiskBand `json:"band"`
	Partial       bool     `json:"partial"`
	MissingInputs []string `json:"missing_inputs,omitempty"`
}

// RatioBenchmark positions a target company's single ratio against the peer
// aggregate for that ratio. All fields except PeerCount are undefined when
// no peer (or the target itself) defines the ratio.
type RatioBenchmark struct {
	Target       Ratio `json:"target"`
	PeerMean     Ratio `json:"peer_mean"`
	PeerMedian   Ratio `json:"peer_median"`
	PeerCount    int   `json:"peer_count"` // peers with this ratio defined
	DeltaVsMean  Ratio `json:"delta_vs_mean"`
	AboveAverage *bool `json:"above_average,omitempty"`
	// Percentile is the share of defined peer values strictly below the
	// target, in [0,100].
	Percentile Ratio `json:"percentile"`
}

// BenchmarkResult is the full per-ratio positioning of a target RatioSet
// against a peer group.
type BenchmarkResult struct {
	Ticker   string                       `json:"ticker,omitempty"`
	PeerSize int                          `json:"peer_size"` // total peers supplied
	Ratios   map[RatioName]RatioBenchmark `json:"ratios"`
}

/// ProjectedPeriod is one future period in a projection: the scaled record
// plus its ratios recomputed from the scaled figures (never interpolated).
type ProjectedPeriod struct {
	Offset int              `json:"offset"` // periods after the base, >= 1
	Record NormalizedRecord `json:"record"`
	Ratios RatioSet         `json:"ratios"`
}

// ProjectionSeries is a deterministic forward projection of a base record
// under a single compounded growth rate. The rate applies uniformly to every
// monetary line - a documented simplifying assumption, see metrics.Project.
type ProjectionSeries struct {
	Ticker     string            `json:"ticker"`
	BasePeriod string            `json:"base_period"`
	GrowthRate float64           `json:"growth_rate"`
	Horizon    int               `json:"horizon"`
	Base       NormalizedRecord  `json:"base"`
	BaseRatios RatioSet          `json:"base_ratios"`
	Periods    []ProjectedPeriod `json:"periods"`
}
