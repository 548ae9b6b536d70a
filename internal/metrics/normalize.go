// Package metrics is the financial health engine: it derives ratio sets,
// composite bankruptcy-risk scores, peer benchmarks and forward projections
// from normalized 10-K figures. Every operation is a pure function of its
// inputs with no internal state or I/O, so callers are free to invoke the
// package concurrently over disjoint inputs without coordination.
package metrics

import (
	"math"

	"fincore/internal/models"
)

// nonNegativeFigure coerces figures that cannot legitimately be negative.
// A negative revenue or a negative total-assets line is extraction noise,
// not information, so it maps to unavailable rather than poisoning every
// downstream ratio.
func nonNegativeFigure(v *float64) models.Figure {
	if v == nil {
		return models.NoFigure()
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return models.NoFigure()
	}
	return models.FigureOf(*v)
}

// Normalize converts a raw FilingRecord into a NormalizedRecord. It is a
// total function: it never fails, and no input can produce a NaN, an
// infinity, or a nil field in the output. Missing and malformed figures
// become the unavailable marker; zero survives as a legitimate value
// (a company can report zero debt).
//
// Signed lines (net income, equity, retained earnings, EBIT) keep negative
// values; lines that cannot be negative (revenue, total and current
// assets/liabilities, market value of equity) treat them as unavailable.
func Normalize(rec models.FilingRecord) models.NormalizedRecord {
	return models.NormalizedRecord{
		Ticker:  rec.Ticker,
		Year:    rec.Year,
		Quarter: rec.Quarter,

		Revenue:            nonNegativeFigure(rec.Revenue),
		NetIncome:          models.FigureFromPtr(rec.NetIncome),
		TotalAssets:        nonNegativeFigure(rec.TotalAssets),
		TotalLiabilities:   nonNegativeFigure(rec.TotalLiabilities),
		Equity:             models.FigureFromPtr(rec.Equity),
		CurrentAssets:      nonNegativeFigure(rec.CurrentAssets),
		CurrentLiabilities: nonNegativeFigure(rec.CurrentLiabilities),
		RetainedEarnings:   models.FigureFromPtr(rec.RetainedEarnings),
		EBIT:               models.FigureFromPtr(rec.EBIT),
		MarketValueEquity:  nonNegativeFigure(rec.MarketValueEquity),
	}
}

// MissingFigures returns the names of figures that are unavailable on the
// record, in a stable order. Used for warning messages.
func MissingFigures(rec models.NormalizedRecord) []string {
	var missing []string
	for _, f := range []struct {
		name string
		fig  models.Figure
	}{
		{"revenue", rec.Revenue},
		{"net_income", rec.NetIncome},
		{"total_assets", rec.TotalAssets},
		{"total_liabilities", rec.TotalLiabilities},
		{"equity", rec.Equity},
		{"current_assets", rec.CurrentAssets},
		{"current_liabilities", rec.CurrentLiabilities},
		{"retained_earnings", rec.RetainedEarnings},
		{"ebit", rec.EBIT},
		{"market_value_equity", rec.MarketValueEquity},
	} {
		if !f.fig.Available() {
			missing = append(missing, f.name)
		}
	}
	return missing
}
