package metrics

import (
	"fincore/internal/models"
)

// ScoringModel is the injected configuration for the risk scorer: a named
// coefficient table over the five Altman-style terms plus the band
// thresholds applied to the composite score. Alternate scoring models can
// be tested without touching the engine.
type ScoringModel struct {
	Name string

	// Term coefficients.
	WorkingCapitalAssets float64 // working capital / total assets
	RetainedEarnAssets   float64 // retained earnings / total assets
	EBITAssets           float64 // EBIT / total assets
	MarketEquityLiab     float64 // market value of equity / total liabilities
	RevenueAssets        float64 // revenue / total assets

	// Band thresholds. Convention: score >= SafeAbove is "safe",
	// score < DistressBelow is "distress", anything between is "grey_zone".
	// The upper bound is inclusive into safe; the lower bound is inclusive
	// into grey zone.
	SafeAbove     float64
	DistressBelow float64
}

// AltmanManufacturing is the classic Altman Z-Score model for public
// manufacturing companies: Z = 1.2A + 1.4B + 3.3C + 0.6D + 1.0E with the
// standard 2.99 / 1.81 zone boundaries.
var AltmanManufacturing = ScoringModel{
	Name:                 "altman-z-manufacturing",
	WorkingCapitalAssets: 1.2,
	RetainedEarnAssets:   1.4,
	EBITAssets:           3.3,
	MarketEquityLiab:     0.6,
	RevenueAssets:        1.0,
	SafeAbove:            2.99,
	DistressBelow:        1.81,
}

// Band classifies a composite score under the model's thresholds.
func (m ScoringModel) Band(score float64) models.RiskBand {
	switch {
	case score >= m.SafeAbove:
		return models.RiskBandSafe
	case score < m.DistressBelow:
		return models.RiskBandDistress
	default:
		return models.RiskBandGreyZone
	}
}

// riskTerm is one weighted sub-ratio of the composite score. A term whose
// inputs are unavailable (or whose denominator is zero) contributes zero
// and reports itself missing instead of aborting the whole computation.
func riskTerm(name string, coeff float64, numerator, denominator models.Figure) (contribution float64, missing string) {
	r := divide(numerator, denominator)
	v, ok := r.Value()
	if !ok {
		return 0, name
	}
	return coeff * v, ""
}

// workingCapital returns current assets minus current liabilities, or
// unavailable when either side is.
func workingCapital(rec models.NormalizedRecord) models.Figure {
	ca, ok := rec.CurrentAssets.Value()
	if !ok {
		return models.NoFigure()
	}
	cl, ok := rec.CurrentLiabilities.Value()
	if !ok {
		return models.NoFigure()
	}
	return models.FigureOf(ca - cl)
}

// AssessRisk computes the weighted composite bankruptcy-risk score for one
// record under the given scoring model. Terms with unavailable inputs
// contribute zero to the sum and flag the assessment as Partial; the flag
// must be surfaced so a low score computed from incomplete inputs is never
// mistaken for a genuinely low-risk one.
func AssessRisk(rec models.NormalizedRecord, model ScoringModel) models.RiskAssessment {
	score := 0.0
	var missing []string

	add := func(contribution float64, missingInput string) {
		score += contribution
		if missingInput != "" {
			missing = append(missing, missingInput)
		}
	}

	add(riskTerm("working_capital/total_assets", model.WorkingCapitalAssets, workingCapital(rec), rec.TotalAssets))
	add(riskTerm("retained_earnings/total_assets", model.RetainedEarnAssets, rec.RetainedEarnings, rec.TotalAssets))
	add(riskTerm("ebit/total_assets", model.EBITAssets, rec.EBIT, rec.TotalAssets))
	add(riskTerm("market_value_equity/total_liabilities", model.MarketEquityLiab, rec.MarketValueEquity, rec.TotalLiabilities))
	add(riskTerm("revenue/total_assets", model.RevenueAssets, rec.Revenue, rec.TotalAssets))

	return models.RiskAssessment{
		Ticker:        rec.Ticker,
		Period:        rec.Period(),
		Score:         score,
		Band:          model.Band(score),
		Partial:       len(missing) > 0,
		MissingInputs: missing,
	}
}
