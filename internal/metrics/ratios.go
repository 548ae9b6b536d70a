package metrics

import (
	"fincore/internal/models"
)

// divide computes numerator/denominator under the engine's undefined
// policy: if either operand is unavailable, or the denominator is exactly
// zero, the result is the undefined marker. Division by zero is an
// expected, frequent condition in filing data, not an error.
func divide(numerator, denominator models.Figure) models.Ratio {
	n, ok := numerator.Value()
	if !ok {
		return models.UndefinedRatio()
	}
	d, ok := denominator.Value()
	if !ok || d == 0 {
		return models.UndefinedRatio()
	}
	return models.RatioOf(n / d)
}

// ComputeRatios derives the fixed ratio set from one normalized record:
//
//	return_on_equity = net income / equity
//	debt_to_equity   = total liabilities / equity
//	profit_margin    = net income / revenue
//	asset_turnover   = revenue / total assets
//	current_ratio    = current assets / current liabilities
//
// Values carry the record's native precision; no rounding is applied here.
// The function is deterministic and side-effect free.
func ComputeRatios(rec models.NormalizedRecord) models.RatioSet {
	return models.RatioSet{
		models.RatioReturnOnEquity: divide(rec.NetIncome, rec.Equity),
		models.RatioDebtToEquity:   divide(rec.TotalLiabilities, rec.Equity),
		models.RatioProfitMargin:   divide(rec.NetIncome, rec.Revenue),
		models.RatioAssetTurnover:  divide(rec.Revenue, rec.TotalAssets),
		models.RatioCurrentRatio:   divide(rec.CurrentAssets, rec.CurrentLiabilities),
	}
}
