package metrics

import (
	"errors"
	"math"

	"fincore/internal/models"
)

// Projection inputs outside the engine's domain are rejected rather than
// corrected; the engine never guesses what the caller meant.
var (
	ErrInvalidGrowthRate = errors.New("growth rate must be >= -1.0 (-100%)")
	ErrInvalidHorizon    = errors.New("projection horizon must be >= 1")
)

// Project applies a per-period growth rate to a base record and compounds
// it over horizon future periods, recomputing the ratio set for each period
// from the scaled figures (ratios are never interpolated).
//
// The single rate applies uniformly to every monetary line: net income,
// assets and the rest scale strictly proportionally to revenue. That is a
// deliberate simplifying assumption - the simulator models "the whole
// business grows g per period", not independent per-line assumptions.
//
// A rate of 0 yields a flat series (the base repeated). A rate of exactly
// -1 collapses every line to 0 from the first projected period on; the
// resulting ratios are undefined, never NaN or infinite. Rates below -1 and
// horizons below 1 are rejected with ErrInvalidGrowthRate/ErrInvalidHorizon.
func Project(base models.NormalizedRecord, growthRate float64, horizon int) (models.ProjectionSeries, error) {
	if horizon < 1 {
		return models.ProjectionSeries{}, ErrInvalidHorizon
	}
	if math.IsNaN(growthRate) || math.IsInf(growthRate, 0) || growthRate < -1 {
		return models.ProjectionSeries{}, ErrInvalidGrowthRate
	}

	series := models.ProjectionSeries{
		Ticker:     base.Ticker,
		BasePeriod: base.Period(),
		GrowthRate: growthRate,
		Horizon:    horizon,
		Base:       base,
		BaseRatios: ComputeRatios(base),
		Periods:    make([]models.ProjectedPeriod, 0, horizon),
	}

	factor := 1.0
	for offset := 1; offset <= horizon; offset++ {
		factor *= 1 + growthRate
		rec := scaleRecord(base, factor, offset)
		series.Periods = append(series.Periods, models.ProjectedPeriod{
			Offset: offset,
			Record: rec,
			Ratios: ComputeRatios(rec),
		})
	}
	return series, nil
}

// scaleRecord multiplies every monetary line of the base by factor. Scaling
// goes through FigureOf, so even an overflowing factor degrades to the
// unavailable marker instead of leaking an infinity.
func scaleRecord(base models.NormalizedRecord, factor float64, offset int) models.NormalizedRecord {
	scale := func(f models.Figure) models.Figure {
		v, ok := f.Value()
		if !ok {
			return models.NoFigure()
		}
		return models.FigureOf(v * factor)
	}

	return models.NormalizedRecord{
		Ticker:  base.Ticker,
		Year:    base.Year + offset,
		Quarter: base.Quarter,

		Revenue:            scale(base.Revenue),
		NetIncome:          scale(base.NetIncome),
		TotalAssets:        scale(base.TotalAssets),
		TotalLiabilities:   scale(base.TotalLiabilities),
		Equity:             scale(base.Equity),
		CurrentAssets:      scale(base.CurrentAssets),
		CurrentLiabilities: scale(base.CurrentLiabilities),
		RetainedEarnings:   scale(base.RetainedEarnings),
		EBIT:               scale(base.EBIT),
		MarketValueEquity:  scale(base.MarketValueEquity),
	}
}
