package edgar

import "fmt"

// Concept preference lists per figure. Companies report under different
// us-gaap tags depending on taxonomy vintage and industry; the first
// concept with a usable annual observation wins. This is concept lookup
// against known tags, not taxonomy parsing.
var (
	revenueConcepts = []string{
		"RevenueFromContractWithCustomerExcludingAssessedTax",
		"Revenues",
		"SalesRevenueNet",
	}
	netIncomeConcepts      = []string{"NetIncomeLoss"}
	totalAssetConcepts     = []string{"Assets"}
	totalLiabilityConcepts = []string{"Liabilities"}
	equityConcepts         = []string{
		"StockholdersEquity",
		"StockholdersEquityIncludingPortionAttributableToNoncontrollingInterest",
	}
	currentAssetConcepts     = []string{"AssetsCurrent"}
	currentLiabilityConcepts = []string{"LiabilitiesCurrent"}
	retainedEarningsConcepts = []string{"RetainedEarningsAccumulatedDeficit"}
	// Operating income is the closest consistently reported proxy for EBIT.
	ebitConcepts = []string{"OperatingIncomeLoss"}
)

// latestAnnual returns the most recent 10-K full-year observation of a
// concept in the given unit, or nil if none exists.
func latestAnnual(fact Fact, unit string) *FactItem {
	var best *FactItem
	for i := range fact.Units[unit] {
		item := &fact.Units[unit][i]
		if item.Form != "10-K" || item.FP != "FY" {
			continue
		}
		if best == nil || item.End > best.End || (item.End == best.End && item.Filed > best.Filed) {
			best = item
		}
	}
	return best
}

// pickConcept returns the latest annual observation among the preferred
// concepts for a figure, trying each concept in order.
func pickConcept(concepts map[string]Fact, preferred []string, unit string) *FactItem {
	for _, name := range preferred {
		fact, ok := concepts[name]
		if !ok {
			continue
		}
		if item := latestAnnual(fact, unit); item != nil {
			return item
		}
	}
	return nil
}

// extractAnnualFigures distills a companyfacts document into the raw figure
// set for the company's most recent fiscal year. The fiscal year and filing
// date are taken from the latest total-assets (or revenue) observation;
// figures whose latest observation belongs to a different period end are
// still used - filing data is noisy and the normalizer downstream treats
// every figure independently.
func extractAnnualFigures(ticker string, facts *CompanyFactsResponse) *CompanyFigures {
	figures := &CompanyFigures{
		Ticker:      ticker,
		CIK:         fmt.Sprintf("%010d", facts.CIK),
		CompanyName: facts.EntityName,
	}

	gaap := facts.Facts["us-gaap"]

	val := func(preferred []string) (*float64, *FactItem) {
		item := pickConcept(gaap, preferred, "USD")
		if item == nil {
			return nil, nil
		}
		v := item.Val
		return &v, item
	}

	var anchor *FactItem
	figures.TotalAssets, anchor = val(totalAssetConcepts)
	if rev, item := val(revenueConcepts); rev != nil {
		figures.Revenue = rev
		if anchor == nil {
			anchor = item
		}
	}
	figures.NetIncome, _ = val(netIncomeConcepts)
	figures.TotalLiabilities, _ = val(totalLiabilityConcepts)
	figures.Equity, _ = val(equityConcepts)
	figures.CurrentAssets, _ = val(currentAssetConcepts)
	figures.CurrentLiabilities, _ = val(currentLiabilityConcepts)
	figures.RetainedEarnings, _ = val(retainedEarningsConcepts)
	figures.EBIT, _ = val(ebitConcepts)

	// Market value of equity is not a us-gaap concept; the dei taxonomy's
	// public float is the standard stand-in from filing data alone.
	if dei, ok := facts.Facts["dei"]; ok {
		if item := pickConcept(dei, []string{"EntityPublicFloat"}, "USD"); item != nil {
			v := item.Val
			figures.MarketValueEquity = &v
		}
	}

	if anchor != nil {
		figures.FiscalYear = anchor.FY
		figures.FilingDate = anchor.Filed
		if figures.FiscalYear == 0 && len(anchor.End) >= 4 {
			// Some EDGAR entries omit fy; fall back to the period end year.
			fmt.Sscanf(anchor.End[:4], "%d", &figures.FiscalYear)
		}
	}

	return figures
}
