package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = ingest/EDGAR, W2xxx = normalization, W3xxx = risk scoring,
// W4xxx = benchmarking.
type WarningCode string

const (
	WarnTickerSkipped    WarningCode = "W1001" // ticker could not be fetched and was dropped from the batch
	WarnAuditMismatch    WarningCode = "W1002" // assets do not reconcile with liabilities + equity
	WarnFiguresMissing   WarningCode = "W2001" // one or more figures unavailable after normalization
	WarnPartialRiskScore WarningCode = "W3001" // risk score computed from incomplete inputs
	WarnPeersExcluded    WarningCode = "W4001" // peers excluded from a ratio's aggregate (undefined values)
	WarnEmptyPeerGroup   WarningCode = "W4002" // benchmark requested against zero peers
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
