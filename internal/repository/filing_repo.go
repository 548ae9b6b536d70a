// Package repository persists filing records in the two warehouse stores.
// Both stores implement the same interface; every figure column/field is
// nullable so that "not reported" survives storage distinctly from zero.
package repository

import (
	"context"
	"errors"

	"fincore/internal/models"
)

var ErrCompanyNotFound = errors.New("company not found")

// FilingRepository is the persistence contract shared by the SQLite and
// MongoDB stores. The metrics engine never touches a repository; services
// load records here and hand them to the engine.
type FilingRepository interface {
	// Upsert inserts or replaces the record for (ticker, year, quarter).
	Upsert(ctx context.Context, rec *models.FilingRecord) error

	// Get returns the most recent stored record for a ticker.
	Get(ctx context.Context, ticker string) (*models.FilingRecord, error)

	// GetAll returns every stored record.
	GetAll(ctx context.Context) ([]*models.FilingRecord, error)

	// List returns stored company metadata.
	List(ctx context.Context) ([]*models.CompanyListItem, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}
