package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fincore/internal/metrics"
	"fincore/internal/models"
)

// ProjectionService runs growth scenarios over a company's latest stored
// filing.
type ProjectionService struct {
	stores *StoreSet
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(stores *StoreSet) *ProjectionService {
	return &ProjectionService{stores: stores}
}

// Project loads the company's latest record, normalizes it, and compounds
// every figure forward at the requested growth rate. Validation of the
// growth rate and horizon happens in the metrics engine.
func (s *ProjectionService) Project(ctx context.Context, req *models.ProjectionRequest) (*models.ProjectionSeries, error) {
	defer TrackTime("Project", time.Now())

	repo, _, err := s.stores.Repo(req.Source)
	if err != nil {
		return nil, err
	}

	raw, err := repo.Get(ctx, req.Ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", req.Ticker, err)
	}

	rec := metrics.Normalize(*raw)
	if missing := metrics.MissingFigures(rec); len(missing) > 0 {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnFiguresMissing,
			Message: fmt.Sprintf("%s %s: projecting with unavailable figures: %s", rec.Ticker, rec.Period(), strings.Join(missing, ", ")),
		})
	}

	series, err := metrics.Project(rec, req.GrowthRate, req.Horizon)
	if err != nil {
		return nil, err
	}
	return &series, nil
}
