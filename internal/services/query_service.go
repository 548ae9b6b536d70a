package services

import (
	"context"
	"time"

	"fincore/internal/models"
	"fincore/internal/repository"
)

// QueryService backs the read-only SQL console against the SQLite warehouse
type QueryService struct {
	queries *repository.QueryRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(queries *repository.QueryRepository) *QueryService {
	return &QueryService{queries: queries}
}

// Execute runs a single read-only statement and returns its result grid
func (s *QueryService) Execute(ctx context.Context, sql string) (*models.QueryResponse, error) {
	defer TrackTime("ExecuteQuery", time.Now())
	return s.queries.Execute(ctx, sql)
}
