package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fincore/internal/models"
)

// ErrQueryNotAllowed is returned for console statements that are not plain
// read-only queries.
var ErrQueryNotAllowed = errors.New("only single SELECT statements are allowed")

// QueryRepository runs ad-hoc read-only SQL against the SQLite warehouse
// for the query console. MongoDB has no console; the document viewer covers
// that store.
type QueryRepository struct {
	db *sql.DB
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(db *sql.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// validate rejects anything that is not a single SELECT statement. The
// console runs against the live warehouse, so writes and multi-statement
// batches are refused outright rather than sandboxed.
func validate(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ErrQueryNotAllowed
	}
	// A trailing semicolon is fine; an interior one means a second statement.
	trimmed = strings.TrimSuffix(trimmed, ";")
	if strings.Contains(trimmed, ";") {
		return ErrQueryNotAllowed
	}
	first := strings.ToUpper(strings.Fields(trimmed)[0])
	if first != "SELECT" && first != "WITH" {
		return ErrQueryNotAllowed
	}
	return nil
}

// Execute runs a console query and returns rows in wire-ready form.
// Byte-slice column values are converted to strings so JSON encoding does
// not base64 them.
func (r *QueryRepository) Execute(ctx context.Context, query string) (*models.QueryResponse, error) {
	if err := validate(query); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := &models.QueryResponse{Columns: columns, Rows: [][]interface{}{}}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query iteration failed: %w", err)
	}
	result.Count = len(result.Rows)
	return result, nil
}
