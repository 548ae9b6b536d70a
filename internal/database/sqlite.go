// Package database manages connections to the two warehouse stores:
// a SQLite file for the relational view and MongoDB for the document view.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS financials (
	ticker              TEXT    NOT NULL,
	year                INTEGER NOT NULL,
	quarter             INTEGER NOT NULL DEFAULT 0,
	revenue             REAL,
	net_income          REAL,
	total_assets        REAL,
	total_liabilities   REAL,
	equity              REAL,
	current_assets      REAL,
	current_liabilities REAL,
	retained_earnings   REAL,
	ebit                REAL,
	market_value_equity REAL,
	company_name        TEXT,
	cik                 TEXT,
	filing_date         TEXT,
	audit_pass          INTEGER NOT NULL DEFAULT 0,
	fetched_at          TEXT,
	PRIMARY KEY (ticker, year, quarter)
);
`

// SQLite wraps the warehouse's relational store
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens (creating if necessary) the SQLite warehouse at path and
// ensures the schema exists. modernc.org/sqlite registers driver name
// "sqlite", not "sqlite3".
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Infof("SQLite warehouse ready at %s", path)
	return &SQLite{DB: db}, nil
}

// Close closes the underlying connection
func (s *SQLite) Close() error {
	return s.DB.Close()
}
