package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"fincore/internal/models"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	SQLitePath    string
	MongoURL      string
	MongoDB       string
	SECUserAgent  string
	Port          string
	DefaultSource models.DataSource
}

// Load reads configuration from a .env file (if present) and the
// environment. SEC_USER_AGENT is required: EDGAR rejects anonymous
// clients, and it must identify the operator with a contact address.
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	userAgent := os.Getenv("SEC_USER_AGENT")
	if userAgent == "" {
		return nil, fmt.Errorf("SEC_USER_AGENT environment variable is required (e.g. \"fincore admin@example.com\")")
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "data/financials.db"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	source := models.DataSource(os.Getenv("DATA_SOURCE"))
	switch source {
	case "":
		source = models.SourceSQLite
	case models.SourceSQLite, models.SourceMongo:
	default:
		return nil, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", models.SourceSQLite, models.SourceMongo, source)
	}

	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "sec_filings"
	}

	return &Config{
		SQLitePath:    sqlitePath,
		MongoURL:      os.Getenv("MONGO_URL"),
		MongoDB:       mongoDB,
		SECUserAgent:  userAgent,
		Port:          port,
		DefaultSource: source,
	}, nil
}
