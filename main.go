package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"fincore/config"
	"fincore/internal/cache"
	"fincore/internal/database"
	"fincore/internal/edgar"
	"fincore/internal/handlers"
	"fincore/internal/metrics"
	"fincore/internal/middleware"
	"fincore/internal/repository"
	"fincore/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize the SQLite warehouse
	db, err := database.NewSQLite(ctx, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open sqlite database: %v", err)
	}
	defer db.Close()

	// Initialize the MongoDB document store. Unreachable MongoDB is not
	// fatal; the API degrades to SQLite-only.
	mongo, err := database.NewMongo(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		log.Warnf("MongoDB unavailable, continuing with sqlite only: %v", err)
	}
	defer mongo.Close(ctx)

	// Initialize EDGAR client
	edgarClient := edgar.NewClient(cfg.SECUserAgent)

	// Initialize caches
	memCache := cache.NewMemoryCache(5 * time.Minute)

	// Initialize repositories
	stores := &services.StoreSet{
		SQLite:        repository.NewSQLiteFilingRepository(db.DB),
		DefaultSource: cfg.DefaultSource,
	}
	if mongo != nil {
		stores.Mongo = repository.NewMongoFilingRepository(mongo.Database)
	}
	queryRepo := repository.NewQueryRepository(db.DB)

	// Initialize services
	ingestSvc := services.NewIngestService(edgarClient, stores, memCache)
	analyticsSvc := services.NewAnalyticsService(stores, memCache, metrics.AltmanManufacturing)
	projectionSvc := services.NewProjectionService(stores)
	querySvc := services.NewQueryService(queryRepo)

	// Initialize handlers
	ingestHandler := handlers.NewIngestHandler(ingestSvc)
	companyHandler := handlers.NewCompanyHandler(analyticsSvc)
	benchmarkHandler := handlers.NewBenchmarkHandler(analyticsSvc)
	projectionHandler := handlers.NewProjectionHandler(projectionSvc)
	queryHandler := handlers.NewQueryHandler(querySvc)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Filing routes
	router.POST("/filings/ingest", ingestHandler.Ingest)
	router.GET("/companies", companyHandler.List)
	router.GET("/companies/:ticker/metrics", companyHandler.Metrics)
	router.GET("/documents/:ticker", companyHandler.Document)

	// Analysis routes
	router.POST("/benchmark", benchmarkHandler.Benchmark)
	router.POST("/projections", projectionHandler.Project)

	// Warehouse routes
	router.POST("/query", queryHandler.Query)
	router.GET("/stats", companyHandler.Stats)
	router.GET("/overview", companyHandler.Overview)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
