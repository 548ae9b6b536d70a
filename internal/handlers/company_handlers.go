package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fincore/internal/models"
	"fincore/internal/services"
)

// CompanyHandler handles company listing, derived metrics and dashboard
// endpoints
type CompanyHandler struct {
	analyticsSvc *services.AnalyticsService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(analyticsSvc *services.AnalyticsService) *CompanyHandler {
	return &CompanyHandler{
		analyticsSvc: analyticsSvc,
	}
}

// List handles GET /companies
// @Summary List stored companies
// @Description List every stored company period with its audit status
// @Tags companies
// @Produce json
// @Param source query string false "Data source (sqlite or mongo)"
// @Success 200 {array} models.CompanyListItem
// @Failure 503 {object} models.ErrorResponse
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	items, err := h.analyticsSvc.ListCompanies(c.Request.Context(), models.DataSource(c.Query("source")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Metrics handles GET /companies/:ticker/metrics
// @Summary Derived metrics for a company
// @Description Normalize the company's latest stored filing and derive its ratio set and risk assessment
// @Tags companies
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Param source query string false "Data source (sqlite or mongo)"
// @Success 200 {object} models.CompanyMetricsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /companies/{ticker}/metrics [get]
func (h *CompanyHandler) Metrics(c *gin.Context) {
	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.analyticsSvc.CompanyMetrics(warnCtx, c.Param("ticker"), models.DataSource(c.Query("source")))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// Overview handles GET /overview
// @Summary Dashboard aggregates
// @Description Company count, revenue and net income totals, and the average profit margin across all stored companies
// @Tags dashboard
// @Produce json
// @Param source query string false "Data source (sqlite or mongo)"
// @Success 200 {object} models.OverviewResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /overview [get]
func (h *CompanyHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsSvc.Overview(c.Request.Context(), models.DataSource(c.Query("source")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Stats handles GET /stats
// @Summary Warehouse record counts
// @Description Record counts for both stores; a missing MongoDB connection is reported, not an error
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.StoreStats
// @Failure 500 {object} models.ErrorResponse
// @Router /stats [get]
func (h *CompanyHandler) Stats(c *gin.Context) {
	stats, err := h.analyticsSvc.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Document handles GET /documents/:ticker
// @Summary Raw stored document
// @Description The latest MongoDB document for a ticker, as stored
// @Tags documents
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /documents/{ticker} [get]
func (h *CompanyHandler) Document(c *gin.Context) {
	doc, err := h.analyticsSvc.RawDocument(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
