package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fincore/internal/models"
	"fincore/internal/services"
)

// IngestHandler handles EDGAR ingest endpoints
type IngestHandler struct {
	ingestSvc *services.IngestService
}

// NewIngestHandler creates a new IngestHandler
func NewIngestHandler(ingestSvc *services.IngestService) *IngestHandler {
	return &IngestHandler{
		ingestSvc: ingestSvc,
	}
}

// Ingest handles POST /filings/ingest
// @Summary Ingest 10-K filings from SEC EDGAR
// @Description Fetch the latest annual figures for each ticker from the EDGAR companyfacts API and store them in the selected warehouse
// @Tags filings
// @Accept json
// @Produce json
// @Param request body models.IngestRequest true "Tickers and target store"
// @Success 200 {object} models.IngestResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /filings/ingest [post]
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.ingestSvc.IngestTickers(warnCtx, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}
