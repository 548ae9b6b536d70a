package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fincore/internal/models"
	"fincore/internal/services"
)

// BenchmarkHandler handles peer benchmarking endpoints
type BenchmarkHandler struct {
	analyticsSvc *services.AnalyticsService
}

// NewBenchmarkHandler creates a new BenchmarkHandler
func NewBenchmarkHandler(analyticsSvc *services.AnalyticsService) *BenchmarkHandler {
	return &BenchmarkHandler{
		analyticsSvc: analyticsSvc,
	}
}

// Benchmark handles POST /benchmark
// @Summary Benchmark a company against a peer group
// @Description Position a company's ratio set against per-ratio peer aggregates; an empty peer list uses every other stored company
// @Tags benchmark
// @Accept json
// @Produce json
// @Param request body models.BenchmarkRequest true "Target and peer group"
// @Success 200 {object} models.BenchmarkResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /benchmark [post]
func (h *BenchmarkHandler) Benchmark(c *gin.Context) {
	var req models.BenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	result, err := h.analyticsSvc.Benchmark(warnCtx, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BenchmarkResponse{
		Result:   *result,
		Warnings: wc.GetWarnings(),
	})
}
