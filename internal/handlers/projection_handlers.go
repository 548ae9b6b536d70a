package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fincore/internal/models"
	"fincore/internal/services"
)

// ProjectionHandler handles growth projection endpoints
type ProjectionHandler struct {
	projectionSvc *services.ProjectionService
}

// NewProjectionHandler creates a new ProjectionHandler
func NewProjectionHandler(projectionSvc *services.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{
		projectionSvc: projectionSvc,
	}
}

// Project handles POST /projections
// @Summary Project a company's figures forward
// @Description Compound every figure of the company's latest filing at a uniform growth rate over the requested horizon, recomputing ratios per period
// @Tags projections
// @Accept json
// @Produce json
// @Param request body models.ProjectionRequest true "Growth scenario"
// @Success 200 {object} models.ProjectionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /projections [post]
func (h *ProjectionHandler) Project(c *gin.Context) {
	var req models.ProjectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	series, err := h.projectionSvc.Project(warnCtx, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectionResponse{
		Series:   *series,
		Warnings: wc.GetWarnings(),
	})
}
