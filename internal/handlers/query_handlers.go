package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fincore/internal/models"
	"fincore/internal/services"
)

// QueryHandler handles the read-only SQL console endpoint
type QueryHandler struct {
	querySvc *services.QueryService
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(querySvc *services.QueryService) *QueryHandler {
	return &QueryHandler{
		querySvc: querySvc,
	}
}

// Query handles POST /query
// @Summary Run a read-only SQL query
// @Description Execute a single SELECT statement against the SQLite warehouse and return the result grid
// @Tags query
// @Accept json
// @Produce json
// @Param request body models.QueryRequest true "SQL statement"
// @Success 200 {object} models.QueryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /query [post]
func (h *QueryHandler) Query(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.querySvc.Execute(c.Request.Context(), req.SQL)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
