package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fincore/internal/metrics"
	"fincore/internal/models"
	"fincore/internal/repository"
	"fincore/internal/services"
)

// writeServiceError maps service and repository errors onto HTTP statuses.
// Anything unrecognized is a 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrMongoUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "store_unavailable",
			Message: err.Error(),
		})
	case errors.Is(err, metrics.ErrInvalidGrowthRate),
		errors.Is(err, metrics.ErrInvalidHorizon),
		errors.Is(err, repository.ErrQueryNotAllowed):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
