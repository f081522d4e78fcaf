package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skycart-api/internal/model"
	"skycart-api/internal/repository"
	"skycart-api/internal/service"
)

// respondError maps business errors onto HTTP statuses. Anything unknown is
// a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrNotCancellable),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrPayment):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// pageParams reads ?page= and ?limit= with sane clamping.
func pageParams(c *gin.Context, defaultSize, maxSize int) (int64, int64) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultSize)), 10, 64)
	if err != nil || limit < 1 {
		limit = int64(defaultSize)
	}
	if limit > int64(maxSize) {
		limit = int64(maxSize)
	}

	return page, limit
}
