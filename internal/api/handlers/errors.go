package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/zoneinv/internal/api/models"
	"github.com/jroosing/zoneinv/internal/couch"
	"github.com/jroosing/zoneinv/internal/inventory"
)

// respondError maps service errors onto HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	var storeErr *couch.StoreError
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, inventory.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, inventory.ErrInvalid):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.As(err, &storeErr):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "document store error"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
}

// ifMatch returns the revision from If-Match, or "" for none or "*".
func ifMatch(c *gin.Context) string {
	rev := strings.Trim(strings.TrimSpace(c.GetHeader("If-Match")), `"`)
	if rev == "*" {
		return ""
	}
	return rev
}
