package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// writeError maps the usecase error taxonomy onto HTTP statuses. The
// message is safe to surface: validation/gateway errors carry operator or
// customer facing descriptions, everything else degrades to a generic one.
func writeError(c *gin.Context, err error) {
	var gwErr *usecase.GatewayError
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, usecase.ErrSignatureMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "signature verification failed"})
	case errors.As(err, &gwErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": gwErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
