package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/invoice"
	authsvc "storefront/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors to client-visible JSON. Anything outside
// the taxonomy becomes an opaque 500; internals never reach the client.
func writeError(c *gin.Context, logger *log.Logger, err error) {
	var invalidItem *domain.InvalidItemError
	var upstream *invoice.UpstreamError

	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, authsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.As(err, &invalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidItem.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &upstream):
		// A JSON upstream body is already a complete error document;
		// relay it verbatim instead of re-encoding it as a string.
		if strings.Contains(upstream.ContentType, "application/json") {
			c.Data(upstream.StatusCode, upstream.ContentType, []byte(upstream.Body))
			return
		}
		c.JSON(upstream.StatusCode, gin.H{"error": upstream.Body})
	default:
		logger.Printf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
