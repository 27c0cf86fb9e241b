// internal/interfaces/http/handlers/helpers.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pitstop-performance/backend/internal/pkg/apperr"
)

// respondError maps a service error to an HTTP response
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": apperr.Message(err),
	})
}
