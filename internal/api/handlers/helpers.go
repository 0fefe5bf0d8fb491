package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tobiscuit/three-chicks-and-a-wick-admin-sub001/pkg/errors"
)

// respondServiceError maps service-layer error types onto HTTP statuses.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *errors.ErrValidation:
		body := gin.H{"error": e.Error()}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case *errors.ErrConfiguration:
		// A live variant references an ingredient the engine no longer
		// knows. Never masked with a default price.
		logger.Error("Ingredient configuration error", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	default:
		logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
