package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthMiddleware authenticates requests against the configured admin
// API key. The server stores only the bcrypt hash; the plaintext key is
// presented as a Bearer token.
func AdminAuthMiddleware(adminKeyHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKeyHash == "" {
			logger.Error("Admin API key hash is not configured; rejecting request")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin authentication not configured"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			c.Abort()
			return
		}

		if !VerifyAPIKey(apiKey, adminKeyHash) {
			logger.Warn("Rejected request with invalid admin API key", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// HashAPIKey hashes an API key using bcrypt. Used by the key-hash CLI to
// produce the value stored in ADMIN_API_KEY_HASH.
func HashAPIKey(apiKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey verifies an API key against a bcrypt hash.
func VerifyAPIKey(apiKey, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey)) == nil
}
