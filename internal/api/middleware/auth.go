package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/openfpl/scout-api/pkg/utils"
)

// APIKeyAuth validates the caller's API key against the configured
// set. Keys arrive as "Authorization: Bearer <key>" or in the
// X-API-Key header. An empty configured set rejects everything: a
// misconfigured deployment must not be silently open.
func APIKeyAuth(validKeys []string, logger *logrus.Logger) gin.HandlerFunc {
	keySet := make(map[string]bool, len(validKeys))
	for _, k := range validKeys {
		keySet[k] = true
	}

	return func(c *gin.Context) {
		if len(keySet) == 0 {
			logger.Warn("No API keys configured")
			utils.SendInternalError(c, "Authentication not properly configured")
			c.Abort()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if key == "" || !keySet[key] {
			logger.WithField("path", c.Request.URL.Path).Warn("Invalid API key attempted")
			utils.SendUnauthorized(c, "Invalid API key")
			c.Abort()
			return
		}

		c.Next()
	}
}
