package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports service liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// Info describes the API for callers hitting the root endpoint.
func Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "OpenFPL - AI Fantasy Premier League Scout",
		"version": "1.0.0",
	})
}
