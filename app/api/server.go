// Package api exposes a small read-only status server: health, processing
// statistics and recently processed items.
package api

import (
	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP status server with all routes configured.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handler.HealthCheck)
	r.GET("/stats", handler.GetStats)
	r.GET("/items/recent", handler.GetRecentItems)

	return r
}
