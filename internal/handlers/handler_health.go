package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "ledger-posting-core"})
}

// registerHealthRoutes registers the unauthenticated liveness probe.
func registerHealthRoutes(r *gin.Engine) {
	r.GET("/health", getHealth)
}
