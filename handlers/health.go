package handlers

import (
	"net/http"

	"infinitewash/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health. Backing service status comes from the last background check.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	overall := "ok"
	if !status.CheckedAt.IsZero() && (!status.Mongo || !status.Redis) {
		code = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(code, gin.H{"status": overall, "message": "Hi, I'm Infinite Wash", "services": status})
}
