package handlers

import (
	"net/http"

	"salonflow/utils"

	"github.com/gin-gonic/gin"
)

// Healthz is a simple liveness probe.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports the last observed dependency health.
func Readyz(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	for _, ok := range status.Redis {
		if !ok {
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, status)
}
