package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crewpay/internal/version"
)

// HealthHandler answers liveness probes
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Status handles GET /health
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
}
