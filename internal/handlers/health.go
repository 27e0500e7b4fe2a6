package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calier/phonerec/internal/services"
)

type HealthHandler struct {
	health *services.HealthService
}

func NewHealthHandler(health *services.HealthService) *HealthHandler {
	return &HealthHandler{health: health}
}

// Check reports readiness. Unhealthy maps to 503 so load balancers can take
// the instance out of rotation.
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.health.CheckHealth()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
