package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/api/types"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	controller device.Controller
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller device.Controller) *HealthHandler {
	return &HealthHandler{controller: controller}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and the device connection
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Device is not connected"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	deviceStatus := string(h.controller.Status())

	status := "healthy"
	httpStatus := http.StatusOK
	if !h.controller.IsConnected() {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Device:    deviceStatus,
		Timestamp: time.Now(),
	})
}
