package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/api/types"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

// ConnectionHandler manages the device connection lifecycle
type ConnectionHandler struct {
	controller device.Controller
	devices    db.DeviceStore
	profileID  int64
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(controller device.Controller, devices db.DeviceStore, profileID int64) *ConnectionHandler {
	return &ConnectionHandler{
		controller: controller,
		devices:    devices,
		profileID:  profileID,
	}
}

// GetConnection handles GET /connection
// @Summary      Connection status
// @Description  Returns the current connection state and endpoint
// @Tags         connection
// @Produce      json
// @Success      200  {object}  types.ConnectionResponse
// @Router       /connection [get]
func (h *ConnectionHandler) GetConnection(c *gin.Context) {
	c.JSON(http.StatusOK, types.ConnectionResponse{
		Status:   string(h.controller.Status()),
		Endpoint: h.controller.Endpoint(),
	})
}

// Connect handles POST /connection
// @Summary      Connect to the device
// @Description  Opens a TCP or serial connection to the light controller. The endpoint can be a saved device id, a serial port path, an explicit host/port pair, or empty for the profile's default device.
// @Tags         connection
// @Accept       json
// @Produce      json
// @Param        request  body      types.ConnectRequest  false  "Endpoint to connect to"
// @Success      200      {object}  types.ConnectionResponse
// @Failure      400      {object}  types.ErrorResponse  "No endpoint configured"
// @Failure      404      {object}  types.ErrorResponse  "Saved device not found"
// @Failure      409      {object}  types.ErrorResponse  "Already connected"
// @Failure      502      {object}  types.ErrorResponse  "Device unreachable"
// @Router       /connection [post]
func (h *ConnectionHandler) Connect(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.ConnectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_request",
				Message: "Invalid request body",
			})
			return
		}
	}

	if req.DeviceID != 0 {
		saved, err := h.devices.Get(ctx, req.DeviceID)
		if err != nil {
			if errors.Is(err, db.ErrDeviceNotFound) {
				c.JSON(http.StatusNotFound, types.ErrorResponse{
					Error:   "not_found",
					Message: "Saved device not found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Error:   "store_error",
				Message: err.Error(),
			})
			return
		}
		if saved.Transport == db.TransportSerial {
			req.SerialPort = saved.SerialPort
			req.BaudRate = saved.BaudRate
		} else {
			req.Host = saved.Host
			req.Port = saved.Port
		}
	}

	// Fall back to the profile's default device
	if req.Host == "" && req.SerialPort == "" {
		saved, err := h.devices.GetDefault(ctx, h.profileID)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "no_endpoint",
				Message: "No endpoint given and no default device configured",
			})
			return
		}
		if saved.Transport == db.TransportSerial {
			req.SerialPort = saved.SerialPort
			req.BaudRate = saved.BaudRate
		} else {
			req.Host = saved.Host
			req.Port = saved.Port
		}
	}

	var welcome string
	var err error
	if req.SerialPort != "" {
		welcome, err = h.controller.ConnectSerial(ctx, req.SerialPort, req.BaudRate)
	} else {
		if req.Port == 0 {
			req.Port = db.DefaultDevicePort
		}
		welcome, err = h.controller.Connect(ctx, req.Host, req.Port)
	}
	if err != nil {
		if errors.Is(err, device.ErrAlreadyConnected) {
			c.JSON(http.StatusConflict, types.ErrorResponse{
				Error:   "already_connected",
				Message: err.Error(),
			})
			return
		}
		if errors.Is(err, device.ErrConnect) {
			c.JSON(http.StatusBadGateway, types.ErrorResponse{
				Error:   "connect_failed",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "controller_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.ConnectionResponse{
		Status:   string(h.controller.Status()),
		Endpoint: h.controller.Endpoint(),
		Welcome:  welcome,
	})
}

// Disconnect handles DELETE /connection
// @Summary      Disconnect from the device
// @Description  Closes the connection. A no-op when already disconnected.
// @Tags         connection
// @Produce      json
// @Success      200  {object}  types.ConnectionResponse
// @Router       /connection [delete]
func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	h.controller.Disconnect()
	c.JSON(http.StatusOK, types.ConnectionResponse{
		Status:   string(h.controller.Status()),
		Endpoint: h.controller.Endpoint(),
	})
}
