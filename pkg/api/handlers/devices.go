package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/api/types"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
)

// DevicesHandler manages saved device endpoints
type DevicesHandler struct {
	store     db.DeviceStore
	profileID int64
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(store db.DeviceStore, profileID int64) *DevicesHandler {
	return &DevicesHandler{store: store, profileID: profileID}
}

func toSavedDevice(d *db.Device) types.SavedDevice {
	return types.SavedDevice{
		ID:         d.ID,
		Name:       d.Name,
		Transport:  d.Transport,
		Host:       d.Host,
		Port:       d.Port,
		SerialPort: d.SerialPort,
		BaudRate:   d.BaudRate,
		IsDefault:  d.IsDefault,
	}
}

func deviceID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_id",
			Message: "Device id must be an integer",
		})
		return 0, false
	}
	return id, true
}

// ListDevices handles GET /devices
// @Summary      List saved devices
// @Description  Returns all saved device endpoints for the active profile
// @Tags         devices
// @Produce      json
// @Success      200  {object}  types.ListDevicesResponse
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	devices, err := h.store.List(c.Request.Context(), h.profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "store_error",
			Message: err.Error(),
		})
		return
	}

	out := make([]types.SavedDevice, 0, len(devices))
	for _, d := range devices {
		out = append(out, toSavedDevice(d))
	}
	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: out,
		Count:   len(out),
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get a saved device
// @Tags         devices
// @Produce      json
// @Param        id   path      int  true  "Device id"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	d, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Device not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "store_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DeviceResponse{Device: toSavedDevice(d)})
}

// CreateDevice handles POST /devices
// @Summary      Save a device endpoint
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        request  body      types.SaveDeviceRequest  true  "Endpoint to save"
// @Success      201      {object}  types.DeviceResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Router       /devices [post]
func (h *DevicesHandler) CreateDevice(c *gin.Context) {
	var req types.SaveDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "name is required",
		})
		return
	}

	d := &db.Device{
		ProfileID:  h.profileID,
		Name:       req.Name,
		Transport:  req.Transport,
		Host:       req.Host,
		Port:       req.Port,
		SerialPort: req.SerialPort,
		BaudRate:   req.BaudRate,
		IsDefault:  req.IsDefault,
	}
	if err := h.store.Create(c.Request.Context(), d); err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "store_error",
			Message: err.Error(),
		})
		return
	}
	if req.IsDefault {
		if err := h.store.SetDefault(c.Request.Context(), d.ID); err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Error:   "store_error",
				Message: err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusCreated, types.DeviceResponse{Device: toSavedDevice(d)})
}

// DeleteDevice handles DELETE /devices/:id
// @Summary      Delete a saved device
// @Tags         devices
// @Produce      json
// @Param        id   path  int  true  "Device id"
// @Success      204  "Deleted"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id} [delete]
func (h *DevicesHandler) DeleteDevice(c *gin.Context) {
	id, ok := deviceID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Device not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "store_error",
			Message: err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}
