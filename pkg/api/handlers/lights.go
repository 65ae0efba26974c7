package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/api/types"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device/schema"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/esp32"
)

// LightsHandler handles light roster and state control endpoints
type LightsHandler struct {
	controller device.Controller
	store      db.LightStore
	validator  *schema.Validator
	profileID  int64
}

// NewLightsHandler creates a new lights handler
func NewLightsHandler(controller device.Controller, store db.LightStore, validator *schema.Validator, profileID int64) *LightsHandler {
	return &LightsHandler{
		controller: controller,
		store:      store,
		validator:  validator,
		profileID:  profileID,
	}
}

func (h *LightsHandler) roster(c *gin.Context) ([]device.Light, bool) {
	lights, err := h.store.List(c.Request.Context(), h.profileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "store_error",
			Message: err.Error(),
		})
		return nil, false
	}
	return lights, true
}

func (h *LightsHandler) stateTable() map[string]bool {
	states := make(map[string]bool)
	for _, s := range h.controller.LightStates() {
		states[s.ID] = s.On
	}
	return states
}

// ListLights handles GET /lights
// @Summary      List lights
// @Description  Returns the configured roster merged with the last known on/off states
// @Tags         lights
// @Produce      json
// @Success      200  {object}  types.ListLightsResponse
// @Router       /lights [get]
func (h *LightsHandler) ListLights(c *gin.Context) {
	roster, ok := h.roster(c)
	if !ok {
		return
	}
	states := h.stateTable()

	lights := make([]types.LightWithState, 0, len(roster))
	for _, l := range roster {
		lights = append(lights, types.LightWithState{
			ID:          l.ID,
			DisplayName: l.DisplayName,
			On:          states[l.ID],
		})
	}

	c.JSON(http.StatusOK, types.ListLightsResponse{
		Lights: lights,
		Count:  len(lights),
	})
}

// GetLight handles GET /lights/:id
// @Summary      Get one light
// @Description  Returns a single light with its last known state
// @Tags         lights
// @Produce      json
// @Param        id   path      string  true  "Light id"
// @Success      200  {object}  types.LightResponse
// @Failure      404  {object}  types.ErrorResponse  "Light not found"
// @Router       /lights/{id} [get]
func (h *LightsHandler) GetLight(c *gin.Context) {
	id := c.Param("id")
	roster, ok := h.roster(c)
	if !ok {
		return
	}

	for _, l := range roster {
		if l.ID == id {
			c.JSON(http.StatusOK, types.LightResponse{
				Light: types.LightWithState{
					ID:          l.ID,
					DisplayName: l.DisplayName,
					On:          h.stateTable()[l.ID],
				},
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, types.ErrorResponse{
		Error:   "not_found",
		Message: "Light not found",
	})
}

// RenameLight handles PATCH /lights/:id
// @Summary      Rename a light
// @Description  Updates the display name shown for a light
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Light id"
// @Param        request  body      types.RenameLightRequest  true  "New display name"
// @Success      200      {object}  types.LightResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Light not found"
// @Router       /lights/{id} [patch]
func (h *LightsHandler) RenameLight(c *gin.Context) {
	id := c.Param("id")

	var req types.RenameLightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "display_name is required",
		})
		return
	}

	err := h.store.Rename(c.Request.Context(), h.profileID, id, req.DisplayName)
	if err != nil {
		if errors.Is(err, device.ErrNotFound) {
			c.JSON(http.StatusNotFound, types.ErrorResponse{
				Error:   "not_found",
				Message: "Light not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "store_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.LightResponse{
		Light: types.LightWithState{
			ID:          id,
			DisplayName: req.DisplayName,
			On:          h.stateTable()[id],
		},
	})
}

// SetLightState handles POST /lights/:id/state
// @Summary      Set light state
// @Description  Sends ON, OFF or TOGGLE for one light
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Light id"
// @Param        request  body      object  true  "State to set, e.g. {\"state\": \"ON\"}"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid state"
// @Failure      404      {object}  types.ErrorResponse  "Light not found"
// @Failure      503      {object}  types.ErrorResponse  "Not connected"
// @Router       /lights/{id}/state [post]
func (h *LightsHandler) SetLightState(c *gin.Context) {
	id := c.Param("id")

	var req map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.validator.Validate(json.RawMessage(schema.LightStateSchema), req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	roster, ok := h.roster(c)
	if !ok {
		return
	}
	known := false
	for _, l := range roster {
		if l.ID == id {
			known = true
			break
		}
	}
	if !known {
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Light not found",
		})
		return
	}

	var cmd device.Command
	switch req["state"] {
	case "ON":
		cmd = device.TurnOn(id)
	case "OFF":
		cmd = device.TurnOff(id)
	case "TOGGLE":
		cmd = device.Toggle(id)
	}

	h.sendCommand(c, cmd)
}

// SetAllLights handles POST /lights/state
// @Summary      Set all lights
// @Description  Sends ALL_ON or ALL_OFF
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        request  body      object  true  "State to set, e.g. {\"state\": \"OFF\"}"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid state"
// @Failure      503      {object}  types.ErrorResponse  "Not connected"
// @Router       /lights/state [post]
func (h *LightsHandler) SetAllLights(c *gin.Context) {
	var req map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.validator.Validate(json.RawMessage(schema.GroupStateSchema), req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	cmd := device.AllOff()
	if req["state"] == "ON" {
		cmd = device.AllOn()
	}

	h.sendCommand(c, cmd)
}

// Refresh handles POST /refresh
// @Summary      Refresh light states
// @Description  Asks the device to report all light states; updates arrive on the event stream
// @Tags         lights
// @Produce      json
// @Success      200  {object}  types.CommandResponse
// @Failure      503  {object}  types.ErrorResponse  "Not connected"
// @Router       /refresh [post]
func (h *LightsHandler) Refresh(c *gin.Context) {
	h.sendCommand(c, device.QueryStatus())
}

func (h *LightsHandler) sendCommand(c *gin.Context, cmd device.Command) {
	if !h.controller.Send(cmd) {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "not_connected",
			Message: device.ErrNotConnected.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.CommandResponse{
		Command:   esp32.Encode(cmd),
		Sent:      true,
		Timestamp: time.Now(),
	})
}
