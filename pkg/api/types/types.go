package types

import "time"

// --- Request DTOs ---

// ConnectRequest is the request body for POST /connection. Exactly one
// way of naming the endpoint should be used: a saved device id, a serial
// port path, or an explicit host/port pair. An empty body connects to
// the profile's default device.
type ConnectRequest struct {
	DeviceID   int64  `json:"device_id,omitempty"`
	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty"`
	SerialPort string `json:"serial_port,omitempty"`
	BaudRate   int    `json:"baud_rate,omitempty"`
}

// RenameLightRequest is the request body for PATCH /lights/:id
type RenameLightRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

// SaveDeviceRequest is the request body for POST /devices and PUT /devices/:id
type SaveDeviceRequest struct {
	Name       string `json:"name" binding:"required"`
	Transport  string `json:"transport,omitempty"`
	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty"`
	SerialPort string `json:"serial_port,omitempty"`
	BaudRate   int    `json:"baud_rate,omitempty"`
	IsDefault  bool   `json:"is_default,omitempty"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}

// ConnectionResponse is returned from GET /connection and POST /connection
type ConnectionResponse struct {
	Status   string `json:"status"`
	Endpoint string `json:"endpoint,omitempty"`
	Welcome  string `json:"welcome,omitempty"`
}

// LightWithState combines roster info with the session's state table
type LightWithState struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	On          bool   `json:"on"`
}

// ListLightsResponse is returned from GET /lights
type ListLightsResponse struct {
	Lights []LightWithState `json:"lights"`
	Count  int              `json:"count"`
}

// LightResponse is returned from GET /lights/:id
type LightResponse struct {
	Light LightWithState `json:"light"`
}

// CommandResponse is returned from state changes and POST /refresh.
// Sent reflects whether the command was written to the device; state
// updates arrive asynchronously on the event stream.
type CommandResponse struct {
	Command   string    `json:"command"`
	Sent      bool      `json:"sent"`
	Timestamp time.Time `json:"timestamp"`
}

// SavedDevice is a stored device endpoint
type SavedDevice struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Transport  string `json:"transport"`
	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty"`
	SerialPort string `json:"serial_port,omitempty"`
	BaudRate   int    `json:"baud_rate,omitempty"`
	IsDefault  bool   `json:"is_default"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Devices []SavedDevice `json:"devices"`
	Count   int           `json:"count"`
}

// DeviceResponse is returned from GET /devices/:id
type DeviceResponse struct {
	Device SavedDevice `json:"device"`
}
