package mcp

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Device    string `json:"device" jsonschema:"description=Device connection status"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- Connection Tools ---

// ConnectionOutput is the output for get_connection, connect and disconnect
type ConnectionOutput struct {
	Status   string `json:"status" jsonschema:"description=Connection lifecycle state"`
	Endpoint string `json:"endpoint,omitempty" jsonschema:"description=host:port or serial path of the connection"`
	Welcome  string `json:"welcome,omitempty" jsonschema:"description=Banner the firmware printed on connect"`
}

// --- List Lights Tool ---

// LightInfo represents a light in tool outputs
type LightInfo struct {
	ID          string `json:"id" jsonschema:"description=Wire identifier used in commands"`
	DisplayName string `json:"display_name" jsonschema:"description=Human-readable name"`
	On          bool   `json:"on" jsonschema:"description=Last known on/off state"`
}

// ListLightsOutput is the output for the list_lights tool
type ListLightsOutput struct {
	Lights []LightInfo `json:"lights" jsonschema:"description=Configured lights"`
	Count  int         `json:"count" jsonschema:"description=Total number of lights"`
}

// --- Command Tools ---

// CommandOutput is the output for turn_on, turn_off, toggle, all_on,
// all_off and refresh_status
type CommandOutput struct {
	Command string `json:"command" jsonschema:"description=Protocol line sent to the device"`
	Sent    bool   `json:"sent" jsonschema:"description=Whether the command was written to the device"`
	Message string `json:"message,omitempty" jsonschema:"description=Status message"`
}
