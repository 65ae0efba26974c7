package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/esp32"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := "healthy"
	if !s.controller.IsConnected() {
		status = "unhealthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Device:    string(s.controller.Status()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetConnection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := ConnectionOutput{
		Status:   string(s.controller.Status()),
		Endpoint: s.controller.Endpoint(),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleConnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	serialPort, _ := args["serial_port"].(string)
	host, _ := args["host"].(string)
	port := db.DefaultDevicePort
	if p, ok := args["port"].(float64); ok && p > 0 {
		port = int(p)
	}
	baud := esp32.DefaultBaudRate
	if b, ok := args["baud_rate"].(float64); ok && b > 0 {
		baud = int(b)
	}

	// Fall back to the configured default endpoint
	if serialPort == "" && host == "" {
		if s.defaults == nil {
			return mcp.NewToolResultError("no endpoint given and no default device configured"), nil
		}
		if s.defaults.Transport == db.TransportSerial {
			serialPort = s.defaults.SerialPort
			baud = s.defaults.BaudRate
		} else {
			host = s.defaults.Host
			port = s.defaults.Port
		}
	}

	var welcome string
	var err error
	if serialPort != "" {
		welcome, err = s.controller.ConnectSerial(ctx, serialPort, baud)
	} else {
		welcome, err = s.controller.Connect(ctx, host, port)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to connect: %s", err)), nil
	}

	out := ConnectionOutput{
		Status:   string(s.controller.Status()),
		Endpoint: s.controller.Endpoint(),
		Welcome:  welcome,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleDisconnect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.controller.Disconnect()

	out := ConnectionOutput{
		Status:   string(s.controller.Status()),
		Endpoint: s.controller.Endpoint(),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListLights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	states := make(map[string]bool)
	for _, st := range s.controller.LightStates() {
		states[st.ID] = st.On
	}

	infos := make([]LightInfo, 0, len(s.roster))
	for _, l := range s.roster {
		infos = append(infos, LightInfo{
			ID:          l.ID,
			DisplayName: l.DisplayName,
			On:          states[l.ID],
		})
	}

	out := ListLightsOutput{
		Lights: infos,
		Count:  len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleTurnOn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.lightCommand(request, device.TurnOn)
}

func (s *Server) handleTurnOff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.lightCommand(request, device.TurnOff)
}

func (s *Server) handleToggle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.lightCommand(request, device.Toggle)
}

func (s *Server) handleAllOn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.sendCommand(device.AllOn()), nil
}

func (s *Server) handleAllOff(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.sendCommand(device.AllOff()), nil
}

func (s *Server) handleRefreshStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.sendCommand(device.QueryStatus()), nil
}

// lightCommand handles the per-light tools, which share an "id" argument
// and a roster membership check.
func (s *Server) lightCommand(request mcp.CallToolRequest, build func(string) device.Command) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	known := false
	for _, l := range s.roster {
		if l.ID == id {
			known = true
			break
		}
	}
	if !known {
		return mcp.NewToolResultError(fmt.Sprintf("unknown light %q", id)), nil
	}

	return s.sendCommand(build(id)), nil
}

func (s *Server) sendCommand(cmd device.Command) *mcp.CallToolResult {
	line := esp32.Encode(cmd)
	if !s.controller.Send(cmd) {
		return mcp.NewToolResultError(fmt.Sprintf("failed to send %q: %s", line, device.ErrNotConnected))
	}

	out := CommandOutput{
		Command: line,
		Sent:    true,
		Message: "State updates arrive asynchronously; call list_lights to read them",
	}
	return mcp.NewToolResultText(formatJSON(out))
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
