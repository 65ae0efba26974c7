package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

// Server wraps the MCP server with light control tools
type Server struct {
	mcpServer  *server.MCPServer
	controller device.Controller
	roster     []device.Light
	defaults   *db.Device
}

// NewServer creates a new MCP server for light control. defaults is the
// profile's default endpoint and may be nil; the connect tool then
// requires explicit arguments.
func NewServer(controller device.Controller, roster []device.Light, defaults *db.Device) *Server {
	s := &Server{
		controller: controller,
		roster:     roster,
		defaults:   defaults,
	}

	s.mcpServer = server.NewMCPServer(
		"esplight",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
