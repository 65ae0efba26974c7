package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check whether the light controller device is connected"),
		),
		s.handleGetHealth,
	)

	// Connection status
	s.mcpServer.AddTool(
		mcp.NewTool("get_connection",
			mcp.WithDescription("Get the current connection status and endpoint"),
		),
		s.handleGetConnection,
	)

	// Connect
	s.mcpServer.AddTool(
		mcp.NewTool("connect",
			mcp.WithDescription("Connect to the light controller over TCP or serial. With no arguments, connects to the configured default device."),
			mcp.WithString("host",
				mcp.Description("Device hostname or IP address"),
			),
			mcp.WithNumber("port",
				mcp.Description("Device TCP port (default 8080)"),
			),
			mcp.WithString("serial_port",
				mcp.Description("Serial console path, e.g. /dev/ttyUSB0; overrides host/port"),
			),
			mcp.WithNumber("baud_rate",
				mcp.Description("Serial baud rate (default 115200)"),
			),
		),
		s.handleConnect,
	)

	// Disconnect
	s.mcpServer.AddTool(
		mcp.NewTool("disconnect",
			mcp.WithDescription("Disconnect from the light controller"),
		),
		s.handleDisconnect,
	)

	// List lights
	s.mcpServer.AddTool(
		mcp.NewTool("list_lights",
			mcp.WithDescription("List all configured lights with their last known on/off state"),
		),
		s.handleListLights,
	)

	// Turn on
	s.mcpServer.AddTool(
		mcp.NewTool("turn_on",
			mcp.WithDescription("Turn a single light on"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Light id, e.g. light1 or builtin"),
			),
		),
		s.handleTurnOn,
	)

	// Turn off
	s.mcpServer.AddTool(
		mcp.NewTool("turn_off",
			mcp.WithDescription("Turn a single light off"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Light id, e.g. light1 or builtin"),
			),
		),
		s.handleTurnOff,
	)

	// Toggle
	s.mcpServer.AddTool(
		mcp.NewTool("toggle",
			mcp.WithDescription("Toggle a single light"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Light id, e.g. light1 or builtin"),
			),
		),
		s.handleToggle,
	)

	// All on
	s.mcpServer.AddTool(
		mcp.NewTool("all_on",
			mcp.WithDescription("Turn every light on"),
		),
		s.handleAllOn,
	)

	// All off
	s.mcpServer.AddTool(
		mcp.NewTool("all_off",
			mcp.WithDescription("Turn every light off"),
		),
		s.handleAllOff,
	)

	// Refresh
	s.mcpServer.AddTool(
		mcp.NewTool("refresh_status",
			mcp.WithDescription("Ask the device to report the current state of every light"),
		),
		s.handleRefreshStatus,
	)
}
