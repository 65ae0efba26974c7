package device

import "context"

// Controller is the surface the presentation layers (HTTP API, MCP
// server) use to drive one light-controller session. Implementations own
// the connection lifecycle; callers never touch the socket.
type Controller interface {
	// Connect dials the device over TCP and returns the welcome banner
	// the firmware prints on accept. Blocks up to the handshake timeout.
	Connect(ctx context.Context, host string, port int) (string, error)

	// ConnectSerial opens the device's USB serial console instead of TCP.
	// Same handshake semantics as Connect.
	ConnectSerial(ctx context.Context, portPath string, baud int) (string, error)

	// Disconnect tears the connection down. Idempotent and safe to call
	// from any goroutine; returns without waiting for the receive loop.
	Disconnect()

	// Send transmits one command. Returns false without any I/O when the
	// session is not connected, and false after a failed write (which
	// also drops the connection).
	Send(cmd Command) bool

	// Status reports the connection lifecycle state.
	Status() ConnStatus

	// Endpoint reports the host:port or serial path of the current or
	// most recent connection attempt.
	Endpoint() string

	// IsConnected is shorthand for Status() == StatusConnected.
	IsConnected() bool

	// LightStates returns a snapshot of the state table in roster order.
	LightStates() []LightState
}

// EventSubscriber hands out buffered event channels. Delivery is
// fire-and-forget: a subscriber that falls behind loses events rather
// than blocking the session.
type EventSubscriber interface {
	Subscribe() chan Event
	Unsubscribe(ch chan Event)
}
