package device

import "time"

// Light describes one controllable output on the ESP32, as configured in
// the roster. The ID is the identifier used on the wire; DisplayName is
// what the firmware reports in parentheses on status lines and what UIs
// should show.
type Light struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Position    int    `json:"position"`
}

// LightState is the current on/off state of a single light.
type LightState struct {
	ID string `json:"id"`
	On bool   `json:"on"`
}

// Op is a wire-level command verb. The constant values are the literal
// tokens the firmware understands.
type Op string

const (
	OpOn     Op = "ON"
	OpOff    Op = "OFF"
	OpToggle Op = "TOGGLE"
	OpAllOn  Op = "ALL_ON"
	OpAllOff Op = "ALL_OFF"
	OpStatus Op = "STATUS"
)

// Command is an outbound instruction for the device. Per-light commands
// carry a LightID; ALL_ON, ALL_OFF and STATUS do not.
type Command struct {
	Op      Op
	LightID string
}

// TurnOn builds a command switching a single light on.
func TurnOn(id string) Command { return Command{Op: OpOn, LightID: id} }

// TurnOff builds a command switching a single light off.
func TurnOff(id string) Command { return Command{Op: OpOff, LightID: id} }

// Toggle builds a command flipping a single light.
func Toggle(id string) Command { return Command{Op: OpToggle, LightID: id} }

// AllOn builds a command switching every light on.
func AllOn() Command { return Command{Op: OpAllOn} }

// AllOff builds a command switching every light off.
func AllOff() Command { return Command{Op: OpAllOff} }

// QueryStatus builds a command asking the device to report all light states.
func QueryStatus() Command { return Command{Op: OpStatus} }

// ConnStatus is the connection lifecycle state of a session.
type ConnStatus string

const (
	StatusDisconnected ConnStatus = "disconnected"
	StatusConnecting   ConnStatus = "connecting"
	StatusConnected    ConnStatus = "connected"
)

// Event types published by a session.
const (
	EventConnection = "connection"
	EventMessage    = "message"
	EventLightState = "light_state"
)

// Event is a session notification. Exactly one of the payload fields is
// meaningful depending on Type: Connected for EventConnection, Message
// for EventMessage, Light for EventLightState.
type Event struct {
	Type      string      `json:"type"`
	Connected bool        `json:"connected,omitempty"`
	Message   string      `json:"message,omitempty"`
	Light     *LightState `json:"light,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
