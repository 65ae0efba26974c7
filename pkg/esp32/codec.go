// Package esp32 implements the client side of the ESP32 light
// controller's line-oriented text protocol: command encoding, status
// line parsing, and the connection session that ties them to a TCP
// socket or serial console.
package esp32

import (
	"iter"
	"strings"

	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

// Encode renders a command as a single wire line, without the trailing
// newline (the session appends the delimiter on transmit).
func Encode(cmd device.Command) string {
	switch cmd.Op {
	case device.OpOn, device.OpOff, device.OpToggle:
		return string(cmd.Op) + " " + cmd.LightID
	default:
		return string(cmd.Op)
	}
}

// StatusLines parses one raw receive chunk into the light states it
// reports. Only lines terminated by '\n' within the chunk are
// considered; a partial line at the end of a chunk is dropped, so a
// status line split across two reads is lost. The firmware mixes log
// text and status lines on the same stream, so anything that does not
// look like "<name>[ (<id>)]: ON|OFF" is skipped silently.
//
// The on/off check is a substring match on the status field, matching
// the firmware's own convention: "ONLINE" reads as on. The sequence is
// restartable; each range walks the chunk from the start.
func StatusLines(chunk string) iter.Seq[device.LightState] {
	return func(yield func(device.LightState) bool) {
		lines := strings.Split(chunk, "\n")
		// The element after the last '\n' is either empty or an
		// unterminated fragment; never a complete status line.
		for _, line := range lines[:len(lines)-1] {
			st, ok := parseStatusLine(line)
			if !ok {
				continue
			}
			if !yield(st) {
				return
			}
		}
	}
}

func parseStatusLine(line string) (device.LightState, bool) {
	info, status, found := strings.Cut(line, ":")
	if !found {
		return device.LightState{}, false
	}
	status = strings.TrimSpace(status)
	if !strings.Contains(status, "ON") && !strings.Contains(status, "OFF") {
		return device.LightState{}, false
	}

	info = strings.TrimSpace(info)
	if name, _, hasParen := strings.Cut(info, "("); hasParen {
		info = strings.TrimSpace(name)
	}
	if info == "" {
		return device.LightState{}, false
	}

	return device.LightState{ID: info, On: strings.Contains(status, "ON")}, true
}
