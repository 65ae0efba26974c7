package esp32

import (
	"testing"

	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		cmd  device.Command
		want string
	}{
		{"turn on", device.TurnOn("light1"), "ON light1"},
		{"turn off", device.TurnOff("builtin"), "OFF builtin"},
		{"toggle", device.Toggle("light3"), "TOGGLE light3"},
		{"all on", device.AllOn(), "ALL_ON"},
		{"all off", device.AllOff(), "ALL_OFF"},
		{"status", device.QueryStatus(), "STATUS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.cmd); got != tt.want {
				t.Errorf("Encode(%+v) = %q, want %q", tt.cmd, got, tt.want)
			}
		})
	}
}

func collect(chunk string) []device.LightState {
	var out []device.LightState
	for st := range StatusLines(chunk) {
		out = append(out, st)
	}
	return out
}

func TestStatusLines_TwoLights(t *testing.T) {
	states := collect("builtin (LED): ON\nlight1: OFF\n")
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d: %+v", len(states), states)
	}
	if states[0].ID != "builtin" || !states[0].On {
		t.Errorf("unexpected first state %+v", states[0])
	}
	if states[1].ID != "light1" || states[1].On {
		t.Errorf("unexpected second state %+v", states[1])
	}
}

func TestStatusLines_IgnoresLogText(t *testing.T) {
	if states := collect("log: something happened\n"); states != nil {
		t.Errorf("expected no states, got %+v", states)
	}
	if states := collect("booting firmware v2\nready\n"); states != nil {
		t.Errorf("expected no states, got %+v", states)
	}
}

func TestStatusLines_SubstringMatch(t *testing.T) {
	// Anything containing ON after the colon reads as on
	states := collect("status: ONLINE\n")
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	if states[0].ID != "status" || !states[0].On {
		t.Errorf("unexpected state %+v", states[0])
	}
}

func TestStatusLines_MixedChunk(t *testing.T) {
	chunk := "ESP32 Light Controller ready\nlight2 (Light 2): ON\ndebug: heap ok\nlight4: OFF\n"
	states := collect(chunk)
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d: %+v", len(states), states)
	}
	if states[0].ID != "light2" || !states[0].On {
		t.Errorf("unexpected state %+v", states[0])
	}
	if states[1].ID != "light4" || states[1].On {
		t.Errorf("unexpected state %+v", states[1])
	}
}

func TestStatusLines_DropsUnterminatedTail(t *testing.T) {
	// The final fragment has no newline, so it is not parsed
	states := collect("light1: ON\nlight2: OF")
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d: %+v", len(states), states)
	}
	if states[0].ID != "light1" {
		t.Errorf("unexpected state %+v", states[0])
	}
}

func TestStatusLines_EmptyID(t *testing.T) {
	if states := collect(": ON\n"); states != nil {
		t.Errorf("expected no states for empty id, got %+v", states)
	}
}

func TestStatusLines_Restartable(t *testing.T) {
	seq := StatusLines("light1: ON\n")
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 1 || second != 1 {
		t.Errorf("expected both passes to yield 1 state, got %d and %d", first, second)
	}
}

func TestStatusLines_EarlyBreak(t *testing.T) {
	count := 0
	for range StatusLines("light1: ON\nlight2: OFF\n") {
		count++
		break
	}
	if count != 1 {
		t.Errorf("expected early break after 1 state, got %d", count)
	}
}
