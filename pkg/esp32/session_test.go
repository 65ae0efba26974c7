package esp32

import (
	"bufio"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

var testRoster = []device.Light{
	{ID: "builtin", DisplayName: "Built-in LED", Position: 0},
	{ID: "light1", DisplayName: "Light 1", Position: 1},
	{ID: "light2", DisplayName: "Light 2", Position: 2},
}

// fakeDevice is a loopback TCP listener speaking the firmware's side of
// the protocol: a welcome banner on accept, then whatever the test
// pushes.
type fakeDevice struct {
	listener net.Listener
	conns    chan net.Conn
}

func newFakeDevice(t *testing.T, welcome string) *fakeDevice {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	d := &fakeDevice{listener: listener, conns: make(chan net.Conn, 1)}
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			if welcome != "" {
				_, _ = conn.Write([]byte(welcome + "\n"))
			}
			d.conns <- conn
		}
	}()
	t.Cleanup(func() { _ = listener.Close() })
	return d
}

func (d *fakeDevice) hostPort(t *testing.T) (string, int) {
	t.Helper()
	addr := d.listener.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port
}

func (d *fakeDevice) conn(t *testing.T) net.Conn {
	t.Helper()
	select {
	case c := <-d.conns:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("device never saw a connection")
		return nil
	}
}

func newTestSession() *Session {
	return NewSession(testRoster, WithPollTimeout(20*time.Millisecond), WithHandshakeTimeout(2*time.Second))
}

func waitEvent(t *testing.T, ch chan device.Event, eventType string) device.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Type == eventType {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", eventType)
		}
	}
}

func TestConnect_ReturnsWelcome(t *testing.T) {
	dev := newFakeDevice(t, "ESP32 Light Controller ready")
	host, port := dev.hostPort(t)
	s := newTestSession()
	defer s.Disconnect()

	welcome, err := s.Connect(context.Background(), host, port)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if welcome != "ESP32 Light Controller ready" {
		t.Errorf("unexpected welcome %q", welcome)
	}
	if !s.IsConnected() {
		t.Error("expected session to be connected")
	}
	if s.Status() != device.StatusConnected {
		t.Errorf("expected status connected, got %s", s.Status())
	}
}

func TestConnect_Refused(t *testing.T) {
	// Grab a port that nothing listens on
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	_ = listener.Close()

	s := newTestSession()
	_, err = s.Connect(context.Background(), "127.0.0.1", port)
	if !errors.Is(err, device.ErrConnect) {
		t.Errorf("expected ErrConnect, got %v", err)
	}
	if s.Status() != device.StatusDisconnected {
		t.Errorf("expected disconnected after failure, got %s", s.Status())
	}
}

func TestConnect_WhileConnected(t *testing.T) {
	dev := newFakeDevice(t, "ready")
	host, port := dev.hostPort(t)
	s := newTestSession()
	defer s.Disconnect()

	if _, err := s.Connect(context.Background(), host, port); err != nil {
		t.Fatal(err)
	}
	_, err := s.Connect(context.Background(), host, port)
	if !errors.Is(err, device.ErrAlreadyConnected) {
		t.Errorf("expected ErrAlreadyConnected, got %v", err)
	}
}

func TestSend_WritesCommandLine(t *testing.T) {
	dev := newFakeDevice(t, "ready")
	host, port := dev.hostPort(t)
	s := newTestSession()
	defer s.Disconnect()

	if _, err := s.Connect(context.Background(), host, port); err != nil {
		t.Fatal(err)
	}
	conn := dev.conn(t)

	if !s.Send(device.TurnOn("light1")) {
		t.Fatal("send returned false")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("reading command: %v", err)
	}
	if line != "ON light1\n" {
		t.Errorf("device received %q, want %q", line, "ON light1\n")
	}
}

func TestSend_WhileDisconnected(t *testing.T) {
	s := newTestSession()
	if s.Send(device.AllOn()) {
		t.Error("expected send to fail while disconnected")
	}
}

func TestReceive_UpdatesStateAndNotifies(t *testing.T) {
	dev := newFakeDevice(t, "ready")
	host, port := dev.hostPort(t)
	s := newTestSession()
	defer s.Disconnect()

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	if _, err := s.Connect(context.Background(), host, port); err != nil {
		t.Fatal(err)
	}
	conn := dev.conn(t)

	if _, err := conn.Write([]byte("light1 (Light 1): ON\n")); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, ch, device.EventLightState)
	if ev.Light == nil || ev.Light.ID != "light1" || !ev.Light.On {
		t.Fatalf("unexpected light event %+v", ev)
	}

	for _, st := range s.LightStates() {
		if st.ID == "light1" {
			if !st.On {
				t.Error("state table not updated")
			}
			return
		}
	}
	t.Fatal("light1 missing from state table")
}

func TestLightStates_RosterOrder(t *testing.T) {
	s := newTestSession()
	states := s.LightStates()
	if len(states) != len(testRoster) {
		t.Fatalf("expected %d states, got %d", len(testRoster), len(states))
	}
	for i, l := range testRoster {
		if states[i].ID != l.ID {
			t.Errorf("position %d: expected %s, got %s", i, l.ID, states[i].ID)
		}
		if states[i].On {
			t.Errorf("light %s should start off", states[i].ID)
		}
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	dev := newFakeDevice(t, "ready")
	host, port := dev.hostPort(t)
	s := newTestSession()

	if _, err := s.Connect(context.Background(), host, port); err != nil {
		t.Fatal(err)
	}
	if _, err := dev.conn(t).Write([]byte("light1: ON\n")); err != nil {
		t.Fatal(err)
	}

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	s.Disconnect()
	s.Disconnect()

	if s.Status() != device.StatusDisconnected {
		t.Errorf("expected disconnected, got %s", s.Status())
	}
	for _, st := range s.LightStates() {
		if st.On {
			t.Errorf("light %s should be reset to off", st.ID)
		}
	}

	// Wait for the receive loop to wind down, then count transitions
	time.Sleep(100 * time.Millisecond)
	transitions := 0
	for {
		select {
		case ev := <-ch:
			if ev.Type == device.EventConnection {
				transitions++
			}
			continue
		default:
		}
		break
	}
	if transitions != 1 {
		t.Errorf("expected exactly 1 disconnect notification, got %d", transitions)
	}
}

func TestPeerClose_DropsConnection(t *testing.T) {
	dev := newFakeDevice(t, "ready")
	host, port := dev.hostPort(t)
	s := newTestSession()

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	if _, err := s.Connect(context.Background(), host, port); err != nil {
		t.Fatal(err)
	}
	// Drain the connect notification
	ev := waitEvent(t, ch, device.EventConnection)
	if !ev.Connected {
		t.Fatalf("expected connected=true, got %+v", ev)
	}

	_ = dev.conn(t).Close()

	ev = waitEvent(t, ch, device.EventConnection)
	if ev.Connected {
		t.Fatalf("expected connected=false after peer close, got %+v", ev)
	}
	if s.IsConnected() {
		t.Error("session still reports connected")
	}
}

func TestSubscribe_DroppedWhenFull(t *testing.T) {
	s := newTestSession()
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	for i := 0; i < eventChanSize+5; i++ {
		s.publish(device.Event{Type: device.EventMessage, Message: "x"})
	}
	if len(ch) != eventChanSize {
		t.Errorf("expected buffered channel capped at %d, got %d", eventChanSize, len(ch))
	}
}
