package esp32

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
)

const (
	// DefaultHandshakeTimeout bounds the dial plus welcome read.
	DefaultHandshakeTimeout = 5 * time.Second
	// DefaultPollTimeout is how long a single receive-loop read blocks
	// before re-checking the running flag. It bounds how long
	// Disconnect takes to converge.
	DefaultPollTimeout = 1 * time.Second

	readBufferSize = 1024
	eventChanSize  = 16
)

// Session is one connection attempt and its subsequent live connection
// to an ESP32 light controller. It implements device.Controller and
// device.EventSubscriber. A session is reusable: after a disconnect a
// new Connect starts a fresh connection on the same value.
type Session struct {
	mu       sync.Mutex
	status   device.ConnStatus
	endpoint string
	conn     Transport
	running  bool
	states   map[string]bool
	roster   []device.Light

	subscribers   []chan device.Event
	subscribersMu sync.Mutex

	handshakeTimeout time.Duration
	pollTimeout      time.Duration
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithHandshakeTimeout overrides the connect/welcome timeout.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(s *Session) { s.handshakeTimeout = d }
}

// WithPollTimeout overrides the receive-loop poll interval.
func WithPollTimeout(d time.Duration) Option {
	return func(s *Session) { s.pollTimeout = d }
}

// NewSession creates a disconnected session seeded with the light
// roster. Roster entries start off; ids the device reports that are not
// in the roster are added to the state table as they arrive.
func NewSession(roster []device.Light, opts ...Option) *Session {
	s := &Session{
		status:           device.StatusDisconnected,
		states:           make(map[string]bool, len(roster)),
		roster:           roster,
		handshakeTimeout: DefaultHandshakeTimeout,
		pollTimeout:      DefaultPollTimeout,
	}
	for _, l := range roster {
		s.states[l.ID] = false
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect dials the device over TCP, reads the welcome banner, starts
// the receive loop and returns the banner text. On any failure the
// session is left disconnected and the error wraps device.ErrConnect.
func (s *Session) Connect(ctx context.Context, host string, port int) (string, error) {
	endpoint, dial := tcpDialer(host, port, s.handshakeTimeout)
	return s.connect(ctx, endpoint, dial)
}

// ConnectSerial opens the device's serial console instead of TCP.
func (s *Session) ConnectSerial(ctx context.Context, portPath string, baud int) (string, error) {
	endpoint, dial := serialDialer(portPath, baud)
	return s.connect(ctx, endpoint, dial)
}

func (s *Session) connect(ctx context.Context, endpoint string, dial dialFunc) (string, error) {
	s.mu.Lock()
	if s.status != device.StatusDisconnected {
		s.mu.Unlock()
		return "", device.ErrAlreadyConnected
	}
	s.status = device.StatusConnecting
	s.endpoint = endpoint
	s.mu.Unlock()

	conn, err := dial(ctx)
	if err != nil {
		s.abortConnect(fmt.Sprintf("connect failed: %v", err))
		return "", fmt.Errorf("%w: %w", device.ErrConnect, err)
	}

	// The firmware prints a banner on accept; read it under the same
	// timeout that bounded the dial.
	_ = conn.SetReadDeadline(time.Now().Add(s.handshakeTimeout))
	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		_ = conn.Close()
		s.abortConnect(fmt.Sprintf("connect failed: %v", err))
		return "", fmt.Errorf("%w: reading welcome from %s: %w", device.ErrConnect, endpoint, err)
	}
	welcome := strings.TrimSpace(string(buf[:n]))

	s.mu.Lock()
	if s.status != device.StatusConnecting {
		// Disconnect raced the handshake.
		s.mu.Unlock()
		_ = conn.Close()
		return "", fmt.Errorf("%w: session closed during handshake", device.ErrConnect)
	}
	s.status = device.StatusConnected
	s.conn = conn
	s.running = true
	s.mu.Unlock()

	log.Info().Str("endpoint", endpoint).Msg("Session connected")
	s.publish(device.Event{Type: device.EventConnection, Connected: true})
	s.publish(device.Event{Type: device.EventMessage, Message: "connected: " + welcome})

	go s.readLoop(conn)

	return welcome, nil
}

// abortConnect rolls a failed connect back to the disconnected state and
// surfaces the failure to observers, mirroring the events a live
// connection would emit when dropped.
func (s *Session) abortConnect(reason string) {
	s.mu.Lock()
	if s.status != device.StatusConnecting {
		s.mu.Unlock()
		return
	}
	s.status = device.StatusDisconnected
	s.conn = nil
	s.mu.Unlock()

	log.Warn().Str("endpoint", s.Endpoint()).Str("reason", reason).Msg("Connect failed")
	s.publish(device.Event{Type: device.EventMessage, Message: reason})
	s.publish(device.Event{Type: device.EventConnection, Connected: false})
}

// Disconnect closes the connection and resets every light state to off.
// It is idempotent: a second call finds the session already disconnected
// and does nothing, so observers see at most one transition. It never
// waits for the receive loop, which notices the cleared running flag
// within one poll timeout and exits without further notifications.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if s.status == device.StatusDisconnected {
		s.mu.Unlock()
		return
	}
	s.running = false
	conn := s.conn
	s.conn = nil
	s.status = device.StatusDisconnected
	s.resetStatesLocked()
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}

	log.Info().Str("endpoint", s.Endpoint()).Msg("Session disconnected")
	s.publish(device.Event{Type: device.EventMessage, Message: "disconnected"})
	s.publish(device.Event{Type: device.EventConnection, Connected: false})
}

// dropConnection is the failure-path teardown used by Send and the
// receive loop. It is a no-op when Disconnect already tore the session
// down, which keeps the loop silent after an explicit disconnect.
func (s *Session) dropConnection(reason string) {
	s.mu.Lock()
	if !s.running || s.status != device.StatusConnected {
		s.mu.Unlock()
		return
	}
	s.running = false
	conn := s.conn
	s.conn = nil
	s.status = device.StatusDisconnected
	s.resetStatesLocked()
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}

	log.Warn().Str("endpoint", s.Endpoint()).Str("reason", reason).Msg("Connection dropped")
	s.publish(device.Event{Type: device.EventMessage, Message: reason})
	s.publish(device.Event{Type: device.EventConnection, Connected: false})
}

func (s *Session) resetStatesLocked() {
	for id := range s.states {
		s.states[id] = false
	}
}

// Send encodes and writes one command. Returns false without I/O when
// the session is not connected. A failed write drops the connection.
func (s *Session) Send(cmd device.Command) bool {
	s.mu.Lock()
	conn := s.conn
	connected := s.status == device.StatusConnected
	s.mu.Unlock()

	if !connected || conn == nil {
		return false
	}

	line := Encode(cmd)
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		log.Warn().Err(err).Str("command", line).Msg("Send failed")
		s.dropConnection(fmt.Sprintf("send error: %v", err))
		return false
	}

	log.Debug().Str("command", line).Msg("TX")
	s.publish(device.Event{Type: device.EventMessage, Message: "sent: " + line})
	return true
}

// readLoop runs until the session stops being connected. Reads use a
// short deadline so the loop re-checks the running flag at least once
// per poll timeout.
func (s *Session) readLoop(conn Transport) {
	buf := make([]byte, readBufferSize)
	for {
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if !running {
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(s.pollTimeout))
		n, err := conn.Read(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			if errors.Is(err, io.EOF) {
				s.dropConnection("connection closed by device")
			} else {
				s.dropConnection(fmt.Sprintf("receive error: %v", err))
			}
			return
		}
		if n == 0 {
			// Serial read timeouts surface as empty reads.
			continue
		}

		chunk := string(buf[:n])
		log.Debug().Int("bytes", n).Msg("RX")
		s.publish(device.Event{Type: device.EventMessage, Message: "received: " + strings.TrimSpace(chunk)})

		for st := range StatusLines(chunk) {
			s.mu.Lock()
			s.states[st.ID] = st.On
			s.mu.Unlock()

			ev := st
			s.publish(device.Event{Type: device.EventLightState, Light: &ev})
		}
	}
}

// Status reports the connection lifecycle state.
func (s *Session) Status() device.ConnStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IsConnected reports whether the session is currently connected.
func (s *Session) IsConnected() bool {
	return s.Status() == device.StatusConnected
}

// Endpoint reports the target of the current or most recent connection
// attempt.
func (s *Session) Endpoint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endpoint
}

// LightStates returns a snapshot of the state table: roster entries in
// roster order, then any ids the device reported that are not in the
// roster, sorted.
func (s *Session) LightStates() []device.LightState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]device.LightState, 0, len(s.states))
	seen := make(map[string]bool, len(s.roster))
	for _, l := range s.roster {
		if on, ok := s.states[l.ID]; ok {
			out = append(out, device.LightState{ID: l.ID, On: on})
			seen[l.ID] = true
		}
	}

	var extras []string
	for id := range s.states {
		if !seen[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	for _, id := range extras {
		out = append(out, device.LightState{ID: id, On: s.states[id]})
	}
	return out
}

// Subscribe returns a buffered channel receiving session events.
// Publishing is non-blocking; a full channel loses events.
func (s *Session) Subscribe() chan device.Event {
	ch := make(chan device.Event, eventChanSize)
	s.subscribersMu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.subscribersMu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (s *Session) Unsubscribe(ch chan device.Event) {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()

	for i, sub := range s.subscribers {
		if sub == ch {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// publish fans one event out to all subscribers. Holding subscribersMu
// for the whole fan-out keeps event order consistent across channels
// even when the caller goroutine and the receive loop publish
// concurrently.
func (s *Session) publish(ev device.Event) {
	ev.Timestamp = time.Now()

	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
