package esp32

import (
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate matches the ESP32 console default.
const DefaultBaudRate = 115200

// serialTransport adapts a USB serial console to the Transport
// interface. ESP32 firmwares expose the same line protocol on the CDC
// console as on the TCP listener.
type serialTransport struct {
	port serial.Port
}

func serialDialer(portPath string, baud int) (string, dialFunc) {
	return portPath, func(_ context.Context) (Transport, error) {
		if baud <= 0 {
			baud = DefaultBaudRate
		}
		mode := &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
		port, err := serial.Open(portPath, mode)
		if err != nil {
			return nil, fmt.Errorf("open serial port %s: %w", portPath, err)
		}
		return &serialTransport{port: port}, nil
	}
}

func (t *serialTransport) Read(p []byte) (int, error)  { return t.port.Read(p) }
func (t *serialTransport) Write(p []byte) (int, error) { return t.port.Write(p) }
func (t *serialTransport) Close() error                { return t.port.Close() }

// SetReadDeadline converts the absolute deadline into the port's
// relative read timeout. A timed-out serial Read returns 0 bytes and no
// error; the session's receive loop treats empty reads as poll wakeups.
func (t *serialTransport) SetReadDeadline(deadline time.Time) error {
	d := time.Until(deadline)
	if d < 0 {
		d = 0
	}
	return t.port.SetReadTimeout(d)
}
