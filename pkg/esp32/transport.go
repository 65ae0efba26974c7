package esp32

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// Transport is the byte stream a session runs over. net.Conn satisfies
// it directly; the serial adapter maps the read deadline onto the port's
// read timeout.
type Transport interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
}

// dialFunc produces a connected transport. The session drives dialing
// through this indirection so TCP and serial share one connect path.
type dialFunc func(ctx context.Context) (Transport, error)

func tcpDialer(host string, port int, timeout time.Duration) (string, dialFunc) {
	endpoint := net.JoinHostPort(host, strconv.Itoa(port))
	return endpoint, func(ctx context.Context) (Transport, error) {
		d := net.Dialer{Timeout: timeout}
		conn, err := d.DialContext(ctx, "tcp", endpoint)
		if err != nil {
			return nil, fmt.Errorf("dial %s: %w", endpoint, err)
		}
		return conn, nil
	}
}
