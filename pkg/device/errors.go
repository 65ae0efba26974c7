package device

import "errors"

var (
	// ErrNotFound indicates a light id that is not in the roster
	ErrNotFound = errors.New("light not found")

	// ErrNotConnected indicates an operation that needs a live connection
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates a connect attempt on a session that
	// is already connecting or connected
	ErrAlreadyConnected = errors.New("already connected")

	// ErrConnect wraps dial or handshake failures; the session remains
	// disconnected and the caller may retry
	ErrConnect = errors.New("connect failed")

	// ErrValidation indicates a state payload failed schema validation
	ErrValidation = errors.New("validation error")
)
