package session

import (
	"fmt"
)

// AuthError is returned when a token cannot be obtained or the server keeps
// rejecting freshly issued tokens.
type AuthError struct {
	// StatusCode is the HTTP status that caused the failure, zero if none.
	StatusCode int
	// Body is the raw server response, if any.
	Body []byte
	Err  error
}

func (e *AuthError) Error() string {
	msg := "sierra: authentication failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s with status %d", msg, e.StatusCode)
	}
	switch {
	case e.Err != nil:
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	case len(e.Body) > 0:
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TransportError wraps network-level failures: timeouts, refused connections,
// broken response streams.
type TransportError struct {
	// Op is "authenticate" or "send".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sierra: %s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ConfigError reports invalid construction arguments.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "sierra: invalid session config: " + e.Reason
}
