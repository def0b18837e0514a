package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is returned for any request the server rejected. Message carries the
// server-provided error text (or message, when no error field was present).
type Error struct {
	Status         int
	Message        string
	LogoutRequired bool
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrUnauthorized) work for 401/403 responses.
func (e *Error) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Status == 401 || e.Status == 403
	}
	return false
}

func newError(status int, env *envelope) *Error {
	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = "request failed"
	}
	return &Error{Status: status, Message: msg, LogoutRequired: env.LogoutRequired}
}

// wrapTransport marks low-level transport failures as ErrUnavailable so the
// command layer can distinguish "backend down" from "backend said no".
func wrapTransport(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
