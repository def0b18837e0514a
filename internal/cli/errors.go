package cli

import (
	"errors"

	"github.com/rvalverde/wheelhouse/internal/api"
)

// friendlyError rewrites transport errors into something a user can act on.
// Server-provided messages pass through untouched.
func friendlyError(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "server unreachable, try again shortly"
	case errors.Is(err, api.ErrUnauthorized):
		return "you need to sign in for that"
	}
	return err.Error()
}
