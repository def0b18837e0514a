package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/session"
)

func TestRoot_PromptsShareTheCommandReader(t *testing.T) {
	ta := newTestApp(t)
	ta.session.loginResult = &api.User{ID: "u1", Name: "Ann", Role: api.RoleUser}
	// Piped input: the line after the command belongs to the email prompt.
	ta.app.reader = bufio.NewReader(strings.NewReader("login\nann@example.com\nexit\n"))

	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(string, io.Writer) ([]byte, error) { return []byte("pw"), nil }

	ta.app.Root(context.Background())

	assert.Equal(t, "ann@example.com", ta.session.loginEmail)
	assert.Contains(t, ta.out.String(), "Welcome back, Ann!")
	assert.Contains(t, ta.out.String(), "Bye!")
}

func TestRoot_ExitsOnEOF(t *testing.T) {
	ta := newTestApp(t)
	ta.app.reader = bufio.NewReader(strings.NewReader("help\n"))

	ta.app.Root(context.Background())

	assert.Contains(t, ta.out.String(), "Available commands")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	ta := newTestApp(t)

	ta.app.dispatch(context.Background(), "frobnicate", nil)

	assert.Contains(t, ta.out.String(), "Unknown command: frobnicate")
}

func TestDispatch_PrintsHandlerErrors(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(&api.User{ID: "u1"})
	ta.game.err = api.ErrUnavailable

	ta.app.dispatch(context.Background(), "wheel", nil)

	assert.Contains(t, ta.out.String(), "Error:")
}

func TestHelp_VariesBySessionState(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		ta := newTestApp(t)
		ta.app.help()
		assert.Contains(t, ta.out.String(), "guest")
		assert.NotContains(t, ta.out.String(), "declare")
	})

	t.Run("guest", func(t *testing.T) {
		ta := newTestApp(t)
		ta.session.state = session.StateGuest
		ta.app.help()
		assert.Contains(t, ta.out.String(), "login")
		assert.NotContains(t, ta.out.String(), "buy")
	})

	t.Run("participant", func(t *testing.T) {
		ta := newTestApp(t)
		ta.signIn(&api.User{ID: "u1", Role: api.RoleUser})
		ta.app.help()
		assert.Contains(t, ta.out.String(), "buy")
		assert.NotContains(t, ta.out.String(), "declare")
	})

	t.Run("admin", func(t *testing.T) {
		ta := newTestApp(t)
		ta.signIn(&api.User{ID: "u1", Role: api.RoleSuperAdmin})
		ta.app.help()
		assert.Contains(t, ta.out.String(), "declare")
	})
}

func TestGetStatus(t *testing.T) {
	t.Run("signed out without countdown", func(t *testing.T) {
		ta := newTestApp(t)
		assert.Empty(t, ta.app.getStatus())
	})

	t.Run("named user", func(t *testing.T) {
		ta := newTestApp(t)
		ta.signIn(&api.User{ID: "u1", Name: "Ann"})
		assert.Equal(t, "(Ann)", ta.app.getStatus())
	})

	t.Run("guest with live countdown", func(t *testing.T) {
		ta := newTestApp(t)
		ta.session.state = session.StateGuest
		ta.app.ticker.ApplyPush(3_600_000)
		status := ta.app.getStatus()
		assert.Contains(t, status, "guest")
		assert.Contains(t, status, "01:00:00")
	})
}
