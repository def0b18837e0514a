package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/logging"
)

// State is the session lifecycle. Uninitialized means nobody: either before
// Startup has run or after signing out.
type State int

const (
	StateUninitialized State = iota
	StateGuest
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateGuest:
		return "guest"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "signed out"
	}
}

// Manager is the session state machine. All transitions go through it; the
// rest of the app reads State/User and never touches the store directly.
type Manager struct {
	api   *api.Client
	store *CredentialStore
	log   logging.Logger

	mu           sync.RWMutex
	state        State
	user         *api.User
	loading      bool
	forcedLogout bool
	callbacks    []func(reason string)
}

func NewManager(apiClient *api.Client, store *CredentialStore, log logging.Logger) *Manager {
	return &Manager{api: apiClient, store: store, log: log}
}

// Startup restores the persisted session. A stored token is verified against
// the backend: rejection clears it, while an unreachable backend keeps the
// cached snapshot so the app stays usable offline. IsLoading reports true
// for the whole call.
func (m *Manager) Startup(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	cred, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	if cred.AccessToken == "" {
		m.mu.Lock()
		if cred.GuestMode {
			m.state = StateGuest
		} else {
			m.state = StateUninitialized
		}
		m.user = nil
		m.mu.Unlock()
		return nil
	}

	// Show the cached account right away; verification may take a moment.
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = cred.User
	m.forcedLogout = false
	m.mu.Unlock()

	user, err := m.api.CurrentUser(ctx)
	switch {
	case err == nil:
		m.mu.Lock()
		m.user = user
		m.mu.Unlock()
		if err := m.store.SaveUser(ctx, user); err != nil {
			m.log.Warn(ctx, "failed to refresh user snapshot", "err", err.Error())
		}
	case errors.Is(err, api.ErrUnauthorized):
		m.log.Info(ctx, "stored credential rejected, signing out")
		if err := m.store.Clear(ctx); err != nil {
			return err
		}
		m.mu.Lock()
		m.state = StateUninitialized
		m.user = nil
		m.mu.Unlock()
	default:
		m.log.Warn(ctx, "could not verify stored credential", "err", err.Error())
	}
	return nil
}

// Login signs in and persists the credential. IsLoading reports true while
// the call is in flight and false again on every exit path.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, res)
}

// Register creates an account; a successful sign-up is also a sign-in.
func (m *Manager) Register(ctx context.Context, data api.RegisterData) (*api.User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.api.Register(ctx, data)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, res)
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) establish(ctx context.Context, res *api.LoginResult) (*api.User, error) {
	user := res.User
	if err := m.store.Save(ctx, res.AccessToken, &user); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &user
	m.forcedLogout = false
	m.mu.Unlock()
	return &user, nil
}

// Logout drops the credential locally. The backend keeps no session state.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.state = StateUninitialized
	m.user = nil
	m.mu.Unlock()
	return nil
}

// EnterGuestMode switches to anonymous browsing.
func (m *Manager) EnterGuestMode(ctx context.Context) error {
	if err := m.store.SetGuestMode(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.state = StateGuest
	m.user = nil
	m.mu.Unlock()
	return nil
}

// HandleForcedLogout reacts to a logoutRequired response from the server:
// the credential is cleared and registered callbacks fire. At most one
// forced logout is processed per authenticated session, no matter how many
// in-flight requests come back rejected.
func (m *Manager) HandleForcedLogout(ctx context.Context, reason string) {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.forcedLogout {
		m.mu.Unlock()
		return
	}
	m.forcedLogout = true
	m.state = StateUninitialized
	m.user = nil
	callbacks := make([]func(string), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear credential on forced logout", "err", err.Error())
	}
	m.log.Warn(ctx, "session terminated by server", "reason", reason)
	for _, fn := range callbacks {
		fn(reason)
	}
}

// OnForcedLogout registers a callback for server-initiated logouts. The UI
// uses it to route to sign-in with an explanation.
func (m *Manager) OnForcedLogout(fn func(reason string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// TokenExpiry reports when the stored access token expires, for the profile
// view. The claim is read without verification; the server stays the
// authority on token validity.
func (m *Manager) TokenExpiry(ctx context.Context) (time.Time, error) {
	cred, err := m.store.Load(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if cred.AccessToken == "" {
		return time.Time{}, fmt.Errorf("no access token stored")
	}
	return TokenExpiry(cred.AccessToken)
}

// RefreshUser re-fetches the account and updates the persisted snapshot.
func (m *Manager) RefreshUser(ctx context.Context) (*api.User, error) {
	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	if err := m.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the account snapshot, or nil for guests and signed-out.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsLoading reports whether Startup is still restoring the session. Callers
// must not treat the session as absent while this is true.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

func (m *Manager) IsAdmin() bool {
	return m.User().IsAdmin()
}
