// Package session tracks who the client is acting as: a signed-in account,
// an anonymous guest, or nobody yet. The credential survives restarts in the
// local sqlite store and is re-verified against the backend on startup.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rvalverde/wheelhouse/internal/api"
	"github.com/rvalverde/wheelhouse/internal/dbx"
	"github.com/rvalverde/wheelhouse/internal/storage/metadata"
)

// Keys in the metadata store. The user snapshot is kept alongside the token
// so the UI can render the account immediately while the token is verified.
const (
	keyAccessToken = "accessToken"
	keyUser        = "user"
	keyGuestMode   = "guestMode"
)

// Credential is what Load reconstructs from the store.
type Credential struct {
	AccessToken string
	User        *api.User
	GuestMode   bool
}

// CredentialStore persists the session credential. Grouped writes (token +
// user snapshot + guest flag) run in one transaction so a crash can never
// leave a token without its user or vice versa.
type CredentialStore struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

// Save persists a fresh sign-in. Guest mode is cleared in the same
// transaction: the two states are mutually exclusive.
func (s *CredentialStore) Save(ctx context.Context, token string, user *api.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyUser, raw); err != nil {
			return err
		}
		return repo.Delete(ctx, keyGuestMode)
	})
}

// SaveUser refreshes only the persisted user snapshot, keeping the token.
func (s *CredentialStore) SaveUser(ctx context.Context, user *api.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	return s.repo.Set(ctx, keyUser, raw)
}

// Clear removes the token, the user snapshot and the guest flag.
func (s *CredentialStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range []string{keyAccessToken, keyUser, keyGuestMode} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetGuestMode records anonymous browsing. Any stored credential is dropped
// in the same transaction.
func (s *CredentialStore) SetGuestMode(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyAccessToken); err != nil {
			return err
		}
		if err := repo.Delete(ctx, keyUser); err != nil {
			return err
		}
		return repo.Set(ctx, keyGuestMode, []byte("true"))
	})
}

// Load reads whatever session state is persisted. A missing token yields an
// empty credential, not an error.
func (s *CredentialStore) Load(ctx context.Context) (*Credential, error) {
	cred := &Credential{}

	token, err := s.repo.Get(ctx, keyAccessToken)
	if err != nil {
		return nil, err
	}
	cred.AccessToken = string(token)

	raw, err := s.repo.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		var user api.User
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("decode user snapshot: %w", err)
		}
		cred.User = &user
	}

	guest, err := s.repo.Get(ctx, keyGuestMode)
	if err != nil {
		return nil, err
	}
	cred.GuestMode = string(guest) == "true"

	return cred, nil
}

// TokenSource adapts the store for the API client. Lookups hit the database
// so a credential written by a concurrent command is picked up immediately.
func (s *CredentialStore) TokenSource() api.TokenSource {
	return func(ctx context.Context) string {
		token, err := s.repo.Get(ctx, keyAccessToken)
		if err != nil {
			return ""
		}
		return string(token)
	}
}
