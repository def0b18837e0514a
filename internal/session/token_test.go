package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvalverde/wheelhouse/internal/api"
)

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	// The client never holds the signing key; expiry must come out anyway.
	got, err := TokenExpiry(signed)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "got %v, want %v", got, exp)
}

func TestTokenExpiry_MissingClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	signed, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = TokenExpiry(signed)
	assert.Error(t, err)
}

func TestTokenExpiry_Garbage(t *testing.T) {
	_, err := TokenExpiry("not-a-jwt")
	assert.Error(t, err)
}

func TestManager_TokenExpiryFromStoredCredential(t *testing.T) {
	mgr, store := newManager(t, "http://127.0.0.1:1")
	ctx := context.Background()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, signed, &api.User{ID: "u1"}))

	got, err := mgr.TokenExpiry(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "got %v, want %v", got, exp)
}

func TestManager_TokenExpiryWithoutCredential(t *testing.T) {
	mgr, _ := newManager(t, "http://127.0.0.1:1")

	_, err := mgr.TokenExpiry(context.Background())
	assert.Error(t, err)
}
