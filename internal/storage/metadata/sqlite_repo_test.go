package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metarepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "accessToken")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_SetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "accessToken", []byte("t1")))
	v, err := r.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.Equal(t, []byte("t1"), v)

	require.NoError(t, r.Set(ctx, "accessToken", []byte("t2")))
	v, err = r.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.Equal(t, []byte("t2"), v)
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "accessToken", []byte("t")))
	require.NoError(t, r.Set(ctx, "guestMode", []byte("true")))

	require.NoError(t, r.Delete(ctx, "accessToken"))
	v, err := r.Get(ctx, "accessToken")
	require.NoError(t, err)
	require.Nil(t, v)

	// Deleting an absent key is not an error.
	require.NoError(t, r.Delete(ctx, "accessToken"))

	require.NoError(t, r.Clear(ctx))
	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSQLiteRepository_List(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "user", []byte(`{"id":"u1"}`)))
	require.NoError(t, r.Set(ctx, "guestMode", []byte("true")))

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string][]byte{
		"user":      []byte(`{"id":"u1"}`),
		"guestMode": []byte("true"),
	}, all)
}
