package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchemaAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(context.Background(), path)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO metadata(key, value) VALUES('token', 'token-123')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not fail on already-applied migrations, and the data
	// must still be there.
	db, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	var v []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key='token'`).Scan(&v))
	require.Equal(t, []byte("token-123"), v)
}
