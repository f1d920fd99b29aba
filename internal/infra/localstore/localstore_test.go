package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

type cartSnapshot struct {
	Items []string `json:"items"`
	Total int64    `json:"total"`
}

func testStore(t *testing.T) SnapshotStore {
	t.Helper()

	db, err := bbolt.Open(filepath.Join(t.TempDir(), "snapshots.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewWithDB(db)
}

func TestSnapshotStore_SaveAndLoad(t *testing.T) {
	store := testStore(t)

	saved := cartSnapshot{Items: []string{"vase", "print"}, Total: 45_000}
	require.NoError(t, store.Save("cart", "account-1", saved))

	var loaded cartSnapshot
	require.NoError(t, store.Load("cart", "account-1", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestSnapshotStore_SaveOverwrites(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Save("cart", "account-1", cartSnapshot{Total: 100}))
	require.NoError(t, store.Save("cart", "account-1", cartSnapshot{Total: 200}))

	var loaded cartSnapshot
	require.NoError(t, store.Load("cart", "account-1", &loaded))
	assert.Equal(t, int64(200), loaded.Total)
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := testStore(t)

	var loaded cartSnapshot
	err := store.Load("cart", "nobody", &loaded)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	// Namespaces are independent.
	require.NoError(t, store.Save("social", "account-1", cartSnapshot{}))
	err = store.Load("cart", "account-1", &loaded)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotStore_Delete(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Save("cart", "account-1", cartSnapshot{Total: 100}))
	require.NoError(t, store.Delete("cart", "account-1"))

	var loaded cartSnapshot
	assert.ErrorIs(t, store.Load("cart", "account-1", &loaded), ErrSnapshotNotFound)

	// Deleting a missing key or namespace is a no-op.
	assert.NoError(t, store.Delete("cart", "account-1"))
	assert.NoError(t, store.Delete("unknown", "account-1"))
}
