package cache

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	entry := &Entry{
		Data:        json.RawMessage(`{"title":"Acme"}`),
		Timestamp:   time.Now().UTC().Truncate(time.Second),
		Source:      "web_search",
		CompanyName: "Acme",
	}
	require.NoError(t, store.Set(ctx, "web_search_acme", entry, time.Hour))

	got, err := store.Get(ctx, "web_search_acme")
	require.NoError(t, err)
	assert.JSONEq(t, string(entry.Data), string(got.Data))
	assert.Equal(t, entry.CompanyName, got.CompanyName)
	assert.Equal(t, entry.Source, got.Source)
}

func TestSQLiteStoreMiss(t *testing.T) {
	store := newTestSQLite(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	require.NoError(t, store.SetRawJSON(ctx, "k", json.RawMessage(`{"v":1}`), time.Hour))
	require.NoError(t, store.SetRawJSON(ctx, "k", json.RawMessage(`{"v":2}`), time.Hour))

	got, err := store.GetRawJSON(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestSQLiteStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	require.NoError(t, store.SetRawJSON(ctx, "stale", json.RawMessage(`{}`), -time.Hour))
	_, err := store.GetRawJSON(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLite(t)

	require.NoError(t, store.SetRawJSON(ctx, "stale", json.RawMessage(`{}`), -time.Hour))
	require.NoError(t, store.SetRawJSON(ctx, "fresh", json.RawMessage(`{}`), time.Hour))

	n, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.GetRawJSON(ctx, "fresh")
	assert.NoError(t, err)
}

func TestSQLiteStorePing(t *testing.T) {
	store := newTestSQLite(t)
	assert.NoError(t, store.Ping(context.Background()))
}
