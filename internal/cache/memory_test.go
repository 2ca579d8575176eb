package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	entry := &Entry{
		Data:        json.RawMessage(`{"title":"Acme"}`),
		Timestamp:   time.Now(),
		Source:      "web_search",
		CompanyName: "Acme",
	}
	require.NoError(t, store.Set(ctx, "web_search_acme", entry, time.Hour))

	got, err := store.Get(ctx, "web_search_acme")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.Equal(t, entry.CompanyName, got.CompanyName)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemory()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemory().WithNow(func() time.Time { return now })

	entry := &Entry{Data: json.RawMessage(`{}`), Timestamp: now}
	require.NoError(t, store.Set(ctx, "k", entry, time.Hour))

	_, err := store.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "k", &Entry{Timestamp: time.Now()}, time.Hour))
	require.NoError(t, store.Delete(ctx, "k"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRawJSON(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	raw := json.RawMessage(`{"company_name":"Acme"}`)
	require.NoError(t, store.SetRawJSON(ctx, "vendor_context_acme", raw, time.Hour))

	got, err := store.GetRawJSON(ctx, "vendor_context_acme")
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(got))

	// Entry and raw slots are distinct; a raw write is not a Get hit.
	_, err = store.Get(ctx, "vendor_context_acme")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePing(t *testing.T) {
	store := NewMemory()
	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close())
}
