package brightdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectCompanyPollsUntilReady(t *testing.T) {
	var polls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/trigger":
			assert.Equal(t, "gd_company_profiles", r.URL.Query().Get("dataset_id"))
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"snapshot_id":"snap-1","status":"running"}`))
		case r.URL.Path == "/snapshot/snap-1":
			if polls.Add(1) < 3 {
				_, _ = w.Write([]byte(`{"snapshot_id":"snap-1","status":"running"}`))
				return
			}
			_, _ = w.Write([]byte(`{"snapshot_id":"snap-1","status":"ready","data":{"name":"Acme"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithPollInterval(time.Millisecond))
	data, err := client.CollectCompany(context.Background(), "gd_company_profiles", "Acme")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Acme"}`, string(data))
	assert.GreaterOrEqual(t, polls.Load(), int64(3))
}

func TestCollectCompanyFailedSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/trigger" {
			_, _ = w.Write([]byte(`{"snapshot_id":"snap-2","status":"running"}`))
			return
		}
		_, _ = w.Write([]byte(`{"snapshot_id":"snap-2","status":"failed"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithPollInterval(time.Millisecond))
	_, err := client.CollectCompany(context.Background(), "gd_company_profiles", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestCollectCompanyCancelledWhilePolling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/trigger" {
			_, _ = w.Write([]byte(`{"snapshot_id":"snap-3","status":"running"}`))
			return
		}
		_, _ = w.Write([]byte(`{"snapshot_id":"snap-3","status":"running"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithPollInterval(5*time.Millisecond))
	_, err := client.CollectCompany(ctx, "gd_company_profiles", "Acme")
	require.Error(t, err)
}
