package vendorctx

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-orchestrator/internal/cache"
	"github.com/sells-group/intel-orchestrator/internal/catalog"
	"github.com/sells-group/intel-orchestrator/internal/collector"
	"github.com/sells-group/intel-orchestrator/internal/engine"
	"github.com/sells-group/intel-orchestrator/internal/model"
	"github.com/sells-group/intel-orchestrator/internal/planner"
	"github.com/sells-group/intel-orchestrator/internal/resilience"
)

const vendorProfileJSON = `{
	"industry": "Logistics",
	"description": "Fleet tracking for mid-market carriers",
	"specialities": ["fleet tracking", "route planning"]
}`

func newTestResolver(t *testing.T, registry *collector.Registry) (*CachingResolver, cache.Store) {
	t.Helper()
	cat := catalog.New()
	store := cache.NewMemory()
	p := planner.New(cat)
	eng := engine.New(cat, store, registry,
		engine.WithRetryConfig(resilience.RetryConfig{MaxRetries: 0, BaseDelay: time.Millisecond}),
		engine.WithBatchConfig(resilience.BatchConfig{Size: 5, NoPacing: true}),
	)
	return NewCachingResolver(store, p, eng, 5.00), store
}

func countingStub(source model.SourceType, data json.RawMessage, calls *atomic.Int64) collector.Collector {
	return collector.Func{ID: source, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
		calls.Add(1)
		return data, nil
	}}
}

func TestResolveDerivesFromProfile(t *testing.T) {
	var calls atomic.Int64
	registry := collector.NewRegistry()
	registry.Register(countingStub(model.SourceWebSearch, json.RawMessage(`{}`), &calls))
	registry.Register(countingStub(model.SourceNewsScan, json.RawMessage(`{}`), &calls))
	registry.Register(countingStub(model.SourceLinkedInCompany, json.RawMessage(vendorProfileJSON), &calls))

	r, _ := newTestResolver(t, registry)
	vc := r.Resolve(context.Background(), "Vendor Co")

	require.NotNil(t, vc)
	assert.Equal(t, "Vendor Co", vc.CompanyName)
	assert.Equal(t, "Logistics", vc.Industry)
	assert.Equal(t, []string{"fleet tracking", "route planning"}, vc.Products)
	assert.Contains(t, vc.Positioning, "Fleet tracking")
	assert.False(t, vc.LastUpdated.IsZero())
	assert.False(t, vc.IsMinimal())
}

func TestResolveUsesCacheOnSecondCall(t *testing.T) {
	var calls atomic.Int64
	registry := collector.NewRegistry()
	registry.Register(countingStub(model.SourceWebSearch, json.RawMessage(`{}`), &calls))
	registry.Register(countingStub(model.SourceNewsScan, json.RawMessage(`{}`), &calls))
	registry.Register(countingStub(model.SourceLinkedInCompany, json.RawMessage(vendorProfileJSON), &calls))

	r, _ := newTestResolver(t, registry)
	first := r.Resolve(context.Background(), "Vendor Co")
	after := calls.Load()

	second := r.Resolve(context.Background(), "Vendor Co")
	assert.Equal(t, after, calls.Load(), "cached resolve must not hit collectors")
	assert.Equal(t, first.Industry, second.Industry)
}

func TestResolveTotalFailureYieldsMinimalContext(t *testing.T) {
	registry := collector.NewRegistry()
	for _, s := range []model.SourceType{model.SourceWebSearch, model.SourceNewsScan, model.SourceLinkedInCompany} {
		registry.Register(collector.Func{ID: s, Fn: func(ctx context.Context, companyName string) (json.RawMessage, error) {
			return nil, eris.New("provider down")
		}})
	}

	r, _ := newTestResolver(t, registry)
	vc := r.Resolve(context.Background(), "Vendor Co")

	require.NotNil(t, vc)
	assert.Equal(t, "Vendor Co", vc.CompanyName)
	assert.True(t, vc.IsMinimal())
	assert.False(t, vc.LastUpdated.IsZero())
}

func TestResolveCorruptCacheEntryRebuilds(t *testing.T) {
	var calls atomic.Int64
	registry := collector.NewRegistry()
	registry.Register(countingStub(model.SourceWebSearch, json.RawMessage(`{}`), &calls))
	registry.Register(countingStub(model.SourceNewsScan, json.RawMessage(`{}`), &calls))
	registry.Register(countingStub(model.SourceLinkedInCompany, json.RawMessage(vendorProfileJSON), &calls))

	r, store := newTestResolver(t, registry)
	key := cache.Key(model.SourceType("vendor_context"), "Vendor Co")
	require.NoError(t, store.SetRawJSON(context.Background(), key, json.RawMessage(`not json`), time.Hour))

	vc := r.Resolve(context.Background(), "Vendor Co")
	assert.Equal(t, "Logistics", vc.Industry)
	assert.Positive(t, calls.Load())
}
