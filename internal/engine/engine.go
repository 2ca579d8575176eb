// Package engine executes collection plans: cache-first lookups, then
// batched parallel API calls for the misses, each wrapped in a per-source
// circuit breaker and retry. Results merge into a single MultiSourceData
// aggregate with cost and quality accounting.
package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/intel-orchestrator/internal/cache"
	"github.com/sells-group/intel-orchestrator/internal/catalog"
	"github.com/sells-group/intel-orchestrator/internal/collector"
	"github.com/sells-group/intel-orchestrator/internal/model"
	"github.com/sells-group/intel-orchestrator/internal/resilience"
)

// Engine runs collection plans against the cache and the registered
// collectors. Safe for concurrent use; all mutable state is per-run.
type Engine struct {
	catalog  *catalog.Catalog
	store    cache.Store
	registry *collector.Registry
	breakers *resilience.SourceBreakers

	retryCfg resilience.RetryConfig
	batchCfg resilience.BatchConfig

	// consumerTTLs caps cache-entry age per requesting consumer; the read
	// gate is the tighter of this and the source's catalog TTL.
	consumerTTLs map[model.ConsumerType]time.Duration

	nowFunc func() time.Time
	log     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRetryConfig overrides the per-call retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(e *Engine) { e.retryCfg = cfg }
}

// WithBatchConfig overrides the API fan-out policy.
func WithBatchConfig(cfg resilience.BatchConfig) Option {
	return func(e *Engine) { e.batchCfg = cfg }
}

// WithBreakers shares a breaker registry with the caller, typically so the
// orchestrator health check can read breaker states.
func WithBreakers(sb *resilience.SourceBreakers) Option {
	return func(e *Engine) { e.breakers = sb }
}

// WithConsumerTTLs sets per-consumer caps on acceptable cache-entry age.
// Consumers absent from the map accept anything within the source TTL.
func WithConsumerTTLs(ttls map[model.ConsumerType]time.Duration) Option {
	return func(e *Engine) { e.consumerTTLs = ttls }
}

// WithNow overrides the clock for tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.nowFunc = now }
}

// New creates an Engine over a catalog, cache store and collector registry.
func New(cat *catalog.Catalog, store cache.Store, registry *collector.Registry, opts ...Option) *Engine {
	e := &Engine{
		catalog:  cat,
		store:    store,
		registry: registry,
		breakers: resilience.NewSourceBreakers(resilience.DefaultCircuitBreakerConfig()),
		retryCfg: resilience.DefaultRetryConfig(),
		batchCfg: resilience.DefaultBatchConfig(),
		nowFunc:  time.Now,
		log:      zap.L().With(zap.String("component", "engine")),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Breakers exposes the per-source breaker registry for health reporting.
func (e *Engine) Breakers() *resilience.SourceBreakers {
	return e.breakers
}

// ExecuteParallelCollection runs a plan end to end. Every planned source is
// first checked against the cache concurrently; misses are then fetched in
// paced batches. Individual source failures are recorded in the aggregate,
// never propagated; the only error returned is a cancelled context.
func (e *Engine) ExecuteParallelCollection(ctx context.Context, plan *model.DataCollectionPlan) (*model.MultiSourceData, error) {
	runID := uuid.NewString()
	started := e.nowFunc()
	results := make([]model.CollectionResult, len(plan.ToCollect))

	// Phase 1: concurrent cache lookups. A lookup error is a miss, not a
	// failure; the source just pays for a fresh call.
	maxAge := e.consumerTTLs[plan.Requester]
	g, gCtx := errgroup.WithContext(ctx)
	for i, source := range plan.ToCollect {
		g.Go(func() error {
			results[i] = e.lookupCache(gCtx, source, plan.CompanyName, maxAge)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "engine: cache phase")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "engine: cache phase")
	}

	// Phase 2: batched API calls for the misses. Each index owns its slot in
	// results, so the workers never share a write target.
	var misses []int
	for i := range results {
		if !results[i].Cached {
			misses = append(misses, i)
		}
	}
	err := resilience.RunBatches(ctx, e.batchCfg, misses, func(ctx context.Context, i int) {
		results[i] = e.collect(ctx, plan.ToCollect[i], plan.CompanyName)
	})
	if err != nil {
		return nil, eris.Wrap(err, "engine: collection phase")
	}

	data := e.merge(plan, results, e.nowFunc().Sub(started))

	e.log.Info("collection complete",
		zap.String("run_id", runID),
		zap.String("company", plan.CompanyName),
		zap.String("consumer", string(plan.Requester)),
		zap.Int("cache_hits", data.CacheHits),
		zap.Int("new_api_calls", data.NewAPICalls),
		zap.Int("failed", data.Summary.FailedTasks),
		zap.Float64("total_new_cost", data.TotalNewCost),
		zap.Float64("cache_savings", data.TotalCacheSavings),
		zap.Duration("duration", data.Summary.TotalDuration),
	)

	return data, nil
}

// lookupCache returns a cached result when a fresh entry exists, or a
// placeholder miss result otherwise. An entry counts as fresh when it is
// within both the source's catalog TTL and the requester's maxAge cap
// (maxAge zero means no consumer cap).
func (e *Engine) lookupCache(ctx context.Context, source model.SourceType, companyName string, maxAge time.Duration) model.CollectionResult {
	result := model.CollectionResult{Source: source}

	entry, err := e.store.Get(ctx, cache.Key(source, companyName))
	if err != nil {
		if !eris.Is(err, cache.ErrNotFound) {
			e.log.Warn("cache lookup failed, treating as miss",
				zap.String("source", string(source)),
				zap.Error(err),
			)
		}
		return result
	}
	ttl := e.catalog.TTLOf(source)
	if maxAge > 0 && maxAge < ttl {
		ttl = maxAge
	}
	if cache.IsExpired(entry, ttl) {
		return result
	}

	result.Data = entry.Data
	result.Success = true
	result.Cached = true
	return result
}

// collect fetches one source through its breaker and the retry policy, then
// writes the payload back to the cache under the source's catalog TTL.
func (e *Engine) collect(ctx context.Context, source model.SourceType, companyName string) model.CollectionResult {
	result := model.CollectionResult{Source: source}
	started := e.nowFunc()

	col := e.registry.Get(source)
	if col == nil {
		result.Err = "no collector registered"
		e.log.Warn("source skipped, no collector registered",
			zap.String("source", string(source)),
		)
		return result
	}

	cfg := e.retryCfg
	cfg.OnRetry = resilience.RetryLogger(string(source), "collect")

	breaker := e.breakers.Get(string(source))
	data, err := resilience.ExecuteVal(ctx, breaker, func(ctx context.Context) (json.RawMessage, error) {
		return resilience.DoVal(ctx, cfg, func(ctx context.Context) (json.RawMessage, error) {
			return col.Collect(ctx, companyName)
		})
	})
	result.Duration = e.nowFunc().Sub(started)

	if err != nil {
		result.Err = err.Error()
		e.log.Warn("source collection failed",
			zap.String("source", string(source)),
			zap.String("company", companyName),
			zap.Error(err),
		)
		return result
	}

	result.Data = data
	result.Success = true
	result.Cost = e.catalog.CostOf(source)

	// Write-back failures cost a future cache miss, nothing more.
	entry := &cache.Entry{
		Data:        data,
		Timestamp:   e.nowFunc(),
		Source:      source,
		CompanyName: companyName,
	}
	if err := e.store.Set(ctx, cache.Key(source, companyName), entry, e.catalog.TTLOf(source)); err != nil {
		e.log.Warn("cache write-back failed",
			zap.String("source", string(source)),
			zap.Error(err),
		)
	}

	return result
}

// merge folds per-task results into the consumer-facing aggregate.
func (e *Engine) merge(plan *model.DataCollectionPlan, results []model.CollectionResult, elapsed time.Duration) *model.MultiSourceData {
	data := &model.MultiSourceData{
		CompanyName: plan.CompanyName,
		Sources:     make(map[model.SourceType]json.RawMessage, len(results)),
	}

	var succeeded []model.SourceType
	for _, r := range results {
		if !r.Success {
			continue
		}
		succeeded = append(succeeded, r.Source)
		if r.Data != nil {
			data.Sources[r.Source] = r.Data
		}
		if r.Cached {
			data.CacheHits++
			data.TotalCacheSavings += e.catalog.CostOf(r.Source)
		} else {
			data.NewAPICalls++
			data.TotalNewCost += r.Cost
		}
	}

	data.DataQuality = e.quality(results, succeeded)

	summary := model.CollectionSummary{
		TotalTasks:      len(results),
		SuccessfulTasks: len(succeeded),
		FailedTasks:     len(results) - len(succeeded),
		TotalCost:       data.TotalNewCost,
		TotalDuration:   elapsed,
		QualityScore:    e.Score(succeeded),
	}
	if summary.TotalTasks > 0 {
		summary.CacheHitRate = float64(data.CacheHits) / float64(summary.TotalTasks)
	}
	data.Summary = summary

	return data
}
