// Package vendorctx resolves the vendor's own company profile, used to
// contextualize intelligence gathered about prospects. Resolution is
// best-effort: any failure degrades to a minimal context rather than an
// error, because prospect collection must proceed regardless.
package vendorctx

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/internal/cache"
	"github.com/sells-group/intel-orchestrator/internal/engine"
	"github.com/sells-group/intel-orchestrator/internal/model"
	"github.com/sells-group/intel-orchestrator/internal/planner"
)

// DefaultTTL is how long a resolved vendor context stays cached. Vendor
// profiles change slowly; a week matches the vendor_context consumer's
// cache-freshness default.
const DefaultTTL = 168 * time.Hour

// Resolver produces a vendor context for a company name. Implementations
// never return an error; a failed lookup yields a minimal context.
type Resolver interface {
	Resolve(ctx context.Context, companyName string) *model.VendorContext
}

// CachingResolver resolves vendor contexts by running a vendor_context
// collection plan and caching the derived profile.
type CachingResolver struct {
	store   cache.Store
	planner *planner.Planner
	engine  *engine.Engine
	budget  float64
	ttl     time.Duration
	nowFunc func() time.Time
	log     *zap.Logger
}

// Option configures a CachingResolver.
type Option func(*CachingResolver)

// WithTTL overrides the cached-context lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(r *CachingResolver) { r.ttl = ttl }
}

// WithNow overrides the clock for tests.
func WithNow(now func() time.Time) Option {
	return func(r *CachingResolver) { r.nowFunc = now }
}

// NewCachingResolver creates a resolver. budget caps the collection run used
// to build a context when the cache is cold.
func NewCachingResolver(store cache.Store, p *planner.Planner, e *engine.Engine, budget float64, opts ...Option) *CachingResolver {
	r := &CachingResolver{
		store:   store,
		planner: p,
		engine:  e,
		budget:  budget,
		ttl:     DefaultTTL,
		nowFunc: time.Now,
		log:     zap.L().With(zap.String("component", "vendorctx")),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// contextSource namespaces resolved contexts in the shared cache, away from
// raw source payloads.
const contextSource = model.SourceType("vendor_context")

// Resolve returns the vendor context for a company, from cache when fresh,
// otherwise by collecting and deriving one. On any failure it returns a
// minimal context carrying only the name and timestamp.
func (r *CachingResolver) Resolve(ctx context.Context, companyName string) *model.VendorContext {
	key := cache.Key(contextSource, companyName)

	if raw, err := r.store.GetRawJSON(ctx, key); err == nil {
		var vc model.VendorContext
		if err := json.Unmarshal(raw, &vc); err == nil {
			return &vc
		}
		r.log.Warn("cached vendor context is corrupt, re-resolving",
			zap.String("company", companyName),
		)
	}

	vc := r.build(ctx, companyName)

	if raw, err := json.Marshal(vc); err == nil {
		if err := r.store.SetRawJSON(ctx, key, raw, r.ttl); err != nil {
			r.log.Warn("vendor context cache write failed",
				zap.String("company", companyName),
				zap.Error(err),
			)
		}
	}

	return vc
}

func (r *CachingResolver) build(ctx context.Context, companyName string) *model.VendorContext {
	minimal := &model.VendorContext{
		CompanyName: companyName,
		LastUpdated: r.nowFunc(),
	}

	plan, err := r.planner.CreateCollectionPlan(companyName, model.ConsumerVendorContext, r.budget, nil)
	if err != nil {
		r.log.Warn("vendor context planning failed, using minimal context",
			zap.String("company", companyName),
			zap.Error(err),
		)
		return minimal
	}

	data, err := r.engine.ExecuteParallelCollection(ctx, plan)
	if err != nil {
		r.log.Warn("vendor context collection failed, using minimal context",
			zap.String("company", companyName),
			zap.Error(err),
		)
		return minimal
	}

	vc := derive(companyName, data)
	vc.LastUpdated = r.nowFunc()
	return vc
}

// linkedInProfile is the subset of the professional-network payload the
// derivation reads. Unknown fields are ignored.
type linkedInProfile struct {
	Industry     string   `json:"industry"`
	Description  string   `json:"description"`
	Specialities []string `json:"specialities"`
}

// derive extracts a structured profile from collected payloads. Missing or
// unparsable payloads leave their fields empty; the result may be minimal.
func derive(companyName string, data *model.MultiSourceData) *model.VendorContext {
	vc := &model.VendorContext{CompanyName: companyName}

	if raw, ok := data.Sources[model.SourceLinkedInCompany]; ok {
		var profile linkedInProfile
		if err := json.Unmarshal(raw, &profile); err == nil {
			vc.Industry = profile.Industry
			vc.Products = profile.Specialities
			vc.Positioning = profile.Description
		}
	}

	return vc
}
