// Package orchestrator composes the planner, engine and vendor-context
// resolver behind the stable API the commands and HTTP handlers consume.
// Consumer budget and freshness defaults live in an explicit config struct
// passed at construction, never in package globals.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/internal/cache"
	"github.com/sells-group/intel-orchestrator/internal/catalog"
	"github.com/sells-group/intel-orchestrator/internal/engine"
	"github.com/sells-group/intel-orchestrator/internal/model"
	"github.com/sells-group/intel-orchestrator/internal/planner"
	"github.com/sells-group/intel-orchestrator/internal/vendorctx"
)

// ConsumerDefaults are the per-consumer spending and freshness knobs.
type ConsumerDefaults struct {
	// Budget is the default cost ceiling per collection run, in USD.
	Budget float64
	// CacheTTL caps how old cached data may be for this consumer.
	CacheTTL time.Duration
	// QualityTarget is the minimum acceptable quality score, in [0,1].
	QualityTarget float64
}

// Defaults is the full default table, keyed by consumer type.
type Defaults struct {
	Consumers map[model.ConsumerType]ConsumerDefaults
}

// DefaultConfig returns the production default table.
func DefaultConfig() Defaults {
	return Defaults{
		Consumers: map[model.ConsumerType]ConsumerDefaults{
			model.ConsumerProfile:              {Budget: 2.00, CacheTTL: 168 * time.Hour, QualityTarget: 0.70},
			model.ConsumerVendorContext:        {Budget: 5.00, CacheTTL: 72 * time.Hour, QualityTarget: 0.80},
			model.ConsumerCustomerIntelligence: {Budget: 7.00, CacheTTL: 24 * time.Hour, QualityTarget: 0.85},
			model.ConsumerResearch:             {Budget: 5.00, CacheTTL: 72 * time.Hour, QualityTarget: 0.75},
			model.ConsumerTest:                 {Budget: 1.00, CacheTTL: time.Hour, QualityTarget: 0.60},
		},
	}
}

// TTLs returns the per-consumer cache age caps, shaped for
// engine.WithConsumerTTLs so the engine's read gate honors them.
func (d Defaults) TTLs() map[model.ConsumerType]time.Duration {
	ttls := make(map[model.ConsumerType]time.Duration, len(d.Consumers))
	for consumer, cd := range d.Consumers {
		ttls[consumer] = cd.CacheTTL
	}
	return ttls
}

// For returns the defaults for a consumer. Unknown consumers get the test
// consumer's conservative profile.
func (d Defaults) For(consumer model.ConsumerType) ConsumerDefaults {
	if cd, ok := d.Consumers[consumer]; ok {
		return cd
	}
	zap.L().Warn("orchestrator: unknown consumer type, using test defaults",
		zap.String("consumer", string(consumer)),
	)
	return ConsumerDefaults{Budget: 1.00, CacheTTL: time.Hour, QualityTarget: 0.60}
}

// Orchestrator is the facade over planning and execution.
type Orchestrator struct {
	catalog  *catalog.Catalog
	planner  *planner.Planner
	engine   *engine.Engine
	store    cache.Store
	resolver vendorctx.Resolver
	defaults Defaults
	nowFunc  func() time.Time
	log      *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithNow overrides the clock for tests.
func WithNow(now func() time.Time) Option {
	return func(o *Orchestrator) { o.nowFunc = now }
}

// New creates an Orchestrator from its collaborators and the default table.
func New(cat *catalog.Catalog, p *planner.Planner, e *engine.Engine, store cache.Store, resolver vendorctx.Resolver, defaults Defaults, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog:  cat,
		planner:  p,
		engine:   e,
		store:    store,
		resolver: resolver,
		defaults: defaults,
		nowFunc:  time.Now,
		log:      zap.L().With(zap.String("component", "orchestrator")),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateCollectionPlan builds a plan for a company. A maxCost of zero means
// the consumer's default budget.
func (o *Orchestrator) CreateCollectionPlan(companyName string, consumer model.ConsumerType, maxCost float64, requiredSources []model.SourceType) (*model.DataCollectionPlan, error) {
	if maxCost <= 0 {
		maxCost = o.defaults.For(consumer).Budget
	}
	return o.planner.CreateCollectionPlan(companyName, consumer, maxCost, requiredSources)
}

// GetMultiSourceData plans and executes a collection run in one call. Budget
// refusal is the only error beyond a cancelled context.
func (o *Orchestrator) GetMultiSourceData(ctx context.Context, companyName string, consumer model.ConsumerType, maxCost float64, requiredSources []model.SourceType) (*model.MultiSourceData, error) {
	plan, err := o.CreateCollectionPlan(companyName, consumer, maxCost, requiredSources)
	if err != nil {
		return nil, err
	}
	return o.engine.ExecuteParallelCollection(ctx, plan)
}

// GetCustomerIntelligence builds vendor-contextualized intelligence about a
// customer: resolve the vendor's own profile, plan with vendor-derived
// dataset priorities, execute, then score and suggest next steps.
func (o *Orchestrator) GetCustomerIntelligence(ctx context.Context, customerName, vendorName string) (*model.CustomerIntelligence, error) {
	defaults := o.defaults.For(model.ConsumerCustomerIntelligence)

	var vendor *model.VendorContext
	if vendorName != "" {
		vendor = o.resolver.Resolve(ctx, vendorName)
	}

	plan, err := o.planner.CreateContextAwarePlan(customerName, model.ConsumerCustomerIntelligence, defaults.Budget, vendor)
	if err != nil {
		return nil, err
	}

	data, err := o.engine.ExecuteParallelCollection(ctx, &plan.DataCollectionPlan)
	if err != nil {
		return nil, err
	}

	intel := &model.CustomerIntelligence{
		Customer:        customerName,
		Vendor:          vendor,
		Data:            data,
		QualityScore:    data.Summary.QualityScore,
		Recommendations: o.recommend(data, vendor, defaults),
	}

	o.log.Info("customer intelligence built",
		zap.String("customer", customerName),
		zap.String("vendor", vendorName),
		zap.Float64("quality_score", intel.QualityScore),
		zap.Int("recommendations", len(intel.Recommendations)),
	)

	return intel, nil
}

// recommend derives next-step suggestions from the run's outcome.
func (o *Orchestrator) recommend(data *model.MultiSourceData, vendor *model.VendorContext, defaults ConsumerDefaults) []string {
	recs := []string{}

	if data.Summary.QualityScore < defaults.QualityTarget*100 {
		recs = append(recs, fmt.Sprintf(
			"quality score %.0f is below the %.0f target; collect additional sources to improve coverage",
			data.Summary.QualityScore, defaults.QualityTarget*100,
		))
	}
	if vendor == nil || len(vendor.Competitors) == 0 {
		recs = append(recs, "no vendor competitors known; run a competitive-landscape analysis to sharpen positioning")
	}
	if data.Summary.TotalTasks > 0 && data.Summary.CacheHitRate < 0.25 && data.TotalNewCost > 0 {
		recs = append(recs, fmt.Sprintf(
			"cache hit rate %.0f%%; this run spent $%.2f on fresh calls, repeat lookups will be cheaper",
			data.Summary.CacheHitRate*100, data.TotalNewCost,
		))
	}

	return recs
}
