package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/intel-orchestrator/internal/cache"
	"github.com/sells-group/intel-orchestrator/internal/catalog"
	"github.com/sells-group/intel-orchestrator/internal/collector"
	"github.com/sells-group/intel-orchestrator/internal/engine"
	"github.com/sells-group/intel-orchestrator/internal/model"
	"github.com/sells-group/intel-orchestrator/internal/orchestrator"
	"github.com/sells-group/intel-orchestrator/internal/planner"
	"github.com/sells-group/intel-orchestrator/internal/resilience"
	"github.com/sells-group/intel-orchestrator/internal/vendorctx"
	"github.com/sells-group/intel-orchestrator/pkg/apollo"
	"github.com/sells-group/intel-orchestrator/pkg/brightdata"
	"github.com/sells-group/intel-orchestrator/pkg/proxycurl"
	"github.com/sells-group/intel-orchestrator/pkg/serper"
)

// env bundles the wired application graph for commands.
type env struct {
	Catalog      *catalog.Catalog
	Store        cache.Store
	Planner      *planner.Planner
	Engine       *engine.Engine
	Orchestrator *orchestrator.Orchestrator
}

func (e *env) Close() {
	_ = e.Store.Close()
}

// initStore opens the configured cache backend.
func initStore(ctx context.Context) (cache.Store, error) {
	switch cfg.Cache.Driver {
	case "memory":
		return cache.NewMemory(), nil
	case "sqlite":
		return cache.NewSQLite(ctx, cfg.Cache.SQLitePath)
	case "postgres":
		return cache.NewPostgres(ctx, cfg.Cache.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// initEnv wires clients, collectors, planner, engine and orchestrator from
// the loaded config.
func initEnv(ctx context.Context) (*env, error) {
	var cat *catalog.Catalog
	if cfg.Catalog.OverridePath != "" {
		var err error
		cat, err = catalog.Load(cfg.Catalog.OverridePath)
		if err != nil {
			return nil, err
		}
	} else {
		cat = catalog.New()
	}

	store, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	serperClient := serper.NewClient(cfg.Serper.Key, serper.WithBaseURL(cfg.Serper.BaseURL))
	proxycurlClient := proxycurl.NewClient(cfg.Proxycurl.Key, proxycurl.WithBaseURL(cfg.Proxycurl.BaseURL))
	apolloClient := apollo.NewClient(cfg.Apollo.Key, apollo.WithBaseURL(cfg.Apollo.BaseURL))
	brightdataClient := brightdata.NewClient(cfg.BrightData.Key,
		brightdata.WithBaseURL(cfg.BrightData.BaseURL),
		brightdata.WithPollInterval(time.Duration(cfg.BrightData.PollIntervalSecs)*time.Second),
	)

	registry := collector.NewRegistry()
	registry.Register(collector.WebSearch(serperClient))
	registry.Register(collector.NewsScan(serperClient))
	registry.Register(collector.JobPostings(serperClient))
	registry.Register(collector.LinkedInCompany(proxycurlClient))
	registry.Register(collector.ContactEnrichment(apolloClient))
	registry.Register(collector.MarketplaceDataset(brightdataClient))
	registry.Register(collector.TechLookup(brightdataClient))

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxRetries = cfg.Engine.MaxRetries
	retryCfg.BaseDelay = cfg.Engine.RetryBaseDelay()

	batchCfg := resilience.BatchConfig{
		Size:   cfg.Engine.MaxParallelSources,
		Pacing: cfg.Engine.BatchPacing(),
	}

	defaults := orchestrator.Defaults{
		Consumers: map[model.ConsumerType]orchestrator.ConsumerDefaults{
			model.ConsumerProfile:              {Budget: cfg.Budgets.Profile, CacheTTL: 168 * time.Hour, QualityTarget: 0.70},
			model.ConsumerVendorContext:        {Budget: cfg.Budgets.VendorContext, CacheTTL: 72 * time.Hour, QualityTarget: 0.80},
			model.ConsumerCustomerIntelligence: {Budget: cfg.Budgets.CustomerIntelligence, CacheTTL: 24 * time.Hour, QualityTarget: 0.85},
			model.ConsumerResearch:             {Budget: cfg.Budgets.Research, CacheTTL: 72 * time.Hour, QualityTarget: 0.75},
			model.ConsumerTest:                 {Budget: cfg.Budgets.Test, CacheTTL: time.Hour, QualityTarget: 0.60},
		},
	}

	p := planner.New(cat)
	eng := engine.New(cat, store, registry,
		engine.WithRetryConfig(retryCfg),
		engine.WithBatchConfig(batchCfg),
		engine.WithConsumerTTLs(defaults.TTLs()),
	)

	resolver := vendorctx.NewCachingResolver(store, p, eng, cfg.Budgets.VendorContext)
	orch := orchestrator.New(cat, p, eng, store, resolver, defaults)

	return &env{
		Catalog:      cat,
		Store:        store,
		Planner:      p,
		Engine:       eng,
		Orchestrator: orch,
	}, nil
}
