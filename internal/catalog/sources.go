package catalog

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// SourceInfo holds the per-source operating profile used by the planner and
// engine for cost, pacing and cache decisions.
type SourceInfo struct {
	Cost        float64        `yaml:"cost"`
	Duration    time.Duration  `yaml:"duration"`
	Reliability float64        `yaml:"reliability"`
	TTL         time.Duration  `yaml:"ttl"`
	Tier        model.CostTier `yaml:"tier"`
}

// Conservative fallbacks for sources missing from the table. Lookups never
// fail; an unknown source is billed pessimistically and cached briefly.
const (
	FallbackCost        = 0.10
	FallbackReliability = 0.70
	FallbackDuration    = 5 * time.Second
	FallbackTTL         = 24 * time.Hour
)

var sourceTable = map[model.SourceType]SourceInfo{
	model.SourceWebSearch:          {Cost: 0.05, Duration: 2 * time.Second, Reliability: 0.85, TTL: 72 * time.Hour, Tier: model.Tier1},
	model.SourceNewsScan:           {Cost: 0.05, Duration: 3 * time.Second, Reliability: 0.80, TTL: 24 * time.Hour, Tier: model.Tier1},
	model.SourceJobPostings:        {Cost: 0.08, Duration: 4 * time.Second, Reliability: 0.82, TTL: 48 * time.Hour, Tier: model.Tier2},
	model.SourceLinkedInCompany:    {Cost: 0.10, Duration: 5 * time.Second, Reliability: 0.90, TTL: 168 * time.Hour, Tier: model.Tier2},
	model.SourceTechLookup:         {Cost: 0.10, Duration: 3 * time.Second, Reliability: 0.75, TTL: 168 * time.Hour, Tier: model.Tier2},
	model.SourceContactEnrichment:  {Cost: 0.15, Duration: 4 * time.Second, Reliability: 0.88, TTL: 336 * time.Hour, Tier: model.Tier3},
	model.SourceMarketplaceDataset: {Cost: 0.25, Duration: 8 * time.Second, Reliability: 0.92, TTL: 168 * time.Hour, Tier: model.Tier3},
}

// fallbackInfo is the profile applied to sources missing from the table.
func fallbackInfo() SourceInfo {
	return SourceInfo{
		Cost:        FallbackCost,
		Duration:    FallbackDuration,
		Reliability: FallbackReliability,
		TTL:         FallbackTTL,
		Tier:        model.Tier2,
	}
}

// Info returns the operating profile for a source, or the fallback profile
// when the source is not in the table.
func (c *Catalog) Info(source model.SourceType) SourceInfo {
	if info, ok := c.sources[source]; ok {
		return info
	}
	zap.L().Warn("catalog: unknown source, using fallback profile",
		zap.String("source", string(source)),
	)
	return fallbackInfo()
}

// CostOf returns the per-call cost of a source.
func (c *Catalog) CostOf(source model.SourceType) float64 {
	return c.Info(source).Cost
}

// DurationOf returns the typical wall-clock duration of a source call.
func (c *Catalog) DurationOf(source model.SourceType) time.Duration {
	return c.Info(source).Duration
}

// ReliabilityOf returns the source's reliability in [0,1].
func (c *Catalog) ReliabilityOf(source model.SourceType) float64 {
	return c.Info(source).Reliability
}

// TTLOf returns how long a cached payload from this source stays fresh.
func (c *Catalog) TTLOf(source model.SourceType) time.Duration {
	return c.Info(source).TTL
}

// Sources returns the ids of every source in the table, in priority order
// (cheapest tier first, then by cost).
func (c *Catalog) Sources() []model.SourceType {
	ordered := make([]model.SourceType, 0, len(c.sources))
	for _, s := range sourceOrder {
		if _, ok := c.sources[s]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// sourceOrder fixes iteration order for planning: tier-ascending, then cost.
var sourceOrder = []model.SourceType{
	model.SourceWebSearch,
	model.SourceNewsScan,
	model.SourceJobPostings,
	model.SourceLinkedInCompany,
	model.SourceTechLookup,
	model.SourceContactEnrichment,
	model.SourceMarketplaceDataset,
}
