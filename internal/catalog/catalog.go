// Package catalog holds the static dataset-requirements table: which sources
// can satisfy each dataset, what they cost, and which datasets each consumer
// type needs. Pure lookup; unknown ids degrade to empty results with a
// logged warning, never an error.
package catalog

import (
	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// Catalog is the immutable requirements table built at process start.
type Catalog struct {
	sources  map[model.SourceType]SourceInfo
	datasets map[model.DatasetType]model.DatasetRequirement
}

// New builds the default catalog.
func New() *Catalog {
	c := &Catalog{
		sources:  sourceTable,
		datasets: make(map[model.DatasetType]model.DatasetRequirement),
	}
	for _, req := range defaultDatasets() {
		for i := range req.Sources {
			opt := &req.Sources[i]
			if opt.Reliability > 0 {
				opt.CostPerQuality = opt.Cost / opt.Reliability
			}
		}
		c.datasets[req.DatasetID] = req
	}
	return c
}

// Requirements returns the requirement entry for a dataset. Unknown dataset
// ids return a zero-value, non-required entry so callers can skip them.
func (c *Catalog) Requirements(dataset model.DatasetType) model.DatasetRequirement {
	if req, ok := c.datasets[dataset]; ok {
		return req
	}
	zap.L().Warn("catalog: unknown dataset id",
		zap.String("dataset", string(dataset)),
	)
	return model.DatasetRequirement{DatasetID: dataset, Required: false}
}

// opt builds a SourceOption from the source table, so dataset entries stay
// consistent with per-source cost and TTL.
func opt(source model.SourceType, priority int, freshness, complexity string) model.SourceOption {
	info := sourceTable[source]
	return model.SourceOption{
		SourceID:             source,
		Priority:             priority,
		Cost:                 info.Cost,
		Reliability:          info.Reliability,
		FreshnessNeeded:      freshness,
		ExtractionComplexity: complexity,
		TypicalTTLHours:      int(info.TTL.Hours()),
		CostTier:             info.Tier,
		FallbackPriority:     priority + 10,
	}
}

func defaultDatasets() []model.DatasetRequirement {
	return []model.DatasetRequirement{
		{
			DatasetID: model.DatasetCompanyOverview,
			Sources: []model.SourceOption{
				opt(model.SourceWebSearch, 1, "weekly", "low"),
				opt(model.SourceLinkedInCompany, 2, "weekly", "medium"),
			},
			Required:           true,
			QualityThreshold:   0.70,
			CollectionPriority: model.PriorityHigh,
			FreshnessReq:       "weekly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.20, PreferredTier: model.Tier1, FallbackStrategy: "next_priority"},
		},
		{
			DatasetID: model.DatasetDecisionMakers,
			Sources: []model.SourceOption{
				opt(model.SourceLinkedInCompany, 1, "weekly", "medium"),
				opt(model.SourceContactEnrichment, 2, "monthly", "low"),
			},
			Required:           true,
			QualityThreshold:   0.80,
			CollectionPriority: model.PriorityHigh,
			FreshnessReq:       "weekly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.30, PreferredTier: model.Tier2, FallbackStrategy: "next_priority"},
		},
		{
			DatasetID: model.DatasetTechnologyStack,
			Sources: []model.SourceOption{
				opt(model.SourceTechLookup, 1, "monthly", "medium"),
				opt(model.SourceJobPostings, 2, "weekly", "high"),
				opt(model.SourceMarketplaceDataset, 3, "monthly", "low"),
			},
			Required:           false,
			QualityThreshold:   0.65,
			CollectionPriority: model.PriorityMedium,
			FreshnessReq:       "monthly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.35, PreferredTier: model.Tier2, FallbackStrategy: "cheapest"},
		},
		{
			DatasetID: model.DatasetRecentNews,
			Sources: []model.SourceOption{
				opt(model.SourceNewsScan, 1, "daily", "low"),
				opt(model.SourceWebSearch, 2, "daily", "low"),
			},
			Required:           true,
			QualityThreshold:   0.60,
			CollectionPriority: model.PriorityHigh,
			FreshnessReq:       "daily",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.10, PreferredTier: model.Tier1, FallbackStrategy: "next_priority"},
		},
		{
			DatasetID: model.DatasetHiringActivity,
			Sources: []model.SourceOption{
				opt(model.SourceJobPostings, 1, "daily", "medium"),
			},
			Required:           false,
			QualityThreshold:   0.70,
			CollectionPriority: model.PriorityMedium,
			FreshnessReq:       "daily",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.08, PreferredTier: model.Tier2, FallbackStrategy: "skip"},
		},
		{
			DatasetID: model.DatasetFundingHistory,
			Sources: []model.SourceOption{
				opt(model.SourceMarketplaceDataset, 1, "monthly", "low"),
				opt(model.SourceNewsScan, 2, "weekly", "high"),
			},
			Required:           false,
			QualityThreshold:   0.75,
			CollectionPriority: model.PriorityLow,
			FreshnessReq:       "monthly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.30, PreferredTier: model.Tier3, FallbackStrategy: "next_priority"},
		},
		{
			DatasetID: model.DatasetContactInfo,
			Sources: []model.SourceOption{
				opt(model.SourceContactEnrichment, 1, "monthly", "low"),
				opt(model.SourceWebSearch, 2, "monthly", "high"),
			},
			Required:           false,
			QualityThreshold:   0.85,
			CollectionPriority: model.PriorityMedium,
			FreshnessReq:       "monthly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.20, PreferredTier: model.Tier3, FallbackStrategy: "skip"},
		},
		{
			DatasetID: model.DatasetIndustryAnalysis,
			Sources: []model.SourceOption{
				opt(model.SourceWebSearch, 1, "weekly", "medium"),
				opt(model.SourceMarketplaceDataset, 2, "monthly", "low"),
			},
			Required:           false,
			QualityThreshold:   0.65,
			CollectionPriority: model.PriorityMedium,
			FreshnessReq:       "weekly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.30, PreferredTier: model.Tier1, FallbackStrategy: "next_priority"},
		},
		{
			DatasetID: model.DatasetCompetitiveLandscape,
			Sources: []model.SourceOption{
				opt(model.SourceWebSearch, 1, "weekly", "high"),
				opt(model.SourceMarketplaceDataset, 2, "monthly", "medium"),
			},
			Required:           false,
			QualityThreshold:   0.70,
			CollectionPriority: model.PriorityMedium,
			FreshnessReq:       "weekly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.30, PreferredTier: model.Tier1, FallbackStrategy: "next_priority"},
		},
		{
			DatasetID: model.DatasetProductReviews,
			Sources: []model.SourceOption{
				opt(model.SourceWebSearch, 1, "weekly", "medium"),
			},
			Required:           false,
			QualityThreshold:   0.60,
			CollectionPriority: model.PriorityLow,
			FreshnessReq:       "weekly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.05, PreferredTier: model.Tier1, FallbackStrategy: "skip"},
		},
		{
			DatasetID: model.DatasetMarketPresence,
			Sources: []model.SourceOption{
				opt(model.SourceWebSearch, 1, "weekly", "medium"),
				opt(model.SourceNewsScan, 2, "daily", "medium"),
			},
			Required:           false,
			QualityThreshold:   0.60,
			CollectionPriority: model.PriorityLow,
			FreshnessReq:       "weekly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.10, PreferredTier: model.Tier1, FallbackStrategy: "skip"},
		},
		{
			DatasetID: model.DatasetGeographicDistribution,
			Sources: []model.SourceOption{
				opt(model.SourceLinkedInCompany, 1, "monthly", "medium"),
				opt(model.SourceMarketplaceDataset, 2, "monthly", "low"),
			},
			Required:           false,
			QualityThreshold:   0.65,
			CollectionPriority: model.PriorityLow,
			FreshnessReq:       "monthly",
			CostOptimization:   model.CostOptimization{MaxCostPerDataset: 0.35, PreferredTier: model.Tier2, FallbackStrategy: "skip"},
		},
	}
}
