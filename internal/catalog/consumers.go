package catalog

import (
	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// consumerDatasets maps each consumer type to the datasets it needs, in
// collection order. The research consumer resolves its list dynamically per
// sub-area via ResearchDatasets.
var consumerDatasets = map[model.ConsumerType][]model.DatasetType{
	model.ConsumerProfile: {
		model.DatasetCompanyOverview,
		model.DatasetRecentNews,
		model.DatasetDecisionMakers,
	},
	model.ConsumerVendorContext: {
		model.DatasetCompanyOverview,
		model.DatasetRecentNews,
		model.DatasetTechnologyStack,
		model.DatasetMarketPresence,
	},
	model.ConsumerCustomerIntelligence: {
		model.DatasetCompanyOverview,
		model.DatasetDecisionMakers,
		model.DatasetRecentNews,
		model.DatasetTechnologyStack,
		model.DatasetHiringActivity,
		model.DatasetFundingHistory,
		model.DatasetContactInfo,
	},
	model.ConsumerTest: {
		model.DatasetCompanyOverview,
	},
}

// researchAreas maps research sub-areas to dataset lists.
var researchAreas = map[string][]model.DatasetType{
	"overview":   {model.DatasetCompanyOverview, model.DatasetRecentNews},
	"technology": {model.DatasetTechnologyStack, model.DatasetProductReviews},
	"people":     {model.DatasetDecisionMakers, model.DatasetHiringActivity, model.DatasetContactInfo},
	"market":     {model.DatasetMarketPresence, model.DatasetCompetitiveLandscape, model.DatasetIndustryAnalysis},
}

// DatasetsFor returns the dataset list for a consumer type. Unknown consumer
// types get an empty list and a warning.
func (c *Catalog) DatasetsFor(consumer model.ConsumerType) []model.DatasetType {
	if ds, ok := consumerDatasets[consumer]; ok {
		out := make([]model.DatasetType, len(ds))
		copy(out, ds)
		return out
	}
	zap.L().Warn("catalog: unknown consumer type",
		zap.String("consumer", string(consumer)),
	)
	return nil
}

// ResearchDatasets resolves the dataset list for one research sub-area.
func (c *Catalog) ResearchDatasets(area string) []model.DatasetType {
	if ds, ok := researchAreas[area]; ok {
		out := make([]model.DatasetType, len(ds))
		copy(out, ds)
		return out
	}
	zap.L().Warn("catalog: unknown research area", zap.String("area", area))
	return nil
}

// consumerDefaultSources fixes the default candidate source set per consumer.
var consumerDefaultSources = map[model.ConsumerType][]model.SourceType{
	model.ConsumerProfile: {
		model.SourceWebSearch,
		model.SourceNewsScan,
		model.SourceLinkedInCompany,
	},
	model.ConsumerVendorContext: {
		model.SourceWebSearch,
		model.SourceNewsScan,
		model.SourceLinkedInCompany,
	},
	model.ConsumerCustomerIntelligence: {
		model.SourceWebSearch,
		model.SourceNewsScan,
		model.SourceJobPostings,
		model.SourceLinkedInCompany,
		model.SourceTechLookup,
		model.SourceContactEnrichment,
		model.SourceMarketplaceDataset,
	},
	model.ConsumerResearch: {
		model.SourceWebSearch,
		model.SourceNewsScan,
		model.SourceJobPostings,
		model.SourceLinkedInCompany,
		model.SourceTechLookup,
	},
	model.ConsumerTest: {
		model.SourceWebSearch,
		model.SourceNewsScan,
	},
}

// DefaultSources returns the default candidate sources for a consumer type,
// in catalog priority order. Unknown consumers fall back to the cheapest
// pair so a plan can still be built.
func (c *Catalog) DefaultSources(consumer model.ConsumerType) []model.SourceType {
	if srcs, ok := consumerDefaultSources[consumer]; ok {
		out := make([]model.SourceType, len(srcs))
		copy(out, srcs)
		return out
	}
	zap.L().Warn("catalog: unknown consumer type, using minimal source set",
		zap.String("consumer", string(consumer)),
	)
	return []model.SourceType{model.SourceWebSearch, model.SourceNewsScan}
}
