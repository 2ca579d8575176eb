package model

// DatasetType names a logical category of company information, satisfiable
// by one or more sources.
type DatasetType string

const (
	DatasetCompanyOverview        DatasetType = "company_overview"
	DatasetDecisionMakers         DatasetType = "decision_makers"
	DatasetTechnologyStack        DatasetType = "technology_stack"
	DatasetRecentNews             DatasetType = "recent_news"
	DatasetHiringActivity         DatasetType = "hiring_activity"
	DatasetFundingHistory         DatasetType = "funding_history"
	DatasetContactInfo            DatasetType = "contact_info"
	DatasetIndustryAnalysis       DatasetType = "industry_analysis"
	DatasetCompetitiveLandscape   DatasetType = "competitive_landscape"
	DatasetProductReviews         DatasetType = "product_reviews"
	DatasetMarketPresence         DatasetType = "market_presence"
	DatasetGeographicDistribution DatasetType = "geographic_distribution"
)

// CollectionPriority orders datasets within a plan.
type CollectionPriority string

const (
	PriorityHigh   CollectionPriority = "high"
	PriorityMedium CollectionPriority = "medium"
	PriorityLow    CollectionPriority = "low"
)

// CostOptimization holds per-dataset spend controls.
type CostOptimization struct {
	MaxCostPerDataset float64  `json:"max_cost_per_dataset" yaml:"max_cost_per_dataset"`
	PreferredTier     CostTier `json:"preferred_tier" yaml:"preferred_tier"`
	FallbackStrategy  string   `json:"fallback_strategy" yaml:"fallback_strategy"`
}

// DatasetRequirement maps a dataset to its source options, ordered by
// ascending priority. Sources must be non-empty when Required is true.
type DatasetRequirement struct {
	DatasetID          DatasetType        `json:"dataset_id" yaml:"dataset_id"`
	Sources            []SourceOption     `json:"sources" yaml:"sources"`
	Required           bool               `json:"required" yaml:"required"`
	QualityThreshold   float64            `json:"quality_threshold" yaml:"quality_threshold"`
	CollectionPriority CollectionPriority `json:"collection_priority" yaml:"collection_priority"`
	FreshnessReq       string             `json:"freshness_requirement" yaml:"freshness_requirement"`
	CostOptimization   CostOptimization   `json:"cost_optimization" yaml:"cost_optimization"`
}
