package model

import "encoding/json"

// SourceType identifies a third-party data provider endpoint.
type SourceType string

const (
	SourceWebSearch          SourceType = "web_search"
	SourceNewsScan           SourceType = "news_scan"
	SourceJobPostings        SourceType = "job_postings"
	SourceLinkedInCompany    SourceType = "linkedin_company"
	SourceContactEnrichment  SourceType = "contact_enrichment"
	SourceMarketplaceDataset SourceType = "marketplace_dataset"
	SourceTechLookup         SourceType = "tech_lookup"
)

// CostTier is a coarse cost bucket used to bias selection toward cheaper
// sources first. Tier 1 is cheapest.
type CostTier int

const (
	Tier1 CostTier = 1
	Tier2 CostTier = 2
	Tier3 CostTier = 3
)

// SourceOption describes one way of satisfying a dataset, with its cost,
// reliability and freshness profile. Options are immutable once the catalog
// is built.
type SourceOption struct {
	SourceID             SourceType `json:"source_id" yaml:"source_id"`
	Priority             int        `json:"priority" yaml:"priority"`
	Cost                 float64    `json:"cost" yaml:"cost"`
	Reliability          float64    `json:"reliability" yaml:"reliability"`
	FreshnessNeeded      string     `json:"freshness_needed" yaml:"freshness_needed"`
	ExtractionComplexity string     `json:"extraction_complexity" yaml:"extraction_complexity"`
	TypicalTTLHours      int        `json:"typical_ttl_hours" yaml:"typical_ttl_hours"`
	CostTier             CostTier   `json:"cost_tier" yaml:"cost_tier"`
	CostPerQuality       float64    `json:"cost_per_quality" yaml:"-"`
	FallbackPriority     int        `json:"fallback_priority" yaml:"fallback_priority"`
}

// DataQuality summarizes the quality dimensions of a collected aggregate.
type DataQuality struct {
	Completeness float64 `json:"completeness"`
	Freshness    float64 `json:"freshness"`
	Reliability  float64 `json:"reliability"`
}

// MultiSourceData is the consumer-facing aggregate of one collection run.
// Each source's payload lands in its own slot; sources that failed or were
// skipped are simply absent.
type MultiSourceData struct {
	CompanyName       string                         `json:"company_name"`
	Sources           map[SourceType]json.RawMessage `json:"sources"`
	TotalNewCost      float64                        `json:"total_new_cost"`
	TotalCacheSavings float64                        `json:"total_cache_savings"`
	CacheHits         int                            `json:"cache_hits"`
	NewAPICalls       int                            `json:"new_api_calls"`
	DataQuality       DataQuality                    `json:"data_quality"`
	Summary           CollectionSummary              `json:"summary"`
}
