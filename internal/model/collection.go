package model

import (
	"encoding/json"
	"time"
)

// DataCollectionPlan is the planner's output: which sources to query for a
// company, and what that is expected to cost. Plans are never mutated after
// creation; the engine consumes a plan exactly once.
type DataCollectionPlan struct {
	CompanyName       string                   `json:"company_name"`
	Requester         ConsumerType             `json:"requester"`
	ToCollect         []SourceType             `json:"to_collect"`
	FromCache         []SourceType             `json:"from_cache"`
	EstimatedCost     float64                  `json:"estimated_cost"`
	EstimatedDuration time.Duration            `json:"estimated_duration"`
	CacheSavings      float64                  `json:"cache_savings"`
	CostsAttribution  map[ConsumerType]float64 `json:"costs_attribution"`
}

// ContextAwarePlan wraps a base plan with vendor-derived dataset priorities.
// The embedded plan is carried by value so the base stays untouched.
type ContextAwarePlan struct {
	DataCollectionPlan
	VendorContext            *VendorContext      `json:"vendor_context,omitempty"`
	CustomerSpecificDatasets []DatasetType       `json:"customer_specific_datasets"`
	ContextualPriorities     map[DatasetType]int `json:"contextual_priorities"`
}

// CollectionTask is one source lookup scheduled for execution.
type CollectionTask struct {
	Source            SourceType    `json:"source"`
	CompanyName       string        `json:"company_name"`
	Priority          int           `json:"priority"`
	EstimatedCost     float64       `json:"estimated_cost"`
	EstimatedDuration time.Duration `json:"estimated_duration"`
}

// CollectionResult is the outcome of one task. Data is nil both when the
// source errored and when it had nothing to report; Success and Err
// disambiguate for callers that care.
type CollectionResult struct {
	Source   SourceType      `json:"source"`
	Data     json.RawMessage `json:"data,omitempty"`
	Success  bool            `json:"success"`
	Duration time.Duration   `json:"duration"`
	Cost     float64         `json:"cost"`
	Cached   bool            `json:"cached"`
	Err      string          `json:"error,omitempty"`
}

// CollectionSummary aggregates per-task results for one collection run.
type CollectionSummary struct {
	TotalTasks      int           `json:"total_tasks"`
	SuccessfulTasks int           `json:"successful_tasks"`
	FailedTasks     int           `json:"failed_tasks"`
	TotalCost       float64       `json:"total_cost"`
	TotalDuration   time.Duration `json:"total_duration"`
	CacheHitRate    float64       `json:"cache_hit_rate"`
	QualityScore    float64       `json:"quality_score"`
}
