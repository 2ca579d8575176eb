// Package planner builds DataCollectionPlans: which sources to query for a
// company under a cost ceiling. Budget refusal is the only error that
// escapes planning; everything else degrades to a smaller plan.
package planner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/internal/catalog"
	"github.com/sells-group/intel-orchestrator/internal/model"
)

// BudgetExceededError is the hard stop raised before any paid call when an
// estimate overruns the cost ceiling.
type BudgetExceededError struct {
	Estimated float64
	Max       float64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("planner: estimated cost $%.2f exceeds limit $%.2f", e.Estimated, e.Max)
}

// ValidateCostLimits fails when an estimate exceeds the ceiling. Callers
// run this before issuing any paid call.
func ValidateCostLimits(estimated, max float64) error {
	if estimated > max {
		return &BudgetExceededError{Estimated: estimated, Max: max}
	}
	return nil
}

// Planner selects sources under a budget using the dataset catalog.
type Planner struct {
	catalog *catalog.Catalog
}

// New creates a Planner over a catalog.
func New(cat *catalog.Catalog) *Planner {
	return &Planner{catalog: cat}
}

// CreateCollectionPlan selects sources for a company greedily under maxCost.
// Candidates are requiredSources when given, else the consumer's default
// set; they are walked in catalog priority order and a source is added only
// while the running cost stays within budget. Sources that would exceed the
// budget are skipped whole; nothing is partially billed. Cache awareness
// happens at execution time, so FromCache and CacheSavings start empty.
func (p *Planner) CreateCollectionPlan(companyName string, consumer model.ConsumerType, maxCost float64, requiredSources []model.SourceType) (*model.DataCollectionPlan, error) {
	candidates := requiredSources
	if len(candidates) == 0 {
		candidates = p.catalog.DefaultSources(consumer)
	}

	plan := &model.DataCollectionPlan{
		CompanyName:      companyName,
		Requester:        consumer,
		ToCollect:        make([]model.SourceType, 0, len(candidates)),
		FromCache:        []model.SourceType{},
		CostsAttribution: zeroAttribution(),
	}

	var runningCost float64
	for _, source := range candidates {
		cost := p.catalog.CostOf(source)
		if runningCost+cost > maxCost {
			zap.L().Debug("planner: source skipped, over budget",
				zap.String("source", string(source)),
				zap.Float64("cost", cost),
				zap.Float64("running_cost", runningCost),
				zap.Float64("max_cost", maxCost),
			)
			continue
		}
		runningCost += cost
		plan.ToCollect = append(plan.ToCollect, source)

		// Sources run in parallel: wall clock is bounded by the slowest.
		if d := p.catalog.DurationOf(source); d > plan.EstimatedDuration {
			plan.EstimatedDuration = d
		}
	}

	plan.EstimatedCost = runningCost
	plan.CostsAttribution[consumer] = runningCost

	if err := ValidateCostLimits(plan.EstimatedCost, maxCost); err != nil {
		return nil, err
	}

	zap.L().Info("planner: plan created",
		zap.String("company", companyName),
		zap.String("consumer", string(consumer)),
		zap.Int("sources", len(plan.ToCollect)),
		zap.Float64("estimated_cost", plan.EstimatedCost),
		zap.Duration("estimated_duration", plan.EstimatedDuration),
	)

	return plan, nil
}

func zeroAttribution() map[model.ConsumerType]float64 {
	attr := make(map[model.ConsumerType]float64, len(model.AllConsumers))
	for _, c := range model.AllConsumers {
		attr[c] = 0
	}
	return attr
}
