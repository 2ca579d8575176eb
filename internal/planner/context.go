package planner

import (
	"github.com/sells-group/intel-orchestrator/internal/model"
)

// Priority scoring for vendor-conditioned datasets. Scores are advisory:
// they order optional collection and never bypass the budget check.
const (
	basePriority    = 50
	industryBonus   = 20
	productBonus    = 15
	marketBonus     = 15
	competitorBonus = 25
	maxPriority     = 100
)

// CreateContextAwarePlan builds a plan augmented with datasets implied by
// the vendor's own profile: knowing what the vendor sells decides which
// aspects of the prospect are worth paying for. A minimal vendor context
// (lookup failed) yields a plan identical to the plain one.
func (p *Planner) CreateContextAwarePlan(companyName string, consumer model.ConsumerType, maxCost float64, vendorCtx *model.VendorContext) (*model.ContextAwarePlan, error) {
	base, err := p.CreateCollectionPlan(companyName, consumer, maxCost, nil)
	if err != nil {
		return nil, err
	}

	aware := &model.ContextAwarePlan{
		DataCollectionPlan:       *base,
		VendorContext:            vendorCtx,
		CustomerSpecificDatasets: []model.DatasetType{},
		ContextualPriorities:     make(map[model.DatasetType]int),
	}
	if vendorCtx == nil {
		return aware, nil
	}

	add := func(bonus int, datasets ...model.DatasetType) {
		for _, ds := range datasets {
			if _, seen := aware.ContextualPriorities[ds]; !seen {
				aware.CustomerSpecificDatasets = append(aware.CustomerSpecificDatasets, ds)
				aware.ContextualPriorities[ds] = basePriority
			}
			score := aware.ContextualPriorities[ds] + bonus
			if score > maxPriority {
				score = maxPriority
			}
			aware.ContextualPriorities[ds] = score
		}
	}

	if vendorCtx.Industry != "" {
		add(industryBonus, model.DatasetIndustryAnalysis, model.DatasetCompetitiveLandscape)
	}
	if len(vendorCtx.Products) > 0 {
		add(productBonus, model.DatasetTechnologyStack, model.DatasetProductReviews)
	}
	if len(vendorCtx.TargetMarkets) > 0 {
		add(marketBonus, model.DatasetMarketPresence, model.DatasetGeographicDistribution)
	}
	if len(vendorCtx.Competitors) > 0 {
		add(competitorBonus, model.DatasetCompetitiveLandscape)
	}

	return aware, nil
}
