package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

func TestCreateContextAwarePlanNilVendor(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.CreateContextAwarePlan("Acme", model.ConsumerCustomerIntelligence, 7.00, nil)
	require.NoError(t, err)
	assert.Nil(t, plan.VendorContext)
	assert.Empty(t, plan.CustomerSpecificDatasets)
	assert.Empty(t, plan.ContextualPriorities)
	assert.NotEmpty(t, plan.ToCollect)
}

func TestCreateContextAwarePlanMinimalVendor(t *testing.T) {
	p := newTestPlanner()
	vendor := &model.VendorContext{CompanyName: "Vendor Co", LastUpdated: time.Now()}
	require.True(t, vendor.IsMinimal())

	plan, err := p.CreateContextAwarePlan("Acme", model.ConsumerCustomerIntelligence, 7.00, vendor)
	require.NoError(t, err)
	assert.Empty(t, plan.CustomerSpecificDatasets)
	assert.Empty(t, plan.ContextualPriorities)
}

func TestCreateContextAwarePlanIndustry(t *testing.T) {
	p := newTestPlanner()
	vendor := &model.VendorContext{CompanyName: "Vendor Co", Industry: "logistics"}

	plan, err := p.CreateContextAwarePlan("Acme", model.ConsumerCustomerIntelligence, 7.00, vendor)
	require.NoError(t, err)

	assert.Equal(t, 70, plan.ContextualPriorities[model.DatasetIndustryAnalysis])
	assert.Equal(t, 70, plan.ContextualPriorities[model.DatasetCompetitiveLandscape])
	assert.ElementsMatch(t, []model.DatasetType{
		model.DatasetIndustryAnalysis,
		model.DatasetCompetitiveLandscape,
	}, plan.CustomerSpecificDatasets)
}

func TestCreateContextAwarePlanTargetMarkets(t *testing.T) {
	p := newTestPlanner()
	vendor := &model.VendorContext{
		CompanyName:   "Vendor Co",
		TargetMarkets: []string{"mid-market logistics"},
	}

	plan, err := p.CreateContextAwarePlan("Acme", model.ConsumerCustomerIntelligence, 7.00, vendor)
	require.NoError(t, err)

	assert.Equal(t, basePriority+marketBonus, plan.ContextualPriorities[model.DatasetMarketPresence])
	assert.Equal(t, basePriority+marketBonus, plan.ContextualPriorities[model.DatasetGeographicDistribution])
	assert.ElementsMatch(t, []model.DatasetType{
		model.DatasetMarketPresence,
		model.DatasetGeographicDistribution,
	}, plan.CustomerSpecificDatasets)
}

func TestCreateContextAwarePlanStackedBonusesCapAt100(t *testing.T) {
	p := newTestPlanner()
	vendor := &model.VendorContext{
		CompanyName: "Vendor Co",
		Industry:    "logistics",
		Products:    []string{"fleet tracking"},
		Competitors: []string{"Rival Inc"},
	}

	plan, err := p.CreateContextAwarePlan("Acme", model.ConsumerCustomerIntelligence, 7.00, vendor)
	require.NoError(t, err)

	// Competitive landscape picks up both the industry and competitor
	// bonuses: 50 + 20 + 25 = 95.
	assert.Equal(t, 95, plan.ContextualPriorities[model.DatasetCompetitiveLandscape])
	assert.Equal(t, 70, plan.ContextualPriorities[model.DatasetIndustryAnalysis])
	assert.Equal(t, 65, plan.ContextualPriorities[model.DatasetTechnologyStack])

	for ds, score := range plan.ContextualPriorities {
		assert.LessOrEqual(t, score, 100, "dataset %s", ds)
		assert.GreaterOrEqual(t, score, 50, "dataset %s", ds)
	}

	// Datasets appear once even when multiple signals touch them.
	seen := map[model.DatasetType]int{}
	for _, ds := range plan.CustomerSpecificDatasets {
		seen[ds]++
	}
	for ds, n := range seen {
		assert.Equal(t, 1, n, "dataset %s listed %d times", ds, n)
	}
}

func TestCreateContextAwarePlanBaseUntouched(t *testing.T) {
	p := newTestPlanner()

	base, err := p.CreateCollectionPlan("Acme", model.ConsumerCustomerIntelligence, 7.00, nil)
	require.NoError(t, err)

	vendor := &model.VendorContext{CompanyName: "Vendor Co", Industry: "logistics"}
	aware, err := p.CreateContextAwarePlan("Acme", model.ConsumerCustomerIntelligence, 7.00, vendor)
	require.NoError(t, err)

	assert.Equal(t, base.ToCollect, aware.ToCollect)
	assert.InDelta(t, base.EstimatedCost, aware.EstimatedCost, 1e-9)
}
