package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

func TestSourceLookups(t *testing.T) {
	c := New()

	assert.InDelta(t, 0.05, c.CostOf(model.SourceWebSearch), 1e-9)
	assert.InDelta(t, 0.10, c.CostOf(model.SourceLinkedInCompany), 1e-9)
	assert.Equal(t, 5*time.Second, c.DurationOf(model.SourceLinkedInCompany))
	assert.InDelta(t, 0.85, c.ReliabilityOf(model.SourceWebSearch), 1e-9)
	assert.Equal(t, 168*time.Hour, c.TTLOf(model.SourceLinkedInCompany))
}

func TestUnknownSourceFallbacks(t *testing.T) {
	c := New()
	unknown := model.SourceType("carrier_pigeon")

	assert.InDelta(t, FallbackCost, c.CostOf(unknown), 1e-9)
	assert.InDelta(t, FallbackReliability, c.ReliabilityOf(unknown), 1e-9)
	assert.Equal(t, FallbackDuration, c.DurationOf(unknown))
	assert.Equal(t, FallbackTTL, c.TTLOf(unknown))
}

func TestSourcesOrderedByTierThenCost(t *testing.T) {
	c := New()
	sources := c.Sources()
	require.Len(t, sources, 7)

	assert.Equal(t, model.SourceWebSearch, sources[0])
	assert.Equal(t, model.SourceMarketplaceDataset, sources[len(sources)-1])

	prevTier := model.Tier1
	for _, s := range sources {
		tier := c.Info(s).Tier
		assert.GreaterOrEqual(t, int(tier), int(prevTier), "source %s", s)
		prevTier = tier
	}
}

func TestRequirementsKnownDataset(t *testing.T) {
	c := New()

	req := c.Requirements(model.DatasetCompanyOverview)
	assert.True(t, req.Required)
	require.NotEmpty(t, req.Sources)
	assert.Equal(t, model.SourceWebSearch, req.Sources[0].SourceID)

	// CostPerQuality is derived at build time.
	for _, opt := range req.Sources {
		require.Greater(t, opt.Reliability, 0.0)
		assert.InDelta(t, opt.Cost/opt.Reliability, opt.CostPerQuality, 1e-9)
	}
}

func TestRequirementsUnknownDataset(t *testing.T) {
	c := New()

	req := c.Requirements(model.DatasetType("astral_projection"))
	assert.False(t, req.Required)
	assert.Empty(t, req.Sources)
}

func TestDatasetsForConsumers(t *testing.T) {
	c := New()

	assert.Equal(t, []model.DatasetType{
		model.DatasetCompanyOverview,
		model.DatasetRecentNews,
		model.DatasetDecisionMakers,
	}, c.DatasetsFor(model.ConsumerProfile))

	assert.Len(t, c.DatasetsFor(model.ConsumerCustomerIntelligence), 7)
	assert.Empty(t, c.DatasetsFor(model.ConsumerType("nobody")))
}

func TestResearchDatasets(t *testing.T) {
	c := New()

	assert.Equal(t, []model.DatasetType{
		model.DatasetCompanyOverview,
		model.DatasetRecentNews,
	}, c.ResearchDatasets("overview"))
	assert.NotEmpty(t, c.ResearchDatasets("technology"))
	assert.NotEmpty(t, c.ResearchDatasets("people"))
	assert.NotEmpty(t, c.ResearchDatasets("market"))
	assert.Empty(t, c.ResearchDatasets("astrology"))
}

func TestDefaultSources(t *testing.T) {
	c := New()

	vendorSources := c.DefaultSources(model.ConsumerVendorContext)
	assert.Equal(t, []model.SourceType{
		model.SourceWebSearch,
		model.SourceNewsScan,
		model.SourceLinkedInCompany,
	}, vendorSources)

	// The default vendor_context set prices out at $0.20.
	var total float64
	for _, s := range vendorSources {
		total += c.CostOf(s)
	}
	assert.InDelta(t, 0.20, total, 1e-9)

	assert.Len(t, c.DefaultSources(model.ConsumerCustomerIntelligence), 7)

	// Unknown consumers degrade to the cheapest pair.
	assert.Equal(t, []model.SourceType{
		model.SourceWebSearch,
		model.SourceNewsScan,
	}, c.DefaultSources(model.ConsumerType("nobody")))
}

func TestDefaultSourcesReturnsCopy(t *testing.T) {
	c := New()

	first := c.DefaultSources(model.ConsumerProfile)
	first[0] = model.SourceType("mutated")

	second := c.DefaultSources(model.ConsumerProfile)
	assert.Equal(t, model.SourceWebSearch, second[0])
}
