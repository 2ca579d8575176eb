package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/intel-orchestrator/internal/cache"
	"github.com/sells-group/intel-orchestrator/internal/catalog"
	"github.com/sells-group/intel-orchestrator/internal/collector"
	"github.com/sells-group/intel-orchestrator/internal/model"
)

func newTestEngine() *Engine {
	return New(catalog.New(), cache.NewMemory(), collector.NewRegistry())
}

func TestScoreEmpty(t *testing.T) {
	eng := newTestEngine()
	assert.Zero(t, eng.Score(nil))
}

func TestScoreSingleSource(t *testing.T) {
	eng := newTestEngine()

	// web_search reliability is 0.85; one source gets no bonus.
	assert.InDelta(t, 85.0, eng.Score([]model.SourceType{model.SourceWebSearch}), 1e-9)
}

func TestScoreMultiSourceBonus(t *testing.T) {
	eng := newTestEngine()

	// mean(0.85, 0.80)*100 + 5 = 87.5
	score := eng.Score([]model.SourceType{model.SourceWebSearch, model.SourceNewsScan})
	assert.InDelta(t, 87.5, score, 1e-9)
}

func TestScoreCappedAt100(t *testing.T) {
	eng := newTestEngine()

	// mean(0.92, 0.90, 0.88)*100 + 5 = 95; push with a hypothetical perfect
	// set by using the most reliable sources repeatedly.
	score := eng.Score([]model.SourceType{
		model.SourceMarketplaceDataset,
		model.SourceMarketplaceDataset,
		model.SourceMarketplaceDataset,
	})
	assert.LessOrEqual(t, score, 100.0)
	assert.InDelta(t, 97.0, score, 1e-9) // 0.92*100 + 5
}

func TestQualityDimensions(t *testing.T) {
	eng := newTestEngine()

	results := []model.CollectionResult{
		{Source: model.SourceWebSearch, Success: true, Cached: true},
		{Source: model.SourceNewsScan, Success: true},
		{Source: model.SourceLinkedInCompany},
	}
	succeeded := []model.SourceType{model.SourceWebSearch, model.SourceNewsScan}

	q := eng.quality(results, succeeded)
	assert.InDelta(t, 2.0/3.0, q.Completeness, 1e-9)
	assert.InDelta(t, (0.85+0.80)/2, q.Reliability, 1e-9)
	assert.InDelta(t, (0.8+1.0)/2, q.Freshness, 1e-9)
}

func TestQualityEmptyRun(t *testing.T) {
	eng := newTestEngine()
	q := eng.quality(nil, nil)
	assert.Zero(t, q.Completeness)
	assert.Zero(t, q.Reliability)
	assert.Zero(t, q.Freshness)
}
