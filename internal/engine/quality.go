package engine

import (
	"github.com/sells-group/intel-orchestrator/internal/model"
)

const (
	multiSourceBonus = 5
	maxQualityScore  = 100

	// Cached payloads are within TTL but not brand new; they carry a
	// discounted freshness weight in the aggregate.
	cachedFreshnessWeight = 0.8
)

// Score maps the successfully collected sources to a 0-100 quality score:
// mean catalog reliability scaled to 100, with a small bonus when more than
// one source corroborates the data.
func (e *Engine) Score(sources []model.SourceType) float64 {
	if len(sources) == 0 {
		return 0
	}

	var total float64
	for _, s := range sources {
		total += e.catalog.ReliabilityOf(s)
	}
	score := total / float64(len(sources)) * 100

	if len(sources) > 1 {
		score += multiSourceBonus
	}
	if score > maxQualityScore {
		score = maxQualityScore
	}
	return score
}

// quality computes the aggregate's quality dimensions from per-task results.
func (e *Engine) quality(results []model.CollectionResult, succeeded []model.SourceType) model.DataQuality {
	q := model.DataQuality{}
	if len(results) == 0 {
		return q
	}

	q.Completeness = float64(len(succeeded)) / float64(len(results))

	if len(succeeded) > 0 {
		var reliability, freshness float64
		for _, r := range results {
			if !r.Success {
				continue
			}
			reliability += e.catalog.ReliabilityOf(r.Source)
			if r.Cached {
				freshness += cachedFreshnessWeight
			} else {
				freshness += 1
			}
		}
		q.Reliability = reliability / float64(len(succeeded))
		q.Freshness = freshness / float64(len(succeeded))
	}

	return q
}
