// Package collector defines the per-source collection interface and the
// registry that dispatches a source id to its implementation. Adding a
// source means registering a Collector at start-up, not editing a branch.
package collector

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// Collector fetches one source's raw payload for a company. Implementations
// must be idempotent and side-effect-free beyond the outbound call.
type Collector interface {
	// Source returns the source id this collector serves.
	Source() model.SourceType
	// Collect fetches the payload. A nil payload with a nil error means the
	// source had nothing to report.
	Collect(ctx context.Context, companyName string) (json.RawMessage, error)
}

// Registry maps source ids to collectors.
type Registry struct {
	mu         sync.RWMutex
	collectors map[model.SourceType]Collector
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[model.SourceType]Collector),
	}
}

// Register adds a collector, replacing any previous one for the source.
func (r *Registry) Register(c Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors[c.Source()] = c
}

// Get returns the collector for a source, or nil if none is registered.
func (r *Registry) Get(source model.SourceType) Collector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collectors[source]
}

// Sources returns all registered source ids.
func (r *Registry) Sources() []model.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.SourceType, 0, len(r.collectors))
	for s := range r.collectors {
		out = append(out, s)
	}
	return out
}

// Func adapts a plain function to the Collector interface.
type Func struct {
	ID model.SourceType
	Fn func(ctx context.Context, companyName string) (json.RawMessage, error)
}

func (f Func) Source() model.SourceType { return f.ID }

func (f Func) Collect(ctx context.Context, companyName string) (json.RawMessage, error) {
	return f.Fn(ctx, companyName)
}
