// Package cache provides the source-keyed TTL cache the collection engine
// reads before spending on paid API calls. Keys are opaque strings produced
// only by Key(); entries persist across requests and across orchestrator
// instances, so stale or duplicate writes to the same key are acceptable.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/intel-orchestrator/internal/model"
)

// Entry is one cached source payload.
type Entry struct {
	Data        json.RawMessage  `json:"data"`
	Timestamp   time.Time        `json:"timestamp"`
	Source      model.SourceType `json:"source"`
	CompanyName string           `json:"company_name"`
}

// ErrNotFound is returned by Get when no entry exists for a key.
var ErrNotFound = eris.New("cache: entry not found")

// Store is the persistence contract. Implementations must be safe under
// concurrent access from multiple processes; no caller-side locking is
// assumed. The raw-JSON variants bypass the Entry wrapper for payloads that
// must round-trip byte-exact.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	GetRawJSON(ctx context.Context, key string) (json.RawMessage, error)
	SetRawJSON(ctx context.Context, key string, data json.RawMessage, ttl time.Duration) error

	// Ping verifies the backend is reachable; used by health checks.
	Ping(ctx context.Context) error

	Close() error
}
