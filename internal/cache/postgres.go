package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the cache uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool, for deployments where
// multiple orchestrator instances share one cache.
type PostgresStore struct {
	pool Pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS source_cache (
	id         UUID PRIMARY KEY,
	key        TEXT NOT NULL UNIQUE,
	entry      JSONB NOT NULL,
	cached_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_source_cache_expires_at ON source_cache(expires_at);
`

// NewPostgres creates a PostgresStore with a connection pool and applies the
// cache schema.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	s := &PostgresStore{pool: pool}
	if _, err := pool.Exec(ctx, postgresMigration); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}
	return s, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.GetRawJSON(ctx, key)
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal entry %s", key)
	}
	return &entry, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal entry")
	}
	return s.SetRawJSON(ctx, key, data, ttl)
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM source_cache WHERE key = $1`, key)
	return eris.Wrapf(err, "postgres: delete %s", key)
}

func (s *PostgresStore) GetRawJSON(ctx context.Context, key string) (json.RawMessage, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT entry FROM source_cache WHERE key = $1 AND expires_at > now()`,
		key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get %s", key)
	}
	return json.RawMessage(data), nil
}

func (s *PostgresStore) SetRawJSON(ctx context.Context, key string, data json.RawMessage, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO source_cache (id, key, entry, cached_at, expires_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (key) DO UPDATE SET entry = EXCLUDED.entry, cached_at = EXCLUDED.cached_at, expires_at = EXCLUDED.expires_at`,
		uuid.New(), key, []byte(data), now, now.Add(ttl),
	)
	return eris.Wrapf(err, "postgres: set %s", key)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
