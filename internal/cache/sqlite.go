package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path, configures WAL mode,
// and applies the cache schema.
func NewSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS source_cache (
	id         TEXT PRIMARY KEY,
	key        TEXT NOT NULL UNIQUE,
	entry      TEXT NOT NULL,
	cached_at  DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_source_cache_expires_at ON source_cache(expires_at);
`

func (s *SQLiteStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.GetRawJSON(ctx, key)
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal entry %s", key)
	}
	return &entry, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal entry")
	}
	return s.SetRawJSON(ctx, key, data, ttl)
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM source_cache WHERE key = ?`, key)
	return eris.Wrapf(err, "sqlite: delete %s", key)
}

func (s *SQLiteStore) GetRawJSON(ctx context.Context, key string) (json.RawMessage, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT entry FROM source_cache WHERE key = ? AND expires_at > datetime('now')`,
		key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get %s", key)
	}
	return json.RawMessage(data), nil
}

// sqliteTimeFormat matches datetime('now') output so timestamp comparisons
// stay plain string comparisons.
const sqliteTimeFormat = "2006-01-02 15:04:05"

func (s *SQLiteStore) SetRawJSON(ctx context.Context, key string, data json.RawMessage, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO source_cache (id, key, entry, cached_at, expires_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET entry = excluded.entry, cached_at = excluded.cached_at, expires_at = excluded.expires_at`,
		uuid.New().String(), key, string(data), now.Format(sqliteTimeFormat), now.Add(ttl).Format(sqliteTimeFormat),
	)
	return eris.Wrapf(err, "sqlite: set %s", key)
}

// DeleteExpired removes entries past their TTL. Returns the number removed.
func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM source_cache WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired")
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
