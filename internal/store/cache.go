package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// PageCache caches fetched page excerpts in sqlite so re-runs and the enrich
// pass do not hammer the same sites. Entries expire after a TTL; every
// failure degrades to a cache miss.
type PageCache struct {
	db *sql.DB
}

// NewPageCache opens (or creates) the cache database at the given path and
// configures WAL mode.
func NewPageCache(dsn string) (*PageCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "pagecache: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "pagecache: exec %s", pragma)
		}
	}
	c := &PageCache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS page_cache (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL UNIQUE,
	excerpt    TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_page_cache_expires_at ON page_cache(expires_at);
`

func (c *PageCache) migrate() error {
	_, err := c.db.Exec(cacheMigration)
	return eris.Wrap(err, "pagecache: migrate")
}

// Get returns the cached excerpt for a URL, or ok=false on miss or expiry.
func (c *PageCache) Get(ctx context.Context, url string) (string, bool) {
	var excerpt string
	err := c.db.QueryRowContext(ctx,
		`SELECT excerpt FROM page_cache WHERE url = ? AND expires_at > datetime('now')`,
		url,
	).Scan(&excerpt)
	if err != nil {
		return "", false
	}
	return excerpt, true
}

// Put stores an excerpt for a URL, replacing any prior entry.
func (c *PageCache) Put(ctx context.Context, url, excerpt string, ttl time.Duration) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO page_cache (id, url, excerpt, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
		   excerpt = excluded.excerpt,
		   fetched_at = excluded.fetched_at,
		   expires_at = excluded.expires_at`,
		uuid.NewString(), url, excerpt, time.Now().UTC(), time.Now().UTC().Add(ttl),
	)
	return eris.Wrapf(err, "pagecache: put %s", url)
}

// DeleteExpired removes stale entries and reports how many were dropped.
func (c *PageCache) DeleteExpired(ctx context.Context) (int, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM page_cache WHERE expires_at <= datetime('now')`)
	if err != nil {
		return 0, eris.Wrap(err, "pagecache: delete expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "pagecache: rows affected")
	}
	return int(n), nil
}

// Close closes the underlying database.
func (c *PageCache) Close() error {
	return c.db.Close()
}
