// internal/dict/cache.go
//
// Read-through SQLite cache around another dictionary client. Definitive
// answers (found or not found) are cached; unavailability is never cached,
// so a flaky upstream can be retried. Cache writes are best-effort: a
// failed write logs a warning and the live result is still returned.
package dict

import (
	"context"
	"database/sql"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Cache decorates a Client with a persistent lookup cache.
type Cache struct {
	inner Client
	db    *sql.DB

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache wraps inner with the dictionary_cache table in db.
func NewCache(inner Client, db *sql.DB) *Cache {
	return &Cache{inner: inner, db: db}
}

func (c *Cache) Name() string { return c.inner.Name() + "+cache" }

// Lookup serves from the cache when possible, otherwise asks the inner
// client and stores its answer.
func (c *Cache) Lookup(ctx context.Context, word string) (Result, error) {
	word = strings.TrimSpace(word)

	var found int
	var pos, definition string
	err := c.db.QueryRowContext(ctx,
		`SELECT found, pos, definition FROM dictionary_cache WHERE word=?`,
		word,
	).Scan(&found, &pos, &definition)
	switch {
	case err == nil:
		c.hits.Add(1)
		return Result{Exists: found == 1, POS: pos, Definition: definition}, nil
	case err != sql.ErrNoRows:
		// A broken cache must not take lookups down with it.
		log.Warn().Err(err).Str("word", word).Msg("dictionary cache read failed")
	}

	c.misses.Add(1)
	res, err := c.inner.Lookup(ctx, word)
	if err != nil {
		return Result{}, err
	}

	found = 0
	if res.Exists {
		found = 1
	}
	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO dictionary_cache (word, found, pos, definition) VALUES (?, ?, ?, ?)`,
		word, found, res.POS, res.Definition,
	); err != nil {
		log.Warn().Err(err).Str("word", word).Msg("dictionary cache write failed")
	}
	return res, nil
}

// Stats returns how many lookups were served from cache vs. passed through.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
