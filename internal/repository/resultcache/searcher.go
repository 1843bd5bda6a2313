// Package resultcache caches search, suggest, semantic and tag lookups in a
// key-value store with a TTL.
package resultcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/db"
	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/request"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
	"github.com/kailas-cloud/portal/internal/usecase/search"
)

// Compile-time check: CachedSearcher is a drop-in search.Searcher.
var _ search.Searcher = (*CachedSearcher)(nil)

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
}

// CachedSearcher caches a search.Searcher. Keys embed a generation number;
// Invalidate bumps it so every older entry becomes unreachable.
type CachedSearcher struct {
	inner      search.Searcher
	store      store
	ttl        time.Duration
	prefix     string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with labels "op" and "result" ("hit"/"miss"/"error"), passed explicitly.
func New(
	inner search.Searcher,
	s store,
	ttl time.Duration,
	prefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSearcher {
	return &CachedSearcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		prefix:     prefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns a cached page or runs the inner search.
func (c *CachedSearcher) Search(ctx context.Context, req request.Request) (result.Page, error) {
	key, ok := c.key(ctx, "search",
		req.Query(), string(req.Category()), strconv.Itoa(req.Page()), strconv.Itoa(req.PerPage()), string(req.SortBy()))

	var cached pageDTO
	if ok && c.load(ctx, "search", key, &cached) {
		return cached.toPage(), nil
	}

	page, err := c.inner.Search(ctx, req)
	if err != nil {
		return result.Page{}, fmt.Errorf("search: %w", err)
	}
	if ok {
		c.save(ctx, key, toPageDTO(page))
	}
	return page, nil
}

// Suggest returns cached suggestions or asks the inner searcher.
func (c *CachedSearcher) Suggest(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	key, ok := c.key(ctx, "suggest", strings.ToLower(prefix), strconv.Itoa(limit))

	var cached []suggestionDTO
	if ok && c.load(ctx, "suggest", key, &cached) {
		return fromSuggestionDTOs(cached), nil
	}

	out, err := c.inner.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	if ok {
		c.save(ctx, key, toSuggestionDTOs(out))
	}
	return out, nil
}

// SearchByTags returns cached items or asks the inner searcher.
func (c *CachedSearcher) SearchByTags(ctx context.Context, tags []string, limit int) ([]content.Item, error) {
	key, ok := c.key(ctx, "tags", append([]string{strconv.Itoa(limit)}, tags...)...)

	var cached []itemDTO
	if ok && c.load(ctx, "tags", key, &cached) {
		return fromItemDTOs(cached), nil
	}

	out, err := c.inner.SearchByTags(ctx, tags, limit)
	if err != nil {
		return nil, fmt.Errorf("search by tags: %w", err)
	}
	if ok {
		c.save(ctx, key, toItemDTOs(out))
	}
	return out, nil
}

// SemanticSearch returns cached weighted matches or asks the inner searcher.
func (c *CachedSearcher) SemanticSearch(ctx context.Context, query string, limit int) ([]result.Result, error) {
	key, ok := c.key(ctx, "semantic", strings.ToLower(strings.TrimSpace(query)), strconv.Itoa(limit))

	var cached []resultDTO
	if ok && c.load(ctx, "semantic", key, &cached) {
		return fromResultDTOs(cached), nil
	}

	out, err := c.inner.SemanticSearch(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}
	if ok {
		c.save(ctx, key, toResultDTOs(out))
	}
	return out, nil
}

// Invalidate makes every cached entry stale.
func (c *CachedSearcher) Invalidate(ctx context.Context) error {
	if _, err := c.store.IncrBy(ctx, c.genKey(), 1); err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	return nil
}

func (c *CachedSearcher) genKey() string {
	return c.prefix + "cache_gen"
}

// key builds the cache key. ok is false when the generation cannot be read,
// in which case the cache is bypassed.
func (c *CachedSearcher) key(ctx context.Context, op string, parts ...string) (string, bool) {
	gen := "0"
	data, err := c.store.Get(ctx, c.genKey())
	switch {
	case err == nil:
		gen = string(data)
	case !errors.Is(err, db.ErrKeyNotFound):
		c.inc(op, "error")
		c.logger.Warn("Failed to read cache generation", zap.Error(err))
		return "", false
	}

	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return c.prefix + op + ":" + gen + ":" + hex.EncodeToString(h[:]), true
}

func (c *CachedSearcher) load(ctx context.Context, op, key string, dst any) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.inc(op, "miss")
		} else {
			c.inc(op, "error")
			c.logger.Warn("Failed to get cached result", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.inc(op, "error")
		c.logger.Warn("Failed to parse cached result", zap.String("key", key), zap.Error(err))
		return false
	}
	c.inc(op, "hit")
	return true
}

func (c *CachedSearcher) save(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode result for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache result", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedSearcher) inc(op, res string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(op, res).Inc()
	}
}
