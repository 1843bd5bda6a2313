package portal

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	dbPath string

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration
	cachePrefix   string
	cacheTimeout  time.Duration

	japanese       bool
	extraStopWords []string
	hanSegmenter   func(string) []string

	slugMaxLength int
	slugPinyin    bool
	suggestLimit  int

	logger *zap.Logger
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		dbPath:        "data/portal.db",
		cacheTTL:      time.Minute,
		cachePrefix:   "portal:",
		cacheTimeout:  defaultReadinessTimeout,
		slugMaxLength: 60,
		slugPinyin:    true,
		suggestLimit:  5,
		logger:        zap.NewNop(),
	}
}

// WithDatabase sets the SQLite database file. The directory is created on open.
func WithDatabase(path string) Option {
	return func(c *clientConfig) {
		c.dbPath = path
	}
}

// WithRedisCache enables the search result cache on a Redis server.
func WithRedisCache(addrs []string, password string, ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithCacheKeyPrefix namespaces cache keys so several portals can share a server.
func WithCacheKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.cachePrefix = prefix
	}
}

// WithCacheReadinessTimeout bounds the wait for the cache server on New.
func WithCacheReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheTimeout = d
	}
}

// WithJapanese enables morphological segmentation of Japanese text.
func WithJapanese(enabled bool) Option {
	return func(c *clientConfig) {
		c.japanese = enabled
	}
}

// WithExtraStopWords adds words that keyword extraction ignores.
func WithExtraStopWords(words ...string) Option {
	return func(c *clientConfig) {
		c.extraStopWords = append(c.extraStopWords, words...)
	}
}

// WithHanSegmenter replaces the dictionary segmenter used for Chinese text.
func WithHanSegmenter(fn func(text string) []string) Option {
	return func(c *clientConfig) {
		c.hanSegmenter = fn
	}
}

// WithSlugDefaults sets the maximum length and pinyin transliteration of
// generated slugs.
func WithSlugDefaults(maxLength int, usePinyin bool) Option {
	return func(c *clientConfig) {
		c.slugMaxLength = maxLength
		c.slugPinyin = usePinyin
	}
}

// WithSuggestLimit sets the default number of autocomplete suggestions.
func WithSuggestLimit(n int) Option {
	return func(c *clientConfig) {
		c.suggestLimit = n
	}
}

// WithLogger sets the logger used for background warnings such as cache failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
