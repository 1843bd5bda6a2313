// Package portal is the search and relevance core of a personal portal:
// keyword extraction, full-text search, related content, trending lists,
// SEO analysis and slug generation over a SQLite content store.
package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/db"
	dbRedis "github.com/kailas-cloud/portal/internal/db/redis"
	"github.com/kailas-cloud/portal/internal/db/sqlite"
	"github.com/kailas-cloud/portal/internal/metrics"
	contentrepo "github.com/kailas-cloud/portal/internal/repository/content"
	"github.com/kailas-cloud/portal/internal/repository/resultcache"
	tagrepo "github.com/kailas-cloud/portal/internal/repository/tag"
	"github.com/kailas-cloud/portal/internal/textproc"
	chiTransport "github.com/kailas-cloud/portal/internal/transport/chi"
	contentuc "github.com/kailas-cloud/portal/internal/usecase/content"
	healthuc "github.com/kailas-cloud/portal/internal/usecase/health"
	relateduc "github.com/kailas-cloud/portal/internal/usecase/related"
	searchuc "github.com/kailas-cloud/portal/internal/usecase/search"
	seouc "github.com/kailas-cloud/portal/internal/usecase/seo"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
	trendinguc "github.com/kailas-cloud/portal/internal/usecase/trending"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the portal entry point. It is safe for concurrent use.
type Client struct {
	store  *sqlite.Store
	cache  db.Store
	logger *zap.Logger

	tags       *tagrepo.Repo
	searcher   searchuc.Searcher
	relatedSvc *relateduc.Service
	trendSvc   *trendinguc.Service
	contentSvc *contentuc.Service
	analyzer   *seouc.Analyzer
	slugs      *slug.Generator
	healthSvc  *healthuc.Service

	slugOpts     slug.Options
	suggestLimit int
}

// New opens the content database, loads the segmentation dictionaries and,
// when configured, connects the result cache.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	if cfg.dbPath == "" {
		return nil, errors.New("portal: database path required")
	}

	tokenizer, err := newTokenizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("portal: tokenizer: %w", err)
	}

	store, err := sqlite.Open(cfg.dbPath)
	if err != nil {
		return nil, fmt.Errorf("portal: open database: %w", err)
	}

	var cache db.Store
	if len(cfg.cacheAddrs) > 0 {
		cache, err = openCache(ctx, cfg)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	return wireClient(store, cache, tokenizer, cfg), nil
}

func newTokenizer(cfg *clientConfig) (*textproc.Tokenizer, error) {
	topts := []textproc.Option{
		textproc.WithJapanese(cfg.japanese),
		textproc.WithExtraStopWords(cfg.extraStopWords...),
	}
	if cfg.hanSegmenter != nil {
		topts = append(topts, textproc.WithHanSegmenter(textproc.SegmenterFunc(cfg.hanSegmenter)))
	}
	t, err := textproc.New(topts...)
	if err != nil {
		return nil, fmt.Errorf("new tokenizer: %w", err)
	}
	return t, nil
}

func openCache(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.cacheAddrs,
		Password: cfg.cachePassword,
	})
	if err != nil {
		return nil, fmt.Errorf("portal: create redis store: %w", err)
	}
	if err := s.WaitForReady(ctx, cfg.cacheTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("portal: cache not ready: %w", err)
	}
	return s, nil
}

func wireClient(store *sqlite.Store, cache db.Store, tokenizer *textproc.Tokenizer, cfg *clientConfig) *Client {
	metrics.RegisterSearchMetrics()

	contents := contentrepo.New(store)
	tags := tagrepo.New(store)

	var searcher searchuc.Searcher = searchuc.New(contents, tokenizer,
		searchuc.WithTagReader(tags),
		searchuc.WithSuggestLimit(cfg.suggestLimit),
	)
	var invalidator contentuc.Invalidator
	var cachePinger healthuc.Pinger
	if cache != nil {
		cached := resultcache.New(searcher, cache, cfg.cacheTTL, cfg.cachePrefix, metrics.CacheTotal, cfg.logger)
		searcher = cached
		invalidator = cached
		cachePinger = cache
	}
	searcher = searchuc.NewInstrumentedSearcher(searcher)

	analyzer := seouc.New(tokenizer)
	slugs := slug.New(slug.WithChecker(contents))
	slugOpts := slug.Options{MaxLength: cfg.slugMaxLength, UsePinyin: cfg.slugPinyin}

	contentOpts := []contentuc.Option{contentuc.WithSlugOptions(slugOpts)}
	if invalidator != nil {
		contentOpts = append(contentOpts, contentuc.WithInvalidator(invalidator))
	}

	return &Client{
		store:        store,
		cache:        cache,
		logger:       cfg.logger,
		tags:         tags,
		searcher:     searcher,
		relatedSvc:   relateduc.New(contents, tokenizer),
		trendSvc:     trendinguc.New(contents),
		contentSvc:   contentuc.New(contents, tags, slugs, analyzer, contentOpts...),
		analyzer:     analyzer,
		slugs:        slugs,
		healthSvc:    healthuc.New(store, cachePinger),
		slugOpts:     slugOpts,
		suggestLimit: cfg.suggestLimit,
	}
}

// Close releases the database and cache connections.
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			c.logger.Warn("close database", zap.Error(err))
		}
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health reports per-component availability.
func (c *Client) Health(ctx context.Context) HealthReport {
	return c.healthSvc.Check(ctx)
}

// HandlerLimits are the HTTP listing defaults.
type HandlerLimits struct {
	DefaultPerPage int
	MaxPerPage     int
	RelatedLimit   int
	TrendingDays   int
	TrendingLimit  int
}

// Handler returns the HTTP API with per-route Prometheus metrics.
// Callers add recovery and request logging around it.
func (c *Client) Handler(logger *zap.Logger, limits HandlerLimits) http.Handler {
	l := chiTransport.DefaultLimits()
	l.SuggestLimit = c.suggestLimit
	l.Slug = c.slugOpts
	if limits.DefaultPerPage > 0 {
		l.DefaultPerPage = limits.DefaultPerPage
	}
	if limits.MaxPerPage > 0 {
		l.MaxPerPage = limits.MaxPerPage
	}
	if limits.RelatedLimit > 0 {
		l.RelatedLimit = limits.RelatedLimit
	}
	if limits.TrendingDays > 0 {
		l.TrendingDays = limits.TrendingDays
	}
	if limits.TrendingLimit > 0 {
		l.TrendingLimit = limits.TrendingLimit
	}

	server := chiTransport.NewServer(
		c.searcher, c.relatedSvc, c.trendSvc, c.contentSvc, c.analyzer, c.slugs, c.healthSvc, logger,
		chiTransport.WithLimits(l), chiTransport.WithTags(c.tags),
	)
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	server.Register(r)
	return r
}
