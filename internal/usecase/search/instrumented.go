package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/request"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
	"github.com/kailas-cloud/portal/internal/logger"
	"github.com/kailas-cloud/portal/internal/metrics"
)

// Searcher is the read surface exposed to transports.
type Searcher interface {
	Search(ctx context.Context, req request.Request) (result.Page, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error)
	SearchByTags(ctx context.Context, tags []string, limit int) ([]content.Item, error)
	SemanticSearch(ctx context.Context, query string, limit int) ([]result.Result, error)
}

// InstrumentedSearcher records Prometheus metrics and logs around a Searcher.
type InstrumentedSearcher struct {
	inner Searcher
}

// NewInstrumentedSearcher wraps a searcher with observability.
func NewInstrumentedSearcher(inner Searcher) *InstrumentedSearcher {
	return &InstrumentedSearcher{inner: inner}
}

// Search delegates and records duration, status and match count.
func (p *InstrumentedSearcher) Search(ctx context.Context, req request.Request) (result.Page, error) {
	start := time.Now()
	page, err := p.inner.Search(ctx, req)
	p.observe(ctx, "search", start, err)
	if err == nil {
		metrics.SearchResultsTotal.Observe(float64(page.Total()))
	}
	return page, err
}

// Suggest delegates and records duration and status.
func (p *InstrumentedSearcher) Suggest(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	start := time.Now()
	out, err := p.inner.Suggest(ctx, prefix, limit)
	p.observe(ctx, "suggest", start, err)
	return out, err
}

// SearchByTags delegates and records duration and status.
func (p *InstrumentedSearcher) SearchByTags(ctx context.Context, tags []string, limit int) ([]content.Item, error) {
	start := time.Now()
	out, err := p.inner.SearchByTags(ctx, tags, limit)
	p.observe(ctx, "tags", start, err)
	return out, err
}

// SemanticSearch delegates and records duration, status and match count.
func (p *InstrumentedSearcher) SemanticSearch(ctx context.Context, query string, limit int) ([]result.Result, error) {
	start := time.Now()
	out, err := p.inner.SemanticSearch(ctx, query, limit)
	p.observe(ctx, "semantic", start, err)
	if err == nil {
		metrics.SearchResultsTotal.Observe(float64(len(out)))
	}
	return out, err
}

func (p *InstrumentedSearcher) observe(ctx context.Context, op string, start time.Time, err error) {
	duration := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
		logger.FromContext(ctx).Error("search operation failed",
			zap.String("op", op),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
	metrics.SearchRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.SearchDuration.WithLabelValues(op).Observe(duration.Seconds())
}
