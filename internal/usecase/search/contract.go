package search

import (
	"context"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
	"github.com/kailas-cloud/portal/internal/textproc"
)

// ContentReader fetches candidate content for ranking.
type ContentReader interface {
	// FindPublished returns published items matching the filter. The
	// returned order is the tie-break order for stable sorting.
	FindPublished(ctx context.Context, f filter.Filter) ([]content.Item, error)
}

// TagReader looks up tags for suggestions.
type TagReader interface {
	// FindByNameContains returns up to limit tags whose name contains the
	// fragment (case-insensitive), most used first.
	FindByNameContains(ctx context.Context, fragment string, limit int) ([]content.Tag, error)
}

// KeywordExtractor turns a query into keywords.
type KeywordExtractor interface {
	ExtractKeywords(text string) []string
	// Salient returns up to n keywords with weights, heaviest first.
	Salient(text string, n int) []textproc.Weighted
}
