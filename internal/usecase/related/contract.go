package related

import (
	"context"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
)

// ContentReader fetches candidate content for recommendations.
type ContentReader interface {
	FindPublished(ctx context.Context, f filter.Filter) ([]content.Item, error)
	Get(ctx context.Context, id int64) (content.Item, error)
}

// KeywordRanker picks the most salient keywords of a text, weighted by
// corpus rarity.
type KeywordRanker interface {
	TopKeywords(text string, n int) []string
}
