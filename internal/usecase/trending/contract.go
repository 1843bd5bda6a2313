package trending

import (
	"context"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
)

// ContentReader fetches published content.
type ContentReader interface {
	FindPublished(ctx context.Context, f filter.Filter) ([]content.Item, error)
}
