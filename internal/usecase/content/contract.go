package content

import (
	"context"

	domcontent "github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/seo"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
)

// Repository persists content items together with their tags.
type Repository interface {
	Get(ctx context.Context, id int64) (domcontent.Item, error)
	// Save inserts the item when its ID is zero and updates it otherwise.
	// Tag associations and usage counts change in the same transaction.
	Save(ctx context.Context, item domcontent.Item) (domcontent.Item, error)
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) (int, error)
	IncrementLikes(ctx context.Context, id int64) (int, error)
}

// TagMaintainer repairs tag bookkeeping.
type TagMaintainer interface {
	CleanupUnused(ctx context.Context) (int, error)
	RecountUsage(ctx context.Context) (int, error)
}

// SlugGenerator builds and deduplicates slugs.
type SlugGenerator interface {
	Generate(title string, opts slug.Options) string
	Unique(ctx context.Context, base string, excludeID int64) (string, error)
}

// Analyzer scores content and slugs.
type Analyzer interface {
	AnalyzeContent(body, title, metaDescription, url string) seo.Report
	AnalyzeSlug(slug string) seo.SlugReport
}

// Invalidator drops cached search results after a write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
