package chi

import (
	"context"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/related/method"
	"github.com/kailas-cloud/portal/internal/domain/seo"
	contentuc "github.com/kailas-cloud/portal/internal/usecase/content"
	healthuc "github.com/kailas-cloud/portal/internal/usecase/health"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
	trendinguc "github.com/kailas-cloud/portal/internal/usecase/trending"
)

// Recommender finds content related to a stored item.
type Recommender interface {
	RelatedByID(ctx context.Context, id int64, limit int, m method.Method) ([]content.Item, error)
}

// TrendReader lists trending, popular and featured content.
type TrendReader interface {
	Trending(ctx context.Context, days, limit int) ([]content.Item, error)
	Popular(ctx context.Context, limit int) ([]content.Item, error)
	Featured(ctx context.Context, limit int) ([]content.Item, error)
	CategoryStats(ctx context.Context) ([]trendinguc.CategoryStat, error)
}

// ContentService handles content writes and counters.
type ContentService interface {
	Save(ctx context.Context, d contentuc.Draft) (contentuc.Saved, error)
	Get(ctx context.Context, id int64) (content.Item, error)
	Delete(ctx context.Context, id int64) error
	RecordView(ctx context.Context, id int64) (int, error)
	RecordLike(ctx context.Context, id int64) (int, error)
	AnalyzeSlug(ctx context.Context, id int64) (seo.SlugReport, error)
}

// Analyzer scores arbitrary content and slugs.
type Analyzer interface {
	AnalyzeContent(body, title, metaDescription, url string) seo.Report
	AnalyzeSlug(slug string) seo.SlugReport
}

// SlugMaker generates slugs from titles.
type SlugMaker interface {
	Generate(title string, opts slug.Options) string
	Batch(titles []string, opts slug.Options) []slug.Entry
	Variations(title string, count int) []slug.Variation
}

// TagLister lists the most used tags.
type TagLister interface {
	Popular(ctx context.Context, limit int) ([]content.Tag, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
