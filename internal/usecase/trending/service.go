package trending

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
)

// Listing defaults.
const (
	DefaultDays  = 7
	DefaultLimit = 10
	MaxLimit     = 100
)

// CategoryStat aggregates published content of one category.
type CategoryStat struct {
	Category content.Category
	Count    int
	AvgViews float64 // one decimal
}

// Service lists trending, popular and featured content and category stats.
type Service struct {
	content ContentReader
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a trending service.
func New(reader ContentReader, opts ...Option) *Service {
	s := &Service{content: reader, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Trending returns published items created within the last days, most viewed
// first, then newest.
func (s *Service) Trending(ctx context.Context, days, limit int) ([]content.Item, error) {
	if days <= 0 {
		days = DefaultDays
	}
	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	items, err := s.published(ctx, filter.New(filter.CreatedSince(since)))
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	sortByViews(items)
	return head(items, normalizeLimit(limit)), nil
}

// Popular returns the most viewed published items of all time.
func (s *Service) Popular(ctx context.Context, limit int) ([]content.Item, error) {
	items, err := s.published(ctx, filter.New())
	if err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	sortByViews(items)
	return head(items, normalizeLimit(limit)), nil
}

// Featured returns featured published items, newest first.
func (s *Service) Featured(ctx context.Context, limit int) ([]content.Item, error) {
	items, err := s.published(ctx, filter.New(filter.FeaturedOnly()))
	if err != nil {
		return nil, fmt.Errorf("featured: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})
	return head(items, normalizeLimit(limit)), nil
}

// CategoryStats groups published items by category, largest group first.
func (s *Service) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	items, err := s.published(ctx, filter.New())
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}

	counts := make(map[content.Category]int)
	views := make(map[content.Category]int)
	for _, it := range items {
		counts[it.Category()]++
		views[it.Category()] += it.ViewCount()
	}

	stats := make([]CategoryStat, 0, len(counts))
	for cat, n := range counts {
		stats = append(stats, CategoryStat{
			Category: cat,
			Count:    n,
			AvgViews: math.Round(float64(views[cat])/float64(n)*10) / 10,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}

func (s *Service) published(ctx context.Context, f filter.Filter) ([]content.Item, error) {
	items, err := s.content.FindPublished(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find published: %w", err)
	}
	out := make([]content.Item, 0, len(items))
	for _, it := range items {
		if it.Published() && f.Matches(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func sortByViews(items []content.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ViewCount() != items[j].ViewCount() {
			return items[i].ViewCount() > items[j].ViewCount()
		}
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

func head(items []content.Item, n int) []content.Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}
