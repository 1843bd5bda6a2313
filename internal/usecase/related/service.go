package related

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/domain"
	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/related/method"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
	"github.com/kailas-cloud/portal/internal/logger"
)

// Recommendation limits.
const (
	DefaultLimit = 5
	MaxLimit     = 50
	// KeywordSeeds is how many top keywords of the source item drive keyword mode.
	KeywordSeeds = 5
)

// Service recommends published content related to a source item.
type Service struct {
	content  ContentReader
	keywords KeywordRanker
}

// New creates a related-content service.
func New(reader ContentReader, keywords KeywordRanker) *Service {
	return &Service{content: reader, keywords: keywords}
}

// RelatedByID loads a published item and recommends content for it.
// Drafts are reported as not found.
func (s *Service) RelatedByID(ctx context.Context, id int64, limit int, m method.Method) ([]content.Item, error) {
	item, err := s.content.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content %d: %w", id, err)
	}
	if !item.Published() {
		return nil, fmt.Errorf("content %d: %w", id, domain.ErrNotFound)
	}
	return s.Related(ctx, item, limit, m)
}

// Related returns up to limit published items related to item, never item itself.
func (s *Service) Related(ctx context.Context, item content.Item, limit int, m method.Method) ([]content.Item, error) {
	m = m.OrDefault()
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: unknown related method %q", domain.ErrInvalidArgument, m)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	switch m {
	case method.Tags:
		return s.byTags(ctx, item, limit)
	case method.Category:
		return s.byCategory(ctx, item, limit)
	case method.Keywords:
		return s.byKeywords(ctx, item, limit)
	default:
		return s.mixed(ctx, item, limit)
	}
}

// byTags ranks items by number of shared tags, then newest first.
func (s *Service) byTags(ctx context.Context, item content.Item, limit int) ([]content.Item, error) {
	if len(item.Tags()) == 0 {
		return []content.Item{}, nil
	}
	f := filter.New(filter.WithAnyTag(item.Tags()...), filter.Excluding(item.ID()))
	candidates, err := s.candidates(ctx, item, f)
	if err != nil {
		return nil, fmt.Errorf("related by tags: %w", err)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ni, nj := item.SharedTags(candidates[i]), item.SharedTags(candidates[j])
		if ni != nj {
			return ni > nj
		}
		return candidates[i].CreatedAt().After(candidates[j].CreatedAt())
	})
	return head(candidates, limit), nil
}

// byCategory ranks same-category items by views, then newest first.
func (s *Service) byCategory(ctx context.Context, item content.Item, limit int) ([]content.Item, error) {
	if item.Category() == "" {
		return []content.Item{}, nil
	}
	f := filter.New(filter.InCategory(item.Category()), filter.Excluding(item.ID()))
	candidates, err := s.candidates(ctx, item, f)
	if err != nil {
		return nil, fmt.Errorf("related by category: %w", err)
	}
	sortByPopularity(candidates)
	return head(candidates, limit), nil
}

// byKeywords matches the source's TF-IDF keywords against other titles and
// bodies, ranked by views, then newest first.
func (s *Service) byKeywords(ctx context.Context, item content.Item, limit int) ([]content.Item, error) {
	if item.Body() == "" {
		return []content.Item{}, nil
	}
	keywords := s.keywords.TopKeywords(item.Title()+" "+item.Body(), KeywordSeeds)
	if len(keywords) == 0 {
		return []content.Item{}, nil
	}
	f := filter.New(
		filter.MatchingAny([]filter.Field{filter.Title, filter.Body}, keywords...),
		filter.Excluding(item.ID()),
	)
	candidates, err := s.candidates(ctx, item, f)
	if err != nil {
		return nil, fmt.Errorf("related by keywords: %w", err)
	}
	sortByPopularity(candidates)
	return head(candidates, limit), nil
}

// mixed blends all three signals additively.
func (s *Service) mixed(ctx context.Context, item content.Item, limit int) ([]content.Item, error) {
	tagged, err := s.byTags(ctx, item, limit*2)
	if err != nil {
		return nil, err
	}
	sameCategory, err := s.byCategory(ctx, item, limit)
	if err != nil {
		return nil, err
	}
	byKeyword, err := s.byKeywords(ctx, item, limit)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("related candidates",
		zap.Int64("source_id", item.ID()),
		zap.Int("tags", len(tagged)),
		zap.Int("category", len(sameCategory)),
		zap.Int("keywords", len(byKeyword)),
	)

	return blend(limit,
		signal{items: tagged, weight: TagSignalWeight},
		signal{items: sameCategory, weight: CategorySignalWeight},
		signal{items: byKeyword, weight: KeywordSignalWeight},
	), nil
}

// candidates fetches and re-checks publication, self-exclusion and the filter.
func (s *Service) candidates(ctx context.Context, source content.Item, f filter.Filter) ([]content.Item, error) {
	items, err := s.content.FindPublished(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find published: %w", err)
	}
	out := make([]content.Item, 0, len(items))
	for _, it := range items {
		if !it.Published() || isSelf(source, it) || !f.Matches(it) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func isSelf(source, other content.Item) bool {
	if source.ID() != 0 {
		return source.ID() == other.ID()
	}
	return source.Slug() != "" && source.Slug() == other.Slug()
}

func sortByPopularity(items []content.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ViewCount() != items[j].ViewCount() {
			return items[i].ViewCount() > items[j].ViewCount()
		}
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})
}

func head(items []content.Item, n int) []content.Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}
