package search

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
	"github.com/kailas-cloud/portal/internal/domain/search/request"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
	"github.com/kailas-cloud/portal/internal/domain/search/sortby"
	"github.com/kailas-cloud/portal/internal/logger"
)

// Suggestion limits.
const (
	MinSuggestPrefix    = 2
	DefaultSuggestLimit = 5
)

// Service ranks published content for keyword queries.
type Service struct {
	content      ContentReader
	tags         TagReader
	keywords     KeywordExtractor
	scorer       Scorer
	hl           highlighter
	suggestLimit int
}

// Option configures a Service.
type Option func(*Service)

// WithScorer replaces the default relevance weights.
func WithScorer(sc Scorer) Option {
	return func(s *Service) { s.scorer = sc }
}

// WithTagReader enables tag-name suggestions.
func WithTagReader(tags TagReader) Option {
	return func(s *Service) { s.tags = tags }
}

// WithSuggestLimit sets the default number of suggestions.
func WithSuggestLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestLimit = n
		}
	}
}

// New creates a search service.
func New(reader ContentReader, keywords KeywordExtractor, opts ...Option) *Service {
	s := &Service{
		content:      reader,
		keywords:     keywords,
		scorer:       NewScorer(DefaultWeights()),
		hl:           newHighlighter(),
		suggestLimit: DefaultSuggestLimit,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search scores every published candidate, sorts, then paginates.
// An empty query, one without keywords, or an unknown category yields an
// empty page.
func (s *Service) Search(ctx context.Context, req request.Request) (result.Page, error) {
	if req.Query() == "" || req.MatchesNothing() {
		return result.Empty(req.Page(), req.PerPage()), nil
	}
	keywords := s.keywords.ExtractKeywords(req.Query())
	if len(keywords) == 0 {
		return result.Empty(req.Page(), req.PerPage()), nil
	}

	f := filter.New(
		filter.InCategory(req.Category()),
		filter.MatchingAny(filter.TextFields, keywords...),
	)
	items, err := s.content.FindPublished(ctx, f)
	if err != nil {
		return result.Page{}, fmt.Errorf("find published: %w", err)
	}

	type scored struct {
		item  content.Item
		score float64
	}
	candidates := make([]scored, 0, len(items))
	for _, item := range items {
		if !item.Published() || !f.Matches(item) {
			continue
		}
		candidates = append(candidates, scored{item: item, score: s.scorer.Score(item, keywords, req.Query())})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		switch req.SortBy() {
		case sortby.Date:
			return a.item.CreatedAt().After(b.item.CreatedAt())
		case sortby.Views:
			return a.item.ViewCount() > b.item.ViewCount()
		case sortby.Likes:
			return a.item.LikeCount() > b.item.LikeCount()
		default:
			return a.score > b.score
		}
	})

	total := len(candidates)
	start := min(req.Offset(), total)
	end := min(start+req.PerPage(), total)

	results := make([]result.Result, 0, end-start)
	for _, c := range candidates[start:end] {
		results = append(results, result.New(c.item, c.score, s.highlight(c.item, keywords)))
	}

	logger.FromContext(ctx).Debug("search ranked",
		zap.Int("keywords", len(keywords)),
		zap.Int("candidates", len(items)),
		zap.Int("matched", total),
		zap.String("sort", string(req.SortBy())),
	)

	return result.NewPage(results, total, req.Page(), req.PerPage(), keywords), nil
}

func (s *Service) highlight(item content.Item, keywords []string) map[string]string {
	h := map[string]string{result.HighlightTitle: s.hl.mark(item.Title(), keywords)}
	if item.Summary() != "" {
		h[result.HighlightSummary] = s.hl.mark(item.Summary(), keywords)
	}
	if item.Body() != "" {
		h[result.HighlightSnippet] = s.hl.snippet(item.Body(), keywords)
	}
	return h
}

// Suggest returns published titles containing prefix (most viewed first),
// then tag names containing it (most used first), up to limit.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < MinSuggestPrefix {
		return []result.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = s.suggestLimit
	}

	f := filter.New(filter.MatchingAny([]filter.Field{filter.Title}, prefix))
	items, err := s.content.FindPublished(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find titles: %w", err)
	}
	titles := make([]content.Item, 0, len(items))
	for _, item := range items {
		if item.Published() && f.Matches(item) {
			titles = append(titles, item)
		}
	}
	sort.SliceStable(titles, func(i, j int) bool {
		return titles[i].ViewCount() > titles[j].ViewCount()
	})

	out := make([]result.Suggestion, 0, limit)
	for _, item := range titles {
		if len(out) == limit {
			return out, nil
		}
		out = append(out, result.Suggestion{Text: item.Title(), Type: result.SuggestTitle, URL: item.URL()})
	}

	if s.tags == nil || len(out) >= limit {
		return out, nil
	}
	tags, err := s.tags.FindByNameContains(ctx, prefix, limit-len(out))
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].UsageCount() > tags[j].UsageCount()
	})
	for _, t := range tags {
		if len(out) == limit {
			break
		}
		out = append(out, result.Suggestion{
			Text: t.Name(),
			Type: result.SuggestTag,
			URL:  "/search?tag=" + url.QueryEscape(t.Name()),
		})
	}
	return out, nil
}

// SearchByTags returns published items carrying any of the tags, most
// matched tags first, then newest.
func (s *Service) SearchByTags(ctx context.Context, tags []string, limit int) ([]content.Item, error) {
	tags = content.NormalizeTags(tags)
	if len(tags) == 0 || limit <= 0 {
		return []content.Item{}, nil
	}

	f := filter.New(filter.WithAnyTag(tags...))
	items, err := s.content.FindPublished(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find by tags: %w", err)
	}

	wanted := content.Reconstruct(content.Snapshot{Tags: tags})
	matched := make([]content.Item, 0, len(items))
	for _, item := range items {
		if item.Published() && f.Matches(item) {
			matched = append(matched, item)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ni, nj := wanted.SharedTags(matched[i]), wanted.SharedTags(matched[j])
		if ni != nj {
			return ni > nj
		}
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
