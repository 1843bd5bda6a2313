package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
	"github.com/kailas-cloud/portal/internal/logger"
	"github.com/kailas-cloud/portal/internal/textproc"
)

// Semantic search field factors, applied to each keyword's weight.
const (
	SemanticTitleFactor   = 0.5
	SemanticSummaryFactor = 0.3
	SemanticBodyFactor    = 0.2
)

// Semantic search limits.
const (
	SemanticKeywords     = 10 // weighted query keywords considered
	DefaultSemanticLimit = 10
	MaxSemanticLimit     = 50
)

// SemanticSearch ranks published items by the salience weights of the query
// keywords they contain. Each item appears once, with its best score.
func (s *Service) SemanticSearch(ctx context.Context, query string, limit int) ([]result.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []result.Result{}, nil
	}
	if limit <= 0 {
		limit = DefaultSemanticLimit
	}
	limit = min(limit, MaxSemanticLimit)

	weighted := s.keywords.Salient(query, SemanticKeywords)
	if len(weighted) == 0 {
		return []result.Result{}, nil
	}
	words := make([]string, len(weighted))
	for i, w := range weighted {
		words[i] = w.Word
	}

	f := filter.New(filter.MatchingAny(filter.TextFields, words...))
	items, err := s.content.FindPublished(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find published: %w", err)
	}

	pos := make(map[int64]int, len(items))
	ranked := make([]result.Result, 0, len(items))
	for _, item := range items {
		if !item.Published() || !f.Matches(item) {
			continue
		}
		r := result.New(item, semanticScore(item, weighted), nil)
		if i, seen := pos[item.ID()]; seen {
			if r.Score() > ranked[i].Score() {
				ranked[i] = r
			}
			continue
		}
		pos[item.ID()] = len(ranked)
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i, r := range ranked {
		ranked[i] = result.New(r.Item(), r.Score(), s.highlight(r.Item(), words))
	}

	logger.FromContext(ctx).Debug("semantic search ranked",
		zap.Int("keywords", len(weighted)),
		zap.Int("candidates", len(items)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}

// semanticScore sums keyword weights scaled by the field they appear in,
// rounded to three decimals.
func semanticScore(item content.Item, keywords []textproc.Weighted) float64 {
	title := strings.ToLower(item.Title())
	summary := strings.ToLower(item.Summary())
	body := strings.ToLower(item.Body())

	var score float64
	for _, k := range keywords {
		if strings.Contains(title, k.Word) {
			score += k.Weight * SemanticTitleFactor
		}
		if summary != "" && strings.Contains(summary, k.Word) {
			score += k.Weight * SemanticSummaryFactor
		}
		if body != "" && strings.Contains(body, k.Word) {
			score += k.Weight * SemanticBodyFactor
		}
	}
	return math.Round(score*1000) / 1000
}
