package portal

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/portal/internal/domain/search/request"
)

// Search runs a ranked full-text query over published content. An empty
// query or an unknown category returns an empty page; over-long queries are
// truncated.
func (c *Client) Search(ctx context.Context, q SearchQuery) (SearchPage, error) {
	req := request.New(q.Query, q.Category, q.Page, q.PerPage, q.SortBy)
	page, err := c.searcher.Search(ctx, req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	return page, nil
}

// Suggest returns autocomplete entries for a prefix: matching titles first,
// then matching tags. limit <= 0 uses the configured default.
func (c *Client) Suggest(ctx context.Context, prefix string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = c.suggestLimit
	}
	out, err := c.searcher.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}

// SemanticSearch ranks published items by how many of the query's salient
// keywords they contain, weighting title hits above summary and body hits.
func (c *Client) SemanticSearch(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	out, err := c.searcher.SemanticSearch(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}
	return out, nil
}

// SearchByTags returns published items carrying any of the tags.
func (c *Client) SearchByTags(ctx context.Context, tags []string, limit int) ([]Item, error) {
	out, err := c.searcher.SearchByTags(ctx, tags, limit)
	if err != nil {
		return nil, fmt.Errorf("search by tags: %w", err)
	}
	return out, nil
}

// Related recommends published content for the item with the given ID.
func (c *Client) Related(ctx context.Context, id int64, limit int, m RelatedMethod) ([]Item, error) {
	out, err := c.relatedSvc.RelatedByID(ctx, id, limit, m)
	if err != nil {
		return nil, fmt.Errorf("related: %w", err)
	}
	return out, nil
}

// Trending lists items created in the last days, most viewed first.
func (c *Client) Trending(ctx context.Context, days, limit int) ([]Item, error) {
	out, err := c.trendSvc.Trending(ctx, days, limit)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}
	return out, nil
}

// Popular lists the most viewed items of all time.
func (c *Client) Popular(ctx context.Context, limit int) ([]Item, error) {
	out, err := c.trendSvc.Popular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	return out, nil
}

// Featured lists featured items, newest first.
func (c *Client) Featured(ctx context.Context, limit int) ([]Item, error) {
	out, err := c.trendSvc.Featured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("featured: %w", err)
	}
	return out, nil
}

// CategoryStats counts published items per category.
func (c *Client) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	out, err := c.trendSvc.CategoryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return out, nil
}

// PopularTags lists the most used tags.
func (c *Client) PopularTags(ctx context.Context, limit int) ([]Tag, error) {
	out, err := c.tags.Popular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}
	return out, nil
}
