package portal

import (
	"context"
)

// SaveContent creates (ID zero) or updates an item. A missing slug is
// generated from the title and a missing summary is taken from the body.
func (c *Client) SaveContent(ctx context.Context, d Draft) (Saved, error) {
	return c.contentSvc.Save(ctx, d)
}

// GetContent returns an item whether or not it is published.
func (c *Client) GetContent(ctx context.Context, id int64) (Item, error) {
	return c.contentSvc.Get(ctx, id)
}

// DeleteContent removes an item and releases its tags.
func (c *Client) DeleteContent(ctx context.Context, id int64) error {
	return c.contentSvc.Delete(ctx, id)
}

// RecordView increments the view counter and returns the new value.
func (c *Client) RecordView(ctx context.Context, id int64) (int, error) {
	return c.contentSvc.RecordView(ctx, id)
}

// RecordLike increments the like counter and returns the new value.
func (c *Client) RecordLike(ctx context.Context, id int64) (int, error) {
	return c.contentSvc.RecordLike(ctx, id)
}

// CleanupUnusedTags deletes tags no item references and returns how many went.
func (c *Client) CleanupUnusedTags(ctx context.Context) (int, error) {
	return c.contentSvc.CleanupUnusedTags(ctx)
}

// RecountTagUsage recomputes tag usage counts and returns how many changed.
func (c *Client) RecountTagUsage(ctx context.Context) (int, error) {
	return c.contentSvc.RecountTagUsage(ctx)
}
