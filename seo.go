package portal

import "context"

// AnalyzeContent scores title, meta description and Markdown body for SEO.
// Technical points are only awarded when url is set.
func (c *Client) AnalyzeContent(body, title, metaDescription, url string) SEOReport {
	return c.analyzer.AnalyzeContent(body, title, metaDescription, url)
}

// AnalyzeSlug scores a URL slug.
func (c *Client) AnalyzeSlug(slug string) SlugReport {
	return c.analyzer.AnalyzeSlug(slug)
}

// AnalyzeContentSlug scores the slug of a stored item.
func (c *Client) AnalyzeContentSlug(ctx context.Context, id int64) (SlugReport, error) {
	return c.contentSvc.AnalyzeSlug(ctx, id)
}

// DefaultSlugOptions returns the slug options the client was configured with.
func (c *Client) DefaultSlugOptions() SlugOptions {
	return c.slugOpts
}

// GenerateSlug turns a title into a URL slug. It never returns an empty or
// invalid slug.
func (c *Client) GenerateSlug(title string, opts SlugOptions) string {
	return c.slugs.Generate(title, opts)
}

// UniqueSlug returns base, or base with the smallest numeric suffix no other
// item uses. excludeID ignores the item being edited.
func (c *Client) UniqueSlug(ctx context.Context, base string, excludeID int64) (string, error) {
	return c.slugs.Unique(ctx, base, excludeID)
}

// GenerateSlugs generates one slug per title.
func (c *Client) GenerateSlugs(titles []string, opts SlugOptions) []SlugEntry {
	return c.slugs.Batch(titles, opts)
}

// SlugVariations suggests up to count alternative slugs for a title.
func (c *Client) SlugVariations(title string, count int) []SlugVariation {
	return c.slugs.Variations(title, count)
}
