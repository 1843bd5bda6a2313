package portal

import (
	"github.com/kailas-cloud/portal/internal/domain"
	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/related/method"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
	"github.com/kailas-cloud/portal/internal/domain/search/sortby"
	"github.com/kailas-cloud/portal/internal/domain/seo"
	contentuc "github.com/kailas-cloud/portal/internal/usecase/content"
	healthuc "github.com/kailas-cloud/portal/internal/usecase/health"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
	trendinguc "github.com/kailas-cloud/portal/internal/usecase/trending"
)

// Errors returned by Client operations; match them with errors.Is.
var (
	ErrNotFound        = domain.ErrNotFound
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrSlugTaken       = domain.ErrSlugTaken
)

// SlugTakenError carries a free alternative for a taken slug.
type SlugTakenError = domain.SlugTakenError

type (
	// Item is a stored piece of content.
	Item = content.Item
	// Tag is a content label with its usage count.
	Tag = content.Tag
	// Category classifies content.
	Category = content.Category
	// Draft is the editable part of an item passed to SaveContent.
	Draft = contentuc.Draft
	// Saved is a stored item with its SEO report.
	Saved = contentuc.Saved

	// SearchPage is one page of ranked results.
	SearchPage = result.Page
	// SearchResult is a ranked hit with highlights.
	SearchResult = result.Result
	// Suggestion is an autocomplete entry.
	Suggestion = result.Suggestion
	// SortBy orders search results.
	SortBy = sortby.SortBy
	// RelatedMethod selects the recommendation strategy.
	RelatedMethod = method.Method
	// CategoryStat aggregates published content of one category.
	CategoryStat = trendinguc.CategoryStat

	// HealthReport lists the status of the database and the cache.
	HealthReport = healthuc.Report

	// SEOReport is a content SEO analysis.
	SEOReport = seo.Report
	// SlugReport is a slug quality analysis.
	SlugReport = seo.SlugReport
	// SlugOptions controls slug generation.
	SlugOptions = slug.Options
	// SlugVariation is one alternative slug for a title.
	SlugVariation = slug.Variation
	// SlugEntry pairs a title with its generated slug.
	SlugEntry = slug.Entry
)

// Content categories.
const (
	CategoryTech        = content.Tech
	CategoryObservation = content.Observation
	CategoryLife        = content.Life
	CategoryCreative    = content.Creative
	CategoryCode        = content.Code
)

// Search orderings.
const (
	SortRelevance = sortby.Relevance
	SortDate      = sortby.Date
	SortViews     = sortby.Views
	SortLikes     = sortby.Likes
)

// Related-content strategies.
const (
	RelatedByTags     = method.Tags
	RelatedByCategory = method.Category
	RelatedByKeywords = method.Keywords
	RelatedMixed      = method.Mixed
)

// SearchQuery is a full-text search request. Zero values pick the defaults:
// first page, 10 results, relevance order, every category.
type SearchQuery struct {
	Query    string
	Category Category
	Page     int
	PerPage  int
	SortBy   SortBy
}
