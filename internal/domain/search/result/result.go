package result

import "github.com/kailas-cloud/portal/internal/domain/content"

// Highlight keys.
const (
	HighlightTitle   = "title"
	HighlightSummary = "summary"
	HighlightSnippet = "snippet"
)

// Result is a single search hit.
type Result struct {
	item      content.Item
	score     float64
	highlight map[string]string
}

// New creates a search result.
func New(item content.Item, score float64, highlight map[string]string) Result {
	return Result{item: item, score: score, highlight: highlight}
}

// Item returns the matched content item.
func (r Result) Item() content.Item { return r.item }

// Score returns the relevance score.
func (r Result) Score() float64 { return r.score }

// Highlight returns marked-up excerpts keyed by title, summary and snippet.
func (r Result) Highlight() map[string]string { return r.highlight }

// Page is one page of ranked search results.
type Page struct {
	results    []Result
	total      int
	page       int
	perPage    int
	totalPages int
	keywords   []string
}

// NewPage creates a page. totalPages is ceil(total/perPage).
func NewPage(results []Result, total, page, perPage int, keywords []string) Page {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Page{
		results:    results,
		total:      total,
		page:       page,
		perPage:    perPage,
		totalPages: totalPages,
		keywords:   keywords,
	}
}

// Empty creates a page with no results that echoes the requested paging.
func Empty(page, perPage int) Page {
	return NewPage(nil, 0, page, perPage, nil)
}

// Results returns the hits on this page.
func (p Page) Results() []Result { return p.results }

// Total returns the number of matches across all pages.
func (p Page) Total() int { return p.total }

// Page returns the 1-based page number.
func (p Page) Page() int { return p.page }

// PerPage returns the page size.
func (p Page) PerPage() int { return p.perPage }

// TotalPages returns the number of pages.
func (p Page) TotalPages() int { return p.totalPages }

// Keywords returns the keywords extracted from the query.
func (p Page) Keywords() []string { return p.keywords }

// SuggestionType tells what a suggestion points to.
type SuggestionType string

// Suggestion types.
const (
	SuggestTitle SuggestionType = "title"
	SuggestTag   SuggestionType = "tag"
)

// Suggestion is an autocomplete entry.
type Suggestion struct {
	Text string
	Type SuggestionType
	URL  string
}
