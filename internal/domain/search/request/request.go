package request

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/sortby"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength = 500
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Request is a normalized full-text search query.
type Request struct {
	query    string
	category content.Category
	page     int
	perPage  int
	sortBy   sortby.SortBy
}

// New normalizes search parameters. It never rejects input: an empty query
// yields an empty page downstream, queries longer than MaxQueryLength runes
// are truncated, an unknown category is kept so the search matches nothing,
// and an unknown sort order falls back to relevance.
// Defaults: page=1, perPage=10, sortBy=relevance. perPage is clamped to MaxPerPage.
func New(query string, category content.Category, page, perPage int, s sortby.SortBy) Request {
	query = truncate(strings.TrimSpace(query), MaxQueryLength)
	if !s.IsValid() {
		s = sortby.Relevance
	}
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Request{query: query, category: category, page: page, perPage: perPage, sortBy: s}
}

// Query returns the trimmed query text.
func (r Request) Query() string { return r.query }

// Category returns the category restriction (empty for all).
func (r Request) Category() content.Category { return r.category }

// Page returns the 1-based page number.
func (r Request) Page() int { return r.page }

// PerPage returns the page size.
func (r Request) PerPage() int { return r.perPage }

// SortBy returns the result ordering.
func (r Request) SortBy() sortby.SortBy { return r.sortBy }

// Offset returns the index of the first result on the page.
func (r Request) Offset() int { return (r.page - 1) * r.perPage }

// MatchesNothing reports whether the category restriction can never match.
func (r Request) MatchesNothing() bool {
	return r.category != "" && !r.category.IsValid()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
