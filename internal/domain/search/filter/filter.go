package filter

import (
	"strings"
	"time"

	"github.com/kailas-cloud/portal/internal/domain/content"
)

// Field names a searchable text field of a content item.
type Field string

// Searchable fields.
const (
	Title   Field = "title"
	Summary Field = "summary"
	Body    Field = "body"
)

// TextFields is the default field set for keyword matching.
var TextFields = []Field{Title, Summary, Body}

// Filter is the read predicate over published content. Zero value matches everything.
type Filter struct {
	category     content.Category
	keywords     []string
	fields       []Field
	tags         []string
	since        time.Time
	excludeID    int64
	featuredOnly bool
}

// Option configures a Filter.
type Option func(*Filter)

// New creates a Filter from options.
func New(opts ...Option) Filter {
	var f Filter
	for _, o := range opts {
		o(&f)
	}
	return f
}

// InCategory restricts matches to one category. Empty category is ignored.
func InCategory(c content.Category) Option {
	return func(f *Filter) { f.category = c }
}

// MatchingAny requires at least one keyword to occur as a case-insensitive
// substring of at least one of the fields.
func MatchingAny(fields []Field, keywords ...string) Option {
	return func(f *Filter) {
		f.fields = append([]Field(nil), fields...)
		f.keywords = f.keywords[:0]
		for _, kw := range keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				f.keywords = append(f.keywords, kw)
			}
		}
	}
}

// WithAnyTag requires at least one of the tag names (case-insensitive).
func WithAnyTag(names ...string) Option {
	return func(f *Filter) { f.tags = content.NormalizeTags(names) }
}

// CreatedSince requires createdAt >= t.
func CreatedSince(t time.Time) Option {
	return func(f *Filter) { f.since = t }
}

// Excluding drops the item with the given ID.
func Excluding(id int64) Option {
	return func(f *Filter) { f.excludeID = id }
}

// FeaturedOnly restricts matches to featured items.
func FeaturedOnly() Option {
	return func(f *Filter) { f.featuredOnly = true }
}

// Category returns the category restriction (empty when unset).
func (f Filter) Category() content.Category { return f.category }

// Keywords returns the lower-cased keywords.
func (f Filter) Keywords() []string { return f.keywords }

// Fields returns the fields searched for keywords.
func (f Filter) Fields() []Field { return f.fields }

// Tags returns the any-of tag names.
func (f Filter) Tags() []string { return f.tags }

// Since returns the lower creation bound (zero when unset).
func (f Filter) Since() time.Time { return f.since }

// ExcludeID returns the excluded item ID (0 when unset).
func (f Filter) ExcludeID() int64 { return f.excludeID }

// IsFeaturedOnly reports whether only featured items match.
func (f Filter) IsFeaturedOnly() bool { return f.featuredOnly }

// Matches evaluates the predicate in memory. Publication state is not checked here.
func (f Filter) Matches(item content.Item) bool {
	if f.category != "" && item.Category() != f.category {
		return false
	}
	if f.excludeID != 0 && item.ID() == f.excludeID {
		return false
	}
	if f.featuredOnly && !item.Featured() {
		return false
	}
	if !f.since.IsZero() && item.CreatedAt().Before(f.since) {
		return false
	}
	if len(f.tags) > 0 && !hasAnyTag(item, f.tags) {
		return false
	}
	if len(f.keywords) > 0 && len(f.fields) > 0 && !f.matchesKeywords(item) {
		return false
	}
	return true
}

func (f Filter) matchesKeywords(item content.Item) bool {
	for _, field := range f.fields {
		text := strings.ToLower(FieldText(item, field))
		if text == "" {
			continue
		}
		for _, kw := range f.keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

// FieldText returns the raw text of a field.
func FieldText(item content.Item, field Field) string {
	switch field {
	case Title:
		return item.Title()
	case Summary:
		return item.Summary()
	case Body:
		return item.Body()
	}
	return ""
}

func hasAnyTag(item content.Item, names []string) bool {
	for _, n := range names {
		if item.HasTag(n) {
			return true
		}
	}
	return false
}
