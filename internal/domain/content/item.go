package content

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Item field limits.
const (
	MaxTitleLength           = 200
	MaxSlugLength            = 200
	MaxSummaryLength         = 500
	MaxMetaDescriptionLength = 300
	MaxTags                  = 20
)

// Snapshot is the flat, mutable form of an Item used for construction and storage.
type Snapshot struct {
	ID              int64
	Slug            string
	Title           string
	Body            string
	Summary         string
	MetaDescription string
	Category        Category
	Published       bool
	Featured        bool
	ViewCount       int
	LikeCount       int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Tags            []string
}

// Item is a published or draft piece of portal content (immutable value object).
type Item struct {
	id              int64
	slug            string
	title           string
	body            string
	summary         string
	metaDescription string
	category        Category
	published       bool
	featured        bool
	viewCount       int
	likeCount       int
	createdAt       time.Time
	updatedAt       time.Time
	tags            []string
}

// New validates a snapshot and creates an Item.
// Title is required, category must be known, counters must be non-negative.
// Tags are normalized.
func New(s Snapshot) (Item, error) {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return Item{}, fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(s.Title) > MaxTitleLength {
		return Item{}, fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	if len(s.Slug) > MaxSlugLength {
		return Item{}, fmt.Errorf("slug too long (max %d)", MaxSlugLength)
	}
	if utf8.RuneCountInString(s.Summary) > MaxSummaryLength {
		return Item{}, fmt.Errorf("summary too long (max %d)", MaxSummaryLength)
	}
	if utf8.RuneCountInString(s.MetaDescription) > MaxMetaDescriptionLength {
		return Item{}, fmt.Errorf("meta description too long (max %d)", MaxMetaDescriptionLength)
	}
	if !s.Category.IsValid() {
		return Item{}, fmt.Errorf("invalid category: %q", s.Category)
	}
	if s.ViewCount < 0 || s.LikeCount < 0 {
		return Item{}, fmt.Errorf("counters must be non-negative")
	}
	s.Tags = NormalizeTags(s.Tags)
	if len(s.Tags) > MaxTags {
		return Item{}, fmt.Errorf("too many tags (max %d)", MaxTags)
	}
	for _, t := range s.Tags {
		if utf8.RuneCountInString(t) > MaxTagLength {
			return Item{}, fmt.Errorf("tag %q too long (max %d)", t, MaxTagLength)
		}
	}
	return Reconstruct(s), nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(s Snapshot) Item {
	return Item{
		id:              s.ID,
		slug:            s.Slug,
		title:           s.Title,
		body:            s.Body,
		summary:         s.Summary,
		metaDescription: s.MetaDescription,
		category:        s.Category,
		published:       s.Published,
		featured:        s.Featured,
		viewCount:       s.ViewCount,
		likeCount:       s.LikeCount,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		tags:            slices.Clone(s.Tags),
	}
}

// Snapshot returns a detached copy of the item's fields.
func (i Item) Snapshot() Snapshot {
	return Snapshot{
		ID:              i.id,
		Slug:            i.slug,
		Title:           i.title,
		Body:            i.body,
		Summary:         i.summary,
		MetaDescription: i.metaDescription,
		Category:        i.category,
		Published:       i.published,
		Featured:        i.featured,
		ViewCount:       i.viewCount,
		LikeCount:       i.likeCount,
		CreatedAt:       i.createdAt,
		UpdatedAt:       i.updatedAt,
		Tags:            slices.Clone(i.tags),
	}
}

// ID returns the storage identifier (0 before persistence).
func (i Item) ID() int64 { return i.id }

// Slug returns the URL slug.
func (i Item) Slug() string { return i.slug }

// Title returns the item title.
func (i Item) Title() string { return i.title }

// Body returns the Markdown body.
func (i Item) Body() string { return i.body }

// Summary returns the short summary.
func (i Item) Summary() string { return i.summary }

// MetaDescription returns the SEO meta description.
func (i Item) MetaDescription() string { return i.metaDescription }

// Category returns the content category.
func (i Item) Category() Category { return i.category }

// Published reports whether the item is publicly visible.
func (i Item) Published() bool { return i.published }

// Featured reports whether the item is pinned as featured.
func (i Item) Featured() bool { return i.featured }

// ViewCount returns the number of recorded views.
func (i Item) ViewCount() int { return i.viewCount }

// LikeCount returns the number of recorded likes.
func (i Item) LikeCount() int { return i.likeCount }

// CreatedAt returns the creation timestamp.
func (i Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last modification timestamp.
func (i Item) UpdatedAt() time.Time { return i.updatedAt }

// Tags returns the ordered tag names.
func (i Item) Tags() []string { return i.tags }

// URL returns the public path of the item.
func (i Item) URL() string { return "/content/" + strconv.FormatInt(i.id, 10) }

// HasTag reports whether the item carries the tag (case-insensitive).
func (i Item) HasTag(name string) bool {
	for _, t := range i.tags {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// SharedTags counts tags present on both items (case-insensitive).
func (i Item) SharedTags(other Item) int {
	n := 0
	for _, t := range other.tags {
		if i.HasTag(t) {
			n++
		}
	}
	return n
}
