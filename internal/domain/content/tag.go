package content

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTagLength is the maximum tag name length in runes.
const MaxTagLength = 50

// Tag is a named label shared between content items.
type Tag struct {
	id         int64
	name       string
	category   TagCategory
	usageCount int
}

// NewTag validates and creates a Tag with zero usage.
func NewTag(name string, category TagCategory) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, fmt.Errorf("tag name is required")
	}
	if utf8.RuneCountInString(name) > MaxTagLength {
		return Tag{}, fmt.Errorf("tag name too long (max %d)", MaxTagLength)
	}
	if category == "" {
		category = TagGeneral
	}
	if !category.IsValid() {
		return Tag{}, fmt.Errorf("invalid tag category: %q", category)
	}
	return Tag{name: name, category: category}, nil
}

// ReconstructTag creates a Tag without validation (storage hydration).
func ReconstructTag(id int64, name string, category TagCategory, usageCount int) Tag {
	return Tag{id: id, name: name, category: category, usageCount: usageCount}
}

// ID returns the storage identifier (0 before persistence).
func (t Tag) ID() int64 { return t.id }

// Name returns the unique tag name.
func (t Tag) Name() string { return t.name }

// Category returns the tag group.
func (t Tag) Category() TagCategory { return t.category }

// UsageCount returns how many items reference the tag.
func (t Tag) UsageCount() int { return t.usageCount }

// ParseTagList coerces a legacy comma-separated tag string into the canonical list.
func ParseTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags trims names, drops empties and keeps the first occurrence of
// each case-insensitive duplicate.
func NormalizeTags(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
