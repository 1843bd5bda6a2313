package filter

import (
	"testing"
	"time"

	"github.com/kailas-cloud/portal/internal/domain/content"
)

func item(id int64, cat content.Category, title, body string, tags ...string) content.Item {
	return content.Reconstruct(content.Snapshot{
		ID:        id,
		Title:     title,
		Body:      body,
		Category:  cat,
		Published: true,
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Tags:      tags,
	})
}

func TestZeroFilterMatchesEverything(t *testing.T) {
	if !New().Matches(item(1, content.Life, "x", "")) {
		t.Error("zero filter should match")
	}
}

func TestMatches(t *testing.T) {
	flask := item(1, content.Tech, "Flask Guide", "Build web apps", "python")
	since := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"category hit", New(InCategory(content.Tech)), true},
		{"category miss", New(InCategory(content.Life)), false},
		{"keyword in title case-insensitive", New(MatchingAny(TextFields, "FLASK")), true},
		{"keyword in body", New(MatchingAny(TextFields, "web")), true},
		{"keyword only in unsearched field", New(MatchingAny([]Field{Title}, "web")), false},
		{"no keyword hit", New(MatchingAny(TextFields, "django")), false},
		{"any keyword suffices", New(MatchingAny(TextFields, "django", "apps")), true},
		{"tag hit", New(WithAnyTag("Python")), true},
		{"tag miss", New(WithAnyTag("go")), false},
		{"excluded", New(Excluding(1)), false},
		{"created since before", New(CreatedSince(since)), true},
		{"created since after", New(CreatedSince(later)), false},
		{"featured only", New(FeaturedOnly()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Matches(flask); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchingAny_DropsBlankKeywords(t *testing.T) {
	f := New(MatchingAny(TextFields, " ", "Go "))
	if got := f.Keywords(); len(got) != 1 || got[0] != "go" {
		t.Errorf("Keywords = %v, want [go]", got)
	}
}
