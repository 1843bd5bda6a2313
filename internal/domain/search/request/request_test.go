package request

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/sortby"
)

func TestNew_Defaults(t *testing.T) {
	r := New("  flask  ", "", 0, 0, "")
	if r.Query() != "flask" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Page() != 1 {
		t.Errorf("Page() = %d, want 1", r.Page())
	}
	if r.PerPage() != DefaultPerPage {
		t.Errorf("PerPage() = %d, want %d", r.PerPage(), DefaultPerPage)
	}
	if r.SortBy() != sortby.Relevance {
		t.Errorf("SortBy() = %q, want relevance", r.SortBy())
	}
	if r.Offset() != 0 {
		t.Errorf("Offset() = %d", r.Offset())
	}
}

func TestNew_EmptyQueryAllowed(t *testing.T) {
	r := New("   ", "", 2, 5, sortby.Date)
	if r.Query() != "" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Offset() != 5 {
		t.Errorf("Offset() = %d, want 5", r.Offset())
	}
}

func TestNew_ClampsPerPage(t *testing.T) {
	r := New("q", content.Tech, 1, 10_000, sortby.Views)
	if r.PerPage() != MaxPerPage {
		t.Errorf("PerPage() = %d, want %d", r.PerPage(), MaxPerPage)
	}
}

func TestNew_TruncatesLongQuery(t *testing.T) {
	r := New(strings.Repeat("flask ", 100), "", 1, 10, "")

	if n := utf8.RuneCountInString(r.Query()); n == 0 || n > MaxQueryLength {
		t.Errorf("query length %d, want 1..%d", n, MaxQueryLength)
	}
	if !strings.HasPrefix(r.Query(), "flask flask") {
		t.Errorf("Query() = %q", r.Query())
	}

	cjk := New(strings.Repeat("搜", MaxQueryLength+20), "", 1, 10, "")
	if n := utf8.RuneCountInString(cjk.Query()); n != MaxQueryLength {
		t.Errorf("rune count %d, want %d", n, MaxQueryLength)
	}
}

func TestNew_UnknownCategoryMatchesNothing(t *testing.T) {
	r := New("q", "bogus", 1, 10, "")
	if r.Category() != "bogus" {
		t.Errorf("Category() = %q", r.Category())
	}
	if !r.MatchesNothing() {
		t.Error("expected unknown category to match nothing")
	}

	for _, c := range []content.Category{"", content.Tech} {
		if New("q", c, 1, 10, "").MatchesNothing() {
			t.Errorf("category %q should match", c)
		}
	}
}

func TestNew_UnknownSortFallsBack(t *testing.T) {
	if got := New("q", "", 1, 10, "random").SortBy(); got != sortby.Relevance {
		t.Errorf("SortBy() = %q, want relevance", got)
	}
}
