package related

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/portal/internal/domain"
	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/related/method"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
	"github.com/kailas-cloud/portal/internal/textproc"
)

// --- Mocks ---

// mockReader returns every item regardless of filter, source and drafts included.
type mockReader struct {
	items []content.Item
	err   error
	calls int
}

func (m *mockReader) FindPublished(_ context.Context, _ filter.Filter) ([]content.Item, error) {
	m.calls++
	return m.items, m.err
}

func (m *mockReader) Get(_ context.Context, id int64) (content.Item, error) {
	for _, it := range m.items {
		if it.ID() == id {
			return it, nil
		}
	}
	return content.Item{}, domain.ErrNotFound
}

// fieldsRanker returns the first n distinct whitespace-separated words.
type fieldsRanker struct{}

func (fieldsRanker) TopKeywords(text string, n int) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if !seen[w] && len(out) < n {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func entry(id int64, cat content.Category, title, body string, views int, tags ...string) content.Item {
	return content.Reconstruct(content.Snapshot{
		ID:        id,
		Title:     title,
		Body:      body,
		Category:  cat,
		Published: true,
		ViewCount: views,
		CreatedAt: t0.Add(time.Duration(id) * 24 * time.Hour),
		Tags:      tags,
	})
}

func draft(it content.Item) content.Item {
	s := it.Snapshot()
	s.Published = false
	return content.Reconstruct(s)
}

func itemIDs(items []content.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID()
	}
	return out
}

func assertIDs(t *testing.T, got []content.Item, want ...int64) {
	t.Helper()
	ids := itemIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

// source is item 1: tech, tag python, body about flask.
var source = entry(1, content.Tech, "alpha", "flask routing", 0, "python")

func scenario() []content.Item {
	return []content.Item{
		source,
		entry(2, content.Life, "bravo", "cooking", 0, "python"),       // tag only
		entry(3, content.Tech, "charlie", "gardening", 0),             // category only
		entry(4, content.Life, "delta", "flask tips", 0),              // keyword only
		draft(entry(6, content.Tech, "foxtrot", "flask", 0, "python")), // every signal, unpublished
	}
}

// --- Tests ---

func TestRelated_MixedRanksBySignalStrength(t *testing.T) {
	svc := New(&mockReader{items: scenario()}, fieldsRanker{})

	got, err := svc.Related(context.Background(), source, 5, method.Mixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, got, 2, 3, 4)
}

func TestRelated_MixedDoubleSignalOutranksTagOnly(t *testing.T) {
	items := append(scenario(), entry(5, content.Tech, "echo", "misc", 0, "python")) // tag + category = 15
	svc := New(&mockReader{items: items}, fieldsRanker{})

	got, err := svc.Related(context.Background(), source, 5, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, got, 5, 2, 3, 4)
}

func TestRelated_MixedLimit(t *testing.T) {
	svc := New(&mockReader{items: scenario()}, fieldsRanker{})

	got, err := svc.Related(context.Background(), source, 2, method.Mixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, got, 2, 3)
}

func TestRelated_NeverSelfOrDrafts(t *testing.T) {
	svc := New(&mockReader{items: scenario()}, fieldsRanker{})

	for _, m := range []method.Method{method.Tags, method.Category, method.Keywords, method.Mixed} {
		t.Run(string(m), func(t *testing.T) {
			got, err := svc.Related(context.Background(), source, 10, m)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, it := range got {
				if it.ID() == source.ID() {
					t.Error("source item returned")
				}
				if !it.Published() {
					t.Errorf("draft %d returned", it.ID())
				}
			}
		})
	}
}

func TestRelated_Tags(t *testing.T) {
	src := entry(1, content.Tech, "a", "", 0, "go", "web", "api")
	items := []content.Item{
		src,
		entry(2, content.Tech, "b", "", 0, "go"),
		entry(3, content.Tech, "c", "", 0, "go", "web"),
		entry(4, content.Tech, "d", "", 0, "web"),
		entry(5, content.Tech, "e", "", 0, "rust"),
	}
	svc := New(&mockReader{items: items}, fieldsRanker{})

	got, err := svc.Related(context.Background(), src, 10, method.Tags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3 shares two tags; 4 and 2 share one, newer first.
	assertIDs(t, got, 3, 4, 2)
}

func TestRelated_TagsEmptyWhenSourceUntagged(t *testing.T) {
	reader := &mockReader{items: scenario()}
	svc := New(reader, fieldsRanker{})

	got, err := svc.Related(context.Background(), entry(9, content.Tech, "x", "y", 0), 5, method.Tags)
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v", got, err)
	}
	if reader.calls != 0 {
		t.Error("repository should not be queried")
	}
}

func TestRelated_Category(t *testing.T) {
	items := []content.Item{
		source,
		entry(2, content.Tech, "b", "", 10),
		entry(3, content.Tech, "c", "", 50),
		entry(4, content.Tech, "d", "", 10),
		entry(5, content.Life, "e", "", 99),
	}
	svc := New(&mockReader{items: items}, fieldsRanker{})

	got, err := svc.Related(context.Background(), source, 10, method.Category)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, got, 3, 4, 2)
}

func TestRelated_Keywords(t *testing.T) {
	items := []content.Item{
		source,
		entry(2, content.Life, "flask intro", "", 5),
		entry(3, content.Life, "other", "routing tables", 20),
		entry(4, content.Life, "nothing", "summary only", 100),
	}
	svc := New(&mockReader{items: items}, fieldsRanker{})

	got, err := svc.Related(context.Background(), source, 10, method.Keywords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, got, 3, 2)
}

func TestRelated_KeywordsPreferRareTerms(t *testing.T) {
	tok, err := textproc.New()
	if err != nil {
		t.Fatalf("tokenizer: %v", err)
	}
	// Every common word outnumbers "rueidis", so only weighting by corpus
	// rarity puts it among the seeds.
	src := entry(1, content.Tech, "notes",
		"我们 我们 时间 时间 问题 问题 工作 工作 发展 发展 社会 社会 rueidis", 0)
	items := []content.Item{
		src,
		entry(2, content.Code, "rueidis client", "", 1),
		entry(3, content.Life, "unrelated", "nothing here", 50),
	}
	svc := New(&mockReader{items: items}, tok)

	got, err := svc.Related(context.Background(), src, 5, method.Keywords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, got, 2)
}

func TestRelated_KeywordsEmptyBody(t *testing.T) {
	svc := New(&mockReader{items: scenario()}, fieldsRanker{})

	got, err := svc.Related(context.Background(), entry(9, content.Tech, "flask", "", 0), 5, method.Keywords)
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestRelated_InvalidMethod(t *testing.T) {
	svc := New(&mockReader{}, fieldsRanker{})

	_, err := svc.Related(context.Background(), source, 5, "semantic")
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRelated_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	svc := New(&mockReader{err: boom}, fieldsRanker{})

	for _, m := range []method.Method{method.Tags, method.Category, method.Keywords, method.Mixed} {
		if _, err := svc.Related(context.Background(), source, 5, m); !errors.Is(err, boom) {
			t.Errorf("%s: expected wrapped error, got %v", m, err)
		}
	}
}

func TestRelatedByID(t *testing.T) {
	items := scenario()
	svc := New(&mockReader{items: items}, fieldsRanker{})

	got, err := svc.RelatedByID(context.Background(), 1, 5, method.Tags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, got, 2)

	if _, err := svc.RelatedByID(context.Background(), 404, 5, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.RelatedByID(context.Background(), 6, 5, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("draft lookup: expected ErrNotFound, got %v", err)
	}
}
