package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/portal/internal/domain"
	domcontent "github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/seo"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type mockRepo struct {
	items  map[int64]domcontent.Item
	nextID int64
	saved  []domcontent.Item
	err    error
}

func newMockRepo(items ...domcontent.Item) *mockRepo {
	m := &mockRepo{items: make(map[int64]domcontent.Item), nextID: 100}
	for _, it := range items {
		m.items[it.ID()] = it
	}
	return m
}

func (m *mockRepo) Get(_ context.Context, id int64) (domcontent.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return domcontent.Item{}, domain.ErrNotFound
	}
	return it, nil
}

func (m *mockRepo) Save(_ context.Context, item domcontent.Item) (domcontent.Item, error) {
	if m.err != nil {
		return domcontent.Item{}, m.err
	}
	snap := item.Snapshot()
	if snap.ID == 0 {
		m.nextID++
		snap.ID = m.nextID
	}
	stored := domcontent.Reconstruct(snap)
	m.items[snap.ID] = stored
	m.saved = append(m.saved, stored)
	return stored, nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRepo) IncrementViews(_ context.Context, id int64) (int, error) {
	return m.bump(id, func(s *domcontent.Snapshot) int { s.ViewCount++; return s.ViewCount })
}

func (m *mockRepo) IncrementLikes(_ context.Context, id int64) (int, error) {
	return m.bump(id, func(s *domcontent.Snapshot) int { s.LikeCount++; return s.LikeCount })
}

func (m *mockRepo) bump(id int64, fn func(*domcontent.Snapshot) int) (int, error) {
	it, ok := m.items[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	s := it.Snapshot()
	n := fn(&s)
	m.items[id] = domcontent.Reconstruct(s)
	return n, nil
}

func (m *mockRepo) SlugExists(_ context.Context, s string, excludeID int64) (bool, error) {
	for id, it := range m.items {
		if id != excludeID && it.Slug() == s {
			return true, nil
		}
	}
	return false, nil
}

type mockTags struct {
	cleaned, recounted int
	err                error
}

func (m *mockTags) CleanupUnused(context.Context) (int, error) { return m.cleaned, m.err }
func (m *mockTags) RecountUsage(context.Context) (int, error)  { return m.recounted, m.err }

type mockAnalyzer struct {
	lastURL  string
	lastSlug string
}

func (m *mockAnalyzer) AnalyzeContent(_, _, _, url string) seo.Report {
	m.lastURL = url
	return seo.Report{Score: 42}
}

func (m *mockAnalyzer) AnalyzeSlug(s string) seo.SlugReport {
	m.lastSlug = s
	return seo.SlugReport{Slug: s, Score: 90}
}

func newService(repo *mockRepo, tags *mockTags, an *mockAnalyzer) *Service {
	gen := slug.New(slug.WithChecker(repo), slug.WithClock(func() time.Time { return now }))
	return New(repo, tags, gen, an, WithClock(func() time.Time { return now }))
}

func existing(id int64, slugValue string) domcontent.Item {
	return domcontent.Reconstruct(domcontent.Snapshot{
		ID:        id,
		Slug:      slugValue,
		Title:     "Existing",
		Category:  domcontent.Tech,
		Published: true,
		ViewCount: 30,
		CreatedAt: now.Add(-48 * time.Hour),
	})
}

func TestSave_CreatesWithGeneratedSlugAndSummary(t *testing.T) {
	repo := newMockRepo()
	an := &mockAnalyzer{}
	svc := newService(repo, &mockTags{}, an)

	saved, err := svc.Save(context.Background(), Draft{
		Title:    "Hello World",
		Body:     "# Hello\n\nThis is the **body** of the post.",
		Category: domcontent.Tech,
		Tags:     []string{"go", "Go", " web "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item := saved.Item
	if item.ID() == 0 {
		t.Error("expected an assigned ID")
	}
	if item.Slug() != "hello-world" {
		t.Errorf("expected slug hello-world, got %q", item.Slug())
	}
	if item.Summary() != "Hello This is the body of the post." {
		t.Errorf("unexpected summary %q", item.Summary())
	}
	if len(item.Tags()) != 2 {
		t.Errorf("expected normalized tags, got %v", item.Tags())
	}
	if !item.CreatedAt().Equal(now) || !item.UpdatedAt().Equal(now) {
		t.Errorf("unexpected timestamps: %v %v", item.CreatedAt(), item.UpdatedAt())
	}
	if saved.SEO.Score != 42 {
		t.Errorf("expected SEO report from analyzer, got %d", saved.SEO.Score)
	}
	if an.lastURL != item.URL() {
		t.Errorf("analyzer got url %q, want %q", an.lastURL, item.URL())
	}
}

func TestSave_GeneratedSlugAvoidsCollision(t *testing.T) {
	repo := newMockRepo(existing(1, "hello-world"))
	svc := newService(repo, &mockTags{}, &mockAnalyzer{})

	saved, err := svc.Save(context.Background(), Draft{Title: "Hello World", Category: domcontent.Life})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Item.Slug() != "hello-world-1" {
		t.Errorf("expected hello-world-1, got %q", saved.Item.Slug())
	}
}

func TestSave_ExplicitSlugTaken(t *testing.T) {
	repo := newMockRepo(existing(1, "taken"))
	svc := newService(repo, &mockTags{}, &mockAnalyzer{})

	_, err := svc.Save(context.Background(), Draft{Title: "Other", Slug: "taken", Category: domcontent.Life})
	if !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	var taken *domain.SlugTakenError
	if !errors.As(err, &taken) || taken.Suggested != "taken-1" {
		t.Errorf("expected suggestion taken-1, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Error("nothing should be saved")
	}
}

func TestSave_ExplicitSlugInvalid(t *testing.T) {
	svc := newService(newMockRepo(), &mockTags{}, &mockAnalyzer{})

	_, err := svc.Save(context.Background(), Draft{Title: "T", Slug: "Not A Slug", Category: domcontent.Life})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSave_UpdateKeepsCountersAndOwnSlug(t *testing.T) {
	repo := newMockRepo(existing(7, "my-post"))
	svc := newService(repo, &mockTags{}, &mockAnalyzer{})

	saved, err := svc.Save(context.Background(), Draft{
		ID:       7,
		Slug:     "my-post",
		Title:    "Renamed",
		Summary:  "Hand written",
		Category: domcontent.Code,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := saved.Item
	if item.ID() != 7 || item.Slug() != "my-post" {
		t.Errorf("unexpected identity %d %q", item.ID(), item.Slug())
	}
	if item.ViewCount() != 30 {
		t.Errorf("expected view count preserved, got %d", item.ViewCount())
	}
	if !item.CreatedAt().Equal(now.Add(-48 * time.Hour)) {
		t.Errorf("expected createdAt preserved, got %v", item.CreatedAt())
	}
	if item.Summary() != "Hand written" {
		t.Errorf("explicit summary overwritten: %q", item.Summary())
	}
}

func TestSave_UpdateMissing(t *testing.T) {
	svc := newService(newMockRepo(), &mockTags{}, &mockAnalyzer{})

	_, err := svc.Save(context.Background(), Draft{ID: 9, Title: "x", Category: domcontent.Life})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSave_Validation(t *testing.T) {
	svc := newService(newMockRepo(), &mockTags{}, &mockAnalyzer{})

	_, err := svc.Save(context.Background(), Draft{Title: "Valid title", Category: "unknown"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSave_RepositoryError(t *testing.T) {
	repo := newMockRepo()
	repo.err = errors.New("disk full")
	svc := newService(repo, &mockTags{}, &mockAnalyzer{})

	_, err := svc.Save(context.Background(), Draft{Title: "Hello", Category: domcontent.Life})
	if !errors.Is(err, repo.err) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestCounters(t *testing.T) {
	repo := newMockRepo(existing(3, "x-post"))
	svc := newService(repo, &mockTags{}, &mockAnalyzer{})
	ctx := context.Background()

	views, err := svc.RecordView(ctx, 3)
	if err != nil || views != 31 {
		t.Fatalf("RecordView: %d, %v", views, err)
	}
	likes, err := svc.RecordLike(ctx, 3)
	if err != nil || likes != 1 {
		t.Fatalf("RecordLike: %d, %v", likes, err)
	}
	if _, err := svc.RecordView(ctx, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAndDelete(t *testing.T) {
	repo := newMockRepo(existing(3, "x-post"))
	svc := newService(repo, &mockTags{}, &mockAnalyzer{})
	ctx := context.Background()

	if _, err := svc.Get(ctx, 3); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if err := svc.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, 3); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAnalyzeSlug(t *testing.T) {
	an := &mockAnalyzer{}
	svc := newService(newMockRepo(existing(3, "x-post")), &mockTags{}, an)

	r, err := svc.AnalyzeSlug(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if an.lastSlug != "x-post" || r.Score != 90 {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestTagMaintenance(t *testing.T) {
	tags := &mockTags{cleaned: 4, recounted: 12}
	svc := newService(newMockRepo(), tags, &mockAnalyzer{})
	ctx := context.Background()

	if n, err := svc.CleanupUnusedTags(ctx); err != nil || n != 4 {
		t.Errorf("CleanupUnusedTags: %d, %v", n, err)
	}
	if n, err := svc.RecountTagUsage(ctx); err != nil || n != 12 {
		t.Errorf("RecountTagUsage: %d, %v", n, err)
	}

	tags.err = errors.New("locked")
	if _, err := svc.CleanupUnusedTags(ctx); !errors.Is(err, tags.err) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

type mockInvalidator struct {
	calls int
	err   error
}

func (m *mockInvalidator) Invalidate(_ context.Context) error {
	m.calls++
	return m.err
}

func TestWrites_InvalidateCache(t *testing.T) {
	repo := newMockRepo(existing(3, "x-post"))
	cache := &mockInvalidator{}
	gen := slug.New(slug.WithChecker(repo), slug.WithClock(func() time.Time { return now }))
	svc := New(repo, &mockTags{}, gen, &mockAnalyzer{},
		WithClock(func() time.Time { return now }), WithInvalidator(cache))
	ctx := context.Background()

	if _, err := svc.Save(ctx, Draft{Title: "Fresh Post", Category: domcontent.Life}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := svc.RecordView(ctx, 3); err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if err := svc.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if cache.calls != 2 {
		t.Errorf("expected 2 invalidations, got %d", cache.calls)
	}

	cache.err = errors.New("cache down")
	if _, err := svc.Save(ctx, Draft{Title: "Another Post", Category: domcontent.Life}); err != nil {
		t.Fatalf("cache failure must not fail the save: %v", err)
	}
}
