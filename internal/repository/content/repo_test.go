package content

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/portal/internal/db/sqlite"
	"github.com/kailas-cloud/portal/internal/domain"
	domcontent "github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
)

var base = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repo, *sqlite.Store) {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return New(s), s
}

func draft(slug, title string, mutate ...func(*domcontent.Snapshot)) domcontent.Item {
	snap := domcontent.Snapshot{
		Slug:      slug,
		Title:     title,
		Body:      "body of " + title,
		Category:  domcontent.Tech,
		Published: true,
		CreatedAt: base,
		UpdatedAt: base,
	}
	for _, m := range mutate {
		m(&snap)
	}
	return domcontent.Reconstruct(snap)
}

func tagUsage(t *testing.T, s *sqlite.Store, name string) int {
	t.Helper()
	var n int
	require.NoError(t, s.QueryRowContext(context.Background(), `SELECT usage_count FROM tags WHERE name = ?`, name).Scan(&n))
	return n
}

func TestSaveAndGet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, draft("hello-go", "Hello Go", func(s *domcontent.Snapshot) {
		s.Tags = []string{"go", "web"}
		s.Featured = true
		s.ViewCount = 12
	}))
	require.NoError(t, err)
	require.NotZero(t, saved.ID())

	got, err := repo.Get(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, "hello-go", got.Slug())
	assert.Equal(t, "Hello Go", got.Title())
	assert.Equal(t, []string{"go", "web"}, got.Tags())
	assert.True(t, got.Featured())
	assert.Equal(t, 12, got.ViewCount())
	assert.True(t, got.CreatedAt().Equal(base))
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_DuplicateSlug(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, draft("same", "First"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, draft("same", "Second"))
	assert.ErrorIs(t, err, domain.ErrSlugTaken)
}

func TestSave_TagDiffKeepsUsageCounts(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.Save(ctx, draft("a", "A", func(s *domcontent.Snapshot) { s.Tags = []string{"go", "web"} }))
	require.NoError(t, err)
	_, err = repo.Save(ctx, draft("b", "B", func(s *domcontent.Snapshot) { s.Tags = []string{"go"} }))
	require.NoError(t, err)
	assert.Equal(t, 2, tagUsage(t, s, "go"))
	assert.Equal(t, 1, tagUsage(t, s, "web"))

	// Saving the same tags twice must not double-count.
	snap := a.Snapshot()
	snap.Tags = []string{"web", "rust"}
	updated, err := repo.Save(ctx, domcontent.Reconstruct(snap))
	require.NoError(t, err)
	_, err = repo.Save(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, []string{"web", "rust"}, updated.Tags())
	assert.Equal(t, 1, tagUsage(t, s, "go"))
	assert.Equal(t, 1, tagUsage(t, s, "web"))
	assert.Equal(t, 1, tagUsage(t, s, "rust"))
}

func TestSave_TagNamesAreCaseInsensitive(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, draft("a", "A", func(s *domcontent.Snapshot) { s.Tags = []string{"Go"} }))
	require.NoError(t, err)
	b, err := repo.Save(ctx, draft("b", "B", func(s *domcontent.Snapshot) { s.Tags = []string{"go"} }))
	require.NoError(t, err)

	assert.Equal(t, []string{"Go"}, b.Tags())
	assert.Equal(t, 2, tagUsage(t, s, "go"))
}

func TestSave_UpdateMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Save(context.Background(), draft("x", "X", func(s *domcontent.Snapshot) { s.ID = 99 }))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindPublished(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	mustSave := func(it domcontent.Item) domcontent.Item {
		saved, err := repo.Save(ctx, it)
		require.NoError(t, err)
		return saved
	}
	flask := mustSave(draft("flask", "Flask Tutorial", func(s *domcontent.Snapshot) {
		s.Tags = []string{"python"}
		s.CreatedAt = base.Add(2 * time.Hour)
	}))
	gin := mustSave(draft("gin", "Gin in Go", func(s *domcontent.Snapshot) {
		s.Body = "A web framework, like Flask but for Go"
		s.Category = domcontent.Code
		s.Featured = true
		s.CreatedAt = base.Add(time.Hour)
	}))
	mustSave(draft("draft", "Flask draft", func(s *domcontent.Snapshot) { s.Published = false }))
	old := mustSave(draft("old", "Old notes", func(s *domcontent.Snapshot) { s.CreatedAt = base.Add(-30 * 24 * time.Hour) }))

	t.Run("all published newest first", func(t *testing.T) {
		got, err := repo.FindPublished(ctx, filter.New())
		require.NoError(t, err)
		assert.Equal(t, []int64{flask.ID(), gin.ID(), old.ID()}, ids(got))
	})

	t.Run("keywords any field", func(t *testing.T) {
		got, err := repo.FindPublished(ctx, filter.New(filter.MatchingAny(filter.TextFields, "FLASK")))
		require.NoError(t, err)
		assert.Equal(t, []int64{flask.ID(), gin.ID()}, ids(got))
	})

	t.Run("keywords title only", func(t *testing.T) {
		got, err := repo.FindPublished(ctx, filter.New(filter.MatchingAny([]filter.Field{filter.Title}, "flask")))
		require.NoError(t, err)
		assert.Equal(t, []int64{flask.ID()}, ids(got))
	})

	t.Run("category and featured", func(t *testing.T) {
		got, err := repo.FindPublished(ctx, filter.New(filter.InCategory(domcontent.Code), filter.FeaturedOnly()))
		require.NoError(t, err)
		assert.Equal(t, []int64{gin.ID()}, ids(got))
	})

	t.Run("tags case-insensitive", func(t *testing.T) {
		got, err := repo.FindPublished(ctx, filter.New(filter.WithAnyTag("Python")))
		require.NoError(t, err)
		assert.Equal(t, []int64{flask.ID()}, ids(got))
	})

	t.Run("since and exclude", func(t *testing.T) {
		got, err := repo.FindPublished(ctx, filter.New(
			filter.CreatedSince(base.Add(-24*time.Hour)),
			filter.Excluding(flask.ID()),
		))
		require.NoError(t, err)
		assert.Equal(t, []int64{gin.ID()}, ids(got))
	})

	t.Run("non-ascii keyword", func(t *testing.T) {
		got, err := repo.FindPublished(ctx, filter.New(filter.MatchingAny(filter.TextFields, "教程")))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSlugExists(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, draft("taken", "T"))
	require.NoError(t, err)

	exists, err := repo.SlugExists(ctx, "taken", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.SlugExists(ctx, "taken", saved.ID())
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SlugExists(ctx, "free", 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCounters(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, draft("c", "C", func(s *domcontent.Snapshot) { s.ViewCount = 5 }))
	require.NoError(t, err)

	n, err := repo.IncrementViews(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = repo.IncrementLikes(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.IncrementViews(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateKeepsCounters(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, draft("c", "C"))
	require.NoError(t, err)
	_, err = repo.IncrementViews(ctx, saved.ID())
	require.NoError(t, err)

	// saved still carries ViewCount 0; the update must not reset the counter.
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	got, err := repo.Get(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount())
}

func TestDelete(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, draft("d", "D", func(s *domcontent.Snapshot) { s.Tags = []string{"go"} }))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID()))
	assert.Equal(t, 0, tagUsage(t, s, "go"))

	_, err = repo.Get(ctx, saved.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, saved.ID()), domain.ErrNotFound)
}

func ids(items []domcontent.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}
