// Package content stores content items and their tag associations in SQLite.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/portal/internal/db/sqlite"
	"github.com/kailas-cloud/portal/internal/domain"
	domcontent "github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/filter"
)

// store is the consumer interface for the SQLite handle (ISP).
type store interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// Repo implements the content readers and writers of the use cases.
type Repo struct {
	store store
}

// New creates a content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FindPublished returns published items matching f, newest first. Cheap
// predicates run in SQL; f.Matches gives the final answer.
func (r *Repo) FindPublished(ctx context.Context, f filter.Filter) ([]domcontent.Item, error) {
	where, args := buildWhere(f)
	query := `SELECT ` + selectColumns + ` FROM content c WHERE ` + where + ` ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query published: %w", err)
	}
	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("scan published: %w", err)
	}

	out := items[:0]
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func buildWhere(f filter.Filter) (string, []any) {
	conds := []string{"c.published = 1"}
	var args []any

	if f.Category() != "" {
		conds = append(conds, "c.category = ?")
		args = append(args, string(f.Category()))
	}
	if f.ExcludeID() != 0 {
		conds = append(conds, "c.id <> ?")
		args = append(args, f.ExcludeID())
	}
	if f.IsFeaturedOnly() {
		conds = append(conds, "c.featured = 1")
	}
	if !f.Since().IsZero() {
		conds = append(conds, "c.created_at >= ?")
		args = append(args, sqlite.FormatTime(f.Since()))
	}
	if tags := f.Tags(); len(tags) > 0 {
		conds = append(conds, `c.id IN (
            SELECT ct.content_id FROM content_tags ct JOIN tags t ON t.id = ct.tag_id
            WHERE t.name IN (`+placeholders(len(tags))+`))`)
		for _, t := range tags {
			args = append(args, t)
		}
	}
	if cond, kwArgs := keywordCondition(f); cond != "" {
		conds = append(conds, cond)
		args = append(args, kwArgs...)
	}
	return strings.Join(conds, " AND "), args
}

// keywordCondition prefilters on keywords. SQLite lower() folds ASCII only,
// so non-ASCII keywords are left to the in-memory check.
func keywordCondition(f filter.Filter) (string, []any) {
	kws, fields := f.Keywords(), f.Fields()
	if len(kws) == 0 || len(fields) == 0 {
		return "", nil
	}
	for _, kw := range kws {
		if !isASCII(kw) {
			return "", nil
		}
	}

	var ors []string
	var args []any
	for _, field := range fields {
		col, ok := fieldColumn(field)
		if !ok {
			continue
		}
		for _, kw := range kws {
			ors = append(ors, "instr(lower("+col+"), ?) > 0")
			args = append(args, kw)
		}
	}
	if len(ors) == 0 {
		return "", nil
	}
	return "(" + strings.Join(ors, " OR ") + ")", args
}

func fieldColumn(f filter.Field) (string, bool) {
	switch f {
	case filter.Title:
		return "c.title", true
	case filter.Summary:
		return "c.summary", true
	case filter.Body:
		return "c.body", true
	}
	return "", false
}

// Get returns an item by ID regardless of publication state.
func (r *Repo) Get(ctx context.Context, id int64) (domcontent.Item, error) {
	it, err := scanItem(r.store.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM content c WHERE c.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domcontent.Item{}, fmt.Errorf("content %d: %w", id, domain.ErrNotFound)
		}
		return domcontent.Item{}, fmt.Errorf("get content %d: %w", id, err)
	}
	return it, nil
}

// SlugExists reports whether slug belongs to an item other than excludeID.
func (r *Repo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int
	err := r.store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE slug = ? AND id <> ?`, slug, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return n > 0, nil
}

// Save inserts or updates item and syncs its tags in one transaction.
func (r *Repo) Save(ctx context.Context, item domcontent.Item) (domcontent.Item, error) {
	id := item.ID()
	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		if id == 0 {
			id, err = insertItem(ctx, tx, item)
		} else {
			err = updateItem(ctx, tx, item)
		}
		if err != nil {
			return err
		}
		return syncTags(ctx, tx, id, item.Category(), item.Tags())
	})
	if err != nil {
		if isUniqueSlugViolation(err) {
			return domcontent.Item{}, fmt.Errorf("slug %q: %w", item.Slug(), domain.ErrSlugTaken)
		}
		return domcontent.Item{}, err
	}
	return r.Get(ctx, id)
}

func insertItem(ctx context.Context, tx *sql.Tx, item domcontent.Item) (int64, error) {
	res, err := tx.ExecContext(ctx, `
INSERT INTO content (slug, title, body, summary, meta_description, category,
                     published, featured, view_count, like_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Slug(), item.Title(), item.Body(), item.Summary(), item.MetaDescription(), string(item.Category()),
		item.Published(), item.Featured(), item.ViewCount(), item.LikeCount(),
		sqlite.FormatTime(item.CreatedAt()), sqlite.FormatTime(item.UpdatedAt()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert content: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert content id: %w", err)
	}
	return id, nil
}

// updateItem leaves counters alone so concurrent views are not overwritten.
func updateItem(ctx context.Context, tx *sql.Tx, item domcontent.Item) error {
	res, err := tx.ExecContext(ctx, `
UPDATE content
SET slug = ?, title = ?, body = ?, summary = ?, meta_description = ?, category = ?,
    published = ?, featured = ?, updated_at = ?
WHERE id = ?`,
		item.Slug(), item.Title(), item.Body(), item.Summary(), item.MetaDescription(), string(item.Category()),
		item.Published(), item.Featured(), sqlite.FormatTime(item.UpdatedAt()),
		item.ID(),
	)
	if err != nil {
		return fmt.Errorf("update content %d: %w", item.ID(), err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("content %d: %w", item.ID(), domain.ErrNotFound)
	}
	return nil
}

// syncTags replaces the item's associations with names, creating missing
// tags and adjusting usage counts by the difference only.
func syncTags(ctx context.Context, tx *sql.Tx, contentID int64, cat domcontent.Category, names []string) error {
	current, err := currentTagIDs(ctx, tx, contentID)
	if err != nil {
		return err
	}

	wanted := make(map[int64]int, len(names))
	for pos, name := range names {
		tagID, err := findOrCreateTag(ctx, tx, name, domcontent.TagCategoryFor(cat))
		if err != nil {
			return err
		}
		if _, dup := wanted[tagID]; !dup {
			wanted[tagID] = pos
		}
	}

	for tagID := range current {
		if _, keep := wanted[tagID]; keep {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tags SET usage_count = MAX(usage_count - 1, 0) WHERE id = ?`, tagID); err != nil {
			return fmt.Errorf("release tag %d: %w", tagID, err)
		}
	}
	for tagID := range wanted {
		if _, had := current[tagID]; had {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tags SET usage_count = usage_count + 1 WHERE id = ?`, tagID); err != nil {
			return fmt.Errorf("use tag %d: %w", tagID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM content_tags WHERE content_id = ?`, contentID); err != nil {
		return fmt.Errorf("clear content tags: %w", err)
	}
	for tagID, pos := range wanted {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO content_tags (content_id, tag_id, position) VALUES (?, ?, ?)`,
			contentID, tagID, pos,
		); err != nil {
			return fmt.Errorf("link tag %d: %w", tagID, err)
		}
	}
	return nil
}

func currentTagIDs(ctx context.Context, tx *sql.Tx, contentID int64) (map[int64]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `SELECT tag_id FROM content_tags WHERE content_id = ?`, contentID)
	if err != nil {
		return nil, fmt.Errorf("load content tags: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan content tag: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func findOrCreateTag(ctx context.Context, tx *sql.Tx, name string, cat domcontent.TagCategory) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tags (name, category) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
		name, string(cat),
	); err != nil {
		return 0, fmt.Errorf("create tag %q: %w", name, err)
	}
	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("find tag %q: %w", name, err)
	}
	return id, nil
}

// Delete removes an item and releases its tags.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
UPDATE tags SET usage_count = MAX(usage_count - 1, 0)
WHERE id IN (SELECT tag_id FROM content_tags WHERE content_id = ?)`, id); err != nil {
			return fmt.Errorf("release tags: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM content WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete content %d: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("content %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
}

// IncrementViews adds one view and returns the new count.
func (r *Repo) IncrementViews(ctx context.Context, id int64) (int, error) {
	return r.increment(ctx, "view_count", id)
}

// IncrementLikes adds one like and returns the new count.
func (r *Repo) IncrementLikes(ctx context.Context, id int64) (int, error) {
	return r.increment(ctx, "like_count", id)
}

func (r *Repo) increment(ctx context.Context, column string, id int64) (int, error) {
	var n int
	err := r.store.QueryRowContext(ctx,
		`UPDATE content SET `+column+` = `+column+` + 1 WHERE id = ? RETURNING `+column, id,
	).Scan(&n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("content %d: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("increment %s: %w", column, err)
	}
	return n, nil
}

func isUniqueSlugViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed: content.slug")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
