// Package tag reads and maintains tags in SQLite.
package tag

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domcontent "github.com/kailas-cloud/portal/internal/domain/content"
)

// store is the consumer interface for the SQLite handle (ISP).
type store interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Repo implements tag lookups and maintenance.
type Repo struct {
	store store
}

// New creates a tag repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// FindByNameContains returns tags whose name contains fragment
// (ASCII case-insensitive), most used first.
func (r *Repo) FindByNameContains(ctx context.Context, fragment string, limit int) ([]domcontent.Tag, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" || limit <= 0 {
		return []domcontent.Tag{}, nil
	}
	rows, err := r.store.QueryContext(ctx, `
SELECT id, name, category, usage_count FROM tags
WHERE instr(lower(name), lower(?)) > 0
ORDER BY usage_count DESC, name
LIMIT ?`, fragment, limit)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	return scanTags(rows)
}

// Popular returns the most used tags.
func (r *Repo) Popular(ctx context.Context, limit int) ([]domcontent.Tag, error) {
	rows, err := r.store.QueryContext(ctx, `
SELECT id, name, category, usage_count FROM tags
WHERE usage_count > 0
ORDER BY usage_count DESC, name
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular tags: %w", err)
	}
	return scanTags(rows)
}

// CleanupUnused deletes tags with no usage and no associations.
func (r *Repo) CleanupUnused(ctx context.Context) (int, error) {
	res, err := r.store.ExecContext(ctx, `
DELETE FROM tags
WHERE usage_count <= 0
  AND NOT EXISTS (SELECT 1 FROM content_tags ct WHERE ct.tag_id = tags.id)`)
	if err != nil {
		return 0, fmt.Errorf("delete unused tags: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// RecountUsage recomputes usage counts from associations and returns the
// number of tags whose count changed.
func (r *Repo) RecountUsage(ctx context.Context) (int, error) {
	res, err := r.store.ExecContext(ctx, `
UPDATE tags
SET usage_count = (SELECT COUNT(*) FROM content_tags ct WHERE ct.tag_id = tags.id)
WHERE usage_count <> (SELECT COUNT(*) FROM content_tags ct WHERE ct.tag_id = tags.id)`)
	if err != nil {
		return 0, fmt.Errorf("recount tag usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func scanTags(rows *sql.Rows) ([]domcontent.Tag, error) {
	defer rows.Close()
	out := []domcontent.Tag{}
	for rows.Next() {
		var (
			id    int64
			name  string
			cat   string
			usage int
		)
		if err := rows.Scan(&id, &name, &cat, &usage); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, domcontent.ReconstructTag(id, name, domcontent.TagCategory(cat), usage))
	}
	return out, rows.Err()
}
