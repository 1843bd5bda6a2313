package content

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kailas-cloud/portal/internal/db/sqlite"
	domcontent "github.com/kailas-cloud/portal/internal/domain/content"
)

// tagSeparator joins tag names in the aggregated column; it cannot appear in
// a trimmed tag name typed by a user.
const tagSeparator = "\x1f"

const selectColumns = `
    c.id, c.slug, c.title, c.body, c.summary, c.meta_description, c.category,
    c.published, c.featured, c.view_count, c.like_count, c.created_at, c.updated_at,
    COALESCE((
        SELECT group_concat(name, char(31)) FROM (
            SELECT t.name AS name
            FROM content_tags ct JOIN tags t ON t.id = ct.tag_id
            WHERE ct.content_id = c.id
            ORDER BY ct.position
        )
    ), '')`

type scanner interface {
	Scan(dest ...any) error
}

// row mirrors one content row.
type row struct {
	id              int64
	slug            string
	title           string
	body            string
	summary         string
	metaDescription string
	category        string
	published       bool
	featured        bool
	viewCount       int
	likeCount       int
	createdAt       string
	updatedAt       string
	tags            string
}

func scanItem(s scanner) (domcontent.Item, error) {
	var r row
	if err := s.Scan(
		&r.id, &r.slug, &r.title, &r.body, &r.summary, &r.metaDescription, &r.category,
		&r.published, &r.featured, &r.viewCount, &r.likeCount, &r.createdAt, &r.updatedAt,
		&r.tags,
	); err != nil {
		return domcontent.Item{}, err
	}
	return r.toItem()
}

func (r row) toItem() (domcontent.Item, error) {
	created, err := sqlite.ParseTime(r.createdAt)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("content %d created_at: %w", r.id, err)
	}
	updated, err := sqlite.ParseTime(r.updatedAt)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("content %d updated_at: %w", r.id, err)
	}
	var tags []string
	if r.tags != "" {
		tags = strings.Split(r.tags, tagSeparator)
	}
	return domcontent.Reconstruct(domcontent.Snapshot{
		ID:              r.id,
		Slug:            r.slug,
		Title:           r.title,
		Body:            r.body,
		Summary:         r.summary,
		MetaDescription: r.metaDescription,
		Category:        domcontent.Category(r.category),
		Published:       r.published,
		Featured:        r.featured,
		ViewCount:       r.viewCount,
		LikeCount:       r.likeCount,
		CreatedAt:       created,
		UpdatedAt:       updated,
		Tags:            tags,
	}), nil
}

func scanItems(rows *sql.Rows) ([]domcontent.Item, error) {
	defer rows.Close()
	var out []domcontent.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
