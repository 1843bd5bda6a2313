// Package content implements the content write flow and counters.
package content

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/domain"
	domcontent "github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/seo"
	"github.com/kailas-cloud/portal/internal/logger"
	"github.com/kailas-cloud/portal/internal/textproc"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
)

// SummaryLength is the rune length of auto-extracted summaries.
const SummaryLength = 150

var slugFormat = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Draft is the editable part of a content item.
type Draft struct {
	ID              int64 // zero creates a new item
	Slug            string
	Title           string
	Body            string
	Summary         string
	MetaDescription string
	Category        domcontent.Category
	Tags            []string
	Published       bool
	Featured        bool
}

// Saved is a stored item with its SEO report.
type Saved struct {
	Item domcontent.Item
	SEO  seo.Report
}

// Service handles content writes, counters and tag maintenance.
type Service struct {
	repo     Repository
	tags     TagMaintainer
	slugs    SlugGenerator
	analyzer Analyzer
	slugOpts slug.Options
	cache    Invalidator
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithSlugOptions sets the options used for generated slugs.
func WithSlugOptions(o slug.Options) Option {
	return func(s *Service) { s.slugOpts = o }
}

// WithInvalidator registers a cache to flush after saves and deletes.
func WithInvalidator(c Invalidator) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a content service.
func New(repo Repository, tags TagMaintainer, slugs SlugGenerator, analyzer Analyzer, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		tags:     tags,
		slugs:    slugs,
		analyzer: analyzer,
		slugOpts: slug.DefaultOptions(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Save validates and stores a draft. A missing slug is generated from the
// title; an explicit slug owned by another item fails with a SlugTakenError.
// A missing summary is extracted from the body.
func (s *Service) Save(ctx context.Context, d Draft) (Saved, error) {
	now := s.now().UTC()
	snap := domcontent.Snapshot{CreatedAt: now}

	if d.ID != 0 {
		existing, err := s.repo.Get(ctx, d.ID)
		if err != nil {
			return Saved{}, fmt.Errorf("get content: %w", err)
		}
		snap = existing.Snapshot()
	}

	slugValue, err := s.resolveSlug(ctx, d)
	if err != nil {
		return Saved{}, err
	}

	summary := strings.TrimSpace(d.Summary)
	if summary == "" {
		summary = textproc.ExtractSummary(d.Body, SummaryLength)
	}

	snap.ID = d.ID
	snap.Slug = slugValue
	snap.Title = d.Title
	snap.Body = d.Body
	snap.Summary = summary
	snap.MetaDescription = strings.TrimSpace(d.MetaDescription)
	snap.Category = d.Category
	snap.Tags = d.Tags
	snap.Published = d.Published
	snap.Featured = d.Featured
	snap.UpdatedAt = now

	item, err := domcontent.New(snap)
	if err != nil {
		return Saved{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	stored, err := s.repo.Save(ctx, item)
	if err != nil {
		return Saved{}, fmt.Errorf("save content: %w", err)
	}
	s.invalidate(ctx)

	report := s.analyzer.AnalyzeContent(stored.Body(), stored.Title(), stored.MetaDescription(), stored.URL())

	logger.FromContext(ctx).Info("content saved",
		zap.Int64("id", stored.ID()),
		zap.String("slug", stored.Slug()),
		zap.Int("seo_score", report.Score),
	)

	return Saved{Item: stored, SEO: report}, nil
}

func (s *Service) resolveSlug(ctx context.Context, d Draft) (string, error) {
	requested := strings.TrimSpace(d.Slug)
	if requested == "" {
		base := s.slugs.Generate(d.Title, s.slugOpts)
		free, err := s.slugs.Unique(ctx, base, d.ID)
		if err != nil {
			return "", fmt.Errorf("unique slug: %w", err)
		}
		return free, nil
	}

	if !slugFormat.MatchString(requested) {
		return "", fmt.Errorf("slug %q must be lowercase words joined by hyphens: %w", requested, domain.ErrInvalidArgument)
	}
	free, err := s.slugs.Unique(ctx, requested, d.ID)
	if err != nil {
		return "", fmt.Errorf("unique slug: %w", err)
	}
	if free != requested {
		return "", domain.NewSlugTaken(requested, free)
	}
	return requested, nil
}

// Get returns an item regardless of its publication state.
func (s *Service) Get(ctx context.Context, id int64) (domcontent.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcontent.Item{}, fmt.Errorf("get content: %w", err)
	}
	return item, nil
}

// Delete removes an item and releases its tags.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// invalidate is best effort: stale entries expire with their TTL anyway.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Warn("search cache invalidation failed", zap.Error(err))
	}
}

// RecordView increments the view counter and returns the new value.
func (s *Service) RecordView(ctx context.Context, id int64) (int, error) {
	n, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("record view: %w", err)
	}
	return n, nil
}

// RecordLike increments the like counter and returns the new value.
func (s *Service) RecordLike(ctx context.Context, id int64) (int, error) {
	n, err := s.repo.IncrementLikes(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("record like: %w", err)
	}
	return n, nil
}

// AnalyzeSlug scores the slug of a stored item.
func (s *Service) AnalyzeSlug(ctx context.Context, id int64) (seo.SlugReport, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return seo.SlugReport{}, err
	}
	return s.analyzer.AnalyzeSlug(item.Slug()), nil
}

// CleanupUnusedTags deletes tags no item references any more.
func (s *Service) CleanupUnusedTags(ctx context.Context) (int, error) {
	n, err := s.tags.CleanupUnused(ctx)
	if err != nil {
		return 0, fmt.Errorf("cleanup tags: %w", err)
	}
	logger.FromContext(ctx).Info("unused tags removed", zap.Int("count", n))
	return n, nil
}

// RecountTagUsage recomputes every tag's usage count from its associations.
func (s *Service) RecountTagUsage(ctx context.Context) (int, error) {
	n, err := s.tags.RecountUsage(ctx)
	if err != nil {
		return 0, fmt.Errorf("recount tags: %w", err)
	}
	logger.FromContext(ctx).Info("tag usage recounted", zap.Int("tags", n))
	return n, nil
}
