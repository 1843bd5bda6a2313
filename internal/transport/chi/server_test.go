package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/domain"
	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/related/method"
	"github.com/kailas-cloud/portal/internal/domain/search/request"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
	"github.com/kailas-cloud/portal/internal/domain/search/sortby"
	"github.com/kailas-cloud/portal/internal/domain/seo"
	contentuc "github.com/kailas-cloud/portal/internal/usecase/content"
	healthuc "github.com/kailas-cloud/portal/internal/usecase/health"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
	trendinguc "github.com/kailas-cloud/portal/internal/usecase/trending"
)

// --- Mocks ---

type mockSearcher struct {
	lastReq    request.Request
	lastPrefix string
	lastLimit  int
	lastTags   []string
	err        error
}

func (m *mockSearcher) Search(_ context.Context, req request.Request) (result.Page, error) {
	m.lastReq = req
	if m.err != nil {
		return result.Page{}, m.err
	}
	hit := result.New(sampleItem(1), 12.5, map[string]string{result.HighlightTitle: "<mark>Go</mark> Tips"})
	return result.NewPage([]result.Result{hit}, 1, req.Page(), req.PerPage(), []string{"go"}), nil
}

func (m *mockSearcher) Suggest(_ context.Context, prefix string, limit int) ([]result.Suggestion, error) {
	m.lastPrefix, m.lastLimit = prefix, limit
	return []result.Suggestion{{Text: "Go Tips", Type: result.SuggestTitle, URL: "/content/1"}}, m.err
}

func (m *mockSearcher) SearchByTags(_ context.Context, tags []string, limit int) ([]content.Item, error) {
	m.lastTags, m.lastLimit = tags, limit
	return []content.Item{sampleItem(1)}, m.err
}

func (m *mockSearcher) SemanticSearch(_ context.Context, query string, limit int) ([]result.Result, error) {
	m.lastPrefix, m.lastLimit = query, limit
	if m.err != nil {
		return nil, m.err
	}
	return []result.Result{result.New(sampleItem(1), 1.25, nil)}, nil
}

type mockRecommender struct {
	lastLimit  int
	lastMethod method.Method
}

func (m *mockRecommender) RelatedByID(_ context.Context, id int64, limit int, mm method.Method) ([]content.Item, error) {
	m.lastLimit, m.lastMethod = limit, mm
	if id == 404 {
		return nil, fmt.Errorf("content %d: %w", id, domain.ErrNotFound)
	}
	if mm != "" && !mm.IsValid() {
		return nil, fmt.Errorf("%w: unknown related method %q", domain.ErrInvalidArgument, mm)
	}
	return []content.Item{sampleItem(2)}, nil
}

type mockTrends struct {
	lastDays, lastLimit int
}

func (m *mockTrends) Trending(_ context.Context, days, limit int) ([]content.Item, error) {
	m.lastDays, m.lastLimit = days, limit
	return []content.Item{sampleItem(3)}, nil
}

func (m *mockTrends) Popular(_ context.Context, limit int) ([]content.Item, error) {
	m.lastLimit = limit
	return nil, nil
}

func (m *mockTrends) Featured(_ context.Context, limit int) ([]content.Item, error) {
	m.lastLimit = limit
	return nil, nil
}

func (m *mockTrends) CategoryStats(_ context.Context) ([]trendinguc.CategoryStat, error) {
	return []trendinguc.CategoryStat{{Category: content.Tech, Count: 2, AvgViews: 15.5}}, nil
}

type mockContent struct {
	lastDraft contentuc.Draft
	views     int
	saveErr   error
}

func (m *mockContent) Save(_ context.Context, d contentuc.Draft) (contentuc.Saved, error) {
	m.lastDraft = d
	if m.saveErr != nil {
		return contentuc.Saved{}, m.saveErr
	}
	id := d.ID
	if id == 0 {
		id = 10
	}
	return contentuc.Saved{Item: sampleItem(id), SEO: seo.Report{Score: 88, Grade: seo.GradeA}}, nil
}

func (m *mockContent) Get(_ context.Context, id int64) (content.Item, error) {
	if id == 404 {
		return content.Item{}, domain.ErrNotFound
	}
	return sampleItem(id), nil
}

func (m *mockContent) Delete(_ context.Context, id int64) error {
	if id == 404 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mockContent) RecordView(_ context.Context, _ int64) (int, error) {
	m.views++
	return m.views, nil
}

func (m *mockContent) RecordLike(_ context.Context, _ int64) (int, error) {
	return 0, errors.New("disk I/O error")
}

func (m *mockContent) AnalyzeSlug(_ context.Context, id int64) (seo.SlugReport, error) {
	return seo.SlugReport{Slug: "go-tips", Score: 100, Grade: seo.GradeA}, nil
}

type mockAnalyzer struct{}

func (mockAnalyzer) AnalyzeContent(body, title, _, _ string) seo.Report {
	return seo.Report{Score: len(title) + len(body), Grade: seo.GradeD, Issues: []string{}}
}

func (mockAnalyzer) AnalyzeSlug(s string) seo.SlugReport {
	return seo.SlugReport{Slug: s, Score: 70, Grade: seo.GradeC}
}

type mockSlugs struct {
	lastOpts slug.Options
}

func (m *mockSlugs) Generate(title string, opts slug.Options) string {
	m.lastOpts = opts
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}

func (m *mockSlugs) Batch(titles []string, opts slug.Options) []slug.Entry {
	out := make([]slug.Entry, 0, len(titles))
	for _, t := range titles {
		out = append(out, slug.Entry{Title: t, Slug: m.Generate(t, opts)})
	}
	return out
}

func (m *mockSlugs) Variations(title string, count int) []slug.Variation {
	out := []slug.Variation{{Kind: slug.Standard, Slug: "a"}, {Kind: slug.Short, Slug: "b"}}
	if count < len(out) {
		out = out[:count]
	}
	return out
}

type mockHealth struct {
	report healthuc.Report
}

func (m mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func sampleItem(id int64) content.Item {
	ts := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return content.Reconstruct(content.Snapshot{
		ID:        id,
		Slug:      "go-tips",
		Title:     "Go Tips",
		Body:      "# Go\n\nbody",
		Summary:   "Go body",
		Category:  content.Tech,
		Published: true,
		ViewCount: 9,
		CreatedAt: ts,
		UpdatedAt: ts,
		Tags:      []string{"go"},
	})
}

type fixture struct {
	router  http.Handler
	search  *mockSearcher
	related *mockRecommender
	trends  *mockTrends
	content *mockContent
	slugs   *mockSlugs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		search:  &mockSearcher{},
		related: &mockRecommender{},
		trends:  &mockTrends{},
		content: &mockContent{},
		slugs:   &mockSlugs{},
	}
	health := mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{healthuc.ComponentDatabase: healthuc.CheckOK},
	}}
	srv := NewServer(f.search, f.related, f.trends, f.content, mockAnalyzer{}, f.slugs, health, zap.NewNop())
	r := chi.NewRouter()
	srv.Register(r)
	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

// --- Tests ---

func TestSearch_BindsParameters(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/search?q=golang+tips&category=tech&page=2&per_page=5&sort=views", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}

	req := f.search.lastReq
	if req.Query() != "golang tips" || req.Category() != content.Tech || req.Page() != 2 ||
		req.PerPage() != 5 || req.SortBy() != sortby.Views {
		t.Errorf("unexpected request: %+v", req)
	}

	resp := decode[searchResponse](t, rr)
	if resp.Total != 1 || len(resp.Results) != 1 || resp.Results[0].Score != 12.5 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Results[0].Highlight[result.HighlightTitle] != "<mark>Go</mark> Tips" {
		t.Errorf("highlight lost: %+v", resp.Results[0].Highlight)
	}
}

func TestSearch_Defaults(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/search?q=go", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if f.search.lastReq.Page() != 1 || f.search.lastReq.PerPage() != request.DefaultPerPage ||
		f.search.lastReq.SortBy() != sortby.Relevance {
		t.Errorf("defaults not applied: %+v", f.search.lastReq)
	}
}

func TestSearch_ConfiguredPageSize(t *testing.T) {
	f := newFixture(t)
	limits := DefaultLimits()
	limits.DefaultPerPage = 20
	limits.MaxPerPage = 30
	srv := NewServer(f.search, f.related, f.trends, f.content, mockAnalyzer{}, f.slugs, mockHealth{}, zap.NewNop(),
		WithLimits(limits))
	r := chi.NewRouter()
	srv.Register(r)
	f.router = r

	f.do(t, http.MethodGet, "/api/search?q=go", "")
	if got := f.search.lastReq.PerPage(); got != 20 {
		t.Errorf("default per_page: got %d, want 20", got)
	}

	f.do(t, http.MethodGet, "/api/search?q=go&per_page=80", "")
	if got := f.search.lastReq.PerPage(); got != 30 {
		t.Errorf("clamped per_page: got %d, want 30", got)
	}
}

func TestSearch_BadParameters(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"non-numeric page", "/api/search?q=go&page=abc", http.StatusBadRequest},
		{"non-numeric per_page", "/api/search?q=go&per_page=ten", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodGet, tt.target, "")
			if rr.Code != tt.want {
				t.Errorf("got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestSearch_LenientFilters(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/search?q=go&sort=random&category=sports", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if f.search.lastReq.SortBy() != sortby.Relevance {
		t.Errorf("sort: got %q", f.search.lastReq.SortBy())
	}
	if !f.search.lastReq.MatchesNothing() {
		t.Errorf("unknown category not passed through: %q", f.search.lastReq.Category())
	}
}

func TestSearch_InternalErrorHidden(t *testing.T) {
	f := newFixture(t)
	f.search.err = errors.New("database is locked")

	rr := f.do(t, http.MethodGet, "/api/search?q=go", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %d", rr.Code)
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Code != ErrorCodeInternalError || resp.Message != "internal error" {
		t.Errorf("internal details leaked: %+v", resp)
	}
}

func TestSuggest_DefaultLimit(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/search/suggest?q=Go", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if f.search.lastPrefix != "Go" || f.search.lastLimit != DefaultLimits().SuggestLimit {
		t.Errorf("prefix=%q limit=%d", f.search.lastPrefix, f.search.lastLimit)
	}
	out := decode[[]suggestion](t, rr)
	if len(out) != 1 || out[0].Type != "title" {
		t.Errorf("unexpected suggestions: %+v", out)
	}
}

func TestSemanticSearch(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/search/semantic?q=flask+web", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if f.search.lastPrefix != "flask web" || f.search.lastLimit != DefaultLimits().SemanticLimit {
		t.Errorf("query=%q limit=%d", f.search.lastPrefix, f.search.lastLimit)
	}
	resp := decode[semanticResponse](t, rr)
	if resp.Query != "flask web" || len(resp.Results) != 1 || resp.Results[0].Score != 1.25 {
		t.Errorf("unexpected response: %+v", resp)
	}

	rr = f.do(t, http.MethodGet, "/api/search/semantic?q=go&limit=many", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("non-numeric limit: got %d", rr.Code)
	}
}

func TestSearchByTags_RepeatedParameter(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/search/tags?tag=go&tag=web&limit=3", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if len(f.search.lastTags) != 2 || f.search.lastTags[1] != "web" || f.search.lastLimit != 3 {
		t.Errorf("tags=%v limit=%d", f.search.lastTags, f.search.lastLimit)
	}
}

func TestRelated(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/content/7/related?method=tags&limit=3", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if f.related.lastMethod != method.Tags || f.related.lastLimit != 3 {
		t.Errorf("method=%q limit=%d", f.related.lastMethod, f.related.lastLimit)
	}
	if resp := decode[listResponse](t, rr); resp.Count != 1 || resp.Items[0].ID != 2 {
		t.Errorf("unexpected items: %+v", resp)
	}
}

func TestRelated_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		target string
		want   int
	}{
		{"/api/content/404/related", http.StatusNotFound},
		{"/api/content/7/related?method=random", http.StatusBadRequest},
		{"/api/content/abc/related", http.StatusBadRequest},
		{"/api/content/0/related", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rr := f.do(t, http.MethodGet, tt.target, "")
		if rr.Code != tt.want {
			t.Errorf("%s: got %d, want %d", tt.target, rr.Code, tt.want)
		}
	}
}

func TestCounters(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/content/3/view", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("view status %d", rr.Code)
	}
	if resp := decode[counterResponse](t, rr); resp.ID != 3 || resp.Count != 1 {
		t.Errorf("unexpected counter: %+v", resp)
	}

	rr = f.do(t, http.MethodPost, "/api/content/3/like", "")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("like with failing store: got %d", rr.Code)
	}
}

func TestContentCRUD(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/content",
		`{"title":"Go Tips","body":"# Go","category":"tech","tags":["go"],"published":true}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rr.Code, rr.Body.String())
	}
	saved := decode[savedResponse](t, rr)
	if saved.Content.ID != 10 || saved.SEO.Score != 88 || saved.Content.Body == "" {
		t.Errorf("unexpected saved response: %+v", saved)
	}
	if f.content.lastDraft.Category != content.Tech || !f.content.lastDraft.Published {
		t.Errorf("draft not mapped: %+v", f.content.lastDraft)
	}

	rr = f.do(t, http.MethodPut, "/api/content/5", `{"title":"Go Tips","category":"tech"}`)
	if rr.Code != http.StatusOK || f.content.lastDraft.ID != 5 {
		t.Errorf("update: status %d draft %+v", rr.Code, f.content.lastDraft)
	}

	if rr = f.do(t, http.MethodGet, "/api/content/5", ""); rr.Code != http.StatusOK {
		t.Errorf("get status %d", rr.Code)
	}
	if rr = f.do(t, http.MethodGet, "/api/content/404", ""); rr.Code != http.StatusNotFound {
		t.Errorf("get missing status %d", rr.Code)
	}
	if rr = f.do(t, http.MethodDelete, "/api/content/5", ""); rr.Code != http.StatusNoContent {
		t.Errorf("delete status %d", rr.Code)
	}
	if rr = f.do(t, http.MethodGet, "/api/content/5/slug-quality", ""); rr.Code != http.StatusOK {
		t.Errorf("slug quality status %d", rr.Code)
	}
}

func TestContentSave_Errors(t *testing.T) {
	f := newFixture(t)

	if rr := f.do(t, http.MethodPost, "/api/content", `{"title":`); rr.Code != http.StatusBadRequest {
		t.Errorf("malformed body: got %d", rr.Code)
	}
	if rr := f.do(t, http.MethodPost, "/api/content", `{"headline":"x"}`); rr.Code != http.StatusBadRequest {
		t.Errorf("unknown field: got %d", rr.Code)
	}

	f.content.saveErr = fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	rr := f.do(t, http.MethodPost, "/api/content", `{"title":""}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("validation: got %d", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeValidationFailed {
		t.Errorf("validation code: %q", resp.Code)
	}

	f.content.saveErr = fmt.Errorf("save: %w", domain.NewSlugTaken("go-tips", "go-tips-1"))
	rr = f.do(t, http.MethodPost, "/api/content", `{"title":"Go Tips","slug":"go-tips"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("slug taken: got %d", rr.Code)
	}
	body := decode[map[string]any](t, rr)
	if body["code"] != string(ErrorCodeSlugTaken) || body["suggested_slug"] != "go-tips-1" {
		t.Errorf("unexpected conflict body: %v", body)
	}
}

func TestTrendingAndStats(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/api/trending", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if f.trends.lastDays != 7 || f.trends.lastLimit != 10 {
		t.Errorf("defaults: days=%d limit=%d", f.trends.lastDays, f.trends.lastLimit)
	}

	f.do(t, http.MethodGet, "/api/trending?days=30&limit=4", "")
	if f.trends.lastDays != 30 || f.trends.lastLimit != 4 {
		t.Errorf("explicit: days=%d limit=%d", f.trends.lastDays, f.trends.lastLimit)
	}

	rr = f.do(t, http.MethodGet, "/api/popular", "")
	if resp := decode[listResponse](t, rr); resp.Items == nil || resp.Count != 0 {
		t.Errorf("empty list should encode as []: %+v", resp)
	}

	rr = f.do(t, http.MethodGet, "/api/stats/categories", "")
	stats := decode[[]categoryStat](t, rr)
	if len(stats) != 1 || stats[0].Category != "tech" || stats[0].AvgViews != 15.5 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestAnalyzeSEO(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/seo/analyze", `{"title":"abc","body":"defg"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if resp := decode[seoReport](t, rr); resp.Score != 7 || resp.Grade != "D" {
		t.Errorf("unexpected report: %+v", resp)
	}
}

func TestSlugEndpoints(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/api/slug/generate", `{"title":"Hello World","max_length":30,"use_pinyin":false}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("generate status %d: %s", rr.Code, rr.Body.String())
	}
	if resp := decode[slugGenerateResponse](t, rr); resp.Slug != "hello-world" {
		t.Errorf("slug %q", resp.Slug)
	}
	if f.slugs.lastOpts.MaxLength != 30 || f.slugs.lastOpts.UsePinyin {
		t.Errorf("options not applied: %+v", f.slugs.lastOpts)
	}

	rr = f.do(t, http.MethodPost, "/api/slug/generate", `{"titles":["A B","C D"]}`)
	if resp := decode[slugGenerateResponse](t, rr); len(resp.Results) != 2 || resp.Results[1].Slug != "c-d" {
		t.Errorf("batch: %+v", resp)
	}

	if rr = f.do(t, http.MethodPost, "/api/slug/generate", `{}`); rr.Code != http.StatusBadRequest {
		t.Errorf("empty generate: got %d", rr.Code)
	}
	if rr = f.do(t, http.MethodPost, "/api/slug/generate", `{"title":"x","max_length":3}`); rr.Code != http.StatusBadRequest {
		t.Errorf("tiny max_length: got %d", rr.Code)
	}

	rr = f.do(t, http.MethodPost, "/api/slug/analyze", `{"slug":"go-tips"}`)
	if resp := decode[slugReport](t, rr); resp.Slug != "go-tips" || resp.Grade != "C" {
		t.Errorf("analyze: %+v", resp)
	}
	if rr = f.do(t, http.MethodPost, "/api/slug/analyze", `{"slug":" "}`); rr.Code != http.StatusBadRequest {
		t.Errorf("blank slug: got %d", rr.Code)
	}

	rr = f.do(t, http.MethodPost, "/api/slug/variations", `{"title":"Go","count":1}`)
	if out := decode[[]slugVariation](t, rr); len(out) != 1 || out[0].Kind != "standard" {
		t.Errorf("variations: %+v", out)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		status healthuc.Status
		want   int
	}{
		{healthuc.Healthy, http.StatusOK},
		{healthuc.Degraded, http.StatusOK},
		{healthuc.Unhealthy, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		srv := NewServer(nil, nil, nil, nil, nil, nil, mockHealth{report: healthuc.Report{Status: tt.status}}, zap.NewNop())
		r := chi.NewRouter()
		srv.Register(r)

		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
		if rr.Code != tt.want {
			t.Errorf("%s: got %d, want %d", tt.status, rr.Code, tt.want)
		}
	}
}
