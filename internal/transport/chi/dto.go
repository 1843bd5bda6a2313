package chi

import (
	"time"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
	"github.com/kailas-cloud/portal/internal/domain/seo"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
	trendinguc "github.com/kailas-cloud/portal/internal/usecase/trending"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type contentItem struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	URL             string    `json:"url"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	MetaDescription string    `json:"meta_description,omitempty"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	Published       bool      `json:"published"`
	Featured        bool      `json:"featured"`
	ViewCount       int       `json:"view_count"`
	LikeCount       int       `json:"like_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// contentDetail adds the body, which listings leave out.
type contentDetail struct {
	contentItem
	Body string `json:"body"`
}

type searchHit struct {
	contentItem
	Score     float64           `json:"score"`
	Highlight map[string]string `json:"highlight"`
}

type searchResponse struct {
	Query      string      `json:"query"`
	Results    []searchHit `json:"results"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalPages int         `json:"total_pages"`
	Keywords   []string    `json:"keywords"`
}

type semanticResponse struct {
	Query   string      `json:"query"`
	Results []searchHit `json:"results"`
}

type suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

type listResponse struct {
	Items []contentItem `json:"items"`
	Count int           `json:"count"`
}

type tagDTO struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	UsageCount int    `json:"usage_count"`
}

type counterResponse struct {
	ID    int64 `json:"id"`
	Count int   `json:"count"`
}

type categoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	AvgViews float64 `json:"avg_views"`
}

type contentRequest struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	Summary         string   `json:"summary"`
	MetaDescription string   `json:"meta_description"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Published       bool     `json:"published"`
	Featured        bool     `json:"featured"`
}

type savedResponse struct {
	Content contentDetail `json:"content"`
	SEO     seoReport     `json:"seo"`
}

type seoAnalyzeRequest struct {
	Title           string `json:"title"`
	Body            string `json:"body"`
	MetaDescription string `json:"meta_description"`
	URL             string `json:"url"`
}

type keywordStat struct {
	Word    string  `json:"word"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

type seoBreakdown struct {
	Title       int `json:"title"`
	Description int `json:"description"`
	Content     int `json:"content"`
	Keywords    int `json:"keywords"`
	Readability int `json:"readability"`
	Technical   int `json:"technical"`
}

type seoStructure struct {
	Chars            int     `json:"chars"`
	H1               int     `json:"h1"`
	H2               int     `json:"h2"`
	H3               int     `json:"h3"`
	Lists            int     `json:"lists"`
	Links            int     `json:"links"`
	Images           int     `json:"images"`
	ImagesMissingAlt int     `json:"images_missing_alt"`
	Sentences        int     `json:"sentences"`
	Paragraphs       int     `json:"paragraphs"`
	AvgSentenceLen   float64 `json:"avg_sentence_length"`
}

type seoReport struct {
	Score           int           `json:"score"`
	Grade           string        `json:"grade"`
	Status          string        `json:"status"`
	Breakdown       seoBreakdown  `json:"breakdown"`
	Structure       seoStructure  `json:"structure"`
	Keywords        []keywordStat `json:"keywords"`
	WordCount       int           `json:"word_count"`
	ReadingMinutes  int           `json:"reading_minutes"`
	Issues          []string      `json:"issues"`
	Recommendations []string      `json:"recommendations"`
	Priority        []string      `json:"priority,omitempty"`
}

type slugAnalyzeRequest struct {
	Slug string `json:"slug"`
}

type slugReport struct {
	Slug            string   `json:"slug"`
	Score           int      `json:"score"`
	Grade           string   `json:"grade"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

type slugGenerateRequest struct {
	Title       string   `json:"title"`
	Titles      []string `json:"titles"`
	MaxLength   *int     `json:"max_length"`
	UsePinyin   *bool    `json:"use_pinyin"`
	IncludeDate bool     `json:"include_date"`
}

type slugEntry struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type slugGenerateResponse struct {
	Slug    string      `json:"slug,omitempty"`
	Results []slugEntry `json:"results,omitempty"`
}

type slugVariationsRequest struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

type slugVariation struct {
	Kind string `json:"kind"`
	Slug string `json:"slug"`
}

func contentToDTO(it content.Item) contentItem {
	tags := it.Tags()
	if tags == nil {
		tags = []string{}
	}
	return contentItem{
		ID:              it.ID(),
		Slug:            it.Slug(),
		URL:             it.URL(),
		Title:           it.Title(),
		Summary:         it.Summary(),
		MetaDescription: it.MetaDescription(),
		Category:        string(it.Category()),
		Tags:            tags,
		Published:       it.Published(),
		Featured:        it.Featured(),
		ViewCount:       it.ViewCount(),
		LikeCount:       it.LikeCount(),
		CreatedAt:       it.CreatedAt(),
		UpdatedAt:       it.UpdatedAt(),
	}
}

func contentDetailToDTO(it content.Item) contentDetail {
	return contentDetail{contentItem: contentToDTO(it), Body: it.Body()}
}

func listToDTO(items []content.Item) listResponse {
	out := make([]contentItem, 0, len(items))
	for _, it := range items {
		out = append(out, contentToDTO(it))
	}
	return listResponse{Items: out, Count: len(out)}
}

func hitsToDTO(results []result.Result) []searchHit {
	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{
			contentItem: contentToDTO(r.Item()),
			Score:       r.Score(),
			Highlight:   r.Highlight(),
		})
	}
	return hits
}

func pageToDTO(query string, p result.Page) searchResponse {
	hits := hitsToDTO(p.Results())
	keywords := p.Keywords()
	if keywords == nil {
		keywords = []string{}
	}
	return searchResponse{
		Query:      query,
		Results:    hits,
		Total:      p.Total(),
		Page:       p.Page(),
		PerPage:    p.PerPage(),
		TotalPages: p.TotalPages(),
		Keywords:   keywords,
	}
}

func suggestionsToDTO(in []result.Suggestion) []suggestion {
	out := make([]suggestion, 0, len(in))
	for _, s := range in {
		out = append(out, suggestion{Text: s.Text, Type: string(s.Type), URL: s.URL})
	}
	return out
}

func statsToDTO(in []trendinguc.CategoryStat) []categoryStat {
	out := make([]categoryStat, 0, len(in))
	for _, s := range in {
		out = append(out, categoryStat{Category: string(s.Category), Count: s.Count, AvgViews: s.AvgViews})
	}
	return out
}

func seoReportToDTO(r seo.Report) seoReport {
	kw := make([]keywordStat, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		kw = append(kw, keywordStat{Word: k.Word, Count: k.Count, Density: k.Density})
	}
	st := r.Structure
	return seoReport{
		Score:  r.Score,
		Grade:  string(r.Grade),
		Status: string(r.Status),
		Breakdown: seoBreakdown{
			Title:       r.Breakdown.Title,
			Description: r.Breakdown.Description,
			Content:     r.Breakdown.Content,
			Keywords:    r.Breakdown.Keywords,
			Readability: r.Breakdown.Readability,
			Technical:   r.Breakdown.Technical,
		},
		Structure: seoStructure{
			Chars:            st.Chars,
			H1:               st.H1,
			H2:               st.H2,
			H3:               st.H3,
			Lists:            st.Lists,
			Links:            st.Links,
			Images:           st.Images,
			ImagesMissingAlt: st.ImagesMissingAlt,
			Sentences:        st.Sentences,
			Paragraphs:       st.Paragraphs,
			AvgSentenceLen:   st.AvgSentenceLen,
		},
		Keywords:        kw,
		WordCount:       r.WordCount,
		ReadingMinutes:  r.ReadingMinutes,
		Issues:          r.Issues,
		Recommendations: r.Recommendations,
		Priority:        r.Priority,
	}
}

func slugReportToDTO(r seo.SlugReport) slugReport {
	return slugReport{
		Slug:            r.Slug,
		Score:           r.Score,
		Grade:           string(r.Grade),
		Issues:          r.Issues,
		Recommendations: r.Recommendations,
	}
}

func entriesToDTO(in []slug.Entry) []slugEntry {
	out := make([]slugEntry, 0, len(in))
	for _, e := range in {
		out = append(out, slugEntry{Title: e.Title, Slug: e.Slug})
	}
	return out
}

func variationsToDTO(in []slug.Variation) []slugVariation {
	out := make([]slugVariation, 0, len(in))
	for _, v := range in {
		out = append(out, slugVariation{Kind: string(v.Kind), Slug: v.Slug})
	}
	return out
}
