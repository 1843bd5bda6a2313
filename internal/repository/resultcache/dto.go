package resultcache

import (
	"time"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
)

type itemDTO struct {
	ID              int64     `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Summary         string    `json:"summary"`
	MetaDescription string    `json:"meta_description"`
	Category        string    `json:"category"`
	Published       bool      `json:"published"`
	Featured        bool      `json:"featured"`
	ViewCount       int       `json:"view_count"`
	LikeCount       int       `json:"like_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Tags            []string  `json:"tags"`
}

type resultDTO struct {
	Item      itemDTO           `json:"item"`
	Score     float64           `json:"score"`
	Highlight map[string]string `json:"highlight"`
}

type pageDTO struct {
	Results  []resultDTO `json:"results"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PerPage  int         `json:"per_page"`
	Keywords []string    `json:"keywords"`
}

type suggestionDTO struct {
	Text string `json:"text"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

func toItemDTO(it content.Item) itemDTO {
	s := it.Snapshot()
	return itemDTO{
		ID:              s.ID,
		Slug:            s.Slug,
		Title:           s.Title,
		Body:            s.Body,
		Summary:         s.Summary,
		MetaDescription: s.MetaDescription,
		Category:        string(s.Category),
		Published:       s.Published,
		Featured:        s.Featured,
		ViewCount:       s.ViewCount,
		LikeCount:       s.LikeCount,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Tags:            s.Tags,
	}
}

func (d itemDTO) toItem() content.Item {
	return content.Reconstruct(content.Snapshot{
		ID:              d.ID,
		Slug:            d.Slug,
		Title:           d.Title,
		Body:            d.Body,
		Summary:         d.Summary,
		MetaDescription: d.MetaDescription,
		Category:        content.Category(d.Category),
		Published:       d.Published,
		Featured:        d.Featured,
		ViewCount:       d.ViewCount,
		LikeCount:       d.LikeCount,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Tags:            d.Tags,
	})
}

func toPageDTO(p result.Page) pageDTO {
	out := pageDTO{
		Total:    p.Total(),
		Page:     p.Page(),
		PerPage:  p.PerPage(),
		Keywords: p.Keywords(),
	}
	out.Results = toResultDTOs(p.Results())
	return out
}

func (d pageDTO) toPage() result.Page {
	return result.NewPage(fromResultDTOs(d.Results), d.Total, d.Page, d.PerPage, d.Keywords)
}

func toResultDTOs(in []result.Result) []resultDTO {
	out := make([]resultDTO, 0, len(in))
	for _, r := range in {
		out = append(out, resultDTO{Item: toItemDTO(r.Item()), Score: r.Score(), Highlight: r.Highlight()})
	}
	return out
}

func fromResultDTOs(in []resultDTO) []result.Result {
	out := make([]result.Result, 0, len(in))
	for _, r := range in {
		out = append(out, result.New(r.Item.toItem(), r.Score, r.Highlight))
	}
	return out
}

func toSuggestionDTOs(in []result.Suggestion) []suggestionDTO {
	out := make([]suggestionDTO, 0, len(in))
	for _, s := range in {
		out = append(out, suggestionDTO{Text: s.Text, Type: string(s.Type), URL: s.URL})
	}
	return out
}

func fromSuggestionDTOs(in []suggestionDTO) []result.Suggestion {
	out := make([]result.Suggestion, 0, len(in))
	for _, s := range in {
		out = append(out, result.Suggestion{Text: s.Text, Type: result.SuggestionType(s.Type), URL: s.URL})
	}
	return out
}

func toItemDTOs(items []content.Item) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out
}

func fromItemDTOs(in []itemDTO) []content.Item {
	out := make([]content.Item, 0, len(in))
	for _, d := range in {
		out = append(out, d.toItem())
	}
	return out
}
