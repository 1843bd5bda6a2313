package chi

import (
	"net/http"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/request"
	"github.com/kailas-cloud/portal/internal/domain/search/sortby"
)

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var (
		q        string
		category content.Category
		page     int
		perPage  int
		sort     sortby.SortBy
	)
	if !queryParams(w, r, map[string]any{
		"q": &q, "category": &category, "page": &page, "per_page": &perPage, "sort": &sort,
	}) {
		return
	}
	if perPage <= 0 {
		perPage = s.limits.DefaultPerPage
	}
	if s.limits.MaxPerPage > 0 && perPage > s.limits.MaxPerPage {
		perPage = s.limits.MaxPerPage
	}

	req := request.New(q, category, page, perPage, sort)
	res, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToDTO(req.Query(), res))
}

// Suggest handles GET /api/search/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	var q string
	limit := s.limits.SuggestLimit
	if !queryParams(w, r, map[string]any{"q": &q, "limit": &limit}) {
		return
	}

	out, err := s.search.Suggest(r.Context(), q, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsToDTO(out))
}

// SearchByTags handles GET /api/search/tags?tag=a&tag=b.
func (s *Server) SearchByTags(w http.ResponseWriter, r *http.Request) {
	var tags []string
	limit := s.limits.TrendingLimit
	if !queryParams(w, r, map[string]any{"tag": &tags, "limit": &limit}) {
		return
	}

	items, err := s.search.SearchByTags(r.Context(), tags, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listToDTO(items))
}

// SemanticSearch handles GET /api/search/semantic.
func (s *Server) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	var q string
	limit := s.limits.SemanticLimit
	if !queryParams(w, r, map[string]any{"q": &q, "limit": &limit}) {
		return
	}

	out, err := s.search.SemanticSearch(r.Context(), q, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, semanticResponse{Query: q, Results: hitsToDTO(out)})
}
