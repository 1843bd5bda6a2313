package chi

import "net/http"

// Trending handles GET /api/trending.
func (s *Server) Trending(w http.ResponseWriter, r *http.Request) {
	days := s.limits.TrendingDays
	limit := s.limits.TrendingLimit
	if !queryParams(w, r, map[string]any{"days": &days, "limit": &limit}) {
		return
	}

	items, err := s.trending.Trending(r.Context(), days, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listToDTO(items))
}

// Popular handles GET /api/popular.
func (s *Server) Popular(w http.ResponseWriter, r *http.Request) {
	limit := s.limits.TrendingLimit
	if !queryParams(w, r, map[string]any{"limit": &limit}) {
		return
	}

	items, err := s.trending.Popular(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listToDTO(items))
}

// Featured handles GET /api/featured.
func (s *Server) Featured(w http.ResponseWriter, r *http.Request) {
	limit := s.limits.TrendingLimit
	if !queryParams(w, r, map[string]any{"limit": &limit}) {
		return
	}

	items, err := s.trending.Featured(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listToDTO(items))
}

// CategoryStats handles GET /api/stats/categories.
func (s *Server) CategoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.trending.CategoryStats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToDTO(stats))
}

// PopularTags handles GET /api/tags/popular.
func (s *Server) PopularTags(w http.ResponseWriter, r *http.Request) {
	limit := s.limits.TrendingLimit
	if !queryParams(w, r, map[string]any{"limit": &limit}) {
		return
	}

	tags, err := s.tags.Popular(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	out := make([]tagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagDTO{Name: t.Name(), Category: string(t.Category()), UsageCount: t.UsageCount()})
	}
	writeJSON(w, http.StatusOK, out)
}
