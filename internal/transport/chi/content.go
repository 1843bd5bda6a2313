package chi

import (
	"context"
	"net/http"

	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/related/method"
	contentuc "github.com/kailas-cloud/portal/internal/usecase/content"
)

// CreateContent handles POST /api/content.
func (s *Server) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.save(w, r, 0, req, http.StatusCreated)
}

// UpdateContent handles PUT /api/content/{id}.
func (s *Server) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.save(w, r, id, req, http.StatusOK)
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, id int64, req contentRequest, status int) {
	saved, err := s.content.Save(r.Context(), contentuc.Draft{
		ID:              id,
		Slug:            req.Slug,
		Title:           req.Title,
		Body:            req.Body,
		Summary:         req.Summary,
		MetaDescription: req.MetaDescription,
		Category:        content.Category(req.Category),
		Tags:            req.Tags,
		Published:       req.Published,
		Featured:        req.Featured,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, status, savedResponse{
		Content: contentDetailToDTO(saved.Item),
		SEO:     seoReportToDTO(saved.SEO),
	})
}

// GetContent handles GET /api/content/{id}.
func (s *Server) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := s.content.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contentDetailToDTO(item))
}

// DeleteContent handles DELETE /api/content/{id}.
func (s *Server) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.content.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Related handles GET /api/content/{id}/related.
func (s *Server) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	limit := s.limits.RelatedLimit
	var m method.Method
	if !queryParams(w, r, map[string]any{"limit": &limit, "method": &m}) {
		return
	}

	items, err := s.related.RelatedByID(r.Context(), id, limit, m)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listToDTO(items))
}

// RecordView handles POST /api/content/{id}/view.
func (s *Server) RecordView(w http.ResponseWriter, r *http.Request) {
	s.counter(w, r, s.content.RecordView)
}

// RecordLike handles POST /api/content/{id}/like.
func (s *Server) RecordLike(w http.ResponseWriter, r *http.Request) {
	s.counter(w, r, s.content.RecordLike)
}

func (s *Server) counter(
	w http.ResponseWriter,
	r *http.Request,
	inc func(ctx context.Context, id int64) (int, error),
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := inc(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counterResponse{ID: id, Count: n})
}

// ContentSlugQuality handles GET /api/content/{id}/slug-quality.
func (s *Server) ContentSlugQuality(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rep, err := s.content.AnalyzeSlug(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slugReportToDTO(rep))
}
