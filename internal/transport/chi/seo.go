package chi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kailas-cloud/portal/internal/usecase/slug"
)

// Slug request bounds.
const (
	minSlugMaxLength  = 10
	maxSlugMaxLength  = 200
	maxBatchTitles    = 100
	defaultVariations = 5
)

// AnalyzeSEO handles POST /api/seo/analyze.
func (s *Server) AnalyzeSEO(w http.ResponseWriter, r *http.Request) {
	var req seoAnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rep := s.analyzer.AnalyzeContent(req.Body, req.Title, req.MetaDescription, req.URL)
	writeJSON(w, http.StatusOK, seoReportToDTO(rep))
}

// AnalyzeSlug handles POST /api/slug/analyze.
func (s *Server) AnalyzeSlug(w http.ResponseWriter, r *http.Request) {
	var req slugAnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Slug) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "slug is required")
		return
	}
	writeJSON(w, http.StatusOK, slugReportToDTO(s.analyzer.AnalyzeSlug(req.Slug)))
}

// GenerateSlug handles POST /api/slug/generate. A single title returns one
// slug; titles returns one entry per title.
func (s *Server) GenerateSlug(w http.ResponseWriter, r *http.Request) {
	var req slugGenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	opts, err := s.slugOptions(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	switch {
	case len(req.Titles) > maxBatchTitles:
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			fmt.Sprintf("at most %d titles per request", maxBatchTitles))
	case len(req.Titles) > 0:
		writeJSON(w, http.StatusOK, slugGenerateResponse{Results: entriesToDTO(s.slugs.Batch(req.Titles, opts))})
	case strings.TrimSpace(req.Title) != "":
		writeJSON(w, http.StatusOK, slugGenerateResponse{Slug: s.slugs.Generate(req.Title, opts)})
	default:
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "title or titles is required")
	}
}

// SlugVariations handles POST /api/slug/variations.
func (s *Server) SlugVariations(w http.ResponseWriter, r *http.Request) {
	var req slugVariationsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "title is required")
		return
	}
	count := req.Count
	if count <= 0 {
		count = defaultVariations
	}
	writeJSON(w, http.StatusOK, variationsToDTO(s.slugs.Variations(req.Title, count)))
}

func (s *Server) slugOptions(req slugGenerateRequest) (slug.Options, error) {
	opts := s.limits.Slug
	if req.MaxLength != nil {
		if *req.MaxLength < minSlugMaxLength || *req.MaxLength > maxSlugMaxLength {
			return slug.Options{}, fmt.Errorf("max_length must be between %d and %d", minSlugMaxLength, maxSlugMaxLength)
		}
		opts.MaxLength = *req.MaxLength
	}
	if req.UsePinyin != nil {
		opts.UsePinyin = *req.UsePinyin
	}
	opts.IncludeDate = req.IncludeDate
	return opts, nil
}
