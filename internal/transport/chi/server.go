// Package chi exposes the portal search, recommendation and SEO operations
// over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/domain"
	healthuc "github.com/kailas-cloud/portal/internal/usecase/health"
	searchuc "github.com/kailas-cloud/portal/internal/usecase/search"
	"github.com/kailas-cloud/portal/internal/usecase/slug"
)

// ErrorCode is the machine-readable error code of an error response.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeSlugTaken        ErrorCode = "slug_taken"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// maxBodyBytes caps request bodies; content bodies are Markdown documents.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits are the listing defaults used when a request omits them.
type Limits struct {
	DefaultPerPage int
	MaxPerPage     int
	SuggestLimit   int
	SemanticLimit  int
	RelatedLimit   int
	TrendingDays   int
	TrendingLimit  int
	Slug           slug.Options
}

// DefaultLimits mirrors the config defaults.
func DefaultLimits() Limits {
	return Limits{
		DefaultPerPage: 10,
		MaxPerPage:     50,
		SuggestLimit:   5,
		SemanticLimit:  10,
		RelatedLimit:   5,
		TrendingDays:   7,
		TrendingLimit:  10,
		Slug:           slug.DefaultOptions(),
	}
}

// Server serves the portal HTTP API.
type Server struct {
	search        searchuc.Searcher
	related       Recommender
	trending      TrendReader
	content       ContentService
	analyzer      Analyzer
	slugs         SlugMaker
	health        HealthChecker
	tags          TagLister
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// Option configures a Server.
type Option func(*Server)

// WithLimits overrides the listing defaults.
func WithLimits(l Limits) Option {
	return func(s *Server) { s.limits = l }
}

// WithTags enables GET /api/tags/popular.
func WithTags(t TagLister) Option {
	return func(s *Server) { s.tags = t }
}

// NewServer creates an HTTP API server.
func NewServer(
	search searchuc.Searcher,
	related Recommender,
	trending TrendReader,
	content ContentService,
	analyzer Analyzer,
	slugs SlugMaker,
	health HealthChecker,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		search:   search,
		related:  related,
		trending: trending,
		content:  content,
		analyzer: analyzer,
		slugs:    slugs,
		health:   health,
		limits:   DefaultLimits(),
		logger:   logger,
	}
	for _, o := range opts {
		o(s)
	}
	s.errorHandlers = []errorHandler{
		slugTakenHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, ErrorCodeValidationFailed),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/search/suggest", s.Suggest)
		r.Get("/search/tags", s.SearchByTags)
		r.Get("/search/semantic", s.SemanticSearch)

		r.Post("/content", s.CreateContent)
		r.Route("/content/{id}", func(r chi.Router) {
			r.Get("/", s.GetContent)
			r.Put("/", s.UpdateContent)
			r.Delete("/", s.DeleteContent)
			r.Get("/related", s.Related)
			r.Post("/view", s.RecordView)
			r.Post("/like", s.RecordLike)
			r.Get("/slug-quality", s.ContentSlugQuality)
		})

		r.Get("/trending", s.Trending)
		r.Get("/popular", s.Popular)
		r.Get("/featured", s.Featured)
		r.Get("/stats/categories", s.CategoryStats)
		if s.tags != nil {
			r.Get("/tags/popular", s.PopularTags)
		}

		r.Post("/seo/analyze", s.AnalyzeSEO)
		r.Post("/slug/analyze", s.AnalyzeSlug)
		r.Post("/slug/generate", s.GenerateSlug)
		r.Post("/slug/variations", s.SlugVariations)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// decodeBody reads a JSON request body. Unknown fields are rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var ste *domain.SlugTakenError
	if errors.As(err, &ste) {
		return ste.Error()
	}
	for _, s := range []error{domain.ErrNotFound, domain.ErrInvalidArgument, domain.ErrSlugTaken} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// slugTakenHandler reports a slug conflict together with a free alternative.
func slugTakenHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrSlugTaken) {
		return false
	}
	var ste *domain.SlugTakenError
	if errors.As(err, &ste) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"code":           ErrorCodeSlugTaken,
			"message":        msg,
			"suggested_slug": ste.Suggested,
		})
		return true
	}
	writeError(w, http.StatusConflict, ErrorCodeSlugTaken, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
