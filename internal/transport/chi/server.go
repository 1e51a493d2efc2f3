package chi

import (
	"context"
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/domain/document"
	"github.com/kailas-cloud/moviedex/internal/domain/request"
	logpkg "github.com/kailas-cloud/moviedex/internal/logger"
	filmuc "github.com/kailas-cloud/moviedex/internal/usecase/film"
	genreuc "github.com/kailas-cloud/moviedex/internal/usecase/genre"
	healthuc "github.com/kailas-cloud/moviedex/internal/usecase/health"
	personuc "github.com/kailas-cloud/moviedex/internal/usecase/person"
	"github.com/kailas-cloud/moviedex/internal/version"
)

// Path parameter names.
const (
	filmIDParam   = "film_id"
	genreIDParam  = "genre_id"
	personIDParam = "person_id"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the read API over the entity services.
type Server struct {
	films         *filmuc.Service
	genres        *genreuc.Service
	persons       *personuc.Service
	health        *healthuc.Service
	params        *paramBinder
	errorHandlers []errorHandler
}

// PageLimits bound the page_size parameter.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// NewServer creates an HTTP API server.
func NewServer(
	films *filmuc.Service,
	genres *genreuc.Service,
	persons *personuc.Service,
	health *healthuc.Service,
	limits PageLimits,
) *Server {
	return &Server{
		films:   films,
		genres:  genres,
		persons: persons,
		health:  health,
		params:  newParamBinder(limits.DefaultSize, limits.MaxSize),
		errorHandlers: []errorHandler{
			sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
			sentinelHandler(domain.ErrInvalidRequest, http.StatusUnprocessableEntity, ErrorCodeValidationFailed),
			sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, ErrorCodeUpstreamUnavailable),
		},
	}
}

// ListFilms handles GET /api/v1/films.
func (s *Server) ListFilms(w http.ResponseWriter, r *http.Request) {
	req, ok := s.bindRequest(w, r, paramPageNumber, paramPageSize, paramSort, paramGenre)
	if !ok {
		return
	}
	docs, err := s.films.List(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// SearchFilms handles GET /api/v1/films/search.
func (s *Server) SearchFilms(w http.ResponseWriter, r *http.Request) {
	req, ok := s.bindRequest(w, r, paramQuery, paramPageNumber, paramPageSize)
	if !ok {
		return
	}
	docs, err := s.films.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetFilm handles GET /api/v1/films/{film_id}.
func (s *Server) GetFilm(w http.ResponseWriter, r *http.Request) {
	s.getOne(w, r, filmIDParam, "film not found", s.films.Get)
}

// ListGenres handles GET /api/v1/genres.
func (s *Server) ListGenres(w http.ResponseWriter, r *http.Request) {
	req, ok := s.bindRequest(w, r, paramPageNumber, paramPageSize)
	if !ok {
		return
	}
	docs, err := s.genres.List(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// SearchGenres handles GET /api/v1/genres/search.
func (s *Server) SearchGenres(w http.ResponseWriter, r *http.Request) {
	req, ok := s.bindRequest(w, r, paramQuery, paramPageNumber, paramPageSize)
	if !ok {
		return
	}
	docs, err := s.genres.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetGenre handles GET /api/v1/genres/{genre_id}.
func (s *Server) GetGenre(w http.ResponseWriter, r *http.Request) {
	s.getOne(w, r, genreIDParam, "genre not found", s.genres.Get)
}

// SearchPersons handles GET /api/v1/persons/search.
func (s *Server) SearchPersons(w http.ResponseWriter, r *http.Request) {
	req, ok := s.bindRequest(w, r, paramQuery, paramPageNumber, paramPageSize)
	if !ok {
		return
	}
	docs, err := s.persons.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetPerson handles GET /api/v1/persons/{person_id}.
func (s *Server) GetPerson(w http.ResponseWriter, r *http.Request) {
	s.getOne(w, r, personIDParam, "person not found", s.persons.Get)
}

// PersonFilms handles GET /api/v1/persons/{person_id}/film.
func (s *Server) PersonFilms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, personIDParam)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "person not found")
		return
	}
	req, ok := s.bindRequest(w, r, paramPageNumber, paramPageSize, paramSort)
	if !ok {
		return
	}
	docs, err := s.persons.Films(r.Context(), id, req)
	if err != nil {
		s.handleDomainError(w, r, err, "person not found")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// getOne serves a point lookup. Ids that are not UUIDs cannot exist, so they
// are answered with 404 without touching the cache or the search engine.
func (s *Server) getOne(
	w http.ResponseWriter, r *http.Request, param, notFound string,
	get func(context.Context, string) (document.Document, error),
) {
	id, err := pathID(r, param)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, notFound)
		return
	}
	doc, err := get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err, notFound)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// bindRequest parses the named query parameters into a domain request,
// answering 422 itself when they are malformed.
func (s *Server) bindRequest(w http.ResponseWriter, r *http.Request, names ...string) (request.Request, bool) {
	p, err := s.params.bind(r, names...)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, ErrorCodeValidationFailed, err.Error())
		return request.Request{}, false
	}
	req, err := s.params.request(p)
	if err != nil {
		s.handleDomainError(w, r, err, "")
		return request.Request{}, false
	}
	return req, true
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

// safeDomainMessage returns a client-facing message without exposing internals.
// Invalid requests keep their detail since it only echoes the caller's input.
func safeDomainMessage(err error, notFound string) string {
	switch {
	case errors.Is(err, domain.ErrNotFound) && notFound != "":
		return notFound
	case errors.Is(err, domain.ErrInvalidRequest):
		return err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "search engine unavailable"
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

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	logger := logpkg.FromContext(r.Context())
	msg := safeDomainMessage(err, notFound)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
