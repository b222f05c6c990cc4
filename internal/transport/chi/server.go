package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
	"github.com/kailas-cloud/bizdex/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/bizdex/internal/logger"
	businessuc "github.com/kailas-cloud/bizdex/internal/usecase/business"
	healthuc "github.com/kailas-cloud/bizdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bizdex/internal/usecase/search"
)

// Server serves the business directory API.
type Server struct {
	businesses    *businessuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	defaultLimit  int
	maxBatchSize  int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	businesses *businessuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		businesses:    businesses,
		search:        search,
		health:        health,
		logger:        logger,
		maxBatchSize:  businessuc.MaxBatchSize,
		errorHandlers: defaultErrorHandlers(),
	}
}

// WithDefaultLimit sets the result cap applied when a search has no limit.
func (s *Server) WithDefaultLimit(n int) *Server {
	if n >= 0 && n <= request.MaxLimit {
		s.defaultLimit = n
	}
	return s
}

// WithMaxBatchSize configures the maximum import size accepted over HTTP.
func (s *Server) WithMaxBatchSize(n int) *Server {
	if n > 0 {
		s.maxBatchSize = n
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/seed", s.Seed)

	r.Route("/businesses", func(r chi.Router) {
		r.Get("/search", s.SearchBusinesses)
		r.Get("/featured", s.FeaturedBusinesses)
		r.Post("/", s.CreateBusiness)
		r.Post("/batch", s.ImportBusinesses)
		r.Get("/{id}", s.GetBusiness)
		r.Patch("/{id}", s.UpdateBusiness)
		r.Get("/{id}/similar", s.SimilarBusinesses)
	})
}

// SearchBusinesses handles GET /businesses/search.
func (s *Server) SearchBusinesses(w http.ResponseWriter, r *http.Request) {
	sq, err := bindSearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	params, err := sq.params(s.defaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	req, err := request.New(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(results))
}

// FeaturedBusinesses handles GET /businesses/featured.
func (s *Server) FeaturedBusinesses(w http.ResponseWriter, r *http.Request) {
	coords, err := bindCoords(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Featured(r.Context(), coords)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(results))
}

// GetBusiness handles GET /businesses/{id}.
func (s *Server) GetBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := s.businesses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, businessToResponse(&b))
}

// SimilarBusinesses handles GET /businesses/{id}/similar.
func (s *Server) SimilarBusinesses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	coords, err := bindCoords(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}
	limit, err := bindLimit(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	current, err := s.businesses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.search.Similar(r.Context(), current.ID, current.CategoryID, coords, limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listToResponse(results))
}

// CreateBusiness handles POST /businesses.
func (s *Server) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req BusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	b, err := s.businesses.Create(r.Context(), businessFromRequest(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/businesses/%s", b.ID))
	writeJSON(w, http.StatusCreated, businessToResponse(&b))
}

// UpdateBusiness handles PATCH /businesses/{id}.
func (s *Server) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var req PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	b, err := s.businesses.Update(r.Context(), chi.URLParam(r, "id"), patchFromRequest(&req))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, businessToResponse(&b))
}

// ImportBusinesses handles POST /businesses/batch.
func (s *Server) ImportBusinesses(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Items) == 0 || len(req.Items) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("items count must be between 1 and %d", s.maxBatchSize))
		return
	}

	items := make([]dombiz.Business, 0, len(req.Items))
	for i := range req.Items {
		items = append(items, businessFromRequest(&req.Items[i]))
	}

	writeJSON(w, http.StatusOK, batchToResponse(s.businesses.Import(r.Context(), items)))
}

// Seed handles POST /seed. Only enabled outside production.
func (s *Server) Seed(w http.ResponseWriter, r *http.Request) {
	results, err := s.businesses.Seed(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batchToResponse(results))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthToResponse(report))
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if l, ok := logpkg.Lookup(r.Context()); ok {
		return l
	}
	return s.logger
}
