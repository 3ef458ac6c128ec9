// Package server exposes the engine over HTTP: one route for the normalized
// activity list and one for the full overview. The handlers stay thin; every
// failure is a typed error from the engine translated into a JSON status.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AshifAli007/portfolio-v4/internal/service"
	"github.com/AshifAli007/portfolio-v4/internal/strava"
)

// overviewCacheControl makes the overview response CDN-friendly.
const overviewCacheControl = "s-maxage=300, stale-while-revalidate=900"

// Server hosts the engine's HTTP routes.
type Server struct {
	svc    *service.OverviewService
	logger *zap.Logger
}

// New creates a Server around the overview service.
func New(svc *service.OverviewService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

// Routes builds the router for the two public operations.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/api/strava/activities", s.handleActivities)
	r.Get("/api/strava/overview", s.handleOverview)

	return r
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	activities, err := s.svc.ListActivities(r.Context(), force)
	if err != nil {
		s.writeError(w, err, "unable to fetch activities")
		return
	}

	s.writeJSON(w, http.StatusOK, activities)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	overview, err := s.svc.GetOverview(r.Context(), force)
	if err != nil {
		s.writeError(w, err, "failed to load overview")
		return
	}

	w.Header().Set("Cache-Control", overviewCacheControl)
	s.writeJSON(w, http.StatusOK, overview)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error, msg string) {
	status := http.StatusInternalServerError

	var (
		authCfg     *strava.AuthConfigError
		rateLimited *strava.RateLimitedError
		refresh     *strava.TokenRefreshError
		upstream    *strava.UpstreamError
	)
	switch {
	case errors.Is(err, strava.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.As(err, &authCfg):
		status = http.StatusServiceUnavailable
	case errors.As(err, &rateLimited):
		status = http.StatusServiceUnavailable
	case errors.Is(err, strava.ErrAuthFailed):
		status = http.StatusBadGateway
	case errors.As(err, &refresh):
		status = http.StatusBadGateway
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	s.logger.Error("request failed", zap.Error(err), zap.Int("status", status))
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("dur", time.Since(start)),
		)
	})
}
