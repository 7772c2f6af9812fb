// Package api is a thin, deterministic HTTP layer over the pricing engine.
// It decodes requests and serializes reports; it NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vfx-cost/core/determinism"
	"vfx-cost/core/pricing"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/logging"
	"vfx-cost/internal/metrics"
)

// Server is the API server
type Server struct {
	router    chi.Router
	engine    *pricing.Engine
	cardHash  determinism.ContentHash
	metrics   *metrics.Manager
	logger    *zap.Logger
	upgrader  websocket.Upgrader
	version   string
	websocket bool
}

// Option configures a Server
type Option func(*Server)

// WithEngine sets the engine requests are priced with
func WithEngine(engine *pricing.Engine) Option {
	return func(s *Server) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithMetrics records request and estimate metrics and exposes GET /metrics
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithWebsocket enables GET /ws/estimate
func WithWebsocket(enabled bool) Option {
	return func(s *Server) {
		s.websocket = enabled
	}
}

// WithLogger sets the request logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new API server
func NewServer(version string, opts ...Option) *Server {
	s := &Server{
		engine:    pricing.NewEngine(nil),
		logger:    logging.Named("api"),
		version:   version,
		websocket: true,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cardHash = s.engine.RateCard().Fingerprint()
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	// Core endpoints
	r.Post("/estimate", s.handleEstimate)
	r.Post("/project", s.handleProject)

	// Supporting endpoints
	r.Get("/rates", s.handleRates)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	if s.metrics.Enabled() {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	if s.websocket {
		r.Get("/ws/estimate", s.handleStream)
	}

	s.router = r
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "vfx-cost",
		"api_version": "v1",
	}, http.StatusOK)
}

// instrument records per-route request metrics
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(status), time.Since(start))
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	body, status := errorBody(err)
	s.metrics.RecordEstimateError(body.Code)
	s.writeJSON(w, ErrorResponse{Error: body}, status)
}

// errorBody maps a typed error onto the envelope and an HTTP status
func errorBody(err error) (ErrorBody, int) {
	e, ok := errors.As(err)
	if !ok {
		return ErrorBody{Code: string(errors.TypeInternal), Message: err.Error()}, http.StatusInternalServerError
	}

	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	body := ErrorBody{Code: string(e.Type), Message: msg, Context: e.Context}
	switch e.Type {
	case errors.TypeInput, errors.TypeParsing, errors.TypeNotSupported:
		return body, http.StatusBadRequest
	case errors.TypePricing:
		return body, http.StatusUnprocessableEntity
	case errors.TypeNotFound:
		return body, http.StatusNotFound
	}
	return body, http.StatusInternalServerError
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
