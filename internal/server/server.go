// Package server exposes the preprocessing pipeline over HTTP: upload a
// spreadsheet, apply operations, download the result.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sheetprep/internal/config"
	"sheetprep/internal/stats"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

type Server struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store
	mux   *http.ServeMux
	nan   stats.NaNPolicy
}

// New builds a server from validated configuration.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	nan, err := stats.ParseNaNPolicy(cfg.NaNPolicy)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:   cfg,
		log:   log,
		store: newStore(),
		mux:   http.NewServeMux(),
		nan:   nan,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("POST /api/upload", s.handleUpload)
	s.mux.HandleFunc("POST /api/datasets/{id}/apply", s.handleApply)
	s.mux.HandleFunc("GET /api/datasets/{id}/download", s.handleDownload)
	s.mux.HandleFunc("DELETE /api/datasets/{id}", s.handleDelete)
}

// Handler returns the mux wrapped in request-id, access-log and recovery
// middleware.
func (s *Server) Handler() http.Handler {
	return s.withMiddleware(s.mux)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				s.log.Error("panic serving request",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.Any("panic", p))
				http.Error(sw, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(sw, r)

		s.log.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)))
	})
}
