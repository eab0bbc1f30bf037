// Package server exposes the discovery run's status over HTTP for
// operators and the hosting ingestion framework.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koustreak/dremcat/internal/catalog"
	"github.com/koustreak/dremcat/internal/logger"
)

// Server serves the status endpoint backed by a run Recorder.
type Server struct {
	recorder *catalog.Recorder
	log      *logger.Logger
	http     *http.Server
}

// New builds a Server for the given recorder listening on addr.
func New(addr string, recorder *catalog.Recorder, log *logger.Logger) *Server {
	if log == nil {
		log = logger.New(nil)
	}
	s := &Server{recorder: recorder, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/v1/runs/current", s.handleCurrentRun)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.log.With().Str("addr", s.http.Addr).Logger().Info("status server listening")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCurrentRun(w http.ResponseWriter, r *http.Request) {
	summary := s.recorder.Summary()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		s.log.ErrorWith("failed to encode run summary", err, nil)
	}
}

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.HTTPEvent().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
