// Package http serves the research web front-end: the search form, the
// rendered result tables, and document export.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/DennisFaucher/aisalesplan"
)

// DefaultShutdownTimeout bounds how long Close waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Request body limits.
const (
	maxSearchBody = 1 << 20
	maxExportBody = 10 << 20
)

// Metrics instruments the server and exposes the collected metrics.
type Metrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// Server is the HTTP front-end.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the listen address, for example ":5000".
	Addr string

	Researcher aisalesplan.Researcher
	Exporter   aisalesplan.Exporter

	// Optional services.
	ResearchService aisalesplan.ResearchService
	Converter       aisalesplan.Converter
	Limiter         aisalesplan.Limiter
	Metrics         Metrics

	Logger          *slog.Logger
	ShutdownTimeout time.Duration

	pages *pages
}

// NewServer creates a new Server.
func NewServer() *Server {
	return &Server{
		ShutdownTimeout: DefaultShutdownTimeout,
		pages:           mustParsePages(),
	}
}

// Handler returns the server's routes wrapped in its middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("POST /search", s.limit(http.HandlerFunc(s.handleSearch)))
	mux.Handle("POST /export", s.limit(http.HandlerFunc(s.handleExport)))
	mux.HandleFunc("GET /research/{id}", s.handleResearch)
	mux.HandleFunc("GET /research/{id}/export", s.handleResearchExport)
	mux.HandleFunc("DELETE /research/{id}", s.handleDeleteResearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics.Handler())
	}

	var h http.Handler = mux
	if s.Metrics != nil {
		h = s.Metrics.Middleware(h)
	}
	h = s.recoverPanics(h)
	h = s.logRequests(h)
	return h
}

// Open begins listening on Addr and serves requests in the background.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger().Handler(), slog.LevelWarn),
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger().Error("http server", "err", err)
		}
	}()

	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server, waiting up to ShutdownTimeout
// for in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	timeout := s.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
