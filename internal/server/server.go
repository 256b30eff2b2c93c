// Package server provides the HTTP API for generating and retrieving kundlis.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/config"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/kundli"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Log     zerolog.Logger
	Server  config.ServerConfig
	Service *kundli.Service
	Version string
}

// Server represents the HTTP server.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	cfg     Config
	log     zerolog.Logger
	started time.Time
}

// New creates a server with middleware and routes in place.
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		log:     cfg.Log.With().Str("component", "server").Logger(),
		started: time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	timeout := s.cfg.Server.WriteTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	s.router.Use(middleware.Timeout(timeout))

	// CORS
	origins := s.cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	h := NewKundliHandlers(s.cfg.Service, s.log)
	s.router.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns http.ErrServerClosed after a clean shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.cfg.Version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.LogRequest(s.log, r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
			time.Since(start), middleware.GetReqID(r.Context()))
	})
}
