// Package server exposes the simulator over HTTP and websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/magefree/arena-go/internal/config"
	"github.com/magefree/arena-go/internal/deck"
	"github.com/magefree/arena-go/internal/game"
	"github.com/magefree/arena-go/internal/input"
	"go.uber.org/zap"
)

// Server serves simulation requests.
type Server struct {
	cfg        config.ServerConfig
	logger     *zap.Logger
	router     *chi.Mux
	httpServer *http.Server
	hub        *Hub
	limiters   *limiterStore
	catalog    *deck.Catalog
}

// Option customizes a server.
type Option func(*Server)

// WithCatalog plays every submitted document against catalog instead of the
// decks the document lists.
func WithCatalog(catalog *deck.Catalog) Option {
	return func(s *Server) {
		s.catalog = catalog
	}
}

// New creates a server with its routes mounted.
func New(cfg config.ServerConfig, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		router:   chi.NewRouter(),
		limiters: newLimiterStore(cfg.RateLimit, cfg.RateBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = newHub(s.simulate, s.limiters, cfg.MaxMessageSize, logger)

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ws", s.hub.ServeWs)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.With(s.rateLimit).Post("/simulate", s.handleSimulate)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	go s.hub.Run()

	s.logger.Info("starting HTTP server", zap.String("address", s.cfg.Address))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and closes every websocket client.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Stop()
	return s.httpServer.Shutdown(ctx)
}

// simulate plays every game of doc with a fresh runner.
func (s *Server) simulate(ctx context.Context, doc *input.Document, emit func(*game.Result) error) (game.Stats, error) {
	catalog := doc.Catalog()
	if s.catalog != nil {
		catalog = s.catalog
	}
	runner := game.NewRunner(s.logger, catalog)
	err := runner.Run(ctx, doc.GamesToRun(), emit)
	return runner.Stats(), err
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
