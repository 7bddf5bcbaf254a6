// Package server exposes the recipe queries over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/recipegraph/internal/graph"
	"github.com/rohankatakam/recipegraph/internal/metrics"
	"github.com/rohankatakam/recipegraph/internal/recipe"
)

// Config holds HTTP server configuration.
type Config struct {
	ListenAddr   string
	CORSOrigins  []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// RateLimit is the sustained request rate across all clients. Zero disables limiting.
	RateLimit float64
	RateBurst int

	Version string
}

// Recipes is the read side of the catalog. *recipe.Service satisfies it.
type Recipes interface {
	ListAll(ctx context.Context) ([]recipe.Summary, error)
	SearchByName(ctx context.Context, query string) ([]recipe.Summary, error)
	SearchByIngredients(ctx context.Context, ingredients []string) ([]recipe.Summary, error)
	SearchByAuthor(ctx context.Context, author string) ([]recipe.AuthorRecipe, error)
	GetDetails(ctx context.Context, name string) (*recipe.Details, error)
}

// HealthChecker probes the graph store. *graph.Client satisfies it.
type HealthChecker interface {
	CheckPoolHealth(ctx context.Context) (*graph.PoolHealthStatus, error)
}

// Deps are the collaborators the routes call into. Health and Metrics are optional.
type Deps struct {
	Recipes Recipes
	Health  HealthChecker
	Metrics *metrics.Recorder
	Logger  logrus.FieldLogger
}

// Server wraps a chi router with huma API and HTTP server.
type Server struct {
	router  chi.Router
	api     huma.API
	cfg     Config
	recipes Recipes
	health  HealthChecker
	metrics *metrics.Recorder
	logger  logrus.FieldLogger
}

// New creates a Server with chi router, huma API, recipe routes, health endpoint and CORS.
func New(cfg Config, deps Deps) (*Server, error) {
	if cfg.ListenAddr == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	if deps.Recipes == nil {
		return nil, fmt.Errorf("recipe service is required")
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("component", "http")

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(requestLogMiddleware(logger, deps.Metrics))
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware(cfg.RateLimit, cfg.RateBurst, logger))

	// Huma API with OpenAPI spec
	humaConfig := huma.DefaultConfig("Recipe Graph API", cfg.Version)
	humaConfig.Info.Description = "Read-only queries over a graph of authors, recipes and ingredients"
	// No $schema links: response bodies are plain arrays and objects
	humaConfig.CreateHooks = nil
	api := humachi.New(r, humaConfig)

	srv := &Server{
		router:  r,
		api:     api,
		cfg:     cfg,
		recipes: deps.Recipes,
		health:  deps.Health,
		metrics: deps.Metrics,
		logger:  logger,
	}

	srv.registerRoutes()
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusNotFound, "not found", logger)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusMethodNotAllowed, "method not allowed", logger)
	})

	return srv, nil
}

// Handler returns the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server and blocks until the context is cancelled,
// then performs graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.ListenAddr, err)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.logger.WithField("addr", ln.Addr().String()).Info("http server listening")

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info("http server stopped")

	return <-errCh
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
