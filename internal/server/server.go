package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/movie-catalog/internal/auth"
	"github.com/hongminglow/movie-catalog/internal/config"
	"github.com/hongminglow/movie-catalog/internal/http/handlers"
	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/service"
	"github.com/hongminglow/movie-catalog/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner  *http.Server
	cfg    config.Config
	auth   *service.AuthService
	logger *slog.Logger
}

// New wires services, middleware and routes over store and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *slog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authService := service.NewAuthService(store, tokens, logger, cfg.MinPasswordLength)
	watchlist := service.NewWatchlistService(store, store, logger)
	catalog := service.NewCatalogService(store, logger)

	gate := middleware.NewAuthenticator(tokens, accountIdentifier{auth: authService}, logger)
	limiter := middleware.NewRateLimiter(cfg.LoginMaxAttempts, cfg.LoginBlockWindow)

	var db handlers.Pinger
	if p, ok := store.(handlers.Pinger); ok {
		db = p
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), db, logger).Register(mux)
	handlers.NewAuthHandler(authService, gate, limiter, logger).Register(mux)
	handlers.NewWatchlistHandler(watchlist, gate, logger).Register(mux)
	handlers.NewMovieHandler(catalog, gate, logger).Register(mux)
	handlers.NewGenreHandler(catalog, gate, logger).Register(mux)
	handlers.NewActorHandler(catalog, gate, logger).Register(mux)
	handlers.NewDirectorHandler(catalog, gate, logger).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return &Server{inner: httpServer, cfg: cfg, auth: authService, logger: logger}
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// SeedAdmin ensures the configured administrator exists. It is a no-op when
// no admin credentials are configured.
func (s *Server) SeedAdmin(ctx context.Context) error {
	if !s.cfg.SeedAdmin() {
		return nil
	}
	_, err := s.auth.EnsureAdmin(ctx, s.cfg.AdminUsername, s.cfg.AdminEmail, s.cfg.AdminPassword)
	return err
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
