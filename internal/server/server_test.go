package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/movie-catalog/internal/auth"
	"github.com/hongminglow/movie-catalog/internal/config"
	"github.com/hongminglow/movie-catalog/internal/middleware"
	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/service"
	"github.com/hongminglow/movie-catalog/internal/storage/memory"
)

func testConfig() config.Config {
	return config.Config{
		Port:              "8080",
		JWTSecret:         "server-test-secret",
		JWTIssuer:         "movie-catalog",
		JWTTTL:            time.Hour,
		CORSOrigins:       []string{"*"},
		LoginMaxAttempts:  5,
		LoginBlockWindow:  time.Minute,
		MinPasswordLength: 8,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRegistersEveryRoute(t *testing.T) {
	var srv *Server
	require.NotPanics(t, func() {
		srv = New(testConfig(), memory.New(), discardLogger())
	})

	// each route answers with something other than the mux's own 404/405
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health"},
		{http.MethodPost, "/api/users/signup"},
		{http.MethodPost, "/api/users/login"},
		{http.MethodPost, "/api/users/login-admin"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPost, "/api/users/watchlist"},
		{http.MethodGet, "/api/users/watchlist/1"},
		{http.MethodGet, "/api/users/watchlist/1/contains/2"},
		{http.MethodDelete, "/api/users/watchlist/1/remove/2"},
		{http.MethodGet, "/api/movies"},
		{http.MethodGet, "/api/movies/genres"},
		{http.MethodGet, "/api/movies/directors"},
		{http.MethodGet, "/api/movies/video-link/Matrix"},
		{http.MethodGet, "/api/movies/credits/1"},
		{http.MethodPost, "/api/movies/create"},
		{http.MethodPut, "/api/movies/1"},
		{http.MethodDelete, "/api/movies/1"},
		{http.MethodPost, "/api/movies/actors"},
		{http.MethodGet, "/api/genres"},
		{http.MethodPost, "/api/genres/create"},
		{http.MethodPut, "/api/genres/1"},
		{http.MethodDelete, "/api/genres/1"},
		{http.MethodGet, "/api/actors"},
		{http.MethodPost, "/api/actors/create"},
		{http.MethodPut, "/api/actors/1"},
		{http.MethodDelete, "/api/actors/1"},
		{http.MethodGet, "/api/directors"},
		{http.MethodPost, "/api/directors/create"},
	}
	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
			if rec.Code == http.StatusNotFound {
				// handler-level 404s carry a JSON message, the mux's do not
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestSeedAdmin(t *testing.T) {
	store := memory.New()
	cfg := testConfig()
	srv := New(cfg, store, discardLogger())
	require.NoError(t, srv.SeedAdmin(context.Background()))

	_, err := store.FindByEmail(context.Background(), "root@example.com")
	require.Error(t, err)

	cfg.AdminEmail, cfg.AdminPassword, cfg.AdminUsername = "Root@Example.com", "change-me-now", "root"
	srv = New(cfg, store, discardLogger())
	require.NoError(t, srv.SeedAdmin(context.Background()))

	admin, err := store.FindByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestAccountIdentifierTranslatesMissingAccount(t *testing.T) {
	store := memory.New()
	tokens := auth.NewTokenManager("server-test-secret", "movie-catalog", time.Hour)
	ident := accountIdentifier{auth: service.NewAuthService(store, tokens, discardLogger(), 8)}

	_, err := ident.Identify(context.Background(), 404)
	assert.ErrorIs(t, err, middleware.ErrUnknownAccount)

	created, err := store.CreateUser(context.Background(), models.User{Username: "neo", Email: "neo@example.com", Role: models.RoleUser, PasswordHash: "x"})
	require.NoError(t, err)
	user, err := ident.Identify(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}
