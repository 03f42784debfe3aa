package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/movie-catalog/internal/config"
	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/server"
	"github.com/hongminglow/movie-catalog/internal/storage/memory"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
}

type fixture struct {
	genreID    int64
	directorID int64
	matrixID   int64
	inceptID   int64
}

func testConfig() config.Config {
	return config.Config{
		Port:              "0",
		JWTSecret:         "handler-test-secret",
		JWTIssuer:         "movie-catalog",
		JWTTTL:            time.Hour,
		CORSOrigins:       []string{"*"},
		LoginMaxAttempts:  5,
		LoginBlockWindow:  time.Minute,
		MinPasswordLength: 8,
		AdminEmail:        adminEmail,
		AdminPassword:     adminPassword,
		AdminUsername:     "admin",
	}
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(testConfig(), store, logger)
	require.NoError(t, srv.SeedAdmin(context.Background()))
	return &testAPI{t: t, handler: srv.Handler(), store: store}
}

// seedCatalog inserts a genre, a director and two movies straight into the store.
func (a *testAPI) seedCatalog() fixture {
	a.t.Helper()
	ctx := context.Background()
	var f fixture
	var err error
	f.genreID, err = a.store.CreateGenre(ctx, "Sci-Fi")
	require.NoError(a.t, err)
	f.directorID, err = a.store.CreateDirector(ctx, "Lana Wachowski")
	require.NoError(a.t, err)
	f.matrixID, err = a.store.CreateMovie(ctx, models.Movie{
		Title: "The Matrix", ReleaseDate: "1999-03-31", Description: "Red pill",
		VideoLink: "https://videos.example.com/matrix", GenreID: f.genreID, DirectorID: f.directorID,
	})
	require.NoError(a.t, err)
	f.inceptID, err = a.store.CreateMovie(ctx, models.Movie{
		Title: "Inception", ReleaseDate: "2010-07-16", Description: "Dreams",
		VideoLink: "https://videos.example.com/inception", GenreID: f.genreID, DirectorID: f.directorID,
	})
	require.NoError(a.t, err)
	return f
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

type session struct {
	id    int64
	token string
}

// signupAndLogin registers an account and returns its id and token.
func (a *testAPI) signupAndLogin(username, email, password string) session {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/users/signup", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return a.login("/api/users/login", email, password)
}

func (a *testAPI) login(path, email, password string) session {
	a.t.Helper()
	rec := a.do(http.MethodPost, path, "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(a.t, rec, &body)
	return session{id: body.User.ID, token: body.Token}
}

func (a *testAPI) admin() session {
	return a.login("/api/users/login-admin", adminEmail, adminPassword)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	return body.Message
}
