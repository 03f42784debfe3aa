package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
)

var _ storage.Store = (*MockStore)(nil)

// MockStore is a testify mock of the whole persistence gateway.
type MockStore struct {
	mock.Mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (m *MockStore) Close() {}

func (m *MockStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) FindByID(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) SetRole(ctx context.Context, id int64, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockStore) AddToWatchlist(ctx context.Context, userID, movieID int64) error {
	return m.Called(ctx, userID, movieID).Error(0)
}

func (m *MockStore) RemoveFromWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ListWatchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]models.WatchlistEntry)
	return entries, args.Error(1)
}

func (m *MockStore) InWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) ListMovies(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]models.Movie)
	return movies, args.Error(1)
}

func (m *MockStore) FindMovieIDByTitle(ctx context.Context, title string) (int64, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) VideoLink(ctx context.Context, title string) (string, error) {
	args := m.Called(ctx, title)
	return args.String(0), args.Error(1)
}

func (m *MockStore) CreateMovie(ctx context.Context, movie models.Movie) (int64, error) {
	args := m.Called(ctx, movie)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UpdateMovie(ctx context.Context, movie models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockStore) DeleteMovie(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) AddMovieActors(ctx context.Context, movieID int64, actorIDs []int64) error {
	return m.Called(ctx, movieID, actorIDs).Error(0)
}

func (m *MockStore) ListMovieActors(ctx context.Context, movieID int64) ([]models.Actor, error) {
	args := m.Called(ctx, movieID)
	actors, _ := args.Get(0).([]models.Actor)
	return actors, args.Error(1)
}

func (m *MockStore) ListGenres(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]models.Genre)
	return genres, args.Error(1)
}

func (m *MockStore) CreateGenre(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UpdateGenre(ctx context.Context, genre models.Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *MockStore) DeleteGenre(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) ListDirectors(ctx context.Context) ([]models.Director, error) {
	args := m.Called(ctx)
	directors, _ := args.Get(0).([]models.Director)
	return directors, args.Error(1)
}

func (m *MockStore) CreateDirector(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListActors(ctx context.Context) ([]models.Actor, error) {
	args := m.Called(ctx)
	actors, _ := args.Get(0).([]models.Actor)
	return actors, args.Error(1)
}

func (m *MockStore) CreateActor(ctx context.Context, actor models.Actor) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) UpdateActor(ctx context.Context, actor models.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockStore) DeleteActor(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
