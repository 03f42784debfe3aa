package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
)

const (
	MsgRequiredMovieFields = "Please fill out all required fields."
	dateLayout             = "2006-01-02"
)

// CatalogService runs the CRUD flows behind the admin screens.
type CatalogService struct {
	store  storage.CatalogStore
	logger *slog.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(store storage.CatalogStore, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// ListMovies returns all movies with genre and director names.
func (s *CatalogService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Error fetching movies", err)
	}
	return orEmpty(movies), nil
}

// VideoLink resolves a movie title to its playable reference.
func (s *CatalogService) VideoLink(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalidInput("movie name is required")
	}
	link, err := s.store.VideoLink(ctx, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", notFound("Video link not found.", err)
		}
		return "", s.fail(ctx, "Failed to retrieve video link.", err)
	}
	return link, nil
}

// CreateMovie validates and inserts a movie, returning its identifier.
func (s *CatalogService) CreateMovie(ctx context.Context, movie models.Movie) (int64, error) {
	movie, err := normalizeMovie(movie)
	if err != nil {
		return 0, err
	}
	id, err := s.store.CreateMovie(ctx, movie)
	if err != nil {
		return 0, s.writeFailure(ctx, "Failed to create movie.", err)
	}
	s.logger.InfoContext(ctx, "movie created", slog.Int64("movie_id", id))
	return id, nil
}

// UpdateMovie replaces the movie with the given identifier.
func (s *CatalogService) UpdateMovie(ctx context.Context, movie models.Movie) error {
	if movie.ID <= 0 {
		return invalidInput("movie id must be a positive integer")
	}
	movie, err := normalizeMovie(movie)
	if err != nil {
		return err
	}
	if err := s.store.UpdateMovie(ctx, movie); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Movie not found", err)
		}
		return s.writeFailure(ctx, "Failed to update movie.", err)
	}
	s.logger.InfoContext(ctx, "movie updated", slog.Int64("movie_id", movie.ID))
	return nil
}

// DeleteMovie removes a movie; watchlist entries and credits go with it.
func (s *CatalogService) DeleteMovie(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalidInput("movie id must be a positive integer")
	}
	if err := s.store.DeleteMovie(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Movie not found", err)
		}
		return s.fail(ctx, "Failed to delete movie.", err)
	}
	s.logger.InfoContext(ctx, "movie deleted", slog.Int64("movie_id", id))
	return nil
}

// AddActors credits actors on a movie.
func (s *CatalogService) AddActors(ctx context.Context, movieID int64, actorIDs []int64) error {
	if movieID <= 0 || len(actorIDs) == 0 {
		return invalidInput("Please select a movie and at least one actor!")
	}
	for _, id := range actorIDs {
		if id <= 0 {
			return invalidInput("actor ids must be positive integers")
		}
	}
	if err := s.store.AddMovieActors(ctx, movieID, actorIDs); err != nil {
		if errors.Is(err, storage.ErrInvalidReference) {
			return invalidInput("movie or actor does not exist")
		}
		return s.fail(ctx, "An error occurred while adding actors to the movie.", err)
	}
	return nil
}

// ListMovieActors returns the actors credited on a movie.
func (s *CatalogService) ListMovieActors(ctx context.Context, movieID int64) ([]models.Actor, error) {
	if movieID <= 0 {
		return nil, invalidInput("movie id must be a positive integer")
	}
	actors, err := s.store.ListMovieActors(ctx, movieID)
	if err != nil {
		return nil, s.fail(ctx, "Error fetching actors", err)
	}
	return orEmpty(actors), nil
}

// ListDirectors returns the director lookup list.
func (s *CatalogService) ListDirectors(ctx context.Context) ([]models.Director, error) {
	directors, err := s.store.ListDirectors(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Error fetching directors", err)
	}
	return orEmpty(directors), nil
}

// CreateDirector inserts a director.
func (s *CatalogService) CreateDirector(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalidInput("Director name is required")
	}
	id, err := s.store.CreateDirector(ctx, name)
	if err != nil {
		return 0, s.fail(ctx, "Failed to create director", err)
	}
	return id, nil
}

// ListGenres returns the genre lookup list.
func (s *CatalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.store.ListGenres(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Error fetching genres", err)
	}
	return orEmpty(genres), nil
}

// CreateGenre inserts a genre.
func (s *CatalogService) CreateGenre(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalidInput("Genre name is required")
	}
	id, err := s.store.CreateGenre(ctx, name)
	if err != nil {
		return 0, s.fail(ctx, "Failed to create genre", err)
	}
	return id, nil
}

// UpdateGenre renames a genre.
func (s *CatalogService) UpdateGenre(ctx context.Context, genre models.Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)
	if genre.ID <= 0 || genre.Name == "" {
		return invalidInput("Genre name is required")
	}
	if err := s.store.UpdateGenre(ctx, genre); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Genre not found", err)
		}
		return s.fail(ctx, "Failed to update genre", err)
	}
	return nil
}

// DeleteGenre removes a genre no movie uses.
func (s *CatalogService) DeleteGenre(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalidInput("genre id must be a positive integer")
	}
	if err := s.store.DeleteGenre(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return notFound("Genre not found", err)
		case errors.Is(err, storage.ErrInUse):
			return conflict("Genre is still used by movies", err)
		}
		return s.fail(ctx, "Failed to delete genre", err)
	}
	return nil
}

// ListActors returns all actors.
func (s *CatalogService) ListActors(ctx context.Context) ([]models.Actor, error) {
	actors, err := s.store.ListActors(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Error fetching actors", err)
	}
	return orEmpty(actors), nil
}

// CreateActor inserts an actor.
func (s *CatalogService) CreateActor(ctx context.Context, actor models.Actor) (int64, error) {
	actor, err := normalizeActor(actor)
	if err != nil {
		return 0, err
	}
	id, err := s.store.CreateActor(ctx, actor)
	if err != nil {
		return 0, s.fail(ctx, "Failed to create actor", err)
	}
	return id, nil
}

// UpdateActor replaces an actor row.
func (s *CatalogService) UpdateActor(ctx context.Context, actor models.Actor) error {
	if actor.ID <= 0 {
		return invalidInput("actor id must be a positive integer")
	}
	actor, err := normalizeActor(actor)
	if err != nil {
		return err
	}
	if err := s.store.UpdateActor(ctx, actor); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Actor not found", err)
		}
		return s.fail(ctx, "Failed to update actor", err)
	}
	return nil
}

// DeleteActor removes an actor and their credits.
func (s *CatalogService) DeleteActor(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalidInput("actor id must be a positive integer")
	}
	if err := s.store.DeleteActor(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound("Actor not found", err)
		}
		return s.fail(ctx, "Failed to delete actor", err)
	}
	return nil
}

func (s *CatalogService) fail(ctx context.Context, message string, err error) error {
	s.logger.ErrorContext(ctx, message, slog.Any("error", err))
	return internal(message, err)
}

// writeFailure is fail for movie writes, where a bad genre or director id
// is the caller's mistake.
func (s *CatalogService) writeFailure(ctx context.Context, message string, err error) error {
	if errors.Is(err, storage.ErrInvalidReference) {
		return invalidInput("genre or director does not exist")
	}
	return s.fail(ctx, message, err)
}

func normalizeMovie(m models.Movie) (models.Movie, error) {
	m.Title = strings.TrimSpace(m.Title)
	m.VideoLink = strings.TrimSpace(m.VideoLink)
	m.Description = strings.TrimSpace(m.Description)
	m.ReleaseDate = strings.TrimSpace(m.ReleaseDate)
	if m.Title == "" || m.GenreID <= 0 || m.DirectorID <= 0 || m.VideoLink == "" {
		return models.Movie{}, invalidInput(MsgRequiredMovieFields)
	}
	if m.ReleaseDate != "" {
		date, ok := parseDate(m.ReleaseDate)
		if !ok {
			return models.Movie{}, invalidInput("releaseDate must be YYYY-MM-DD")
		}
		m.ReleaseDate = date
	}
	if m.Rating != nil && (*m.Rating < 0 || *m.Rating > 10) {
		return models.Movie{}, invalidInput("rating must be between 0 and 10")
	}
	m.GenreName, m.DirectorName = "", ""
	return m, nil
}

func normalizeActor(a models.Actor) (models.Actor, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.DateOfBirth = strings.TrimSpace(a.DateOfBirth)
	if a.Name == "" || a.DateOfBirth == "" {
		return models.Actor{}, invalidInput("Actor name and Date of Birth are required")
	}
	date, ok := parseDate(a.DateOfBirth)
	if !ok {
		return models.Actor{}, invalidInput("dateOfBirth must be YYYY-MM-DD")
	}
	a.DateOfBirth = date
	return a, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp, as date
// inputs and JSON-serialized dates both reach the API, and returns YYYY-MM-DD.
func parseDate(value string) (string, bool) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.Format(dateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC().Format(dateLayout), true
	}
	return "", false
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
