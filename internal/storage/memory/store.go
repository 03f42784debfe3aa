// Package memory is an in-process storage.Store. It enforces the same
// uniqueness, referential and ordering rules as the Postgres store and is used
// for tests and local runs without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type watchKey struct {
	userID  int64
	movieID int64
}

// Store keeps every table in maps guarded by one mutex.
type Store struct {
	mu sync.RWMutex

	now    func() time.Time
	nextID map[string]int64

	users     map[int64]models.User
	genres    map[int64]models.Genre
	directors map[int64]models.Director
	actors    map[int64]models.Actor
	movies    map[int64]models.Movie
	credits   map[int64]map[int64]struct{}
	watchlist map[watchKey]time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:       time.Now,
		nextID:    make(map[string]int64),
		users:     make(map[int64]models.User),
		genres:    make(map[int64]models.Genre),
		directors: make(map[int64]models.Director),
		actors:    make(map[int64]models.Actor),
		movies:    make(map[int64]models.Movie),
		credits:   make(map[int64]map[int64]struct{}),
		watchlist: make(map[watchKey]time.Time),
	}
}

// WithClock replaces the time source used for DateAdded and CreatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Close is a no-op.
func (s *Store) Close() {}

// Ping always succeeds; the store lives in process.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// CreateUser inserts a new user row; emails are unique case-sensitively, as in Postgres.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, fmt.Errorf("%w: email %s", storage.ErrAlreadyExists, user.Email)
		}
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.ID = s.id("users")
	user.CreatedAt = s.now()
	s.users[user.ID] = user
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

// SetRole changes the role of an existing account.
func (s *Store) SetRole(_ context.Context, id int64, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	u.Role = role
	s.users[id] = u
	return nil
}

// AddToWatchlist inserts the pair or fails with ErrAlreadyExists.
func (s *Store) AddToWatchlist(_ context.Context, userID, movieID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("%w: user %d", storage.ErrInvalidReference, userID)
	}
	if _, ok := s.movies[movieID]; !ok {
		return fmt.Errorf("%w: movie %d", storage.ErrInvalidReference, movieID)
	}
	key := watchKey{userID: userID, movieID: movieID}
	if _, ok := s.watchlist[key]; ok {
		return fmt.Errorf("%w: Movie already exists in watchlist", storage.ErrAlreadyExists)
	}
	s.watchlist[key] = s.now()
	return nil
}

// RemoveFromWatchlist reports whether a row was removed.
func (s *Store) RemoveFromWatchlist(_ context.Context, userID, movieID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := watchKey{userID: userID, movieID: movieID}
	if _, ok := s.watchlist[key]; !ok {
		return false, nil
	}
	delete(s.watchlist, key)
	return true, nil
}

// ListWatchlist returns the user's entries, most recently added first.
func (s *Store) ListWatchlist(_ context.Context, userID int64) ([]models.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]models.WatchlistEntry, 0)
	for key, added := range s.watchlist {
		if key.userID != userID {
			continue
		}
		m := s.movies[key.movieID]
		entries = append(entries, models.WatchlistEntry{
			MovieID:     m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Description: m.Description,
			DateAdded:   added,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].DateAdded.Equal(entries[j].DateAdded) {
			return entries[i].DateAdded.After(entries[j].DateAdded)
		}
		return entries[i].MovieID > entries[j].MovieID
	})
	return entries, nil
}

// InWatchlist reports whether the user has saved the movie.
func (s *Store) InWatchlist(_ context.Context, userID, movieID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.watchlist[watchKey{userID: userID, movieID: movieID}]
	return ok, nil
}

// ListMovies returns every movie with genre and director names resolved.
func (s *Store) ListMovies(_ context.Context) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]models.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		m.GenreName = s.genres[m.GenreID].Name
		m.DirectorName = s.directors[m.DirectorID].Name
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

// FindMovieIDByTitle resolves an exact title to the oldest movie carrying it.
func (s *Store) FindMovieIDByTitle(_ context.Context, title string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found int64
	for id, m := range s.movies {
		if m.Title == title && (found == 0 || id < found) {
			found = id
		}
	}
	if found == 0 {
		return 0, storage.ErrNotFound
	}
	return found, nil
}

// VideoLink returns the playable reference of a title.
func (s *Store) VideoLink(ctx context.Context, title string) (string, error) {
	id, err := s.FindMovieIDByTitle(ctx, title)
	if err != nil {
		return "", fmt.Errorf("video link for %q: %w", title, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	link := s.movies[id].VideoLink
	if link == "" {
		return "", fmt.Errorf("video link for %q: %w", title, storage.ErrNotFound)
	}
	return link, nil
}

func (s *Store) checkMovieRefs(m models.Movie) error {
	if _, ok := s.genres[m.GenreID]; !ok {
		return fmt.Errorf("%w: genre %d", storage.ErrInvalidReference, m.GenreID)
	}
	if _, ok := s.directors[m.DirectorID]; !ok {
		return fmt.Errorf("%w: director %d", storage.ErrInvalidReference, m.DirectorID)
	}
	return nil
}

// CreateMovie inserts a movie.
func (s *Store) CreateMovie(_ context.Context, movie models.Movie) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkMovieRefs(movie); err != nil {
		return 0, err
	}
	movie.ID = s.id("movies")
	movie.GenreName, movie.DirectorName = "", ""
	s.movies[movie.ID] = movie
	return movie.ID, nil
}

// UpdateMovie replaces a movie row.
func (s *Store) UpdateMovie(_ context.Context, movie models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[movie.ID]; !ok {
		return fmt.Errorf("movie %d: %w", movie.ID, storage.ErrNotFound)
	}
	if err := s.checkMovieRefs(movie); err != nil {
		return err
	}
	movie.GenreName, movie.DirectorName = "", ""
	s.movies[movie.ID] = movie
	return nil
}

// DeleteMovie removes a movie with its credits and watchlist rows.
func (s *Store) DeleteMovie(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return fmt.Errorf("movie %d: %w", id, storage.ErrNotFound)
	}
	delete(s.movies, id)
	delete(s.credits, id)
	for key := range s.watchlist {
		if key.movieID == id {
			delete(s.watchlist, key)
		}
	}
	return nil
}

// AddMovieActors credits actors on a movie; existing credits are kept.
func (s *Store) AddMovieActors(_ context.Context, movieID int64, actorIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[movieID]; !ok {
		return fmt.Errorf("%w: movie %d", storage.ErrInvalidReference, movieID)
	}
	for _, actorID := range actorIDs {
		if _, ok := s.actors[actorID]; !ok {
			return fmt.Errorf("%w: actor %d", storage.ErrInvalidReference, actorID)
		}
	}
	if s.credits[movieID] == nil {
		s.credits[movieID] = make(map[int64]struct{})
	}
	for _, actorID := range actorIDs {
		s.credits[movieID][actorID] = struct{}{}
	}
	return nil
}

// ListMovieActors returns the actors credited on a movie.
func (s *Store) ListMovieActors(_ context.Context, movieID int64) ([]models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actors := make([]models.Actor, 0, len(s.credits[movieID]))
	for actorID := range s.credits[movieID] {
		actors = append(actors, s.actors[actorID])
	}
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].Name != actors[j].Name {
			return actors[i].Name < actors[j].Name
		}
		return actors[i].ID < actors[j].ID
	})
	return actors, nil
}

// ListGenres returns all genres.
func (s *Store) ListGenres(_ context.Context) ([]models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	genres := make([]models.Genre, 0, len(s.genres))
	for _, g := range s.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

// CreateGenre inserts a genre.
func (s *Store) CreateGenre(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id("genres")
	s.genres[id] = models.Genre{ID: id, Name: name}
	return id, nil
}

// UpdateGenre renames a genre.
func (s *Store) UpdateGenre(_ context.Context, genre models.Genre) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.genres[genre.ID]; !ok {
		return fmt.Errorf("genre %d: %w", genre.ID, storage.ErrNotFound)
	}
	s.genres[genre.ID] = genre
	return nil
}

// DeleteGenre removes a genre no movie refers to.
func (s *Store) DeleteGenre(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.genres[id]; !ok {
		return fmt.Errorf("genre %d: %w", id, storage.ErrNotFound)
	}
	for _, m := range s.movies {
		if m.GenreID == id {
			return fmt.Errorf("%w: genre %d used by movie %d", storage.ErrInUse, id, m.ID)
		}
	}
	delete(s.genres, id)
	return nil
}

// ListDirectors returns all directors.
func (s *Store) ListDirectors(_ context.Context) ([]models.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	directors := make([]models.Director, 0, len(s.directors))
	for _, d := range s.directors {
		directors = append(directors, d)
	}
	sort.Slice(directors, func(i, j int) bool { return directors[i].ID < directors[j].ID })
	return directors, nil
}

// CreateDirector inserts a director.
func (s *Store) CreateDirector(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id("directors")
	s.directors[id] = models.Director{ID: id, Name: name}
	return id, nil
}

// ListActors returns all actors.
func (s *Store) ListActors(_ context.Context) ([]models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	actors := make([]models.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		actors = append(actors, a)
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i].ID < actors[j].ID })
	return actors, nil
}

// CreateActor inserts an actor.
func (s *Store) CreateActor(_ context.Context, actor models.Actor) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor.ID = s.id("actors")
	s.actors[actor.ID] = actor
	return actor.ID, nil
}

// UpdateActor replaces an actor row.
func (s *Store) UpdateActor(_ context.Context, actor models.Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actors[actor.ID]; !ok {
		return fmt.Errorf("actor %d: %w", actor.ID, storage.ErrNotFound)
	}
	s.actors[actor.ID] = actor
	return nil
}

// DeleteActor removes an actor and their credits.
func (s *Store) DeleteActor(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.actors[id]; !ok {
		return fmt.Errorf("actor %d: %w", id, storage.ErrNotFound)
	}
	delete(s.actors, id)
	for _, credited := range s.credits {
		delete(credited, id)
	}
	return nil
}
