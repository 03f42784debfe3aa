package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/movie-catalog/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidReference indicates a write pointed at a related row that does not exist.
var ErrInvalidReference = errors.New("referenced record does not exist")

// ErrInUse indicates a delete was refused because other rows still reference the record.
var ErrInUse = errors.New("record is still referenced")

// UserStore captures persistence operations on accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	SetRole(ctx context.Context, id int64, role string) error
}

// WatchlistStore manages the user↔movie watchlist relation.
//
// AddToWatchlist must be a single guarded write: a second insert of the same
// (user, movie) pair fails with ErrAlreadyExists, even under concurrent calls.
// RemoveFromWatchlist reports whether a row was actually removed.
type WatchlistStore interface {
	AddToWatchlist(ctx context.Context, userID, movieID int64) error
	RemoveFromWatchlist(ctx context.Context, userID, movieID int64) (bool, error)
	ListWatchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error)
	InWatchlist(ctx context.Context, userID, movieID int64) (bool, error)
}

// MovieStore manages movies and their actor credits.
type MovieStore interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	FindMovieIDByTitle(ctx context.Context, title string) (int64, error)
	VideoLink(ctx context.Context, title string) (string, error)
	CreateMovie(ctx context.Context, movie models.Movie) (int64, error)
	UpdateMovie(ctx context.Context, movie models.Movie) error
	DeleteMovie(ctx context.Context, id int64) error
	AddMovieActors(ctx context.Context, movieID int64, actorIDs []int64) error
	ListMovieActors(ctx context.Context, movieID int64) ([]models.Actor, error)
}

// GenreStore manages the genre lookup table.
type GenreStore interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	CreateGenre(ctx context.Context, name string) (int64, error)
	UpdateGenre(ctx context.Context, genre models.Genre) error
	DeleteGenre(ctx context.Context, id int64) error
}

// DirectorStore manages the director lookup table.
type DirectorStore interface {
	ListDirectors(ctx context.Context) ([]models.Director, error)
	CreateDirector(ctx context.Context, name string) (int64, error)
}

// ActorStore manages actors.
type ActorStore interface {
	ListActors(ctx context.Context) ([]models.Actor, error)
	CreateActor(ctx context.Context, actor models.Actor) (int64, error)
	UpdateActor(ctx context.Context, actor models.Actor) error
	DeleteActor(ctx context.Context, id int64) error
}

// CatalogStore groups the entity tables behind the admin screens.
type CatalogStore interface {
	MovieStore
	GenreStore
	DirectorStore
	ActorStore
}

// Store is the full persistence gateway.
type Store interface {
	UserStore
	WatchlistStore
	CatalogStore
	Close()
}
