package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
)

// Messages shown to clients by the watchlist flows.
const (
	MsgMovieNotFound    = "Movie not found in database"
	MsgAlreadyInList    = "Movie already exists in watchlist"
	MsgUserNotFound     = "User not found"
	MsgWatchlistEmpty   = "No movies found in the watchlist for this user"
	MsgNotInWatchlist   = "Movie not found in watchlist or already removed"
	MsgAddedToWatchlist = "Movie added to watchlist successfully"
	MsgRemoved          = "Movie removed successfully"
)

// WatchlistService manages the movies a user has saved.
type WatchlistService struct {
	watchlist storage.WatchlistStore
	movies    storage.MovieStore
	logger    *slog.Logger
}

// NewWatchlistService constructs the service.
func NewWatchlistService(watchlist storage.WatchlistStore, movies storage.MovieStore, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{watchlist: watchlist, movies: movies, logger: logger}
}

// Add saves the movie with the given title for the user. Duplicate detection
// is left to the store so concurrent adds of one pair keep exactly one row.
func (s *WatchlistService) Add(ctx context.Context, userID int64, movieTitle string) error {
	movieTitle = strings.TrimSpace(movieTitle)
	if userID <= 0 || movieTitle == "" {
		return invalidInput("userId and movieTitle are required")
	}

	movieID, err := s.movies.FindMovieIDByTitle(ctx, movieTitle)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(MsgMovieNotFound, err)
		}
		s.logger.ErrorContext(ctx, "failed to resolve movie title", slog.String("title", movieTitle), slog.Any("error", err))
		return internal("Error adding movie to watchlist", err)
	}

	err = s.watchlist.AddToWatchlist(ctx, userID, movieID)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "movie added to watchlist", slog.Int64("user_id", userID), slog.Int64("movie_id", movieID))
		return nil
	case errors.Is(err, storage.ErrAlreadyExists):
		s.logger.InfoContext(ctx, "movie already in watchlist", slog.Int64("user_id", userID), slog.Int64("movie_id", movieID))
		return conflict(MsgAlreadyInList, err)
	case errors.Is(err, storage.ErrInvalidReference):
		return notFound(MsgUserNotFound, err)
	default:
		s.logger.ErrorContext(ctx, "failed to add movie to watchlist",
			slog.Int64("user_id", userID), slog.Int64("movie_id", movieID), slog.Any("error", err))
		return internal("Error adding movie to watchlist", err)
	}
}

// List returns the user's watchlist, most recently added first. An empty list
// is not an error here; the HTTP layer decides how to report it.
func (s *WatchlistService) List(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	if userID <= 0 {
		return nil, invalidInput("UserId is required")
	}
	entries, err := s.watchlist.ListWatchlist(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch watchlist", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, internal("Error fetching watchlist", err)
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	return entries, nil
}

// Remove deletes the pair and reports whether anything was removed. Removing a
// movie that is not in the list is a normal outcome.
func (s *WatchlistService) Remove(ctx context.Context, userID, movieID int64) (bool, error) {
	if userID <= 0 || movieID <= 0 {
		return false, invalidInput("userId and movieId must be positive integers")
	}
	removed, err := s.watchlist.RemoveFromWatchlist(ctx, userID, movieID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to remove movie from watchlist",
			slog.Int64("user_id", userID), slog.Int64("movie_id", movieID), slog.Any("error", err))
		return false, internal("Error removing movie from watchlist", err)
	}
	if !removed {
		s.logger.InfoContext(ctx, "movie not in watchlist", slog.Int64("user_id", userID), slog.Int64("movie_id", movieID))
	}
	return removed, nil
}

// Contains reports whether the user has saved the movie.
func (s *WatchlistService) Contains(ctx context.Context, userID, movieID int64) (bool, error) {
	if userID <= 0 || movieID <= 0 {
		return false, invalidInput("userId and movieId must be positive integers")
	}
	ok, err := s.watchlist.InWatchlist(ctx, userID, movieID)
	if err != nil {
		return false, internal("Error checking watchlist", err)
	}
	return ok, nil
}
