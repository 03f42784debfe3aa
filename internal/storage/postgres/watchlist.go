package postgres

import (
	"context"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/jackc/pgx/v5"
)

// AddToWatchlist saves a movie for a user through the guarded routine, which
// rejects duplicates atomically with the insert.
func (s *Store) AddToWatchlist(ctx context.Context, userID, movieID int64) error {
	_, err := s.pool.Exec(ctx, `SELECT add_movie_to_watchlist($1, $2)`, userID, movieID)
	return translate(err)
}

// RemoveFromWatchlist reports whether the (user, movie) pair was present and removed.
func (s *Store) RemoveFromWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	var removed int
	if err := s.pool.QueryRow(ctx, `SELECT remove_movie_from_watchlist($1, $2)`, userID, movieID).Scan(&removed); err != nil {
		return false, translate(err)
	}
	return removed == 1, nil
}

// ListWatchlist returns the user's saved movies, most recently added first.
func (s *Store) ListWatchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	const query = `
	SELECT w.movie_id, m.title, COALESCE(to_char(m.release_date, 'YYYY-MM-DD'), ''), m.description, w.date_added
	FROM watchlists w
	JOIN movies m ON w.movie_id = m.movie_id
	WHERE w.user_id = $1
	ORDER BY w.date_added DESC, w.movie_id DESC
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.WatchlistEntry, error) {
		var e models.WatchlistEntry
		err := row.Scan(&e.MovieID, &e.Title, &e.ReleaseDate, &e.Description, &e.DateAdded)
		return e, err
	})
	if err != nil {
		return nil, translate(err)
	}
	return entries, nil
}

// InWatchlist reports whether the user has saved the movie.
func (s *Store) InWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM watchlists WHERE user_id = $1 AND movie_id = $2)`,
		userID, movieID).Scan(&exists)
	return exists, translate(err)
}
