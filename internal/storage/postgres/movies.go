package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
	"github.com/jackc/pgx/v5"
)

// ListMovies returns every movie with its genre and director names resolved.
func (s *Store) ListMovies(ctx context.Context) ([]models.Movie, error) {
	const query = `
	SELECT m.movie_id, m.title, COALESCE(to_char(m.release_date, 'YYYY-MM-DD'), ''), m.rating::float8,
		m.description, m.video_link, m.genre_id, m.director_id,
		COALESCE(g.genre_name, ''), COALESCE(d.director_name, '')
	FROM movies m
	LEFT JOIN genres g ON m.genre_id = g.genre_id
	LEFT JOIN directors d ON m.director_id = d.director_id
	ORDER BY m.movie_id
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	movies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Movie, error) {
		var m models.Movie
		err := row.Scan(&m.ID, &m.Title, &m.ReleaseDate, &m.Rating, &m.Description, &m.VideoLink,
			&m.GenreID, &m.DirectorID, &m.GenreName, &m.DirectorName)
		return m, err
	})
	return movies, translate(err)
}

// FindMovieIDByTitle resolves an exact title to the oldest movie carrying it.
func (s *Store) FindMovieIDByTitle(ctx context.Context, title string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `SELECT movie_id FROM movies WHERE title = $1 ORDER BY movie_id LIMIT 1`, title).Scan(&id)
	return id, translate(err)
}

// VideoLink asks the get_video_link routine for the playable reference of a title.
func (s *Store) VideoLink(ctx context.Context, title string) (string, error) {
	var link *string
	if err := s.pool.QueryRow(ctx, `SELECT get_video_link($1)`, title).Scan(&link); err != nil {
		return "", translate(err)
	}
	if link == nil || *link == "" {
		return "", fmt.Errorf("video link for %q: %w", title, storage.ErrNotFound)
	}
	return *link, nil
}

// CreateMovie inserts a movie through the add_new_movie routine.
func (s *Store) CreateMovie(ctx context.Context, movie models.Movie) (int64, error) {
	const query = `SELECT add_new_movie($1, NULLIF($2::text, '')::date, $3::numeric, $4, $5, $6, $7)`
	var id int64
	err := s.pool.QueryRow(ctx, query, movie.Title, movie.ReleaseDate, movie.Rating, movie.Description,
		movie.GenreID, movie.DirectorID, movie.VideoLink).Scan(&id)
	if err != nil {
		return 0, translate(err)
	}
	return id, nil
}

// UpdateMovie replaces a movie row through the update_movie routine.
func (s *Store) UpdateMovie(ctx context.Context, movie models.Movie) error {
	const query = `SELECT update_movie($1, $2, NULLIF($3::text, '')::date, $4::numeric, $5, $6, $7, $8)`
	var affected int
	err := s.pool.QueryRow(ctx, query, movie.ID, movie.Title, movie.ReleaseDate, movie.Rating, movie.Description,
		movie.GenreID, movie.DirectorID, movie.VideoLink).Scan(&affected)
	if err != nil {
		return translate(err)
	}
	if affected == 0 {
		return fmt.Errorf("movie %d: %w", movie.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteMovie removes a movie through the delete_movie routine. Watchlist rows
// and actor credits go with it.
func (s *Store) DeleteMovie(ctx context.Context, id int64) error {
	var affected int
	if err := s.pool.QueryRow(ctx, `SELECT delete_movie($1)`, id).Scan(&affected); err != nil {
		return translateDelete(err)
	}
	if affected == 0 {
		return fmt.Errorf("movie %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// AddMovieActors credits the actors on a movie in one statement. Credits that
// already exist are left alone.
func (s *Store) AddMovieActors(ctx context.Context, movieID int64, actorIDs []int64) error {
	const query = `
	INSERT INTO movies_actors (movie_id, actor_id)
	SELECT $1, actor_id FROM unnest($2::bigint[]) AS actor_id
	ON CONFLICT (movie_id, actor_id) DO NOTHING
	`
	_, err := s.pool.Exec(ctx, query, movieID, actorIDs)
	return translate(err)
}

// ListMovieActors returns the actors credited on a movie.
func (s *Store) ListMovieActors(ctx context.Context, movieID int64) ([]models.Actor, error) {
	const query = `
	SELECT a.actor_id, a.actor_name, to_char(a.date_of_birth, 'YYYY-MM-DD')
	FROM movies_actors ma
	JOIN actors a ON ma.actor_id = a.actor_id
	WHERE ma.movie_id = $1
	ORDER BY a.actor_name, a.actor_id
	`
	rows, err := s.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, translate(err)
	}
	actors, err := pgx.CollectRows(rows, scanActor)
	return actors, translate(err)
}
