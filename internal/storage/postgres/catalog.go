package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/movie-catalog/internal/models"
	"github.com/hongminglow/movie-catalog/internal/storage"
	"github.com/jackc/pgx/v5"
)

// ListGenres returns all genres.
func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.pool.Query(ctx, `SELECT genre_id, genre_name FROM genres ORDER BY genre_id`)
	if err != nil {
		return nil, translate(err)
	}
	genres, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Genre, error) {
		var g models.Genre
		err := row.Scan(&g.ID, &g.Name)
		return g, err
	})
	return genres, translate(err)
}

// CreateGenre inserts a genre and returns its identifier.
func (s *Store) CreateGenre(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `INSERT INTO genres (genre_name) VALUES ($1) RETURNING genre_id`, name).Scan(&id)
	return id, translate(err)
}

// UpdateGenre renames a genre.
func (s *Store) UpdateGenre(ctx context.Context, genre models.Genre) error {
	tag, err := s.pool.Exec(ctx, `UPDATE genres SET genre_name = $2 WHERE genre_id = $1`, genre.ID, genre.Name)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("genre %d: %w", genre.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteGenre removes a genre no movie refers to.
func (s *Store) DeleteGenre(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM genres WHERE genre_id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("genre %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ListDirectors returns all directors.
func (s *Store) ListDirectors(ctx context.Context) ([]models.Director, error) {
	rows, err := s.pool.Query(ctx, `SELECT director_id, director_name FROM directors ORDER BY director_id`)
	if err != nil {
		return nil, translate(err)
	}
	directors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Director, error) {
		var d models.Director
		err := row.Scan(&d.ID, &d.Name)
		return d, err
	})
	return directors, translate(err)
}

// CreateDirector inserts a director and returns its identifier.
func (s *Store) CreateDirector(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `INSERT INTO directors (director_name) VALUES ($1) RETURNING director_id`, name).Scan(&id)
	return id, translate(err)
}

// ListActors returns all actors.
func (s *Store) ListActors(ctx context.Context) ([]models.Actor, error) {
	rows, err := s.pool.Query(ctx, `SELECT actor_id, actor_name, to_char(date_of_birth, 'YYYY-MM-DD') FROM actors ORDER BY actor_id`)
	if err != nil {
		return nil, translate(err)
	}
	actors, err := pgx.CollectRows(rows, scanActor)
	return actors, translate(err)
}

// CreateActor inserts an actor and returns its identifier.
func (s *Store) CreateActor(ctx context.Context, actor models.Actor) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO actors (actor_name, date_of_birth) VALUES ($1, $2::text::date) RETURNING actor_id`,
		actor.Name, actor.DateOfBirth).Scan(&id)
	return id, translate(err)
}

// UpdateActor replaces an actor row.
func (s *Store) UpdateActor(ctx context.Context, actor models.Actor) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE actors SET actor_name = $2, date_of_birth = $3::text::date WHERE actor_id = $1`,
		actor.ID, actor.Name, actor.DateOfBirth)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actor %d: %w", actor.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteActor removes an actor and their credits.
func (s *Store) DeleteActor(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM actors WHERE actor_id = $1`, id)
	if err != nil {
		return translateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actor %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func scanActor(row pgx.CollectableRow) (models.Actor, error) {
	var a models.Actor
	err := row.Scan(&a.ID, &a.Name, &a.DateOfBirth)
	return a, err
}
