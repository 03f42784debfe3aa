package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/movie-catalog/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	// raised by add_movie_to_watchlist when the (user, movie) pair is already saved
	codeWatchlistDuplicate = "WL001"
)

// Store provides Postgres-backed persistence for the catalog.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks that a pooled connection can reach the database.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'User' CHECK (role IN ('User', 'Admin')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS genres (
			genre_id BIGSERIAL PRIMARY KEY,
			genre_name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS directors (
			director_id BIGSERIAL PRIMARY KEY,
			director_name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS actors (
			actor_id BIGSERIAL PRIMARY KEY,
			actor_name TEXT NOT NULL,
			date_of_birth DATE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS movies (
			movie_id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			release_date DATE,
			rating NUMERIC(3,1),
			description TEXT NOT NULL DEFAULT '',
			video_link TEXT NOT NULL,
			genre_id BIGINT NOT NULL REFERENCES genres(genre_id),
			director_id BIGINT NOT NULL REFERENCES directors(director_id)
		);`,
		`CREATE INDEX IF NOT EXISTS movies_title_idx ON movies (title);`,
		`CREATE TABLE IF NOT EXISTS movies_actors (
			movie_id BIGINT NOT NULL REFERENCES movies(movie_id) ON DELETE CASCADE,
			actor_id BIGINT NOT NULL REFERENCES actors(actor_id) ON DELETE CASCADE,
			PRIMARY KEY (movie_id, actor_id)
		);`,
		`CREATE TABLE IF NOT EXISTS watchlists (
			user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			movie_id BIGINT NOT NULL REFERENCES movies(movie_id) ON DELETE CASCADE,
			date_added TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT watchlists_user_movie_unique UNIQUE (user_id, movie_id)
		);`,
		`CREATE INDEX IF NOT EXISTS watchlists_user_added_idx ON watchlists (user_id, date_added DESC);`,
		`CREATE OR REPLACE FUNCTION add_movie_to_watchlist(p_user_id BIGINT, p_movie_id BIGINT)
		RETURNS VOID AS $$
		BEGIN
			INSERT INTO watchlists (user_id, movie_id, date_added) VALUES (p_user_id, p_movie_id, clock_timestamp());
		EXCEPTION WHEN unique_violation THEN
			RAISE EXCEPTION 'Movie already exists in watchlist' USING ERRCODE = 'WL001';
		END;
		$$ LANGUAGE plpgsql;`,
		`CREATE OR REPLACE FUNCTION remove_movie_from_watchlist(p_user_id BIGINT, p_movie_id BIGINT)
		RETURNS INT AS $$
		DECLARE
			affected INT;
		BEGIN
			DELETE FROM watchlists WHERE user_id = p_user_id AND movie_id = p_movie_id;
			GET DIAGNOSTICS affected = ROW_COUNT;
			RETURN CASE WHEN affected > 0 THEN 1 ELSE 0 END;
		END;
		$$ LANGUAGE plpgsql;`,
		`CREATE OR REPLACE FUNCTION get_video_link(p_title TEXT)
		RETURNS TEXT AS $$
			SELECT video_link FROM movies WHERE title = p_title ORDER BY movie_id LIMIT 1;
		$$ LANGUAGE sql STABLE;`,
		`CREATE OR REPLACE FUNCTION add_new_movie(p_title TEXT, p_release_date DATE, p_rating NUMERIC, p_description TEXT,
			p_genre_id BIGINT, p_director_id BIGINT, p_video_link TEXT)
		RETURNS BIGINT AS $$
			INSERT INTO movies (title, release_date, rating, description, genre_id, director_id, video_link)
			VALUES (p_title, p_release_date, p_rating, p_description, p_genre_id, p_director_id, p_video_link)
			RETURNING movie_id;
		$$ LANGUAGE sql;`,
		`CREATE OR REPLACE FUNCTION update_movie(p_movie_id BIGINT, p_title TEXT, p_release_date DATE, p_rating NUMERIC,
			p_description TEXT, p_genre_id BIGINT, p_director_id BIGINT, p_video_link TEXT)
		RETURNS INT AS $$
		DECLARE
			affected INT;
		BEGIN
			UPDATE movies SET title = p_title, release_date = p_release_date, rating = p_rating, description = p_description,
				genre_id = p_genre_id, director_id = p_director_id, video_link = p_video_link
			WHERE movie_id = p_movie_id;
			GET DIAGNOSTICS affected = ROW_COUNT;
			RETURN affected;
		END;
		$$ LANGUAGE plpgsql;`,
		`CREATE OR REPLACE FUNCTION delete_movie(p_movie_id BIGINT)
		RETURNS INT AS $$
		DECLARE
			affected INT;
		BEGIN
			DELETE FROM movies WHERE movie_id = p_movie_id;
			GET DIAGNOSTICS affected = ROW_COUNT;
			RETURN affected;
		END;
		$$ LANGUAGE plpgsql;`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// translate maps driver errors onto the storage sentinels, keeping the cause.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeWatchlistDuplicate:
			return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, pgErr.Message)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", storage.ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return err
}

// translateDelete is translate for DELETE statements, where a foreign-key
// violation means other rows still point at the target.
func translateDelete(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return fmt.Errorf("%w: %s", storage.ErrInUse, pgErr.ConstraintName)
	}
	return translate(err)
}
