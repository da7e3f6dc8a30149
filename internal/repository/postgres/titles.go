// internal/repository/postgres/titles.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

// TitleRepository streams title and title-genre rows for the Rating
// Calibrator, Title Quality Map, and Title Genre Map stages.
type TitleRepository struct {
	pool *pgxpool.Pool
}

// NewTitleRepository constructs a TitleRepository backed by pool.
func NewTitleRepository(pool *pgxpool.Pool) *TitleRepository {
	return &TitleRepository{pool: pool}
}

var _ ports.TitleReader = (*TitleRepository)(nil)

// StreamRatings streams every title with a non-null rating and vote count.
func (r *TitleRepository) StreamRatings(ctx context.Context, fn func(domain.Title) error) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tconst, title_type, primary_name, start_year, imdb_rating, imdb_votes
		FROM titles
		WHERE imdb_rating IS NOT NULL AND imdb_votes IS NOT NULL
	`)
	if err != nil {
		return fmt.Errorf("querying rated titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Title
		if err := rows.Scan(&t.ID, &t.Tconst, &t.TitleType, &t.PrimaryName, &t.StartYear, &t.ImdbRating, &t.ImdbVotes); err != nil {
			return fmt.Errorf("scanning title row: %w", err)
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	return rows.Err()
}

// StreamTitleGenres streams every (title, genre) pair.
func (r *TitleRepository) StreamTitleGenres(ctx context.Context, fn func(titleID, genreID int64) error) error {
	rows, err := r.pool.Query(ctx, `SELECT title_id, genre_id FROM titles_genres`)
	if err != nil {
		return fmt.Errorf("querying title genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID, genreID int64
		if err := rows.Scan(&titleID, &genreID); err != nil {
			return fmt.Errorf("scanning title genre row: %w", err)
		}
		if err := fn(titleID, genreID); err != nil {
			return err
		}
	}
	return rows.Err()
}
