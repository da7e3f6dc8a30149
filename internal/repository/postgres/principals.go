// internal/repository/postgres/principals.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

// PrincipalRepository streams title-principal rows for the Principal
// Aggregator. Only the acting categories matter downstream, but filtering
// happens in the aggregator, not here, so this adapter stays a thin
// pass-through over the full table.
type PrincipalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository constructs a PrincipalRepository backed by pool.
func NewPrincipalRepository(pool *pgxpool.Pool) *PrincipalRepository {
	return &PrincipalRepository{pool: pool}
}

var _ ports.PrincipalReader = (*PrincipalRepository)(nil)

// StreamPrincipals streams every title-principal row.
func (r *PrincipalRepository) StreamPrincipals(ctx context.Context, fn func(domain.TitlePrincipal) error) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title_id, actor_id, ordering, category, job
		FROM titles_principals
	`)
	if err != nil {
		return fmt.Errorf("querying title principals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tp domain.TitlePrincipal
		if err := rows.Scan(&tp.ID, &tp.TitleID, &tp.ActorID, &tp.Ordering, &tp.Category, &tp.Job); err != nil {
			return fmt.Errorf("scanning title principal row: %w", err)
		}
		if err := fn(tp); err != nil {
			return err
		}
	}
	return rows.Err()
}
