// internal/repository/postgres/edges.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

// EdgeRepository streams the undirected actor co-appearance graph for the
// Connectivity Scorer.
type EdgeRepository struct {
	pool *pgxpool.Pool
}

// NewEdgeRepository constructs an EdgeRepository backed by pool.
func NewEdgeRepository(pool *pgxpool.Pool) *EdgeRepository {
	return &EdgeRepository{pool: pool}
}

var _ ports.ActorEdgeReader = (*EdgeRepository)(nil)

// StreamEdges streams every actor-edge row.
func (r *EdgeRepository) StreamEdges(ctx context.Context, fn func(domain.ActorEdge) error) error {
	rows, err := r.pool.Query(ctx, `SELECT actor_id_low, actor_id_high, weight FROM actor_edges`)
	if err != nil {
		return fmt.Errorf("querying actor edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.ActorEdge
		if err := rows.Scan(&e.ActorIDLow, &e.ActorIDHigh, &e.Weight); err != nil {
			return fmt.Errorf("scanning actor edge row: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}
