// internal/repository/postgres/versions.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
	"github.com/sixmovies/actorpop/internal/database"
)

// VersionRepository inserts the PopularityVersion row every recalculation
// run produces exactly once.
type VersionRepository struct {
	pool *pgxpool.Pool
}

// NewVersionRepository constructs a VersionRepository backed by pool. pool
// is used only by Latest, which reads outside a transaction; InsertVersion
// itself always writes through the caller's transaction.
func NewVersionRepository(pool *pgxpool.Pool) *VersionRepository {
	return &VersionRepository{pool: pool}
}

var _ ports.VersionWriter = (*VersionRepository)(nil)

// InsertVersion inserts version inside txHandle's transaction and returns
// its generated id.
func (r *VersionRepository) InsertVersion(ctx context.Context, txHandle ports.Tx, version domain.PopularityVersion) (int64, error) {
	pgxTx, ok := database.PgxTx(txHandle)
	if !ok {
		return 0, fmt.Errorf("InsertVersion requires a pgx-backed transaction")
	}

	var id int64
	err := pgxTx.QueryRow(ctx, `
		INSERT INTO popularity_versions (weight_role, weight_quality, weight_reach, global_mean_rating, min_votes_for_weight, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, version.WeightRole, version.WeightQuality, version.WeightReach, version.GlobalMeanRating, version.MinVotesForWeight, version.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting popularity version: %w", err)
	}
	return id, nil
}

// Latest returns the most recently published PopularityVersion. No CLI
// subcommand calls it; `actorpop version` prints build information only.
func (r *VersionRepository) Latest(ctx context.Context) (domain.PopularityVersion, error) {
	var v domain.PopularityVersion
	err := r.pool.QueryRow(ctx, `
		SELECT id, created_at, weight_role, weight_quality, weight_reach, global_mean_rating, min_votes_for_weight, notes
		FROM popularity_versions
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&v.ID, &v.CreatedAt, &v.WeightRole, &v.WeightQuality, &v.WeightReach, &v.GlobalMeanRating, &v.MinVotesForWeight, &v.Notes)
	if err != nil {
		return domain.PopularityVersion{}, fmt.Errorf("querying latest popularity version: %w", err)
	}
	return v, nil
}
