// internal/repository/postgres/actors.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
	"github.com/sixmovies/actorpop/internal/database"
)

// ActorRepository streams actor rows and persists the scores a completed
// recalculation run produces.
type ActorRepository struct {
	pool *pgxpool.Pool
}

// NewActorRepository constructs an ActorRepository backed by pool.
func NewActorRepository(pool *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{pool: pool}
}

var (
	_ ports.ActorReader = (*ActorRepository)(nil)
	_ ports.ActorWriter = (*ActorRepository)(nil)
)

// StreamActors streams every actor row, flags and identity only — the
// Score Composer is the only caller and never needs the current score.
func (r *ActorRepository) StreamActors(ctx context.Context, fn func(domain.Actor) error) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, nconst, name, birth_year, death_year, is_voice_actor, blackmark, wildcard
		FROM actors
	`)
	if err != nil {
		return fmt.Errorf("querying actors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Actor
		if err := rows.Scan(&a.ID, &a.Nconst, &a.Name, &a.BirthYear, &a.DeathYear, &a.IsVoiceActor, &a.Blackmark, &a.Wildcard); err != nil {
			return fmt.Errorf("scanning actor row: %w", err)
		}
		if err := fn(a); err != nil {
			return err
		}
	}
	return rows.Err()
}

// UpdateScores writes one batch of (actor, score) updates tagged with
// versionID, using a single pgx.Batch round-trip rather than one Exec per
// row.
func (r *ActorRepository) UpdateScores(ctx context.Context, txHandle ports.Tx, versionID int64, batch []ports.ScoredActor) error {
	if len(batch) == 0 {
		return nil
	}

	pgxTx, ok := database.PgxTx(txHandle)
	if !ok {
		return fmt.Errorf("UpdateScores requires a pgx-backed transaction")
	}

	var b pgx.Batch
	for _, sa := range batch {
		b.Queue(
			`UPDATE actors SET popularity_score = $1, popularity_version_id = $2 WHERE id = $3`,
			sa.Score, versionID, sa.ActorID,
		)
	}

	br := pgxTx.SendBatch(ctx, &b)
	defer br.Close()

	for range batch {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batched actor score update: %w", err)
		}
	}
	return nil
}

// ScoresForVersion lists every popularity_score written under versionID,
// for CLI summary reporting only; the scoring pipeline never calls this.
func (r *ActorRepository) ScoresForVersion(ctx context.Context, versionID int64) ([]float64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT popularity_score FROM actors WHERE popularity_version_id = $1
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("querying scores for version %d: %w", versionID, err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scanning score row: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// ActorProfessions lists the profession names attached to actorID, for
// diagnostic reporting only; the scoring pipeline never calls this.
func (r *ActorRepository) ActorProfessions(ctx context.Context, actorID int64) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.name
		FROM actor_professions ap
		JOIN professions p ON p.id = ap.profession_id
		WHERE ap.actor_id = $1
		ORDER BY p.name
	`, actorID)
	if err != nil {
		return nil, fmt.Errorf("querying actor professions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning profession row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
