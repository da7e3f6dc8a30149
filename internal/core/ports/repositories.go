// internal/core/ports/repositories.go
package ports

import (
	"context"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

// TitleReader streams every title needed by the Rating Calibrator, Title
// Quality Map, and Title Genre Map stages.
type TitleReader interface {
	// StreamRatings calls fn once per title that carries a non-null rating
	// and vote count, in no particular order. Used by the Rating Calibrator.
	StreamRatings(ctx context.Context, fn func(domain.Title) error) error

	// StreamTitleGenres calls fn once per (title, genre) pair. Titles with
	// no genre rows are omitted. Used by the Title Genre Map.
	StreamTitleGenres(ctx context.Context, fn func(titleID, genreID int64) error) error
}

// PrincipalReader streams every title-principal row (actor billed on a
// title) needed by the Principal Aggregator.
type PrincipalReader interface {
	// StreamPrincipals calls fn once per principal row. Rows referencing a
	// title or actor that no longer exists are skipped by the caller, not
	// filtered here.
	StreamPrincipals(ctx context.Context, fn func(domain.TitlePrincipal) error) error
}

// ActorEdgeReader streams the co-appearance graph for the Connectivity
// Scorer.
type ActorEdgeReader interface {
	StreamEdges(ctx context.Context, fn func(domain.ActorEdge) error) error
}

// ActorReader streams actor rows (flags and identity, not yet scored) for
// the Score Composer.
type ActorReader interface {
	StreamActors(ctx context.Context, fn func(domain.Actor) error) error
}

// ActorWriter persists newly computed scores in batches, inside the
// transaction the caller controls.
type ActorWriter interface {
	// UpdateScores writes one batch of (actor id, score, version id)
	// updates. Batch size is the caller's concern (see VersionPublisher.Publish).
	UpdateScores(ctx context.Context, tx Tx, versionID int64, batch []ScoredActor) error
}

// ScoredActor is one row of the final batched update.
type ScoredActor struct {
	ActorID int64
	Score   float64
}

// VersionWriter inserts the PopularityVersion row that every recalculation
// run produces exactly once, before any Actor row is touched.
type VersionWriter interface {
	InsertVersion(ctx context.Context, tx Tx, version domain.PopularityVersion) (int64, error)
}

// Tx is the minimal transaction handle passed down into writers, satisfied
// by the pgx transaction wrapper in internal/database.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...interface{}) error
}

// UnitOfWork runs fn inside a single database transaction, committing on
// nil error and rolling back otherwise.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
