// internal/core/usecases/publisher.go
package usecases

import (
	"context"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

const defaultPublishBatchSize = 5_000

// VersionPublisher inserts the PopularityVersion row and batches the
// actor-score updates inside one transaction, per spec.md's atomicity
// contract: either the version and every update land together, or nothing
// does.
type VersionPublisher struct {
	UnitOfWork ports.UnitOfWork
	Versions   ports.VersionWriter
	Actors     ports.ActorWriter
	BatchSize  int
}

// NewVersionPublisher constructs a VersionPublisher. A non-positive
// batchSize falls back to 5,000 rows per UPDATE statement, per spec.md §9's
// guidance of 1,000-10,000 rows per batch.
func NewVersionPublisher(uow ports.UnitOfWork, versions ports.VersionWriter, actors ports.ActorWriter, batchSize int) *VersionPublisher {
	if batchSize <= 0 {
		batchSize = defaultPublishBatchSize
	}
	return &VersionPublisher{UnitOfWork: uow, Versions: versions, Actors: actors, BatchSize: batchSize}
}

// Publish inserts version, then — if scores is non-empty — writes every
// (actor, score) pair in batches, all inside one transaction. On any
// failure the transaction rolls back and no actor or version row is
// visible to later readers.
func (p *VersionPublisher) Publish(ctx context.Context, version domain.PopularityVersion, scores map[int64]float64) (domain.PopularityVersion, error) {
	published := version

	err := p.UnitOfWork.WithTransaction(ctx, func(ctx context.Context, tx ports.Tx) error {
		id, err := p.Versions.InsertVersion(ctx, tx, published)
		if err != nil {
			return err
		}
		published.ID = id

		if len(scores) == 0 {
			return nil
		}

		actorIDs := make([]int64, 0, len(scores))
		for actorID := range scores {
			actorIDs = append(actorIDs, actorID)
		}

		batch := make([]ports.ScoredActor, 0, p.BatchSize)
		for i, actorID := range actorIDs {
			batch = append(batch, ports.ScoredActor{ActorID: actorID, Score: scores[actorID]})

			if len(batch) == p.BatchSize || i == len(actorIDs)-1 {
				if err := p.Actors.UpdateScores(ctx, tx, published.ID, batch); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}

		return nil
	})
	if err != nil {
		return domain.PopularityVersion{}, err
	}

	return published, nil
}
