// internal/core/usecases/aggregator.go
package usecases

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

// roleWeight is MR(ordering): the lead credit (1) carries full weight, a
// supporting credit (2-3) and a minor credit (4-7) step down, and anything
// else — including a missing or non-positive ordering — gets the floor
// weight.
func roleWeight(ordering int) float64 {
	switch {
	case ordering == 1:
		return 1.0
	case ordering >= 2 && ordering <= 3:
		return 0.6
	case ordering >= 4 && ordering <= 7:
		return 0.3
	default:
		return 0.1
	}
}

// actorAccum holds one shard's running totals for the actors it owns.
type actorAccum struct {
	roleWeightSum  float64
	qualitySum     float64
	roleCount      int
	genres         map[int64]struct{}
	yearWeightSum  float64
	yearWeightMass float64
}

type principalRow struct {
	actorID   int64
	titleID   int64
	quality   float64
	mr        float64
	startYear *int
}

// PrincipalAggregator streams every actor/actress TitlePrincipal row once
// and accumulates per-actor role, quality, genre, and year-weight totals.
// Work is sharded by actor_id mod N: a single goroutine drives the
// streaming cursor and dispatches each row to the shard that owns its
// actor, so every shard's map is touched by exactly one goroutine and no
// locking is needed. All reducers here (sum, count, set union) are
// commutative, so the final merge across shards is order-independent.
type PrincipalAggregator struct {
	Shards int
}

// NewPrincipalAggregator constructs a PrincipalAggregator with the given
// shard count. A non-positive count is treated as 1 (no sharding).
func NewPrincipalAggregator(shards int) *PrincipalAggregator {
	if shards < 1 {
		shards = 1
	}
	return &PrincipalAggregator{Shards: shards}
}

// Aggregate consumes the principal stream and returns per-actor features.
// titleYears supplies the start year (if any) of every title that carries
// a quality entry; rows whose title has no quality entry are skipped
// before a shard is even chosen, per spec.md's O(1)-skip requirement.
func (a *PrincipalAggregator) Aggregate(
	ctx context.Context,
	principals ports.PrincipalReader,
	titleQuality TitleQualityMap,
	titleGenres TitleGenreMap,
	titleYears map[int64]*int,
) (map[int64]*domain.ActorFeatures, error) {
	shardCount := a.Shards
	shards := make([]*map[int64]*actorAccum, shardCount)
	chans := make([]chan principalRow, shardCount)
	for i := 0; i < shardCount; i++ {
		m := make(map[int64]*actorAccum)
		shards[i] = &m
		chans[i] = make(chan principalRow, 512)
	}

	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < shardCount; i++ {
		shard := shards[i]
		ch := chans[i]
		g.Go(func() error {
			for row := range ch {
				acc, ok := (*shard)[row.actorID]
				if !ok {
					acc = &actorAccum{}
					(*shard)[row.actorID] = acc
				}
				acc.roleWeightSum += row.mr
				acc.qualitySum += row.mr * row.quality
				acc.roleCount++

				if genres, ok := titleGenres[row.titleID]; ok {
					if acc.genres == nil {
						acc.genres = make(map[int64]struct{}, len(genres))
					}
					for gid := range genres {
						acc.genres[gid] = struct{}{}
					}
				}

				if row.startYear != nil {
					w := row.quality * row.mr
					acc.yearWeightSum += float64(*row.startYear) * w
					acc.yearWeightMass += w
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, ch := range chans {
				close(ch)
			}
		}()

		return principals.StreamPrincipals(gctx, func(tp domain.TitlePrincipal) error {
			if tp.Category != "actor" && tp.Category != "actress" {
				return nil
			}
			q, ok := titleQuality[tp.TitleID]
			if !ok {
				return nil
			}

			shard := tp.ActorID % int64(shardCount)
			if shard < 0 {
				shard += int64(shardCount)
			}

			row := principalRow{
				actorID:   tp.ActorID,
				titleID:   tp.TitleID,
				quality:   float64(q),
				mr:        roleWeight(tp.Ordering),
				startYear: titleYears[tp.TitleID],
			}

			select {
			case chans[shard] <- row:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[int64]*domain.ActorFeatures)
	yearWeightSum := make(map[int64]float64)
	yearWeightMass := make(map[int64]float64)

	for _, shard := range shards {
		for actorID, acc := range *shard {
			f, ok := result[actorID]
			if !ok {
				f = &domain.ActorFeatures{ActorID: actorID}
				result[actorID] = f
			}
			f.RoleWeightSum += acc.roleWeightSum
			f.QualitySum += acc.qualitySum
			f.RoleCount += acc.roleCount
			if len(acc.genres) > 0 {
				if f.Genres == nil {
					f.Genres = make(map[int64]struct{}, len(acc.genres))
				}
				for gid := range acc.genres {
					f.Genres[gid] = struct{}{}
				}
			}
			yearWeightSum[actorID] += acc.yearWeightSum
			yearWeightMass[actorID] += acc.yearWeightMass
		}
	}

	// mean_hit_year is computed from totals, not a running average, so it
	// is independent of shard boundaries and stream order.
	for actorID, f := range result {
		if mass := yearWeightMass[actorID]; mass > 0 {
			f.MeanHitYear = yearWeightSum[actorID] / mass
			f.HasMeanHitYear = true
		}
	}

	return result, nil
}
