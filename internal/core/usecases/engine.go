// internal/core/usecases/engine.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
	"github.com/sixmovies/actorpop/internal/logging"
)

// Engine wires the eight popularity-pipeline stages behind the single
// entry point spec.md §6 names, recalc_actor_popularity.
type Engine struct {
	Titles     ports.TitleReader
	Principals ports.PrincipalReader
	Edges      ports.ActorEdgeReader
	Actors     ports.ActorReader
	Publisher  *VersionPublisher
	Shards     int
	Logger     logging.EngineLogger
}

// NewEngine constructs an Engine from its injected ports.
func NewEngine(
	titles ports.TitleReader,
	principals ports.PrincipalReader,
	edges ports.ActorEdgeReader,
	actors ports.ActorReader,
	publisher *VersionPublisher,
	shards int,
	logger logging.EngineLogger,
) *Engine {
	return &Engine{
		Titles:     titles,
		Principals: principals,
		Edges:      edges,
		Actors:     actors,
		Publisher:  publisher,
		Shards:     shards,
		Logger:     logger,
	}
}

// RecalcActorPopularity runs the full eight-stage pipeline once and
// returns the version row it published. It never returns an error for an
// empty dataset — every "empty" case in spec.md §7 still publishes a
// version row and returns normally so operators can tell the run occurred.
func (e *Engine) RecalcActorPopularity(ctx context.Context, weights domain.RecalcWeights, notes string) (domain.RecalcResult, error) {
	start := time.Now()
	log := e.Logger.With(zap.String("run_id", uuid.NewString()))

	log.Info("stage 1/8: calibrating global rating parameters")
	params, err := NewRatingCalibrator().Calibrate(ctx, e.Titles)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("calibrating rating parameters: %w", err)
	}
	log.Info("calibration complete",
		zap.Float64("global_mean_rating", params.GlobalMeanRating),
		zap.Int64("min_votes_for_weight", params.MinVotesForWeight),
	)

	version := domain.PopularityVersion{
		CreatedAt:         time.Now(),
		WeightRole:        weights.Role,
		WeightQuality:     weights.Quality,
		WeightReach:       weights.Reach,
		GlobalMeanRating:  params.GlobalMeanRating,
		MinVotesForWeight: params.MinVotesForWeight,
		Notes:             defaultNotes(notes),
	}

	log.Info("stage 2/8: building title quality map")
	quality, titleYears, err := NewTitleQualityBuilder().Build(ctx, e.Titles, params)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("building title quality map: %w", err)
	}
	log.Info("title quality map built", zap.Int("titles", len(quality)))

	if len(quality) == 0 {
		log.Warn("empty title quality map: publishing version and exiting without scoring any actor")
		return e.publishEmpty(ctx, version, start)
	}

	log.Info("stage 3/8: building title genre map")
	genreMap, err := BuildTitleGenreMap(ctx, e.Titles, quality)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("building title genre map: %w", err)
	}

	log.Info("stage 4/8: aggregating principals", zap.Int("shards", e.Shards))
	features, err := NewPrincipalAggregator(e.Shards).Aggregate(ctx, e.Principals, quality, genreMap, titleYears)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("aggregating principals: %w", err)
	}
	log.Info("principal aggregation complete", zap.Int("actors", len(features)))

	if len(features) == 0 {
		log.Warn("empty aggregate: no actor matched any quality-bearing principal")
		return e.publishEmpty(ctx, version, start)
	}

	log.Info("stage 5/8: normalizing features")
	basePop := NewFeatureNormalizer(weights).Normalize(features)

	log.Info("stage 6/8: scoring connectivity")
	scsNorm, err := NewConnectivityScorer().Score(ctx, e.Edges, basePop)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("scoring connectivity: %w", err)
	}

	log.Info("stage 7/8: composing final scores")
	flags, err := e.loadActorFlags(ctx, basePop)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("loading actor flags: %w", err)
	}
	final := NewScoreComposer().Compose(features, basePop, scsNorm, flags)

	log.Info("stage 8/8: publishing version and actor scores", zap.Int("actors", len(final)))
	published, err := e.Publisher.Publish(ctx, version, final)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("publishing popularity version: %w", err)
	}

	return domain.RecalcResult{
		Version:      published,
		ActorsScored: len(final),
		Elapsed:      time.Since(start),
	}, nil
}

func (e *Engine) publishEmpty(ctx context.Context, version domain.PopularityVersion, start time.Time) (domain.RecalcResult, error) {
	published, err := e.Publisher.Publish(ctx, version, nil)
	if err != nil {
		return domain.RecalcResult{}, fmt.Errorf("publishing empty-run popularity version: %w", err)
	}
	return domain.RecalcResult{Version: published, ActorsScored: 0, Elapsed: time.Since(start)}, nil
}

func (e *Engine) loadActorFlags(ctx context.Context, basePop BasePopularity) (map[int64]ActorFlags, error) {
	flags := make(map[int64]ActorFlags, len(basePop))
	err := e.Actors.StreamActors(ctx, func(a domain.Actor) error {
		if _, ok := basePop[a.ID]; !ok {
			return nil
		}
		flags[a.ID] = ActorFlags{
			IsVoiceActor: a.IsVoiceActor,
			Blackmark:    a.Blackmark,
			Wildcard:     a.Wildcard,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return flags, nil
}

// defaultNotes reproduces the original's __main__ convenience default: a
// descriptive notes string encoding the active constants, used whenever
// the caller passes an empty string.
func defaultNotes(notes string) string {
	if notes != "" {
		return notes
	}
	return fmt.Sprintf(
		"actor popularity recalculation (min_votes_quality=%d, hit thresholds=%d/%d/%d, "+
			"SCS pow(%d), age penalty by mean hit year, voice filter, blackmark/wildcard)",
		minVotesQuality, hitVotesLevel1, hitVotesLevel2, hitVotesLevel3, scsNeighborExponent,
	)
}
