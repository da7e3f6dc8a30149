// internal/core/usecases/composer.go
package usecases

import "github.com/sixmovies/actorpop/internal/core/domain"

// ActorFlags are the editorial override flags read (never written) by the
// Score Composer.
type ActorFlags struct {
	IsVoiceActor bool
	Blackmark    bool
	Wildcard     bool
}

// ageFactor implements the era ladder: a quality-weighted mean release
// year before 1970 is almost entirely discounted, each subsequent era
// recovers, and 2000 onward carries no penalty. An actor with no
// mean-hit-year (no dated title contributed to their quality_sum) is
// treated as current.
func ageFactor(meanHitYear float64, has bool) float64 {
	if !has {
		return 1.0
	}
	switch {
	case meanHitYear < 1970:
		return 0.10
	case meanHitYear < 1985:
		return 0.35
	case meanHitYear < 2000:
		return 0.75
	default:
		return 1.0
	}
}

// ScoreComposer blends base popularity and connectivity 50/50, applies the
// age decay, and resolves blackmark/wildcard/voice in the precedence
// spec.md fixes: blackmark zeroes first, wildcard may then boost, and
// voice zeroes last — so voice overrides a wildcard boost, while blackmark
// and voice both always win regardless of order between them (both yield
// zero).
type ScoreComposer struct{}

// NewScoreComposer constructs a ScoreComposer.
func NewScoreComposer() *ScoreComposer {
	return &ScoreComposer{}
}

// Compose returns the final popularity score for every actor in basePop.
// flags and features missing an entry for a given actor are treated as
// their zero value (no override flags set, no mean hit year).
func (c *ScoreComposer) Compose(
	features map[int64]*domain.ActorFeatures,
	basePop BasePopularity,
	scsNorm map[int64]float64,
	flags map[int64]ActorFlags,
) map[int64]float64 {
	final := make(map[int64]float64, len(basePop))

	for actorID, pop := range basePop {
		combined := 0.5*pop + 0.5*scsNorm[actorID]

		if f := features[actorID]; f != nil {
			combined *= ageFactor(f.MeanHitYear, f.HasMeanHitYear)
		} else {
			combined *= ageFactor(0, false)
		}

		flag := flags[actorID]
		if flag.Blackmark {
			combined = 0.0
		} else if flag.Wildcard && combined > 0.0 {
			combined *= 1.3
			if combined > 1000.0 {
				combined = 1000.0
			}
		}

		if flag.IsVoiceActor {
			combined = 0.0
		}

		final[actorID] = combined
	}

	return final
}
