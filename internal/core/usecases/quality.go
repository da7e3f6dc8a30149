// internal/core/usecases/quality.go
package usecases

import (
	"context"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

// Minimum-votes floor and global-hit thresholds, grounded on
// sixmovies/services/popularity.py's module-level constants.
const (
	minVotesQuality = 2_000

	hitVotesLevel1 = 20_000
	hitVotesLevel2 = 100_000
	hitVotesLevel3 = 500_000

	hitMultLevel1 = 1.5
	hitMultLevel2 = 2.0
	hitMultLevel3 = 3.0
)

// TitleQualityMap is the per-title quality scalar Q(t); titles absent from
// it are invisible to every later stage.
type TitleQualityMap map[int64]float64

// hitMultiplier returns the stepwise global-hit bonus for a vote count.
// Comparisons are strict >=, per spec.md's resolved open question.
func hitMultiplier(votes int64) float64 {
	switch {
	case votes >= hitVotesLevel3:
		return hitMultLevel3
	case votes >= hitVotesLevel2:
		return hitMultLevel2
	case votes >= hitVotesLevel1:
		return hitMultLevel1
	default:
		return 1.0
	}
}

// TitleQualityBuilder builds the title quality map and, as a byproduct of
// the same scan, the start-year lookup the Principal Aggregator needs for
// age-decay weighting (every title with a quality entry necessarily has a
// rating and a vote count, so one stream over the same rows covers both).
type TitleQualityBuilder struct{}

// NewTitleQualityBuilder constructs a TitleQualityBuilder.
func NewTitleQualityBuilder() *TitleQualityBuilder {
	return &TitleQualityBuilder{}
}

// Build applies the minimum-votes floor, the above-average rating filter,
// and the Bayesian vote-factor damping, then the global-hit multiplier, to
// every rated title.
func (b *TitleQualityBuilder) Build(
	ctx context.Context,
	titles ports.TitleReader,
	params domain.RatingParams,
) (TitleQualityMap, map[int64]*int, error) {
	quality := make(TitleQualityMap)
	startYears := make(map[int64]*int)

	err := titles.StreamRatings(ctx, func(t domain.Title) error {
		if t.ImdbRating == nil || t.ImdbVotes == nil {
			return nil
		}
		r := *t.ImdbRating
		v := *t.ImdbVotes

		if v < minVotesQuality {
			return nil
		}

		ratingBoost := r - params.GlobalMeanRating
		if ratingBoost <= 0.0 {
			return nil
		}

		denom := float64(v) + float64(params.MinVotesForWeight)
		if denom <= 0.0 {
			return nil
		}
		voteFactor := float64(v) / denom
		if voteFactor <= 0.0 {
			return nil
		}

		baseQ := voteFactor * ratingBoost
		if baseQ <= 0.0 {
			return nil
		}

		q := baseQ * hitMultiplier(v)
		if q <= 0.0 {
			return nil
		}

		quality[t.ID] = q
		startYears[t.ID] = t.StartYear
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return quality, startYears, nil
}
