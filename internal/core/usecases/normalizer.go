// internal/core/usecases/normalizer.go
package usecases

import (
	"math"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

// BasePopularity is the 0-1000 popularity value produced by the Feature
// Normalizer, before the Connectivity Scorer and Score Composer run.
type BasePopularity map[int64]float64

// FeatureNormalizer log-transforms the three raw per-actor features,
// min-max normalizes each into [0,1], and blends them into base_pop.
type FeatureNormalizer struct {
	Weights domain.RecalcWeights
}

// NewFeatureNormalizer constructs a FeatureNormalizer with the given
// component weights. The weights need not sum to 1; the composed score is
// clamped regardless.
func NewFeatureNormalizer(weights domain.RecalcWeights) *FeatureNormalizer {
	return &FeatureNormalizer{Weights: weights}
}

// Normalize computes base_pop for every actor present in features.
func (n *FeatureNormalizer) Normalize(features map[int64]*domain.ActorFeatures) BasePopularity {
	roleRaw := make(map[int64]float64, len(features))
	qualityRaw := make(map[int64]float64, len(features))
	reachRaw := make(map[int64]float64, len(features))

	for actorID, f := range features {
		var role float64
		if f.RoleWeightSum > 0 {
			role = math.Log1p(f.RoleWeightSum)
		}
		roleRaw[actorID] = role

		var quality float64
		if f.QualitySum > 0 {
			quality = math.Log1p(f.QualitySum)
		}
		qualityRaw[actorID] = quality

		var genreTerm float64
		if n := len(f.Genres); n > 0 {
			genreTerm = math.Log1p(float64(n))
		}
		var roleCountTerm float64
		if f.RoleCount > 0 {
			roleCountTerm = math.Log1p(float64(f.RoleCount))
		}
		reachRaw[actorID] = genreTerm + 0.5*roleCountTerm
	}

	roleNorm := minMaxNormalize(roleRaw)
	qualityNorm := minMaxNormalize(qualityRaw)
	reachNorm := minMaxNormalize(reachRaw)

	base := make(BasePopularity, len(features))
	for actorID := range features {
		score01 := n.Weights.Role*roleNorm[actorID] +
			n.Weights.Quality*qualityNorm[actorID] +
			n.Weights.Reach*reachNorm[actorID]

		if score01 < 0.0 {
			score01 = 0.0
		} else if score01 > 1.0 {
			score01 = 1.0
		}

		base[actorID] = score01 * 1000.0
	}

	return base
}

// minMaxNormalize scales values into [0,1]. An empty input yields an empty
// output; a uniform input (every value equal) yields 0.5 for every key.
func minMaxNormalize(values map[int64]float64) map[int64]float64 {
	if len(values) == 0 {
		return map[int64]float64{}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make(map[int64]float64, len(values))
	if hi > lo {
		scale := 1.0 / (hi - lo)
		for k, v := range values {
			out[k] = (v - lo) * scale
		}
		return out
	}

	for k := range values {
		out[k] = 0.5
	}
	return out
}
