package usecases

import (
	"testing"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

func TestMinMaxNormalize(t *testing.T) {
	out := minMaxNormalize(map[int64]float64{1: 10, 2: 20, 3: 0})
	if out[3] != 0.0 {
		t.Errorf("min value should normalize to 0, got %v", out[3])
	}
	if out[2] != 1.0 {
		t.Errorf("max value should normalize to 1, got %v", out[2])
	}
	if out[1] != 0.5 {
		t.Errorf("midpoint should normalize to 0.5, got %v", out[1])
	}
}

func TestMinMaxNormalize_Uniform(t *testing.T) {
	out := minMaxNormalize(map[int64]float64{1: 5, 2: 5, 3: 5})
	for k, v := range out {
		if v != 0.5 {
			t.Errorf("uniform value %d normalized to %v, want 0.5", k, v)
		}
	}
}

func TestMinMaxNormalize_Empty(t *testing.T) {
	out := minMaxNormalize(map[int64]float64{})
	if len(out) != 0 {
		t.Errorf("expected empty output, got %v", out)
	}
}

func TestFeatureNormalizer_Normalize(t *testing.T) {
	features := map[int64]*domain.ActorFeatures{
		1: {ActorID: 1, RoleWeightSum: 5.0, QualitySum: 50.0, RoleCount: 3, Genres: map[int64]struct{}{1: {}, 2: {}}},
		2: {ActorID: 2, RoleWeightSum: 1.0, QualitySum: 1.0, RoleCount: 1, Genres: map[int64]struct{}{1: {}}},
	}
	weights := domain.RecalcWeights{Role: 0.15, Quality: 0.70, Reach: 0.15}

	base := NewFeatureNormalizer(weights).Normalize(features)
	if len(base) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(base))
	}
	if base[1] <= base[2] {
		t.Errorf("actor 1 (stronger features) should outscore actor 2: got base[1]=%v base[2]=%v", base[1], base[2])
	}
	for id, v := range base {
		if v < 0 || v > 1000 {
			t.Errorf("actor %d base popularity %v out of [0,1000]", id, v)
		}
	}
}
