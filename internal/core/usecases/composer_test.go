package usecases

import (
	"testing"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

func TestAgeFactor(t *testing.T) {
	cases := []struct {
		year float64
		has  bool
		want float64
	}{
		{0, false, 1.0},
		{1960, true, 0.10},
		{1975, true, 0.35},
		{1990, true, 0.75},
		{2010, true, 1.0},
	}
	for _, c := range cases {
		if got := ageFactor(c.year, c.has); got != c.want {
			t.Errorf("ageFactor(%v, %v) = %v, want %v", c.year, c.has, got, c.want)
		}
	}
}

func TestScoreComposer_Precedence(t *testing.T) {
	basePop := BasePopularity{1: 800.0, 2: 800.0, 3: 800.0, 4: 800.0}
	scsNorm := map[int64]float64{1: 800.0, 2: 800.0, 3: 800.0, 4: 800.0}
	features := map[int64]*domain.ActorFeatures{
		1: {ActorID: 1, MeanHitYear: 2010, HasMeanHitYear: true},
		2: {ActorID: 2, MeanHitYear: 2010, HasMeanHitYear: true},
		3: {ActorID: 3, MeanHitYear: 2010, HasMeanHitYear: true},
		4: {ActorID: 4, MeanHitYear: 2010, HasMeanHitYear: true},
	}
	flags := map[int64]ActorFlags{
		2: {Blackmark: true, Wildcard: true}, // blackmark wins over wildcard
		3: {Wildcard: true, IsVoiceActor: true}, // voice zeroes a wildcard boost
		4: {Wildcard: true},
	}

	final := NewScoreComposer().Compose(features, basePop, scsNorm, flags)

	if final[2] != 0.0 {
		t.Errorf("blackmark should zero score regardless of wildcard, got %v", final[2])
	}
	if final[3] != 0.0 {
		t.Errorf("voice actor should be zeroed even with wildcard set, got %v", final[3])
	}
	if final[4] <= final[1] {
		t.Errorf("wildcard (no voice/blackmark) should boost above unflagged baseline: final[4]=%v final[1]=%v", final[4], final[1])
	}
}

func TestScoreComposer_WildcardBoostClampsAt1000(t *testing.T) {
	basePop := BasePopularity{1: 1000.0}
	scsNorm := map[int64]float64{1: 1000.0}
	flags := map[int64]ActorFlags{1: {Wildcard: true}}

	final := NewScoreComposer().Compose(nil, basePop, scsNorm, flags)
	if final[1] != 1000.0 {
		t.Errorf("wildcard boost should clamp at 1000, got %v", final[1])
	}
}

func TestScoreComposer_MissingFlagsAndFeaturesDefaultToZeroValue(t *testing.T) {
	basePop := BasePopularity{5: 600.0}
	scsNorm := map[int64]float64{5: 400.0}

	final := NewScoreComposer().Compose(nil, basePop, scsNorm, nil)
	want := 0.5*600.0 + 0.5*400.0
	if final[5] != want {
		t.Errorf("final[5] = %v, want %v", final[5], want)
	}
}
