package usecases

import (
	"context"
	"testing"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

func TestHitMultiplier(t *testing.T) {
	cases := []struct {
		votes int64
		want  float64
	}{
		{0, 1.0},
		{19_999, 1.0},
		{20_000, 1.5},
		{99_999, 1.5},
		{100_000, 2.0},
		{499_999, 2.0},
		{500_000, 3.0},
		{1_000_000, 3.0},
	}
	for _, c := range cases {
		if got := hitMultiplier(c.votes); got != c.want {
			t.Errorf("hitMultiplier(%d) = %v, want %v", c.votes, got, c.want)
		}
	}
}

func TestTitleQualityBuilder_FiltersBelowFloorAndBelowMean(t *testing.T) {
	reader := &fakeTitleReader{
		titles: []fakeTitle{
			{id: 1, rating: f64(9.0), votes: i64(1_000)},   // below minVotesQuality
			{id: 2, rating: f64(5.0), votes: i64(50_000)},  // below global mean, filtered
			{id: 3, rating: f64(8.0), votes: i64(50_000), year: iptr(2010)},
		},
	}
	params := domain.RatingParams{GlobalMeanRating: 6.0, MinVotesForWeight: 10_000}

	quality, years, err := NewTitleQualityBuilder().Build(context.Background(), reader, params)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := quality[1]; ok {
		t.Errorf("title 1 should be filtered by minVotesQuality floor")
	}
	if _, ok := quality[2]; ok {
		t.Errorf("title 2 should be filtered by below-mean rating")
	}
	q3, ok := quality[3]
	if !ok {
		t.Fatalf("title 3 should survive filtering")
	}
	if q3 <= 0 {
		t.Errorf("title 3 quality = %v, want > 0", q3)
	}
	if years[3] == nil || *years[3] != 2010 {
		t.Errorf("title 3 start year = %v, want 2010", years[3])
	}
}

func TestTitleQualityBuilder_Empty(t *testing.T) {
	reader := &fakeTitleReader{}
	quality, years, err := NewTitleQualityBuilder().Build(context.Background(), reader, domain.RatingParams{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(quality) != 0 || len(years) != 0 {
		t.Errorf("expected empty maps, got quality=%v years=%v", quality, years)
	}
}
