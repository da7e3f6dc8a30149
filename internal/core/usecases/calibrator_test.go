package usecases

import (
	"context"
	"testing"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

type fakeTitle struct {
	id     int64
	rating *float64
	votes  *int64
	year   *int
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func iptr(v int) *int        { return &v }

type fakeTitleReader struct {
	titles      []fakeTitle
	genresOf    map[int64][]int64
}

func (r *fakeTitleReader) StreamRatings(_ context.Context, fn func(domain.Title) error) error {
	for _, t := range r.titles {
		title := domain.Title{ID: t.id, ImdbRating: t.rating, ImdbVotes: t.votes, StartYear: t.year}
		if err := fn(title); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTitleReader) StreamTitleGenres(_ context.Context, fn func(titleID, genreID int64) error) error {
	for titleID, genres := range r.genresOf {
		for _, g := range genres {
			if err := fn(titleID, g); err != nil {
				return err
			}
		}
	}
	return nil
}

func TestRatingCalibrator_Empty(t *testing.T) {
	reader := &fakeTitleReader{}
	params, err := NewRatingCalibrator().Calibrate(context.Background(), reader)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if params.GlobalMeanRating != 0.0 {
		t.Errorf("GlobalMeanRating = %v, want 0", params.GlobalMeanRating)
	}
	if params.MinVotesForWeight != 1 {
		t.Errorf("MinVotesForWeight = %v, want 1", params.MinVotesForWeight)
	}
}

func TestRatingCalibrator_Basic(t *testing.T) {
	reader := &fakeTitleReader{
		titles: []fakeTitle{
			{id: 1, rating: f64(8.0), votes: i64(600_000)},
			{id: 2, rating: f64(7.0), votes: i64(25_000)},
			{id: 3, rating: nil, votes: i64(100)}, // unrated, ignored
		},
	}
	params, err := NewRatingCalibrator().Calibrate(context.Background(), reader)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	wantMean := (8.0 + 7.0) / 2.0
	if params.GlobalMeanRating != wantMean {
		t.Errorf("GlobalMeanRating = %v, want %v", params.GlobalMeanRating, wantMean)
	}
	// n=2, idx = int(0.9*2)-1 = int(1.8)-1 = 0, sorted votes [25000,600000][0]=25000
	if params.MinVotesForWeight != 25_000 {
		t.Errorf("MinVotesForWeight = %v, want 25000", params.MinVotesForWeight)
	}
}
