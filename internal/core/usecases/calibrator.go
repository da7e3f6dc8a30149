// internal/core/usecases/calibrator.go
package usecases

import (
	"context"
	"sort"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

// RatingCalibrator computes the two global constants every later stage
// leans on: C, the mean IMDb rating across rated titles, and M, the
// 90th-percentile vote count used as the Bayesian smoothing floor.
type RatingCalibrator struct{}

// NewRatingCalibrator constructs a RatingCalibrator. It carries no state.
func NewRatingCalibrator() *RatingCalibrator {
	return &RatingCalibrator{}
}

// Calibrate scans every title with both a rating and a vote count and
// returns the resulting (C, M) pair. An empty input yields C=0, M=1, per
// spec.md's empty-input contract.
func (c *RatingCalibrator) Calibrate(ctx context.Context, titles ports.TitleReader) (domain.RatingParams, error) {
	var sum float64
	var n int64
	var votes []int64

	err := titles.StreamRatings(ctx, func(t domain.Title) error {
		if t.ImdbRating == nil || t.ImdbVotes == nil {
			return nil
		}
		sum += *t.ImdbRating
		n++
		votes = append(votes, *t.ImdbVotes)
		return nil
	})
	if err != nil {
		return domain.RatingParams{}, err
	}

	if n == 0 {
		return domain.RatingParams{GlobalMeanRating: 0.0, MinVotesForWeight: 1}, nil
	}

	sort.Slice(votes, func(i, j int) bool { return votes[i] < votes[j] })

	idx := int(0.9*float64(len(votes))) - 1
	if idx < 0 {
		idx = 0
	}
	m := votes[idx]
	if m <= 0 {
		m = 1
	}

	return domain.RatingParams{
		GlobalMeanRating:  sum / float64(n),
		MinVotesForWeight: m,
	}, nil
}
