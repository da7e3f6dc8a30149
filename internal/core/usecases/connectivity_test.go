package usecases

import (
	"context"
	"testing"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

type fakeEdgeReader struct {
	edges []domain.ActorEdge
}

func (r *fakeEdgeReader) StreamEdges(_ context.Context, fn func(domain.ActorEdge) error) error {
	for _, e := range r.edges {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func TestConnectivityScorer_IgnoresEdgesOutsideBasePop(t *testing.T) {
	reader := &fakeEdgeReader{edges: []domain.ActorEdge{
		{ActorIDLow: 1, ActorIDHigh: 2, Weight: 3},
		{ActorIDLow: 1, ActorIDHigh: 99, Weight: 5}, // 99 has no base popularity
	}}
	basePop := BasePopularity{1: 900.0, 2: 900.0}

	scores, err := NewConnectivityScorer().Score(context.Background(), reader, basePop)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if _, ok := scores[99]; ok {
		t.Errorf("actor 99 should never appear: it has no base popularity")
	}
}

func TestConnectivityScorer_HighPopularityNeighborDominates(t *testing.T) {
	reader := &fakeEdgeReader{edges: []domain.ActorEdge{
		{ActorIDLow: 1, ActorIDHigh: 2, Weight: 2},
		{ActorIDLow: 1, ActorIDHigh: 3, Weight: 2},
	}}
	// actor 2 is near-max popularity, actor 3 is low; the steep damping
	// (pow 6) should make actor 1's SCS dominated by actor 2's contribution.
	basePop := BasePopularity{1: 500.0, 2: 1000.0, 3: 100.0}

	scores, err := NewConnectivityScorer().Score(context.Background(), reader, basePop)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(scores) == 0 {
		t.Fatalf("expected non-empty scores")
	}
	for id, v := range scores {
		if v < 0 || v > 1000 {
			t.Errorf("actor %d SCS %v out of [0,1000]", id, v)
		}
	}
	// actors 2 and 3 only see actor 1 (0.5^6), while actor 1 sees actor 2
	// (1.0^6), so actor 1 tops the normalized range.
	if scores[1] <= scores[2] || scores[1] <= scores[3] {
		t.Errorf("actor 1 should outscore its low-popularity peers: got %v", scores)
	}
}

func TestConnectivityScorer_Empty(t *testing.T) {
	reader := &fakeEdgeReader{}
	scores, err := NewConnectivityScorer().Score(context.Background(), reader, BasePopularity{})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected empty scores, got %v", scores)
	}
}
