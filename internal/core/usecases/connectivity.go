// internal/core/usecases/connectivity.go
package usecases

import (
	"context"
	"math"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/ports"
)

// scsNeighborExponent is the deliberate, steep damping applied to a
// neighbor's popularity: only neighbors already close to maximum
// popularity contribute meaningfully to a star's SCS.
const scsNeighborExponent = 6

type weightedNeighbor struct {
	actorID int64
	weight  float64
}

// ConnectivityScorer computes the Star Connectivity Score (SCS) for every
// actor with a base popularity entry, from the undirected actor
// co-appearance graph.
type ConnectivityScorer struct{}

// NewConnectivityScorer constructs a ConnectivityScorer.
func NewConnectivityScorer() *ConnectivityScorer {
	return &ConnectivityScorer{}
}

// Score streams the actor-edge graph, builds an adjacency list restricted
// to actors present in basePop, and returns SCS normalized to [0,1000].
// Actors with no surviving edge are simply absent from the result; callers
// must treat a missing entry as 0.
func (s *ConnectivityScorer) Score(ctx context.Context, edges ports.ActorEdgeReader, basePop BasePopularity) (map[int64]float64, error) {
	adjacency := make(map[int64][]weightedNeighbor)

	err := edges.StreamEdges(ctx, func(e domain.ActorEdge) error {
		if _, ok := basePop[e.ActorIDLow]; !ok {
			return nil
		}
		if _, ok := basePop[e.ActorIDHigh]; !ok {
			return nil
		}

		shared := e.Weight
		if shared > 3 {
			shared = 3
		}
		if shared <= 0 {
			return nil
		}

		edgeWeight := math.Log1p(float64(shared))
		adjacency[e.ActorIDLow] = append(adjacency[e.ActorIDLow], weightedNeighbor{e.ActorIDHigh, edgeWeight})
		adjacency[e.ActorIDHigh] = append(adjacency[e.ActorIDHigh], weightedNeighbor{e.ActorIDLow, edgeWeight})
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw := make(map[int64]float64, len(adjacency))
	for actorID, neighbors := range adjacency {
		for _, neighbor := range neighbors {
			neighPop01 := basePop[neighbor.actorID] / 1000.0
			if neighPop01 <= 0.0 {
				continue
			}
			starFactor := math.Pow(neighPop01, scsNeighborExponent)
			if starFactor <= 0.0 {
				continue
			}
			raw[actorID] += neighbor.weight * starFactor
		}
	}

	return normalizeSCS(raw), nil
}

// normalizeSCS min-max normalizes raw SCS values into [0,1000]; a uniform
// set of non-zero raws collapses to 500, matching the Feature Normalizer's
// uniform-value rule.
func normalizeSCS(raw map[int64]float64) map[int64]float64 {
	if len(raw) == 0 {
		return map[int64]float64{}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range raw {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make(map[int64]float64, len(raw))
	if hi > lo {
		scale := 1000.0 / (hi - lo)
		for k, v := range raw {
			out[k] = (v - lo) * scale
		}
		return out
	}

	for k := range raw {
		out[k] = 500.0
	}
	return out
}
