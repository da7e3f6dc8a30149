// internal/report/summary.go
package report

import (
	"fmt"
	"time"

	"github.com/sixmovies/actorpop/internal/util"
)

// RunSummary is the end-of-run diagnostic this repository emits in place of
// the original's print-statement progress reporting: actor count and score
// distribution shape, logged once a recalculation completes.
type RunSummary struct {
	VersionID    int64
	ActorsScored int
	Elapsed      time.Duration

	MeanScore   float64
	MinScore    float64
	MaxScore    float64
	StdDev      float64
	P50         float64
	P90         float64
	P99         float64
	Distribution util.DistributionStats
}

// Summarize computes a RunSummary from the final published scores. scores
// may be empty (an empty-input or empty-aggregate run); every score
// statistic is then simply zero.
func Summarize(versionID int64, elapsed time.Duration, scores []float64) RunSummary {
	summary := RunSummary{VersionID: versionID, ActorsScored: len(scores), Elapsed: elapsed}
	if len(scores) == 0 {
		return summary
	}

	data := make([]float64, len(scores))
	copy(data, scores)

	avg, min, max, stddev := util.Stats(data)
	summary.MeanScore = avg
	summary.MinScore = min
	summary.MaxScore = max
	summary.StdDev = stddev

	percentiles := util.CalculatePercentiles(data, []int{50, 90, 99})
	summary.P50 = percentiles[0]
	summary.P90 = percentiles[1]
	summary.P99 = percentiles[2]

	summary.Distribution = util.CalculateDistributionStats(data)

	return summary
}

// String renders a one-line human-readable summary, for CLI output.
func (s RunSummary) String() string {
	if s.ActorsScored == 0 {
		return fmt.Sprintf("version %d: 0 actors scored in %s", s.VersionID, s.Elapsed.Round(time.Millisecond))
	}
	return fmt.Sprintf(
		"version %d: %d actors scored in %s (mean=%.1f p50=%.1f p90=%.1f p99=%.1f min=%.1f max=%.1f stddev=%.1f)",
		s.VersionID, s.ActorsScored, s.Elapsed.Round(time.Millisecond),
		s.MeanScore, s.P50, s.P90, s.P99, s.MinScore, s.MaxScore, s.StdDev,
	)
}
