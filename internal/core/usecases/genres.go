// internal/core/usecases/genres.go
package usecases

import (
	"context"

	"github.com/sixmovies/actorpop/internal/core/ports"
)

// TitleGenreMap is the per-title set of genre ids, restricted to titles
// that carry a quality entry (titles outside the quality map never reach
// the Principal Aggregator, so their genres are never needed). Genre
// identity, not name, is what drives S_reach_raw's distinct-genre count,
// so ids are kept rather than resolving names.
type TitleGenreMap map[int64]map[int64]struct{}

// BuildTitleGenreMap streams every (title, genre) pair and keeps only the
// ones whose title survived the quality filter. Titles with no genre rows
// simply never appear in the result, matching spec.md's "missing entries
// default to the empty set".
func BuildTitleGenreMap(ctx context.Context, titles ports.TitleReader, quality TitleQualityMap) (TitleGenreMap, error) {
	out := make(TitleGenreMap)

	err := titles.StreamTitleGenres(ctx, func(titleID, genreID int64) error {
		if _, ok := quality[titleID]; !ok {
			return nil
		}
		set, ok := out[titleID]
		if !ok {
			set = make(map[int64]struct{})
			out[titleID] = set
		}
		set[genreID] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
