package usecases

import (
	"context"
	"testing"

	"github.com/sixmovies/actorpop/internal/core/domain"
)

type fakePrincipalReader struct {
	rows []domain.TitlePrincipal
}

func (r *fakePrincipalReader) StreamPrincipals(_ context.Context, fn func(domain.TitlePrincipal) error) error {
	for _, row := range r.rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func TestRoleWeight(t *testing.T) {
	cases := []struct {
		ordering int
		want     float64
	}{
		{1, 1.0},
		{2, 0.6},
		{3, 0.6},
		{4, 0.3},
		{7, 0.3},
		{8, 0.1},
		{0, 0.1},
		{-1, 0.1},
	}
	for _, c := range cases {
		if got := roleWeight(c.ordering); got != c.want {
			t.Errorf("roleWeight(%d) = %v, want %v", c.ordering, got, c.want)
		}
	}
}

func TestPrincipalAggregator_SkipsNonActingAndUnqualifiedTitles(t *testing.T) {
	reader := &fakePrincipalReader{
		rows: []domain.TitlePrincipal{
			{ActorID: 1, TitleID: 100, Ordering: 1, Category: "actor"},
			{ActorID: 2, TitleID: 101, Ordering: 1, Category: "director"}, // not acting, skipped
			{ActorID: 3, TitleID: 999, Ordering: 1, Category: "actress"},  // no quality entry, skipped
		},
	}
	quality := TitleQualityMap{100: 10.0}
	genres := TitleGenreMap{100: {1: {}}}
	years := map[int64]*int{100: iptr(2015)}

	features, err := NewPrincipalAggregator(4).Aggregate(context.Background(), reader, quality, genres, years)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if _, ok := features[2]; ok {
		t.Errorf("actor 2 (director) should not be aggregated")
	}
	if _, ok := features[3]; ok {
		t.Errorf("actor 3 (unqualified title) should not be aggregated")
	}
	f1, ok := features[1]
	if !ok {
		t.Fatalf("actor 1 missing from result")
	}
	if f1.RoleWeightSum != 1.0 {
		t.Errorf("actor 1 RoleWeightSum = %v, want 1.0", f1.RoleWeightSum)
	}
	if f1.QualitySum != 10.0 {
		t.Errorf("actor 1 QualitySum = %v, want 10.0", f1.QualitySum)
	}
	if f1.RoleCount != 1 {
		t.Errorf("actor 1 RoleCount = %v, want 1", f1.RoleCount)
	}
	if !f1.HasMeanHitYear || f1.MeanHitYear != 2015 {
		t.Errorf("actor 1 MeanHitYear = %v (has=%v), want 2015", f1.MeanHitYear, f1.HasMeanHitYear)
	}
	if _, ok := f1.Genres[1]; !ok {
		t.Errorf("actor 1 missing genre 1")
	}
}

func TestPrincipalAggregator_MeanHitYearIsWeightedAcrossShards(t *testing.T) {
	reader := &fakePrincipalReader{
		rows: []domain.TitlePrincipal{
			{ActorID: 1, TitleID: 1, Ordering: 1, Category: "actor"},
			{ActorID: 1, TitleID: 2, Ordering: 1, Category: "actor"},
		},
	}
	quality := TitleQualityMap{1: 10.0, 2: 30.0}
	years := map[int64]*int{1: iptr(2000), 2: iptr(2010)}

	features, err := NewPrincipalAggregator(8).Aggregate(context.Background(), reader, quality, TitleGenreMap{}, years)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	f := features[1]
	if f == nil {
		t.Fatalf("actor 1 missing from result")
	}
	// weights are quality*roleWeight = 10 and 30 (both ordering 1, mr=1.0)
	want := (2000.0*10.0 + 2010.0*30.0) / (10.0 + 30.0)
	if diff := f.MeanHitYear - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("MeanHitYear = %v, want %v", f.MeanHitYear, want)
	}
}

func TestPrincipalAggregator_Empty(t *testing.T) {
	reader := &fakePrincipalReader{}
	features, err := NewPrincipalAggregator(4).Aggregate(context.Background(), reader, TitleQualityMap{}, TitleGenreMap{}, map[int64]*int{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(features) != 0 {
		t.Errorf("expected empty result, got %v", features)
	}
}
