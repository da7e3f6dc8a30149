// internal/core/domain/entities.go
package domain

import "time"

// Title is a single IMDb title row as ingested upstream of this engine.
type Title struct {
	ID          int64
	Tconst      string
	TitleType   string
	PrimaryName string
	StartYear   *int
	ImdbRating  *float64
	ImdbVotes   *int64
}

// Genre is a normalized genre name shared across titles.
type Genre struct {
	ID   int64
	Name string
}

// TitleGenre is the many-to-many join between Title and Genre.
type TitleGenre struct {
	TitleID int64
	GenreID int64
}

// Profession is a normalized IMDb profession name. Schema-only: the scoring
// pipeline never reads it.
type Profession struct {
	ID   int64
	Name string
}

// ActorProfession is the many-to-many join between Actor and Profession.
// Schema-only, like Profession.
type ActorProfession struct {
	ActorID      int64
	ProfessionID int64
}

// Actor is a single IMDb person row, carrying both ingested fields and the
// fields this engine owns (PopularityScore, PopularityVersionID).
type Actor struct {
	ID                  int64
	Nconst              string
	Name                string
	BirthYear           *int
	DeathYear           *int
	IsVoiceActor        bool
	Blackmark           bool
	Wildcard            bool
	PopularityScore     float64
	PopularityVersionID *int64
}

// TitlePrincipal links an Actor to a Title with their billing order and
// department.
type TitlePrincipal struct {
	ID       int64
	TitleID  int64
	ActorID  int64
	Ordering int
	Category string
	Job      *string
}

// TitlePrincipalCharacter names a character an actor played in a title.
// Schema-only: the scoring pipeline never reads it.
type TitlePrincipalCharacter struct {
	TitlePrincipalID int64
	Character        string
}

// ActorEdge is an undirected co-appearance edge between two actors, stored
// with the lower actor id first per the unique-pair invariant.
type ActorEdge struct {
	ActorIDLow  int64
	ActorIDHigh int64
	Weight      int
}

// PopularityVersion records one completed run of the popularity
// recalculation: the weights and calibration constants used, and a
// human-readable note. Every recalculation inserts exactly one row here
// before mutating any Actor.
type PopularityVersion struct {
	ID                int64
	CreatedAt         time.Time
	WeightRole        float64
	WeightQuality     float64
	WeightReach       float64
	GlobalMeanRating  float64
	MinVotesForWeight int64
	Notes             string
}

// RatingParams holds the Bayesian calibration constants computed once per
// run from the full title-rating distribution.
type RatingParams struct {
	GlobalMeanRating  float64
	MinVotesForWeight int64
}

// ActorFeatures holds the three raw, unnormalized reach signals accumulated
// per actor during the principal aggregation pass.
type ActorFeatures struct {
	ActorID        int64
	RoleWeightSum  float64
	QualitySum     float64
	RoleCount      int
	MeanHitYear    float64
	HasMeanHitYear bool
	Genres         map[int64]struct{}
}

// RecalcWeights are the caller-supplied weights for the three composed
// components of the final popularity score.
type RecalcWeights struct {
	Role    float64
	Quality float64
	Reach   float64
}

// RecalcResult summarizes one completed recalculation run for callers
// (CLI output, scheduler logging).
type RecalcResult struct {
	Version      PopularityVersion
	ActorsScored int
	Elapsed      time.Duration
}
