// cmd/actorpop/recalc.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/core/usecases"
	"github.com/sixmovies/actorpop/internal/report"
	"github.com/sixmovies/actorpop/internal/repository/postgres"
)

// newRecalcCommand builds the `actorpop recalc` subcommand: runs
// recalc_actor_popularity once and prints the resulting version summary.
func newRecalcCommand(configFile *string) *cobra.Command {
	var (
		weightRole    float64
		weightQuality float64
		weightReach   float64
		notes         string
	)

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Run one actor popularity recalculation pass",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			conn, err := bootstrap(ctx, *configFile)
			if err != nil {
				return err
			}
			defer conn.close()

			weights := domain.RecalcWeights{
				Role:    conn.cfg.Weights.Role,
				Quality: conn.cfg.Weights.Quality,
				Reach:   conn.cfg.Weights.Reach,
			}
			if cmd.Flags().Changed("w-role") {
				weights.Role = weightRole
			}
			if cmd.Flags().Changed("w-quality") {
				weights.Quality = weightQuality
			}
			if cmd.Flags().Changed("w-reach") {
				weights.Reach = weightReach
			}

			engine := buildEngine(conn)

			result, err := engine.RecalcActorPopularity(ctx, weights, notes)
			if err != nil {
				return fmt.Errorf("recalculating actor popularity: %w", err)
			}

			actorRepo := postgres.NewActorRepository(conn.manager.Pool())
			scores, err := actorRepo.ScoresForVersion(ctx, result.Version.ID)
			if err != nil {
				conn.logger.Warn("could not load scores for summary", zap.Error(err))
			}

			summary := report.Summarize(result.Version.ID, result.Elapsed, scores)
			fmt.Println(summary.String())
			fmt.Printf("notes: %s\n", result.Version.Notes)
			return nil
		},
	}

	cmd.Flags().Float64Var(&weightRole, "w-role", 0, "Override the role-weight component (default: config value)")
	cmd.Flags().Float64Var(&weightQuality, "w-quality", 0, "Override the quality-weight component (default: config value)")
	cmd.Flags().Float64Var(&weightReach, "w-reach", 0, "Override the reach-weight component (default: config value)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text note stored on the published PopularityVersion")

	return cmd
}

// buildEngine wires the postgres repository adapters and the version
// publisher into a usecases.Engine, ready to run recalc_actor_popularity.
func buildEngine(conn *connected) *usecases.Engine {
	pool := conn.manager.Pool()

	titles := postgres.NewTitleRepository(pool)
	principals := postgres.NewPrincipalRepository(pool)
	edges := postgres.NewEdgeRepository(pool)
	actors := postgres.NewActorRepository(pool)
	versions := postgres.NewVersionRepository(pool)

	publisher := usecases.NewVersionPublisher(conn.manager, versions, actors, conn.cfg.BatchSize)

	return usecases.NewEngine(titles, principals, edges, actors, publisher, conn.cfg.Shards, conn.logger)
}
