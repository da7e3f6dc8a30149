// cmd/actorpop/schedule.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sixmovies/actorpop/internal/core/domain"
	"github.com/sixmovies/actorpop/internal/repository/postgres"
	"github.com/sixmovies/actorpop/internal/report"
	"github.com/sixmovies/actorpop/internal/schedule"
)

// newScheduleCommand builds the `actorpop schedule --every DURATION`
// subcommand: runs recalc_actor_popularity on a fixed interval until
// interrupted.
func newScheduleCommand(configFile *string) *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Recalculate actor popularity on a fixed interval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			conn, err := bootstrap(ctx, *configFile)
			if err != nil {
				return err
			}
			defer conn.close()

			engine := buildEngine(conn)
			weights := domain.RecalcWeights{
				Role:    conn.cfg.Weights.Role,
				Quality: conn.cfg.Weights.Quality,
				Reach:   conn.cfg.Weights.Reach,
			}
			actorRepo := postgres.NewActorRepository(conn.manager.Pool())

			sched := schedule.NewScheduler(conn.logger)
			taskTimeout := every
			if taskTimeout < time.Minute {
				taskTimeout = time.Minute
			}
			err = sched.AddIntervalTask("recalc_actor_popularity", every, taskTimeout, func(taskCtx context.Context) error {
				result, err := engine.RecalcActorPopularity(taskCtx, weights, "")
				if err != nil {
					return err
				}
				scores, scoreErr := actorRepo.ScoresForVersion(taskCtx, result.Version.ID)
				if scoreErr != nil {
					conn.logger.Warn("could not load scores for summary", zap.Error(scoreErr))
				}
				conn.logger.Info("scheduled recalc finished", zap.String("summary", report.Summarize(result.Version.ID, result.Elapsed, scores).String()))
				return nil
			})
			if err != nil {
				return fmt.Errorf("scheduling recalc task: %w", err)
			}

			sched.Start()
			conn.logger.Info("scheduler started", zap.Duration("every", every))

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			conn.logger.Info("received signal, shutting down scheduler", zap.String("signal", sig.String()))

			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sched.Stop(stopCtx)

			return nil
		},
	}

	cmd.Flags().DurationVar(&every, "every", 24*time.Hour, "Interval between recalculation runs")

	return cmd
}
