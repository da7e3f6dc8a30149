// cmd/actorpop/actorinfo.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sixmovies/actorpop/internal/repository/postgres"
)

// newActorInfoCommand builds the `actorpop actor-info <actor-id>` diagnostic
// subcommand: prints the normalized profession list the supplemented
// Profession/ActorProfession tables carry, for operators auditing what an
// actor is credited with outside the acting categories the scoring pipeline
// itself reads.
func newActorInfoCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "actor-info <actor-id>",
		Short: "Show an actor's normalized profession list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actorID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid actor id %q: %w", args[0], err)
			}

			ctx := cmd.Context()
			conn, err := bootstrap(ctx, *configFile)
			if err != nil {
				return err
			}
			defer conn.close()

			actorRepo := postgres.NewActorRepository(conn.manager.Pool())
			professions, err := actorRepo.ActorProfessions(ctx, actorID)
			if err != nil {
				return fmt.Errorf("loading professions for actor %d: %w", actorID, err)
			}

			if len(professions) == 0 {
				fmt.Printf("actor %d: no recorded professions\n", actorID)
				return nil
			}
			fmt.Printf("actor %d: %s\n", actorID, strings.Join(professions, ", "))
			return nil
		},
	}
}
