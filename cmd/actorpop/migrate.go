// cmd/actorpop/migrate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sixmovies/actorpop/internal/migrations"
)

// newMigrateCommand builds the `actorpop migrate [up|down|status]` subcommand
// group over the embedded schema migrations.
func newMigrateCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(c *cobra.Command, _ []string) error {
				return withMigrator(c, *configFile, func(m *migrations.Migrator) error {
					return m.Up(c.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recently applied migration",
			RunE: func(c *cobra.Command, _ []string) error {
				return withMigrator(c, *configFile, func(m *migrations.Migrator) error {
					return m.Down(c.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			RunE: func(c *cobra.Command, _ []string) error {
				return withMigrator(c, *configFile, func(m *migrations.Migrator) error {
					return m.Status(c.Context())
				})
			},
		},
	)

	return cmd
}

func withMigrator(cmd *cobra.Command, configFile string, fn func(*migrations.Migrator) error) error {
	ctx := cmd.Context()

	conn, err := bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	defer conn.close()

	migrator, err := migrations.NewMigrator(conn.manager.Pool(), conn.logger)
	if err != nil {
		return fmt.Errorf("building migrator: %w", err)
	}

	return fn(migrator)
}
