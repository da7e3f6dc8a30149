// cmd/actorpop/main.go
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// Version information (set by build system via ldflags).
var (
	Version   = "v0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "actorpop",
		Short: "Actor popularity recalculation engine for an IMDb-backed catalog",
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to an optional YAML config file")

	rootCmd.AddCommand(
		newRecalcCommand(&configFile),
		newMigrateCommand(&configFile),
		newScheduleCommand(&configFile),
		newActorInfoCommand(&configFile),
		newVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("actorpop %s\n", Version)
			fmt.Printf("  git commit: %s\n", GitCommit)
			fmt.Printf("  build time: %s\n", BuildTime)
		},
	}
}
