package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/spartan/planner/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Spartan Planner API Server",
		Long:  `Spartan Planner is a student task and calendar management service backing the planner web client.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
