// Package cmd - operational CLI commands
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:   "stockapp",
	Short: "Stock Market Web App - operational CLI",
	Long: `Stock Market Web App - operational CLI

Commands:
    check-env          Validate required environment variables
    migrate            Create the application schema
    test-db            Connectivity smoke test for both databases
    cleanup-sessions   Delete expired session rows

All commands exit non-zero on failure.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(checkEnvCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(testDBCmd)
	rootCmd.AddCommand(cleanupSessionsCmd)
}

// initConfig loads the .env file if present
func initConfig() error {
	if err := godotenv.Load(); err != nil {
		if verbose {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}
	return nil
}
