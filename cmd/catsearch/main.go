// Command catsearch searches for Life catalysts: still lifes that interact
// with a background pattern and are restored after the reaction.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mad-cat/internal/logging"
)

var (
	// Global flags
	verbose bool
	dbPath  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "catsearch",
	Short: "Catalyst search for Conway's Game of Life",
	Long: `catsearch places still-life catalysts around a pattern, simulates every
admissible configuration and keeps those where the catalysts interact with
the pattern and all recover. Results are grouped into categories by what the
reaction leaves behind.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite archive of runs (disabled when empty)")

	rootCmd.AddCommand(runCmd, checkCmd, showCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
