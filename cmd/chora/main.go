package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/choragraph/chora/cmd/chora/commands"
	"github.com/choragraph/chora/logger"
)

var rootCmd = &cobra.Command{
	Use:   "chora",
	Short: "chora - Platial graph engine",
	Long: `chora - A typed temporal graph of situated experience.

chora stores encounters between agents and spatial extents and derives
platial structure from them: familiarity, practices, liminal zones, and
emergent places.

Available commands:
  serve    - Start the graph server (HTTP API + live WebSocket graph)
  config   - Manage chora configuration
  validate - Validate a stored graph against the platial schema
  version  - Show version information

Examples:
  chora config show            # Show current configuration
  chora serve                  # Start the graph server
  chora validate --graph home  # Validate the "home" graph`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
