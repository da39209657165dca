package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/choragraph/chora/adapters"
	"github.com/choragraph/chora/config"
	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/graph"
)

// ValidateCmd checks a stored graph against the platial schema
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a stored graph against the platial schema",
	Long: `Load a graph from the configured database and check its structural
invariants: node identity and validity intervals, edge endpoints, and the
expected edge shapes between node types.

In strict mode, off-schema edges are errors instead of warnings.`,
	RunE: runValidate,
}

var (
	validateDBPath string
	validateGraph  string
	validateStrict bool
)

func init() {
	ValidateCmd.Flags().StringVar(&validateDBPath, "db-path", "", "Custom database path (overrides config)")
	ValidateCmd.Flags().StringVar(&validateGraph, "graph", "", "Graph name to validate (overrides config)")
	ValidateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat off-schema edges as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	dbPath := validateDBPath
	if dbPath == "" {
		resolved, err := config.GetDatabasePath()
		if err != nil || resolved == "" {
			dbPath = cfg.Database.Path
		} else {
			dbPath = resolved
		}
	}

	graphName := validateGraph
	if graphName == "" {
		graphName = cfg.Server.GraphName
	}

	strict := validateStrict || cfg.Validation.Strict

	adapter := adapters.NewSQLite(dbPath)
	if err := adapter.Connect(context.Background()); err != nil {
		return errors.Wrapf(err, "failed to open database %q", dbPath)
	}
	defer adapter.Close()

	g, err := adapter.LoadGraph(context.Background(), graphName)
	if err != nil {
		return errors.Wrapf(err, "failed to load graph %q", graphName)
	}

	pterm.Info.Printf("Validating graph %q (%d nodes, %d edges)\n",
		graphName, g.NodeCount(), g.EdgeCount())

	result := graph.ValidateGraph(g, strict)

	for _, warning := range result.Warnings {
		pterm.Warning.Println(warning)
	}
	for _, errMsg := range result.Errors {
		pterm.Error.Println(errMsg)
	}

	if !result.Valid() {
		return errors.Newf("graph %q failed validation with %d errors", graphName, len(result.Errors))
	}

	pterm.Success.Printf("Graph %q is valid (%d warnings)\n", graphName, len(result.Warnings))
	return nil
}
