package commands

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/choragraph/chora/config"
	"github.com/choragraph/chora/internal/version"
)

// printServeBanner prints the user-friendly startup message
func printServeBanner(cfg *config.Config, dbPath string) {
	pterm.DefaultHeader.WithFullWidth().Println("chora - platial graph server")
	pterm.Println()

	versionInfo := version.Get()
	pterm.Info.Printf("Version:  %s (commit %s)\n", versionInfo.Version, versionInfo.Short())
	pterm.Info.Printf("Graph:    %s\n", cfg.Server.GraphName)
	if dbPath != "" {
		pterm.Info.Printf("Database: %s\n", dbPath)
	} else {
		pterm.Info.Println("Database: in-memory (nothing is persisted)")
	}
	pterm.Info.Printf("Listen:   http://localhost:%d\n", cfg.Server.Port)
	pterm.Println()
	fmt.Println("Press Ctrl+C to stop")
	pterm.Println()
}
