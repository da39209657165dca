package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/choragraph/chora/adapters"
	"github.com/choragraph/chora/config"
	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/logger"
	"github.com/choragraph/chora/server"
)

// ServeCmd starts the chora graph server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the chora graph server",
	Long: `Launch the chora server: HTTP API for graph, places, and encounter
ingest, plus a WebSocket endpoint broadcasting live graph updates.`,
	RunE: runServe,
}

var (
	serveDBPath  string
	servePort    int
	serveGraph   string
	serveMemory  bool
	serveNoWatch bool
)

func init() {
	ServeCmd.Flags().StringVar(&serveDBPath, "db-path", "", "Custom database path (overrides config)")
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides config)")
	ServeCmd.Flags().StringVar(&serveGraph, "graph", "", "Graph name to serve (overrides config)")
	ServeCmd.Flags().BoolVar(&serveMemory, "memory", false, "Use an in-memory adapter (nothing is persisted)")
	ServeCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable config file watching")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveGraph != "" {
		cfg.Server.GraphName = serveGraph
	}

	adapter, dbPath, err := openAdapter(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	printServeBanner(cfg, dbPath)

	srv, err := server.New(cfg, adapter)
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}

	// Reload config on file changes so tuning parameters apply without a
	// restart. Port and adapter changes still require one.
	if !serveNoWatch {
		if watcher, err := config.NewConfigWatcher(config.UserConfigPath()); err == nil {
			watcher.OnReload(func(reloaded *config.Config) error {
				logger.Logger.Infow("Configuration reloaded",
					"half_life_days", reloaded.Decay.HalfLifeDays)
				return nil
			})
			watcher.Start()
			config.SetGlobalWatcher(watcher)
			defer watcher.Stop()
		} else {
			logger.Logger.Debugw("Config watcher not started", "error", err)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		pterm.Println()
		pterm.Info.Printf("Received %s, shutting down\n", sig)
		return srv.Stop()
	}
}

// openAdapter opens the configured storage backend. The returned path is
// empty for the in-memory adapter.
func openAdapter(cfg *config.Config) (adapters.Adapter, string, error) {
	if serveMemory {
		adapter := adapters.NewMemory()
		if err := adapter.Connect(context.Background()); err != nil {
			return nil, "", errors.Wrap(err, "failed to connect memory adapter")
		}
		return adapter, "", nil
	}

	dbPath := serveDBPath
	if dbPath == "" {
		resolved, err := config.GetDatabasePath()
		if err != nil || resolved == "" {
			dbPath = cfg.Database.Path
		} else {
			dbPath = resolved
		}
	}

	adapter := adapters.NewSQLite(dbPath)
	if err := adapter.Connect(context.Background()); err != nil {
		return nil, "", errors.Wrapf(err, "failed to open database %q", dbPath)
	}
	return adapter, dbPath, nil
}
