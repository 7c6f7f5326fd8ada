package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pdrpinto/gridsearch/internal/config"
	"github.com/pdrpinto/gridsearch/internal/ctxlog"
	"github.com/pdrpinto/gridsearch/internal/service"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg config.Config
	svc *service.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "gridsearch",
		Short: "Find shortest routes on a grid with blocked cells",
		Long: `gridsearch finds a shortest 4-directional route between two cells of a
grid, using either informed best-first search (astar) or frontier
propagation from the goal (frontier).

Grids come from HCL or YAML scenario files, or from flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	flags.StringVar(&a.logFormat, "log-format", "", "text|json (overrides config)")

	rootCmd.AddCommand(newSolveCmd(a), newCompareCmd(a), newRandomCmd(a), newServeCmd(a))
	return rootCmd
}

// load resolves config, logger and service before any subcommand runs.
func (a *app) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	logger.Debug("Configuration loaded", "strategy", cfg.Strategy, "workers", cfg.Workers)

	a.svc = service.New(
		service.WithDefaultStrategy(cfg.SearchStrategy()),
		service.WithWorkers(cfg.Workers),
	)
	return nil
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context, args []string) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
