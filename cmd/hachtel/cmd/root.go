// Package cmd provides the CLI commands for hachtel.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/hachtel/internal/config"
	"github.com/katalvlaran/hachtel/internal/logging"
)

// app carries what the persistent pre-run prepares for subcommands.
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand builds the command tree with fresh flag state.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hachtel",
		Short: "Estimate power-system state and breaker status",
		Long: `hachtel solves the augmented-matrix weighted least-squares state estimator
with branch statuses as unknowns, and ranks branches by their normalized
Lagrange multiplier to expose topology errors.

Examples:
  hachtel estimate
  hachtel estimate --case fourbus --flip 3_4
  hachtel estimate --case ring --size 10 --amplitude 1 --format yaml
  hachtel estimate --config hachtel.yaml`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file (defaults when absent)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every iteration")

	root.AddCommand(newEstimateCommand(a))
	root.AddCommand(newCasesCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	a.cfg, a.log = cfg, log

	return nil
}
