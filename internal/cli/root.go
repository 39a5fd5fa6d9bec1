// Package cli wires the command line surface: one-off analysis, backtests
// and configuration inspection.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/internal/config"
)

// app carries the resolved configuration and logger into subcommands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	var (
		cfgPath string
		debug   bool
	)
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tradecouncil",
		Short: "Multi-agent trading decision pipeline",
		Long: `tradecouncil runs a team of specialized LLM agents through structured
debate to reach a BUY, SELL or HOLD decision for a stock, and can replay
the pipeline over historical trading days as a backtest.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgPath != "" {
				a.cfg, err = config.LoadYAML(cfgPath)
				if err != nil {
					return err
				}
			} else {
				a.cfg = config.DefaultConfig()
			}
			if debug {
				a.cfg.Debug = true
			}

			a.logger, err = newLogger(a.cfg.Debug)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}

			if err := a.cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(a)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")

	rootCmd.AddCommand(newAnalyzeCmd(a))
	rootCmd.AddCommand(newBacktestCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
