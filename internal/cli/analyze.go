package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/internal/debug"
	"github.com/quantmuse/tradecouncil/internal/display"
	"github.com/quantmuse/tradecouncil/internal/graph"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		date     string
		analysts []string
	)

	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run the decision pipeline for one symbol and date",
		Long: `Run the full multi-agent pipeline for one stock on one trade date and
print the resulting decision.

Example: tradecouncil analyze NVDA --date 2024-05-10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			if len(analysts) > 0 {
				a.cfg.SelectedAnalysts = analysts
			}
			return runAnalysis(a, args[0], date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Trade date in YYYY-MM-DD format (default: today)")
	cmd.Flags().StringSliceVar(&analysts, "analysts", nil,
		"Analysts to run (market, social, news, fundamentals; default: all)")
	return cmd
}

func runAnalysis(a *app, symbol, date string) error {
	ctx := context.Background()

	dbg := debug.NewEinoDebugger(a.cfg, a.logger)
	if err := dbg.Initialize(ctx); err != nil {
		a.logger.Warn("debug server unavailable", zap.Error(err))
	}

	g, err := graph.NewTradingAgentsGraph(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer g.Close()

	state, decision, err := g.Propagate(ctx, symbol, date)
	if err != nil {
		return err
	}

	fmt.Println(display.RenderDecision(decision))
	fmt.Println(display.RenderReports(state))
	fmt.Printf("Full reports saved under %s\n", a.cfg.ResultsDir)
	return nil
}
