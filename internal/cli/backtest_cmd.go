package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/internal/backtest"
	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/display"
	"github.com/quantmuse/tradecouncil/internal/graph"
)

func newBacktestCmd(a *app) *cobra.Command {
	var (
		start       string
		end         string
		workers     int
		initialCash float64
		skipFailed  bool
		baseline    string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "backtest SYMBOL",
		Short: "Replay the decision pipeline over historical trading days",
		Long: `Run the pipeline for every trading day in a date range and fold the
decisions through the portfolio accountant.

Example: tradecouncil backtest NVDA --start 2024-01-02 --end 2024-03-28 --workers 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers > 0 {
				a.cfg.NumWorkers = workers
			}
			if initialCash > 0 {
				a.cfg.InitialCash = initialCash
			}
			a.cfg.SkipFailedDay = skipFailed
			if timeout > 0 {
				a.cfg.PropagationTimeout = timeout
			}
			return runBacktest(a, args[0], start, end, baseline)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First trading day, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "Last trading day, YYYY-MM-DD")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size (default: config num_workers)")
	cmd.Flags().Float64Var(&initialCash, "initial-cash", 0, "Starting cash (default: config initial_cash)")
	cmd.Flags().BoolVar(&skipFailed, "skip-failed", false, "Record failed days and continue instead of aborting")
	cmd.Flags().StringVar(&baseline, "baseline", "SPY", "Benchmark symbol for the report (empty to disable)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-day pipeline timeout (0 disables)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runBacktest(a *app, symbol, start, end, baselineSymbol string) error {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if endDate.Before(startDate) {
		return fmt.Errorf("end date %s is before start date %s", end, start)
	}

	ctx := context.Background()

	loader := backtest.NewBarLoader(a.cfg)
	days, err := loader.LoadDays(symbol, startDate, endDate)
	if err != nil {
		return err
	}
	a.logger.Info("loaded trading days",
		zap.String("symbol", symbol), zap.Int("days", len(days)))

	factory := func(ctx context.Context, cfg *config.Config) (backtest.Orchestrator, error) {
		return graph.NewTradingAgentsGraph(ctx, cfg, a.logger)
	}

	driver := backtest.NewDriver(a.cfg, factory, a.logger)
	result, err := driver.Run(ctx, symbol, days)
	if err != nil {
		return err
	}

	var baselineRecords []backtest.DayRecord
	if baselineSymbol != "" {
		baselineRecords, err = loader.LoadBaseline(baselineSymbol, startDate, endDate, a.cfg.InitialCash)
		if err != nil {
			a.logger.Warn("baseline unavailable",
				zap.String("symbol", baselineSymbol), zap.Error(err))
		}
	}

	if err := backtest.WriteReport(a.cfg, result, baselineRecords); err != nil {
		a.logger.Warn("failed to write report artifacts", zap.Error(err))
	}

	fmt.Println(display.RenderMetrics(symbol, result.Metrics))
	fmt.Println(display.RenderTrades(result.Records))
	fmt.Printf("Report artifacts saved under %s\n", a.cfg.EvalDir)
	return nil
}
