package backtest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quantmuse/tradecouncil/internal/config"
)

// WriteReport persists the metrics summary and the value/return series
// under eval_results/<symbol>/. The CSV is the exported contract for
// external plotting; an optional baseline series is appended with its own
// action tag.
func WriteReport(cfg *config.Config, result *Result, baseline []DayRecord) error {
	dir := filepath.Join(cfg.EvalDir, result.Symbol)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	if err := writeMetricsText(filepath.Join(dir, "metrics.txt"), result); err != nil {
		return err
	}
	return writeSeriesCSV(filepath.Join(dir, "series.csv"), result, baseline)
}

func writeMetricsText(path string, result *Result) error {
	m := result.Metrics

	var skipped int
	for _, d := range result.Days {
		if d.Skipped {
			skipped++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Backtest summary for %s\n", result.Symbol)
	fmt.Fprintf(&b, "Trading days: %d (skipped: %d)\n", len(result.Days), skipped)
	fmt.Fprintf(&b, "Final cash: %.2f\n", m.FinalCash)
	fmt.Fprintf(&b, "Cumulative Return: %.2f%%\n", m.CumulativeReturnPct)
	fmt.Fprintf(&b, "Annualized Return: %.2f%%\n", m.AnnualizedReturnPct)
	fmt.Fprintf(&b, "Sharpe Ratio: %.4f\n", m.SharpeRatio)
	fmt.Fprintf(&b, "Max Drawdown: %.2f%%\n", m.MaxDrawdownPct)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func writeSeriesCSV(path string, result *Result, baseline []DayRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create series csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "action", "open", "close", "quantity", "pnl", "return", "cash"}); err != nil {
		return err
	}
	rows := append(append([]DayRecord(nil), result.Records...), baseline...)
	for _, r := range rows {
		record := []string{
			r.Date,
			r.Action,
			strconv.FormatFloat(r.Open, 'f', -1, 64),
			strconv.FormatFloat(r.Close, 'f', -1, 64),
			strconv.FormatInt(r.Quantity, 10),
			strconv.FormatFloat(r.PnL, 'f', -1, 64),
			strconv.FormatFloat(r.Return, 'f', -1, 64),
			strconv.FormatFloat(r.Cash, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}
