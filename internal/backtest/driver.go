package backtest

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// Orchestrator is what the driver needs from one decision pipeline
// instance. An orchestrator is bound to the goroutine that built it; the
// driver therefore constructs them inside its workers, never outside.
type Orchestrator interface {
	Propagate(ctx context.Context, symbol, date string) (*models.TradingState, *models.TradingDecision, error)
	ReflectAndRemember(ctx context.Context, returnsLosses float64) error
	Close() error
}

// Factory builds a fresh orchestrator from an owned config.
type Factory func(ctx context.Context, cfg *config.Config) (Orchestrator, error)

// Result is the full outcome of one backtest run.
type Result struct {
	Symbol  string                  `json:"symbol"`
	Days    []models.TradeDayResult `json:"days"`
	Records []DayRecord             `json:"records"`
	Metrics Metrics                 `json:"metrics"`
}

// Driver replays the pipeline over a bar series, serially or across a
// bounded worker pool, and folds the re-sorted decisions through the
// portfolio.
type Driver struct {
	cfg     *config.Config
	factory Factory
	logger  *zap.Logger
}

func NewDriver(cfg *config.Config, factory Factory, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{cfg: cfg, factory: factory, logger: logger}
}

// Run executes the backtest over days, which must be in chronological
// order. The output ordering is chronological regardless of worker count.
func (d *Driver) Run(ctx context.Context, symbol string, days []models.DayBar) (*Result, error) {
	if len(days) == 0 {
		return nil, errors.New("backtest: no trading days")
	}

	var (
		results []models.TradeDayResult
		err     error
	)
	if d.cfg.NumWorkers <= 1 {
		results, err = d.runSequential(ctx, symbol, days)
	} else {
		results, err = d.runPool(ctx, symbol, days)
	}
	if err != nil {
		return nil, err
	}

	// Completion order from the pool is unspecified; the fold below
	// requires chronological order.
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })

	portfolio := NewPortfolio(d.cfg.InitialCash)
	for _, r := range results {
		if r.Skipped {
			continue
		}
		portfolio.ApplyDay(r.Date, r.Decision, r.Open, r.Close)
	}

	return &Result{
		Symbol:  symbol,
		Days:    results,
		Records: portfolio.Days(),
		Metrics: portfolio.Metrics(),
	}, nil
}

// runSequential reuses one orchestrator for every day and reflects on
// each settled day's return before moving to the next, so later days see
// the lessons of earlier ones.
func (d *Driver) runSequential(ctx context.Context, symbol string, days []models.DayBar) ([]models.TradeDayResult, error) {
	orch, err := d.factory(ctx, d.cfg.Clone())
	if err != nil {
		return nil, errors.Wrap(err, "backtest: build orchestrator")
	}
	defer orch.Close()

	portfolio := NewPortfolio(d.cfg.InitialCash)
	results := make([]models.TradeDayResult, 0, len(days))
	for _, day := range days {
		res := d.runDay(ctx, orch, symbol, day)
		if res.Skipped && !d.cfg.SkipFailedDay {
			return nil, errors.Errorf("backtest: day %s failed: %s", res.Date, res.Err)
		}
		results = append(results, res)
		if res.Skipped {
			continue
		}

		rec := portfolio.ApplyDay(res.Date, res.Decision, res.Open, res.Close)
		if err := orch.ReflectAndRemember(ctx, rec.Return); err != nil {
			d.logger.Warn("reflection failed",
				zap.String("date", res.Date), zap.Error(err))
		}
	}
	return results, nil
}

// runPool dispatches one orchestrator construction plus run per day to a
// bounded pool. Nothing mutable crosses worker boundaries: each task gets
// its own config clone and builds its orchestrator inside the worker
// goroutine.
func (d *Driver) runPool(ctx context.Context, symbol string, days []models.DayBar) ([]models.TradeDayResult, error) {
	jobs := make(chan models.DayBar)
	out := make(chan models.TradeDayResult, len(days))

	var wg sync.WaitGroup
	for w := 0; w < d.cfg.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for day := range jobs {
				orch, err := d.factory(ctx, d.cfg.Clone())
				if err != nil {
					out <- models.TradeDayResult{
						Date: day.Date, Decision: consts.DecisionHold,
						Open: day.Open, Close: day.Close,
						Skipped: true, Err: err.Error(),
					}
					continue
				}
				out <- d.runDay(ctx, orch, symbol, day)
				orch.Close()
			}
		}()
	}

	for _, day := range days {
		jobs <- day
	}
	close(jobs)
	wg.Wait()
	close(out)

	results := make([]models.TradeDayResult, 0, len(days))
	for res := range out {
		if res.Skipped && !d.cfg.SkipFailedDay {
			return nil, errors.Errorf("backtest: day %s failed: %s", res.Date, res.Err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (d *Driver) runDay(ctx context.Context, orch Orchestrator, symbol string, day models.DayBar) models.TradeDayResult {
	_, decision, err := orch.Propagate(ctx, symbol, day.Date)
	if err != nil {
		d.logger.Error("pipeline run failed",
			zap.String("symbol", symbol), zap.String("date", day.Date), zap.Error(err))
		return models.TradeDayResult{
			Date: day.Date, Decision: consts.DecisionHold,
			Open: day.Open, Close: day.Close,
			Skipped: true, Err: err.Error(),
		}
	}
	return models.TradeDayResult{
		Date:     day.Date,
		Decision: decision.Action,
		Open:     day.Open,
		Close:    day.Close,
	}
}
