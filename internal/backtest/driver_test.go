package backtest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// scriptedOrchestrator answers from a fixed date->action table and can
// delay or fail individual days.
type scriptedOrchestrator struct {
	actions  map[string]string
	failOn   map[string]bool
	delays   map[string]time.Duration
	reflects *int64
	closes   *int64
}

func (o *scriptedOrchestrator) Propagate(ctx context.Context, symbol, date string) (*models.TradingState, *models.TradingDecision, error) {
	if d := o.delays[date]; d > 0 {
		time.Sleep(d)
	}
	if o.failOn[date] {
		return nil, nil, errors.New("scripted failure")
	}
	action := o.actions[date]
	if action == "" {
		action = consts.DecisionHold
	}
	return &models.TradingState{}, &models.TradingDecision{
		Symbol: symbol, Date: date, Action: action,
	}, nil
}

func (o *scriptedOrchestrator) ReflectAndRemember(ctx context.Context, returnsLosses float64) error {
	if o.reflects != nil {
		atomic.AddInt64(o.reflects, 1)
	}
	return nil
}

func (o *scriptedOrchestrator) Close() error {
	if o.closes != nil {
		atomic.AddInt64(o.closes, 1)
	}
	return nil
}

func scriptedFactory(o *scriptedOrchestrator) Factory {
	return func(ctx context.Context, cfg *config.Config) (Orchestrator, error) {
		return o, nil
	}
}

func testDays() []models.DayBar {
	return []models.DayBar{
		{Date: "2024-01-02", Open: 100, Close: 110},
		{Date: "2024-01-03", Open: 110, Close: 105},
		{Date: "2024-01-04", Open: 105, Close: 120},
	}
}

func testConfig(workers int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.NumWorkers = workers
	cfg.InitialCash = 1000
	return cfg
}

func TestDriverSequential(t *testing.T) {
	var reflects, closes int64
	orch := &scriptedOrchestrator{
		actions: map[string]string{
			"2024-01-02": consts.DecisionBuy,
			"2024-01-03": consts.DecisionSell,
			"2024-01-04": consts.DecisionHold,
		},
		reflects: &reflects,
		closes:   &closes,
	}

	d := NewDriver(testConfig(1), scriptedFactory(orch), nil)
	result, err := d.Run(context.Background(), "AAPL", testDays())
	require.NoError(t, err)

	require.Len(t, result.Days, 3)
	require.Len(t, result.Records, 3)
	assert.Equal(t, consts.DecisionBuy, result.Days[0].Decision)
	assert.Equal(t, consts.DecisionSell, result.Days[1].Decision)
	assert.Equal(t, int64(3), reflects, "one reflection per settled day")
	assert.Equal(t, int64(1), closes, "sequential mode reuses one orchestrator")
	assert.Equal(t, 3, result.Metrics.Days)
}

func TestDriverPoolMatchesSequentialOrder(t *testing.T) {
	actions := map[string]string{
		"2024-01-02": consts.DecisionBuy,
		"2024-01-03": consts.DecisionBuy,
		"2024-01-04": consts.DecisionBuy,
	}
	// Stall the earliest day so pool completion order differs from
	// chronological order.
	delays := map[string]time.Duration{"2024-01-02": 30 * time.Millisecond}

	seq := NewDriver(testConfig(1), scriptedFactory(&scriptedOrchestrator{actions: actions}), nil)
	seqResult, err := seq.Run(context.Background(), "AAPL", testDays())
	require.NoError(t, err)

	pool := NewDriver(testConfig(4), scriptedFactory(&scriptedOrchestrator{actions: actions, delays: delays}), nil)
	poolResult, err := pool.Run(context.Background(), "AAPL", testDays())
	require.NoError(t, err)

	assert.Equal(t, seqResult.Days, poolResult.Days)
	assert.Equal(t, seqResult.Records, poolResult.Records)
	assert.Equal(t, seqResult.Metrics, poolResult.Metrics)
	for i := 1; i < len(poolResult.Days); i++ {
		assert.Less(t, poolResult.Days[i-1].Date, poolResult.Days[i].Date)
	}
}

func TestDriverPoolClosesEveryOrchestrator(t *testing.T) {
	var closes int64
	orch := &scriptedOrchestrator{closes: &closes}

	d := NewDriver(testConfig(2), scriptedFactory(orch), nil)
	_, err := d.Run(context.Background(), "AAPL", testDays())
	require.NoError(t, err)
	assert.Equal(t, int64(3), closes, "pool mode builds one orchestrator per day")
}

func TestDriverFailedDayAborts(t *testing.T) {
	orch := &scriptedOrchestrator{failOn: map[string]bool{"2024-01-03": true}}

	for _, workers := range []int{1, 4} {
		cfg := testConfig(workers)
		cfg.SkipFailedDay = false
		d := NewDriver(cfg, scriptedFactory(orch), nil)
		_, err := d.Run(context.Background(), "AAPL", testDays())
		assert.Error(t, err, "workers=%d", workers)
	}
}

func TestDriverFailedDaySkipAndRecord(t *testing.T) {
	orch := &scriptedOrchestrator{
		actions: map[string]string{
			"2024-01-02": consts.DecisionBuy,
			"2024-01-04": consts.DecisionBuy,
		},
		failOn: map[string]bool{"2024-01-03": true},
	}

	cfg := testConfig(1)
	cfg.SkipFailedDay = true
	d := NewDriver(cfg, scriptedFactory(orch), nil)
	result, err := d.Run(context.Background(), "AAPL", testDays())
	require.NoError(t, err)

	require.Len(t, result.Days, 3, "skipped day still appears in the day list")
	assert.True(t, result.Days[1].Skipped)
	assert.NotEmpty(t, result.Days[1].Err)
	assert.Len(t, result.Records, 2, "skipped day contributes no trade")
}

func TestDriverEmptyDays(t *testing.T) {
	d := NewDriver(testConfig(1), scriptedFactory(&scriptedOrchestrator{}), nil)
	_, err := d.Run(context.Background(), "AAPL", nil)
	assert.Error(t, err)
}
