package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantmuse/tradecouncil/consts"
)

func TestApplyDayBuy(t *testing.T) {
	p := NewPortfolio(1000)
	rec := p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 110)

	assert.Equal(t, int64(10), rec.Quantity)
	assert.InDelta(t, 100.0, rec.PnL, 1e-9)
	assert.InDelta(t, 0.1, rec.Return, 1e-9)
	assert.InDelta(t, 1100.0, p.Cash(), 1e-9)
}

func TestApplyDayBuySequence(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 110)
	rec := p.ApplyDay("2024-01-03", consts.DecisionBuy, 105, 100)

	// 1100 cash buys 10 whole shares at 105, losing 5 per share.
	assert.Equal(t, int64(10), rec.Quantity)
	assert.InDelta(t, -50.0, rec.PnL, 1e-9)
	assert.InDelta(t, 1050.0, p.Cash(), 1e-9)
}

func TestApplyDaySellPaysPremium(t *testing.T) {
	p := NewPortfolio(1000)
	rec := p.ApplyDay("2024-01-02", consts.DecisionSell, 100, 90)

	// premium per share = 100*(0.05/365) + 0.0025*(100+90)
	premium := 100*(0.05/365.0) + 0.0025*190
	want := (100.0-90.0)*10 - premium*10

	assert.Equal(t, int64(10), rec.Quantity)
	assert.InDelta(t, want, rec.PnL, 1e-9)
	assert.InDelta(t, 1000+want, p.Cash(), 1e-9)
}

func TestApplyDayHoldIsFlat(t *testing.T) {
	p := NewPortfolio(1000)
	rec := p.ApplyDay("2024-01-02", consts.DecisionHold, 100, 150)

	assert.Equal(t, int64(0), rec.Quantity)
	assert.Zero(t, rec.PnL)
	assert.Zero(t, rec.Return)
	assert.InDelta(t, 1000.0, p.Cash(), 1e-9)
}

func TestMetricsOverValueSeries(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 110) // 1100
	p.ApplyDay("2024-01-03", consts.DecisionBuy, 105, 100) // 1050

	// Returns are measured over the settled value series, first to last;
	// the cash before the first settlement never enters.
	m := p.Metrics()
	assert.InDelta(t, (1050.0/1100.0-1)*100, m.CumulativeReturnPct, 1e-9)
	assert.Less(t, m.CumulativeReturnPct, 0.0)
	assert.Equal(t, 2, m.Days)
	assert.InDelta(t, 1050.0, m.FinalCash, 1e-9)
}

func TestMetricsSingleDayIsFlat(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 110)

	// A one-element value series has no movement to measure.
	m := p.Metrics()
	assert.Zero(t, m.CumulativeReturnPct)
	assert.Zero(t, m.AnnualizedReturnPct)
	assert.Zero(t, m.MaxDrawdownPct)
	assert.InDelta(t, 1100.0, m.FinalCash, 1e-9)
}

func TestMetricsAnnualizedCompounds(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 100) // 1000
	p.ApplyDay("2024-01-03", consts.DecisionBuy, 100, 110) // 1100

	m := p.Metrics()
	assert.InDelta(t, 10.0, m.CumulativeReturnPct, 1e-9)
	// One calendar day of growth compounds over the full year.
	assert.Greater(t, m.AnnualizedReturnPct, m.CumulativeReturnPct)
}

func TestMetricsSharpeZeroWhenFlat(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-01", consts.DecisionHold, 100, 100)
	p.ApplyDay("2024-01-02", consts.DecisionHold, 100, 100)

	assert.Zero(t, p.Metrics().SharpeRatio)
}

func TestMetricsSharpeSign(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-01", consts.DecisionBuy, 100, 110)
	p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 101)

	assert.Greater(t, p.Metrics().SharpeRatio, 0.0)
}

func TestMetricsMaxDrawdown(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-01", consts.DecisionBuy, 100, 120) // 1200
	p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 90)  // 1200 - 120 = 1080

	m := p.Metrics()
	assert.InDelta(t, (1080.0-1200.0)/1200.0*100, m.MaxDrawdownPct, 1e-9)
	assert.LessOrEqual(t, m.MaxDrawdownPct, 0.0)
}

func TestMetricsDrawdownPeakFromFirstValue(t *testing.T) {
	p := NewPortfolio(1000)
	p.ApplyDay("2024-01-02", consts.DecisionBuy, 100, 90) // 900

	// The running peak is the first settled value, so a series that opens
	// at its low has no drawdown.
	assert.Zero(t, p.Metrics().MaxDrawdownPct)
}

func TestApplyDayNonPositiveOpenSettlesFlat(t *testing.T) {
	p := NewPortfolio(1000)
	rec := p.ApplyDay("2024-01-02", consts.DecisionBuy, 0, 110)

	assert.Equal(t, int64(0), rec.Quantity)
	assert.Zero(t, rec.PnL)
	assert.InDelta(t, 1000.0, p.Cash(), 1e-9)
}

func TestMetricsEmptyPortfolio(t *testing.T) {
	m := NewPortfolio(1000).Metrics()
	assert.Zero(t, m.Days)
	assert.Zero(t, m.CumulativeReturnPct)
	assert.InDelta(t, 1000.0, m.FinalCash, 1e-9)
}
