package dataflows

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticBars builds n chronological bars following a gentle sine wave
// around a base price, enough structure for every indicator to produce a
// finite value.
func syntheticBars(symbol string, n int) []*MarketData {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]*MarketData, n)
	for i := 0; i < n; i++ {
		price := 100 + 10*math.Sin(float64(i)/8)
		bars[i] = &MarketData{
			Symbol: symbol,
			Date:   start.AddDate(0, 0, i),
			Open:   decimal.NewFromFloat(price - 0.5),
			High:   decimal.NewFromFloat(price + 1),
			Low:    decimal.NewFromFloat(price - 1),
			Close:  decimal.NewFromFloat(price),
			Volume: 1_000_000,
		}
	}
	return bars
}

func TestIndicatorsReport(t *testing.T) {
	bars := syntheticBars("AAPL", 120)

	report, err := IndicatorsReport(bars)
	require.NoError(t, err)

	assert.Contains(t, report, "Technical indicators for AAPL")
	assert.Contains(t, report, bars[len(bars)-1].Date.Format("2006-01-02"))
	for _, line := range []string{"Close:", "EMA(10):", "SMA(20):", "EMA(50):", "RSI(14):", "MACD:", "ATR(14):"} {
		assert.Contains(t, report, line)
	}
	assert.NotContains(t, report, "NaN")
}

func TestIndicatorsReportNeedsHistory(t *testing.T) {
	_, err := IndicatorsReport(syntheticBars("AAPL", 49))
	assert.Error(t, err)

	_, err = IndicatorsReport(nil)
	assert.Error(t, err)
}
