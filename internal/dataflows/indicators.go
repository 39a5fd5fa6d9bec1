package dataflows

import (
	"fmt"
	"strings"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/cinar/indicator/v2/volatility"
)

// IndicatorsReport computes a technical indicator summary over the given
// bar series and renders it for prompt injection. The last values of each
// indicator are reported; bars must be in chronological order.
func IndicatorsReport(bars []*MarketData) (string, error) {
	if len(bars) < 50 {
		return "", fmt.Errorf("indicators: need at least 50 bars, got %d", len(bars))
	}

	closes := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		closes[i], _ = b.Close.Float64()
		highs[i], _ = b.High.Float64()
		lows[i], _ = b.Low.Float64()
	}

	ema10 := lastValue(computeSeries(trend.NewEmaWithPeriod[float64](10), closes))
	ema50 := lastValue(computeSeries(trend.NewEmaWithPeriod[float64](50), closes))
	sma20 := lastValue(computeSeries(trend.NewSmaWithPeriod[float64](20), closes))
	rsi14 := lastValue(computeSeries(momentum.NewRsiWithPeriod[float64](14), closes))
	atr14 := lastValue(computeATR(highs, lows, closes, 14))
	macdLine, signalLine := computeMACD(closes)

	latestClose := closes[len(closes)-1]

	var b strings.Builder
	fmt.Fprintf(&b, "## Technical indicators for %s as of %s\n",
		bars[0].Symbol, bars[len(bars)-1].Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "Close: %.2f\n", latestClose)
	fmt.Fprintf(&b, "EMA(10): %.2f\n", ema10)
	fmt.Fprintf(&b, "SMA(20): %.2f\n", sma20)
	fmt.Fprintf(&b, "EMA(50): %.2f\n", ema50)
	fmt.Fprintf(&b, "RSI(14): %.2f\n", rsi14)
	fmt.Fprintf(&b, "MACD: %.4f, signal: %.4f\n", macdLine, signalLine)
	fmt.Fprintf(&b, "ATR(14): %.2f\n", atr14)
	return b.String(), nil
}

type seriesIndicator interface {
	Compute(<-chan float64) <-chan float64
}

func computeSeries(ind seriesIndicator, values []float64) []float64 {
	return helper.ChanToSlice(ind.Compute(helper.SliceToChan(values)))
}

func computeATR(highs, lows, closes []float64, period int) []float64 {
	atr := volatility.NewAtrWithPeriod[float64](period)
	out := atr.Compute(
		helper.SliceToChan(highs),
		helper.SliceToChan(lows),
		helper.SliceToChan(closes),
	)
	return helper.ChanToSlice(out)
}

func computeMACD(closes []float64) (macdLine, signalLine float64) {
	macd := trend.NewMacd[float64]()
	macdChan, signalChan := macd.Compute(helper.SliceToChan(closes))

	// Both channels must be drained or the pipeline blocks.
	signals := make(chan []float64, 1)
	go func() {
		signals <- helper.ChanToSlice(signalChan)
	}()
	macdValues := helper.ChanToSlice(macdChan)
	signalValues := <-signals

	return lastValue(macdValues), lastValue(signalValues)
}

func lastValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
