package dataflows

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"github.com/quantmuse/tradecouncil/internal/config"
)

// YahooClient fetches daily bars from Yahoo Finance.
type YahooClient struct {
	cache *CacheManager
	retry *RetryConfig
}

func NewYahooClient(cfg *config.Config) *YahooClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "yahoo")
	return &YahooClient{
		cache: NewCacheManager(cacheDir, 24*time.Hour, cfg.CacheEnabled),
		retry: DefaultRetryConfig(),
	}
}

// GetHistoricalData returns daily bars for [start, end].
func (yc *YahooClient) GetHistoricalData(symbol string, start, end time.Time) ([]*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, retrievalErr("yahoo", "historical", err)
	}
	symbol = NormalizeSymbol(symbol)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	}
	var cached []*MarketData
	if yc.cache.Get("yahoo", "historical", cacheKey, &cached) {
		return cached, nil
	}

	var result []*MarketData
	err := WithRetry(yc.retry, func() error {
		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)
		result = result[:0]
		for iter.Next() {
			bar := iter.Bar()
			result = append(result, &MarketData{
				Symbol:   symbol,
				Date:     time.Unix(int64(bar.Timestamp), 0).UTC(),
				Open:     bar.Open,
				High:     bar.High,
				Low:      bar.Low,
				Close:    bar.Close,
				AdjClose: bar.AdjClose,
				Volume:   int64(bar.Volume),
			})
		}
		return iter.Err()
	})
	if err != nil {
		return nil, retrievalErr("yahoo", "historical", err)
	}

	yc.cache.Set("yahoo", "historical", cacheKey, result)
	return result, nil
}

// GetHistoricalWindow returns the last `days` of daily bars ending at the
// given date.
func (yc *YahooClient) GetHistoricalWindow(symbol string, end time.Time, days int) ([]*MarketData, error) {
	start := end.AddDate(0, 0, -days)
	return yc.GetHistoricalData(symbol, start, end)
}

// FormatBarsReport renders bars as a compact table for prompt injection.
func FormatBarsReport(bars []*MarketData) string {
	if len(bars) == 0 {
		return "No market data available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Daily bars for %s (%d rows)\n", bars[0].Symbol, len(bars))
	b.WriteString("Date | Open | High | Low | Close | Volume\n")
	for _, bar := range bars {
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s | %d\n",
			bar.Date.Format("2006-01-02"),
			bar.Open.StringFixed(2), bar.High.StringFixed(2),
			bar.Low.StringFixed(2), bar.Close.StringFixed(2),
			bar.Volume)
	}
	return b.String()
}
