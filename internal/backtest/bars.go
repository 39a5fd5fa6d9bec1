package backtest

import (
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/pkg/errors"

	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// BarLoader fetches the daily bar series the backtest replays.
type BarLoader struct {
	client *marketdata.Client
}

func NewBarLoader(cfg *config.Config) *BarLoader {
	return &BarLoader{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    cfg.AlpacaAPIKey,
			APISecret: cfg.AlpacaAPISecret,
		}),
	}
}

// LoadDays returns the daily bars for [start, end] in chronological order.
func (l *BarLoader) LoadDays(symbol string, start, end time.Time) ([]models.DayBar, error) {
	bars, err := l.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetch bars for %s", symbol)
	}
	if len(bars) == 0 {
		return nil, errors.Errorf("no bars for %s between %s and %s",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	days := make([]models.DayBar, 0, len(bars))
	for _, b := range bars {
		if b.Open <= 0 || b.Close <= 0 {
			return nil, errors.Errorf("malformed bar for %s on %s: open %.4f close %.4f",
				symbol, b.Timestamp.Format("2006-01-02"), b.Open, b.Close)
		}
		days = append(days, models.DayBar{
			Date:  b.Timestamp.Format("2006-01-02"),
			Open:  b.Open,
			Close: b.Close,
		})
	}
	return days, nil
}

// LoadBaseline returns the buy-and-hold value trajectory of a benchmark
// symbol over the same window, normalized to initialCash at the first
// day's open.
func (l *BarLoader) LoadBaseline(symbol string, start, end time.Time, initialCash float64) ([]DayRecord, error) {
	days, err := l.LoadDays(symbol, start, end)
	if err != nil {
		return nil, err
	}

	firstOpen := days[0].Open
	records := make([]DayRecord, 0, len(days))
	for _, d := range days {
		records = append(records, DayRecord{
			Date:   d.Date,
			Action: "BASELINE",
			Open:   d.Open,
			Close:  d.Close,
			Cash:   initialCash * d.Close / firstOpen,
		})
	}
	return records, nil
}
