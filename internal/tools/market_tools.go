// Package tools exposes the retrieval capabilities as eino tools, one
// narrow set per analyst stage.
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/dataflows"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// parseEndDate resolves the optional end_date tool argument, defaulting to
// today.
func parseEndDate(s string) time.Time {
	if s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t
		}
	}
	return time.Now()
}

// NewMarketDataTool returns daily OHLCV bars for a symbol.
func NewMarketDataTool(cfg *config.Config) tool.BaseTool {
	yahoo := dataflows.NewYahooClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_market_bars",
			Desc: "Get daily OHLCV price bars for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol",
					Required: true,
				},
				"count": {
					Type: "integer",
					Desc: "Number of trading days to retrieve (default: 30)",
				},
				"end_date": {
					Type: "string",
					Desc: "Last date of the window, YYYY-MM-DD (default: today)",
				},
			}),
		},
		func(ctx context.Context, input models.MarketDataInput) (*models.MarketDataOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			count := input.Count
			if count <= 0 {
				count = 30
			}
			end := parseEndDate(input.EndDate)

			bars, err := yahoo.GetHistoricalWindow(input.Symbol, end, count*2)
			if err != nil {
				return nil, err
			}
			if len(bars) > count {
				bars = bars[len(bars)-count:]
			}

			out := make([]*models.MarketBar, 0, len(bars))
			for _, b := range bars {
				open, _ := b.Open.Float64()
				high, _ := b.High.Float64()
				low, _ := b.Low.Float64()
				closePrice, _ := b.Close.Float64()
				out = append(out, &models.MarketBar{
					Symbol: b.Symbol,
					Date:   b.Date.Format("2006-01-02"),
					Open:   open,
					High:   high,
					Low:    low,
					Close:  closePrice,
					Volume: b.Volume,
				})
			}
			return &models.MarketDataOutput{Data: out}, nil
		},
	)
}

// NewIndicatorsReportTool computes a technical indicator summary.
func NewIndicatorsReportTool(cfg *config.Config) tool.BaseTool {
	yahoo := dataflows.NewYahooClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_indicators_report",
			Desc: "Get a technical indicators report (EMA, SMA, RSI, MACD, ATR) for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol",
					Required: true,
				},
				"count": {
					Type: "integer",
					Desc: "Lookback window in trading days (default: 90, minimum: 50)",
				},
				"end_date": {
					Type: "string",
					Desc: "Last date of the window, YYYY-MM-DD (default: today)",
				},
			}),
		},
		func(ctx context.Context, input models.IndicatorsInput) (*models.TextOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			count := input.Count
			if count < 50 {
				count = 90
			}
			end := parseEndDate(input.EndDate)

			bars, err := yahoo.GetHistoricalWindow(input.Symbol, end, count*2)
			if err != nil {
				return nil, err
			}

			report, err := dataflows.IndicatorsReport(bars)
			if err != nil {
				return nil, err
			}
			return &models.TextOutput{Report: report}, nil
		},
	)
}

// MarketToolset is the restricted tool set bound to the market analyst.
func MarketToolset(cfg *config.Config) []tool.BaseTool {
	return []tool.BaseTool{
		NewMarketDataTool(cfg),
		NewIndicatorsReportTool(cfg),
	}
}
