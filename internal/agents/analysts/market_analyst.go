package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/tools"
)

// NewMarketAnalystNode builds the technical analysis stage. It reads price
// history and indicator summaries and produces the market report.
func NewMarketAnalystNode(ctx context.Context, deps *agents.Deps, next string) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := analystSpec{
		name:       "market_analyst",
		promptPath: "analysts/market_analyst",
		toolDesc: `- get_market_bars: Get daily OHLCV price bars for a stock symbol.
- get_indicators_report: Get a technical indicators report (EMA, SMA, RSI, MACD, ATR).`,
		reportFile: "market_report.md",
		store: func(state *models.TradingState, report string) {
			state.MarketReport = report
		},
	}
	return newAnalystNode(ctx, deps, spec, tools.MarketToolset(deps.Cfg), next)
}
