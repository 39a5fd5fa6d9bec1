package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/tools"
)

// NewNewsAnalystNode builds the news analysis stage. It searches recent
// headlines and produces the news report.
func NewNewsAnalystNode(ctx context.Context, deps *agents.Deps, next string) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := analystSpec{
		name:       "news_analyst",
		promptPath: "analysts/news_analyst",
		toolDesc: `- get_google_news: Search Google News for recent articles matching a query.
- get_finnhub_news: Get curated company news for a stock symbol.`,
		reportFile: "news_report.md",
		store: func(state *models.TradingState, report string) {
			state.NewsReport = report
		},
	}
	return newAnalystNode(ctx, deps, spec, tools.NewsToolset(deps.Cfg), next)
}
