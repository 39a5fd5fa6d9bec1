package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/tools"
)

// NewSocialAnalystNode builds the social sentiment stage. It reads retail
// discussion and produces the sentiment report.
func NewSocialAnalystNode(ctx context.Context, deps *agents.Deps, next string) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := analystSpec{
		name:       "social_media_analyst",
		promptPath: "analysts/social_analyst",
		toolDesc:   `- get_reddit_stock_posts: Get recent Reddit posts discussing a stock symbol.`,
		reportFile: "sentiment_report.md",
		store: func(state *models.TradingState, report string) {
			state.SentimentReport = report
		},
	}
	return newAnalystNode(ctx, deps, spec, tools.SocialToolset(deps.Cfg), next)
}
