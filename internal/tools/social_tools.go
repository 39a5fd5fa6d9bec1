package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/dataflows"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NewRedditPostsTool returns recent stock discussion posts from Reddit.
func NewRedditPostsTool(cfg *config.Config) tool.BaseTool {
	reddit := dataflows.NewRedditClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_reddit_stock_posts",
			Desc: "Get recent Reddit posts discussing a stock symbol from the major stock subreddits",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol",
					Required: true,
				},
				"look_back_days": {
					Type: "integer",
					Desc: "Unused for ranking, kept for interface symmetry",
				},
			}),
		},
		func(ctx context.Context, input models.SocialInput) (*models.TextOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			posts, err := reddit.SearchPosts(input.Symbol, 10)
			if err != nil {
				return nil, err
			}
			return &models.TextOutput{Report: dataflows.FormatPostsReport(posts)}, nil
		},
	)
}

// SocialToolset is the restricted tool set bound to the social media analyst.
func SocialToolset(cfg *config.Config) []tool.BaseTool {
	return []tool.BaseTool{
		NewRedditPostsTool(cfg),
	}
}
