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

// NewGoogleNewsTool searches Google News for a query within a date window.
func NewGoogleNewsTool(cfg *config.Config) tool.BaseTool {
	google := dataflows.NewGoogleNewsClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_google_news",
			Desc: "Search Google News for recent articles matching a query",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Search query, e.g. a ticker symbol or company name",
					Required: true,
				},
				"look_back_days": {
					Type: "integer",
					Desc: "How many days back to search (default: 7)",
				},
				"end_date": {
					Type: "string",
					Desc: "Last date of the window, YYYY-MM-DD (default: today)",
				},
			}),
		},
		func(ctx context.Context, input models.NewsInput) (*models.TextOutput, error) {
			if input.Query == "" {
				return nil, fmt.Errorf("query parameter is required")
			}
			lookBack := input.LookBack
			if lookBack <= 0 {
				lookBack = 7
			}
			end := parseEndDate(input.EndDate)
			start := end.AddDate(0, 0, -lookBack)

			articles, err := google.Search(input.Query, start, end)
			if err != nil {
				return nil, err
			}
			return &models.TextOutput{Report: dataflows.FormatNewsReport(articles)}, nil
		},
	)
}

// NewFinnhubNewsTool returns company news from Finnhub.
func NewFinnhubNewsTool(cfg *config.Config) tool.BaseTool {
	finnhub := dataflows.NewFinnhubClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_finnhub_news",
			Desc: "Get curated company news for a stock symbol from Finnhub",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "The stock ticker symbol",
					Required: true,
				},
				"look_back_days": {
					Type: "integer",
					Desc: "How many days back to search (default: 7)",
				},
				"end_date": {
					Type: "string",
					Desc: "Last date of the window, YYYY-MM-DD (default: today)",
				},
			}),
		},
		func(ctx context.Context, input models.NewsInput) (*models.TextOutput, error) {
			if input.Query == "" {
				return nil, fmt.Errorf("query parameter is required")
			}
			lookBack := input.LookBack
			if lookBack <= 0 {
				lookBack = 7
			}
			end := parseEndDate(input.EndDate)
			start := end.AddDate(0, 0, -lookBack)

			articles, err := finnhub.GetCompanyNews(input.Query, start, end)
			if err != nil {
				return nil, err
			}
			return &models.TextOutput{Report: dataflows.FormatNewsReport(articles)}, nil
		},
	)
}

// NewsToolset is the restricted tool set bound to the news analyst.
func NewsToolset(cfg *config.Config) []tool.BaseTool {
	return []tool.BaseTool{
		NewGoogleNewsTool(cfg),
		NewFinnhubNewsTool(cfg),
	}
}
