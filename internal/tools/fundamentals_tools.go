package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	t_utils "github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/dataflows"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NewBasicFinancialsTool returns the company metric report from Finnhub.
func NewBasicFinancialsTool(cfg *config.Config) tool.BaseTool {
	finnhub := dataflows.NewFinnhubClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_basic_financials",
			Desc: "Get fundamental financial metrics (PE, margins, growth, balance sheet ratios) for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, input models.FundamentalsInput) (*models.TextOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			report, err := finnhub.GetBasicFinancials(input.Symbol)
			if err != nil {
				return nil, err
			}
			return &models.TextOutput{Report: report}, nil
		},
	)
}

// NewInsiderSentimentTool returns monthly insider sentiment from Finnhub.
func NewInsiderSentimentTool(cfg *config.Config) tool.BaseTool {
	finnhub := dataflows.NewFinnhubClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_insider_sentiment",
			Desc: "Get monthly insider trading sentiment for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol",
					Required: true,
				},
				"end_date": {
					Type: "string",
					Desc: "Last date of the window, YYYY-MM-DD (default: today)",
				},
			}),
		},
		func(ctx context.Context, input models.FundamentalsInput) (*models.TextOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			end := parseEndDate(input.EndDate)
			start := end.AddDate(0, -3, 0)

			rows, err := finnhub.GetInsiderSentiment(input.Symbol, start, end)
			if err != nil {
				return nil, err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "## Insider sentiment for %s\n", input.Symbol)
			if len(rows) == 0 {
				b.WriteString("No insider sentiment data available.\n")
			}
			for _, r := range rows {
				fmt.Fprintf(&b, "%d-%02d: net change %.0f, MSPR %.2f\n",
					r.Year, r.Month, r.Change, r.MSPR)
			}
			return &models.TextOutput{Report: b.String()}, nil
		},
	)
}

// NewInsiderTransactionsTool returns recent insider transactions from Finnhub.
func NewInsiderTransactionsTool(cfg *config.Config) tool.BaseTool {
	finnhub := dataflows.NewFinnhubClient(cfg)

	return t_utils.NewTool(
		&schema.ToolInfo{
			Name: "get_insider_transactions",
			Desc: "Get recent insider buy and sell transactions for a stock symbol",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"symbol": {
					Type:     "string",
					Desc:     "The stock ticker symbol",
					Required: true,
				},
				"end_date": {
					Type: "string",
					Desc: "Last date of the window, YYYY-MM-DD (default: today)",
				},
			}),
		},
		func(ctx context.Context, input models.FundamentalsInput) (*models.TextOutput, error) {
			if input.Symbol == "" {
				return nil, fmt.Errorf("symbol parameter is required")
			}
			end := parseEndDate(input.EndDate)
			start := end.AddDate(0, -1, 0)

			rows, err := finnhub.GetInsiderTransactions(input.Symbol, start, end)
			if err != nil {
				return nil, err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "## Insider transactions for %s\n", input.Symbol)
			if len(rows) == 0 {
				b.WriteString("No insider transactions available.\n")
			}
			for _, r := range rows {
				fmt.Fprintf(&b, "%s | %s | code %s | %d shares @ %.2f\n",
					r.TransactionDate, r.Name, r.TransactionCode, r.Change, r.Price)
			}
			return &models.TextOutput{Report: b.String()}, nil
		},
	)
}

// FundamentalsToolset is the restricted tool set bound to the fundamentals
// analyst.
func FundamentalsToolset(cfg *config.Config) []tool.BaseTool {
	return []tool.BaseTool{
		NewBasicFinancialsTool(cfg),
		NewInsiderSentimentTool(cfg),
		NewInsiderTransactionsTool(cfg),
	}
}
