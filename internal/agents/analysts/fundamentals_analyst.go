package analysts

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/tools"
)

// NewFundamentalsAnalystNode builds the fundamentals stage. It reads
// financial metrics and insider activity and produces the fundamentals
// report.
func NewFundamentalsAnalystNode(ctx context.Context, deps *agents.Deps, next string) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := analystSpec{
		name:       "fundamentals_analyst",
		promptPath: "analysts/fundamentals_analyst",
		toolDesc: `- get_basic_financials: Get fundamental financial metrics for a stock symbol.
- get_insider_sentiment: Get monthly insider trading sentiment.
- get_insider_transactions: Get recent insider buy and sell transactions.`,
		reportFile: "fundamentals_report.md",
		store: func(state *models.TradingState, report string) {
			state.FundamentalsReport = report
		},
	}
	return newAnalystNode(ctx, deps, spec, tools.FundamentalsToolset(deps.Cfg), next)
}
