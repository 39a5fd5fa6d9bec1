// Package trader builds the stage that turns the research manager's plan
// into a concrete trading proposal for the risk team to scrutinize.
package trader

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/utils"
)

// NewTraderNode builds the trader stage.
func NewTraderNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	g := compose.NewGraph[*models.TradingState, *models.TradingState]()

	load := func(ctx context.Context, _ *models.TradingState, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			ptl, err := utils.LoadPrompt("trader/trader")
			if err != nil {
				return err
			}

			situation := agents.Situation(state)
			pastMemoryStr := deps.PastMemories(consts.TraderMemory, situation, 2)

			promptTemp := prompt.FromMessages(schema.FString,
				schema.UserMessage(ptl),
				schema.MessagesPlaceholder("user_input", true),
			)
			output, err = promptTemp.Format(ctx, map[string]any{
				"risk_guidance":   agents.RiskGuidance(deps.Cfg.RiskLevel),
				"investment_plan": state.InvestmentPlan,
				"past_memory_str": pastMemoryStr,
			})
			return err
		})
		return output, err
	}

	router := func(ctx context.Context, input *schema.Message, opts ...any) (output *models.TradingState, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			defer func() { output = state }()
			if input == nil || strings.TrimSpace(input.Content) == "" {
				return &agents.ReasoningError{Stage: "trader", Err: errors.New("empty trader plan")}
			}

			state.TraderInvestmentPlan = input.Content
			state.AppendMessage(input)
			deps.SaveReport(state, "trader_investment_plan.md", input.Content)
			state.Goto = consts.RiskyAnalyst
			return nil
		})
		return output, err
	}

	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(load))
	_ = g.AddChatModelNode("agent", deps.QuickThink)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(router))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)

	return g, nil
}
