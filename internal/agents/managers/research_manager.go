// Package managers builds the two judging stages: the research manager who
// closes the investment debate and the risk judge who closes the risk
// discussion with the final decision.
package managers

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

// NewResearchManagerNode builds the debate judge. It weighs the bull and
// bear arguments, commits to a plan and hands off to the trader.
func NewResearchManagerNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	g := compose.NewGraph[*models.TradingState, *models.TradingState]()

	load := func(ctx context.Context, _ *models.TradingState, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			ptl, err := utils.LoadPrompt("managers/research_manager")
			if err != nil {
				return err
			}

			situation := agents.Situation(state)
			pastMemoryStr := deps.PastMemories(consts.InvestJudgeMemory, situation, 2)

			promptTemp := prompt.FromMessages(schema.FString,
				schema.UserMessage(ptl),
				schema.MessagesPlaceholder("user_input", true),
			)
			output, err = promptTemp.Format(ctx, map[string]any{
				"history":         state.InvestmentDebateState.History,
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
				return &agents.ReasoningError{Stage: "research_manager", Err: errors.New("empty manager decision")}
			}

			state.InvestmentDebateState.JudgeDecision = input.Content
			state.InvestmentPlan = input.Content
			state.AppendMessage(input)
			deps.SaveReport(state, "investment_plan.md", input.Content)
			state.Goto = consts.Trader
			return nil
		})
		return output, err
	}

	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(load))
	_ = g.AddChatModelNode("agent", deps.DeepThink)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(router))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)

	return g, nil
}
