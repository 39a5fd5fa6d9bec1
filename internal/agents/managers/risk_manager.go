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

// NewRiskJudgeNode builds the final stage. It reviews the three-way risk
// discussion against the trader's plan and emits the final trade decision,
// ending the run.
func NewRiskJudgeNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	g := compose.NewGraph[*models.TradingState, *models.TradingState]()

	load := func(ctx context.Context, _ *models.TradingState, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			ptl, err := utils.LoadPrompt("managers/risk_manager")
			if err != nil {
				return err
			}

			situation := agents.Situation(state)
			pastMemoryStr := deps.PastMemories(consts.RiskManagerMemory, situation, 2)

			promptTemp := prompt.FromMessages(schema.FString,
				schema.UserMessage(ptl),
				schema.MessagesPlaceholder("user_input", true),
			)
			output, err = promptTemp.Format(ctx, map[string]any{
				"trader_plan":     state.TraderInvestmentPlan,
				"history":         state.RiskDebateState.History,
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
				return &agents.ReasoningError{Stage: "risk_judge", Err: errors.New("empty final decision")}
			}

			state.RiskDebateState.JudgeDecision = input.Content
			state.FinalTradeDecision = input.Content
			state.AppendMessage(input)
			deps.SaveReport(state, "final_trade_decision.md", input.Content)
			state.Goto = compose.END
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
