// Package researchers builds the bull and bear debate stages. The two
// researchers argue in alternation over the analyst reports; each turn is
// recorded in the shared debate state before the hand-off decision runs.
package researchers

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"

	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/utils"
)

type researcherSpec struct {
	name       string
	promptPath string
	role       string
	memoryName string
	reportFile string
	// appendHistory records a finished turn in the side-specific history.
	appendHistory func(ds *models.InvestDebateState, utterance string)
}

func newResearcherNode(ctx context.Context, deps *agents.Deps, spec researcherSpec) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	g := compose.NewGraph[*models.TradingState, *models.TradingState]()

	load := func(ctx context.Context, _ *models.TradingState, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			ptl, err := utils.LoadPrompt(spec.promptPath)
			if err != nil {
				return err
			}

			situation := agents.Situation(state)
			pastMemoryStr := deps.PastMemories(spec.memoryName, situation, 2)

			promptTemp := prompt.FromMessages(schema.FString,
				schema.UserMessage(ptl),
				schema.MessagesPlaceholder("user_input", true),
			)
			output, err = promptTemp.Format(ctx, map[string]any{
				"market_research_report": state.MarketReport,
				"sentiment_report":       state.SentimentReport,
				"news_report":            state.NewsReport,
				"fundamentals_report":    state.FundamentalsReport,
				"history":                state.InvestmentDebateState.History,
				"current_response":       state.InvestmentDebateState.CurrentResponse,
				"past_memory_str":        pastMemoryStr,
			})
			return err
		})
		return output, err
	}

	router := func(ctx context.Context, input *schema.Message, opts ...any) (output *models.TradingState, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			defer func() { output = state }()
			if input == nil || strings.TrimSpace(input.Content) == "" {
				return &agents.ReasoningError{Stage: spec.name, Err: errors.New("empty researcher argument")}
			}

			labeled := spec.role + ": " + strings.TrimSpace(input.Content)
			ds := state.InvestmentDebateState
			ds.History = strings.TrimSpace(ds.History + "\n" + labeled)
			spec.appendHistory(ds, labeled)
			ds.CurrentResponse = labeled
			ds.Count++

			state.AppendMessage(input)
			deps.SaveReport(state, spec.reportFile, labeled)
			state.Goto = agents.NextAfterDebateTurn(state, deps.Cfg.MaxDebateRounds)
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
