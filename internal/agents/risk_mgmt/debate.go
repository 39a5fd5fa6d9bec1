// Package risk_mgmt builds the three-way risk discussion stages. The
// risky, safe and neutral analysts take turns challenging the trader's
// plan; each turn records itself in the risk debate state before the
// hand-off decision runs.
package risk_mgmt

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

type debaterSpec struct {
	name       string
	promptPath string
	role       string
	speaker    string
	reportFile string
	// record stores a finished turn in the speaker-specific fields.
	record func(rs *models.RiskDebateState, utterance string)
}

func newDebaterNode(ctx context.Context, deps *agents.Deps, spec debaterSpec) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	g := compose.NewGraph[*models.TradingState, *models.TradingState]()

	load := func(ctx context.Context, _ *models.TradingState, opts ...any) (output []*schema.Message, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			ptl, err := utils.LoadPrompt(spec.promptPath)
			if err != nil {
				return err
			}

			rs := state.RiskDebateState
			promptTemp := prompt.FromMessages(schema.FString,
				schema.UserMessage(ptl),
				schema.MessagesPlaceholder("user_input", true),
			)
			output, err = promptTemp.Format(ctx, map[string]any{
				"trader_decision":          state.TraderInvestmentPlan,
				"market_research_report":   state.MarketReport,
				"sentiment_report":         state.SentimentReport,
				"news_report":              state.NewsReport,
				"fundamentals_report":      state.FundamentalsReport,
				"history":                  rs.History,
				"current_risky_response":   rs.CurrentRiskyResponse,
				"current_safe_response":    rs.CurrentSafeResponse,
				"current_neutral_response": rs.CurrentNeutralResponse,
			})
			return err
		})
		return output, err
	}

	router := func(ctx context.Context, input *schema.Message, opts ...any) (output *models.TradingState, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			defer func() { output = state }()
			if input == nil || strings.TrimSpace(input.Content) == "" {
				return &agents.ReasoningError{Stage: spec.name, Err: errors.New("empty risk argument")}
			}

			labeled := spec.role + ": " + strings.TrimSpace(input.Content)
			rs := state.RiskDebateState
			rs.History = strings.TrimSpace(rs.History + "\n" + labeled)
			spec.record(rs, labeled)
			rs.LatestSpeaker = spec.speaker
			rs.Count++

			state.AppendMessage(input)
			deps.SaveReport(state, spec.reportFile, labeled)
			state.Goto = agents.NextAfterRiskTurn(state, deps.Cfg.MaxRiskDiscussRounds)
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
