// Package graph assembles the agent subgraphs into the full decision
// pipeline and drives it: analyst chain, investment debate, trading,
// risk discussion, final judgment.
package graph

import (
	"context"

	"github.com/cloudwego/eino/compose"
	"github.com/pkg/errors"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/agents/analysts"
	"github.com/quantmuse/tradecouncil/internal/agents/managers"
	"github.com/quantmuse/tradecouncil/internal/agents/researchers"
	"github.com/quantmuse/tradecouncil/internal/agents/risk_mgmt"
	"github.com/quantmuse/tradecouncil/internal/agents/trader"
	"github.com/quantmuse/tradecouncil/internal/models"
)

const seedNode = "seed"

// agentHandOff reads the hand-off target the previous agent's router left
// in the state. The routers own the cycle logic; the branch only follows.
func agentHandOff(ctx context.Context, state *models.TradingState) (string, error) {
	if state == nil || state.Goto == "" {
		return "", errors.New("hand-off requested with no target")
	}
	return state.Goto, nil
}

type analystBuilder func(ctx context.Context, deps *agents.Deps, next string) (*compose.Graph[*models.TradingState, *models.TradingState], error)

var analystBuilders = map[string]analystBuilder{
	consts.MarketAnalyst:       analysts.NewMarketAnalystNode,
	consts.SocialMediaAnalyst:  analysts.NewSocialAnalystNode,
	consts.NewsAnalyst:         analysts.NewNewsAnalystNode,
	consts.FundamentalsAnalyst: analysts.NewFundamentalsAnalystNode,
}

// NewTradingOrchestrator compiles the full pipeline graph. The analyst
// chain follows the configured selection; the debate and risk cycles are
// wired as conditional branches that follow each router's hand-off.
func NewTradingOrchestrator(ctx context.Context, deps *agents.Deps) (compose.Runnable[*models.TradingState, *models.TradingState], error) {
	g := compose.NewGraph[*models.TradingState, *models.TradingState](
		compose.WithGenLocalState(func(ctx context.Context) *models.TradingState {
			return &models.TradingState{
				InvestmentDebateState: &models.InvestDebateState{},
				RiskDebateState:       &models.RiskDebateState{},
			}
		}),
	)

	// The seed copies the caller's prepared state into the graph-local one
	// every other node reads through ProcessState.
	seed := func(ctx context.Context, input *models.TradingState, opts ...any) (output *models.TradingState, err error) {
		err = compose.ProcessState[*models.TradingState](ctx, func(_ context.Context, state *models.TradingState) error {
			*state = *input
			output = state
			return nil
		})
		return output, err
	}
	_ = g.AddLambdaNode(seedNode, compose.InvokableLambdaWithOption(seed))

	chain := agents.AnalystChain(deps.Cfg.SelectedAnalysts)
	if len(chain) == 0 {
		return nil, errors.New("no analysts selected")
	}
	for i, nodeKey := range chain {
		next := consts.BullResearcher
		if i+1 < len(chain) {
			next = chain[i+1]
		}
		build, ok := analystBuilders[nodeKey]
		if !ok {
			return nil, errors.Errorf("unknown analyst node %q", nodeKey)
		}
		sub, err := build(ctx, deps, next)
		if err != nil {
			return nil, err
		}
		_ = g.AddGraphNode(nodeKey, sub, compose.WithNodeName(nodeKey))
	}

	bull, err := researchers.NewBullResearcherNode(ctx, deps)
	if err != nil {
		return nil, err
	}
	bear, err := researchers.NewBearResearcherNode(ctx, deps)
	if err != nil {
		return nil, err
	}
	manager, err := managers.NewResearchManagerNode(ctx, deps)
	if err != nil {
		return nil, err
	}
	trade, err := trader.NewTraderNode(ctx, deps)
	if err != nil {
		return nil, err
	}
	risky, err := risk_mgmt.NewRiskyAnalystNode(ctx, deps)
	if err != nil {
		return nil, err
	}
	safe, err := risk_mgmt.NewSafeAnalystNode(ctx, deps)
	if err != nil {
		return nil, err
	}
	neutral, err := risk_mgmt.NewNeutralAnalystNode(ctx, deps)
	if err != nil {
		return nil, err
	}
	judge, err := managers.NewRiskJudgeNode(ctx, deps)
	if err != nil {
		return nil, err
	}

	_ = g.AddGraphNode(consts.BullResearcher, bull, compose.WithNodeName(consts.BullResearcher))
	_ = g.AddGraphNode(consts.BearResearcher, bear, compose.WithNodeName(consts.BearResearcher))
	_ = g.AddGraphNode(consts.ResearchManager, manager, compose.WithNodeName(consts.ResearchManager))
	_ = g.AddGraphNode(consts.Trader, trade, compose.WithNodeName(consts.Trader))
	_ = g.AddGraphNode(consts.RiskyAnalyst, risky, compose.WithNodeName(consts.RiskyAnalyst))
	_ = g.AddGraphNode(consts.SafeAnalyst, safe, compose.WithNodeName(consts.SafeAnalyst))
	_ = g.AddGraphNode(consts.NeutralAnalyst, neutral, compose.WithNodeName(consts.NeutralAnalyst))
	_ = g.AddGraphNode(consts.RiskJudge, judge, compose.WithNodeName(consts.RiskJudge))

	// Analysis phase runs as a fixed chain into the debate.
	_ = g.AddEdge(compose.START, seedNode)
	_ = g.AddEdge(seedNode, chain[0])
	for i := 0; i+1 < len(chain); i++ {
		_ = g.AddEdge(chain[i], chain[i+1])
	}
	_ = g.AddEdge(chain[len(chain)-1], consts.BullResearcher)

	// Investment debate cycles until its router hands off to the manager.
	debateOutMap := map[string]bool{
		consts.BullResearcher:  true,
		consts.BearResearcher:  true,
		consts.ResearchManager: true,
	}
	_ = g.AddBranch(consts.BullResearcher, compose.NewGraphBranch(agentHandOff, debateOutMap))
	_ = g.AddBranch(consts.BearResearcher, compose.NewGraphBranch(agentHandOff, debateOutMap))

	_ = g.AddEdge(consts.ResearchManager, consts.Trader)
	_ = g.AddEdge(consts.Trader, consts.RiskyAnalyst)

	// Risk discussion cycles risky -> safe -> neutral until the judge.
	riskOutMap := map[string]bool{
		consts.RiskyAnalyst:   true,
		consts.SafeAnalyst:    true,
		consts.NeutralAnalyst: true,
		consts.RiskJudge:      true,
	}
	_ = g.AddBranch(consts.RiskyAnalyst, compose.NewGraphBranch(agentHandOff, riskOutMap))
	_ = g.AddBranch(consts.SafeAnalyst, compose.NewGraphBranch(agentHandOff, riskOutMap))
	_ = g.AddBranch(consts.NeutralAnalyst, compose.NewGraphBranch(agentHandOff, riskOutMap))

	_ = g.AddEdge(consts.RiskJudge, compose.END)

	r, err := g.Compile(ctx,
		compose.WithGraphName("tradecouncil"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
		compose.WithMaxRunSteps(deps.Cfg.MaxRecurLimit),
	)
	if err != nil {
		return nil, errors.Wrap(err, "compile trading graph")
	}
	return r, nil
}
