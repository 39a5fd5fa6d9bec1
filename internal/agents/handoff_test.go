package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/models"
)

func TestDebateAlternation(t *testing.T) {
	state := &models.TradingState{
		InvestmentDebateState: &models.InvestDebateState{},
		RiskDebateState:       &models.RiskDebateState{},
	}

	// Fresh debate: bull opens.
	assert.Equal(t, consts.BullResearcher, NextAfterDebateTurn(state, 1))

	// After the bull turn the bear answers.
	state.InvestmentDebateState.Count = 1
	state.InvestmentDebateState.CurrentResponse = consts.RoleBull + ": stock looks strong"
	assert.Equal(t, consts.BearResearcher, NextAfterDebateTurn(state, 1))

	// After the bear turn one full round is done.
	state.InvestmentDebateState.Count = 2
	state.InvestmentDebateState.CurrentResponse = consts.RoleBear + ": overvalued"
	assert.Equal(t, consts.ResearchManager, NextAfterDebateTurn(state, 1))
}

func TestDebateMultipleRounds(t *testing.T) {
	state := &models.TradingState{InvestmentDebateState: &models.InvestDebateState{}}

	state.InvestmentDebateState.Count = 2
	state.InvestmentDebateState.CurrentResponse = consts.RoleBear + ": still overvalued"
	assert.Equal(t, consts.BullResearcher, NextAfterDebateTurn(state, 2),
		"two rounds configured, debate continues after the first")

	state.InvestmentDebateState.Count = 4
	assert.Equal(t, consts.ResearchManager, NextAfterDebateTurn(state, 2))
}

func TestRiskCycle(t *testing.T) {
	state := &models.TradingState{RiskDebateState: &models.RiskDebateState{}}

	// Empty speaker starts the cycle at risky.
	assert.Equal(t, consts.RiskyAnalyst, NextAfterRiskTurn(state, 1))

	cases := []struct {
		speaker string
		count   int
		want    string
	}{
		{consts.SpeakerRisky, 1, consts.SafeAnalyst},
		{consts.SpeakerSafe, 2, consts.NeutralAnalyst},
		{consts.SpeakerNeutral, 3, consts.RiskJudge},
	}
	for _, tc := range cases {
		state.RiskDebateState.LatestSpeaker = tc.speaker
		state.RiskDebateState.Count = tc.count
		assert.Equal(t, tc.want, NextAfterRiskTurn(state, 1),
			"after %s at count %d", tc.speaker, tc.count)
	}
}

func TestRiskCycleTerminatesExactly(t *testing.T) {
	state := &models.TradingState{RiskDebateState: &models.RiskDebateState{
		LatestSpeaker: consts.SpeakerNeutral,
	}}

	// One turn short of the budget: cycle wraps back to risky.
	state.RiskDebateState.Count = 5
	assert.Equal(t, consts.RiskyAnalyst, NextAfterRiskTurn(state, 2))

	// Exactly at 3 x rounds: hand to the judge.
	state.RiskDebateState.Count = 6
	assert.Equal(t, consts.RiskJudge, NextAfterRiskTurn(state, 2))
}

func TestAnalystChain(t *testing.T) {
	all := AnalystChain(nil)
	assert.Equal(t, []string{
		consts.MarketAnalyst, consts.SocialMediaAnalyst,
		consts.NewsAnalyst, consts.FundamentalsAnalyst,
	}, all)

	// Selection order does not matter, canonical order does.
	subset := AnalystChain([]string{"news", "market"})
	assert.Equal(t, []string{consts.MarketAnalyst, consts.NewsAnalyst}, subset)
}
