package agents

import (
	"strings"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NextAfterDebateTurn decides who speaks after a bull or bear turn. It only
// reads the state; the speakers themselves record their utterances before
// this runs. A full debate round is one bull turn plus one bear turn, so
// the terminal check is against twice maxDebateRounds.
func NextAfterDebateTurn(state *models.TradingState, maxDebateRounds int) string {
	ds := state.InvestmentDebateState
	if ds == nil {
		return consts.BullResearcher
	}
	if ds.Count >= 2*maxDebateRounds {
		return consts.ResearchManager
	}
	if strings.HasPrefix(ds.CurrentResponse, consts.RoleBull) {
		return consts.BearResearcher
	}
	return consts.BullResearcher
}

// NextAfterRiskTurn decides who speaks after a risk analyst turn. A full
// round is one turn each for risky, safe and neutral, so the terminal
// check is against three times maxRiskRounds. The cycle always starts
// with the risky analyst.
func NextAfterRiskTurn(state *models.TradingState, maxRiskRounds int) string {
	rs := state.RiskDebateState
	if rs == nil {
		return consts.RiskyAnalyst
	}
	if rs.Count >= 3*maxRiskRounds {
		return consts.RiskJudge
	}
	switch rs.LatestSpeaker {
	case consts.SpeakerRisky:
		return consts.SafeAnalyst
	case consts.SpeakerSafe:
		return consts.NeutralAnalyst
	case consts.SpeakerNeutral:
		return consts.RiskyAnalyst
	default:
		return consts.RiskyAnalyst
	}
}

// AnalystChain resolves the node keys for the selected analysts in
// canonical order. Empty selection means all four.
func AnalystChain(selected []string) []string {
	if len(selected) == 0 {
		selected = consts.AnalystOrder
	}
	chosen := make(map[string]bool, len(selected))
	for _, kind := range selected {
		chosen[kind] = true
	}

	var chain []string
	for _, kind := range consts.AnalystOrder {
		if chosen[kind] {
			chain = append(chain, consts.AnalystNode[kind])
		}
	}
	return chain
}
