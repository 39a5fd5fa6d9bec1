package risk_mgmt

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NewRiskyAnalystNode builds the aggressive voice of the risk discussion.
// It always speaks first in each cycle.
func NewRiskyAnalystNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := debaterSpec{
		name:       "risky_analyst",
		promptPath: "risk/risky_debate",
		role:       consts.RoleRisky,
		speaker:    consts.SpeakerRisky,
		reportFile: "risky_analyst_report.md",
		record: func(rs *models.RiskDebateState, utterance string) {
			if rs.RiskyHistory == "" {
				rs.RiskyHistory = utterance
			} else {
				rs.RiskyHistory += "\n" + utterance
			}
			rs.CurrentRiskyResponse = utterance
		},
	}
	return newDebaterNode(ctx, deps, spec)
}
