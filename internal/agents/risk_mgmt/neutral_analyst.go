package risk_mgmt

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NewNeutralAnalystNode builds the balanced voice of the risk discussion.
func NewNeutralAnalystNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := debaterSpec{
		name:       "neutral_analyst",
		promptPath: "risk/neutral_debate",
		role:       consts.RoleNeutral,
		speaker:    consts.SpeakerNeutral,
		reportFile: "neutral_analyst_report.md",
		record: func(rs *models.RiskDebateState, utterance string) {
			if rs.NeutralHistory == "" {
				rs.NeutralHistory = utterance
			} else {
				rs.NeutralHistory += "\n" + utterance
			}
			rs.CurrentNeutralResponse = utterance
		},
	}
	return newDebaterNode(ctx, deps, spec)
}
