package risk_mgmt

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NewSafeAnalystNode builds the conservative voice of the risk discussion.
func NewSafeAnalystNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := debaterSpec{
		name:       "safe_analyst",
		promptPath: "risk/safe_debate",
		role:       consts.RoleSafe,
		speaker:    consts.SpeakerSafe,
		reportFile: "safe_analyst_report.md",
		record: func(rs *models.RiskDebateState, utterance string) {
			if rs.SafeHistory == "" {
				rs.SafeHistory = utterance
			} else {
				rs.SafeHistory += "\n" + utterance
			}
			rs.CurrentSafeResponse = utterance
		},
	}
	return newDebaterNode(ctx, deps, spec)
}
