package researchers

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NewBullResearcherNode builds the bull side of the investment debate.
func NewBullResearcherNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := researcherSpec{
		name:       "bull_researcher",
		promptPath: "researchers/bull_researcher",
		role:       consts.RoleBull,
		memoryName: consts.BullMemory,
		reportFile: "bull_researcher_report.md",
		appendHistory: func(ds *models.InvestDebateState, utterance string) {
			if ds.BullHistory == "" {
				ds.BullHistory = utterance
			} else {
				ds.BullHistory += "\n" + utterance
			}
		},
	}
	return newResearcherNode(ctx, deps, spec)
}
