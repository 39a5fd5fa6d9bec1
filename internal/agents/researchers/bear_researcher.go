package researchers

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// NewBearResearcherNode builds the bear side of the investment debate.
func NewBearResearcherNode(ctx context.Context, deps *agents.Deps) (*compose.Graph[*models.TradingState, *models.TradingState], error) {
	spec := researcherSpec{
		name:       "bear_researcher",
		promptPath: "researchers/bear_researcher",
		role:       consts.RoleBear,
		memoryName: consts.BearMemory,
		reportFile: "bear_researcher_report.md",
		appendHistory: func(ds *models.InvestDebateState, utterance string) {
			if ds.BearHistory == "" {
				ds.BearHistory = utterance
			} else {
				ds.BearHistory += "\n" + utterance
			}
		},
	}
	return newResearcherNode(ctx, deps, spec)
}
