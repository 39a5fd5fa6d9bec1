package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/utils"
)

// reflectionTarget names one pipeline component whose output gets reviewed
// against realized returns and remembered for future runs.
type reflectionTarget struct {
	name       string
	memoryName string
	output     func(state *models.TradingState) string
}

var reflectionTargets = []reflectionTarget{
	{"bull_researcher", consts.BullMemory, func(s *models.TradingState) string {
		return s.InvestmentDebateState.BullHistory
	}},
	{"bear_researcher", consts.BearMemory, func(s *models.TradingState) string {
		return s.InvestmentDebateState.BearHistory
	}},
	{"trader", consts.TraderMemory, func(s *models.TradingState) string {
		return s.TraderInvestmentPlan
	}},
	{"research_manager", consts.InvestJudgeMemory, func(s *models.TradingState) string {
		return s.InvestmentDebateState.JudgeDecision
	}},
	{"risk_judge", consts.RiskManagerMemory, func(s *models.TradingState) string {
		return s.FinalTradeDecision
	}},
}

// Reflector turns a finished run plus its realized outcome into stored
// lessons, one per reasoning component.
type Reflector struct {
	deps *agents.Deps
}

func NewReflector(deps *agents.Deps) *Reflector {
	return &Reflector{deps: deps}
}

// Reflect reviews each component's output in light of returnsLosses and
// appends the resulting lesson to that component's memory. The first
// failure aborts; partial reflection is fine since memories are
// independent.
func (r *Reflector) Reflect(ctx context.Context, state *models.TradingState, returnsLosses float64) error {
	ptl, err := utils.LoadPrompt("reflection/reflector")
	if err != nil {
		return err
	}
	situation := agents.Situation(state)

	for _, target := range reflectionTargets {
		componentOutput := strings.TrimSpace(target.output(state))
		if componentOutput == "" {
			r.deps.Logger.Debug("skipping reflection for empty component",
				zap.String("component", target.name))
			continue
		}

		promptTemp := prompt.FromMessages(schema.FString,
			schema.UserMessage(ptl),
		)
		msgs, err := promptTemp.Format(ctx, map[string]any{
			"returns_losses":   fmt.Sprintf("%.4f", returnsLosses),
			"component_output": componentOutput,
			"situation":        situation,
		})
		if err != nil {
			return errors.Wrapf(err, "format reflection for %s", target.name)
		}

		resp, err := r.deps.DeepThink.Generate(ctx, msgs)
		if err != nil {
			return errors.Wrapf(err, "reflect on %s", target.name)
		}

		store, err := r.deps.Memories.Get(target.memoryName)
		if err != nil {
			return err
		}
		if err := store.AddMemory(situation, resp.Content); err != nil {
			return err
		}
	}
	return nil
}
