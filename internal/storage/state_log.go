// Package storage persists full pipeline states for later evaluation.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// stateLogEntry is the serialized snapshot of one finished run. Field
// names line up with the report files under results/ so the two can be
// cross-referenced.
type stateLogEntry struct {
	CompanyOfInterest     string                    `json:"company_of_interest"`
	TradeDate             string                    `json:"trade_date"`
	MarketReport          string                    `json:"market_report"`
	SentimentReport       string                    `json:"sentiment_report"`
	NewsReport            string                    `json:"news_report"`
	FundamentalsReport    string                    `json:"fundamentals_report"`
	InvestmentDebateState *models.InvestDebateState `json:"investment_debate_state"`
	RiskDebateState       *models.RiskDebateState   `json:"risk_debate_state"`
	TraderInvestmentPlan  string                    `json:"trader_investment_decision"`
	InvestmentPlan        string                    `json:"investment_plan"`
	FinalTradeDecision    string                    `json:"final_trade_decision"`
}

// WriteStateLog writes the full state of a finished run under
// eval_results/<symbol>/TradingAgentsStrategy_logs/, one file per trade
// date, keyed by date for downstream tooling.
func WriteStateLog(cfg *config.Config, state *models.TradingState) error {
	dir := filepath.Join(cfg.EvalDir, state.CompanyOfInterest, "TradingAgentsStrategy_logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state log dir: %w", err)
	}

	entry := &stateLogEntry{
		CompanyOfInterest:     state.CompanyOfInterest,
		TradeDate:             state.TradeDate,
		MarketReport:          state.MarketReport,
		SentimentReport:       state.SentimentReport,
		NewsReport:            state.NewsReport,
		FundamentalsReport:    state.FundamentalsReport,
		InvestmentDebateState: state.InvestmentDebateState,
		RiskDebateState:       state.RiskDebateState,
		TraderInvestmentPlan:  state.TraderInvestmentPlan,
		InvestmentPlan:        state.InvestmentPlan,
		FinalTradeDecision:    state.FinalTradeDecision,
	}

	payload, err := json.MarshalIndent(map[string]*stateLogEntry{state.TradeDate: entry}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state log: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("full_states_log_%s.json", state.TradeDate))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write state log: %w", err)
	}
	return nil
}
