package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/models"
)

func TestWriteStateLog(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EvalDir = filepath.Join(t.TempDir(), "eval_results")

	date, _ := time.Parse("2006-01-02", "2024-05-01")
	state := models.NewTradingState("AAPL", date, "market_analyst")
	state.MarketReport = "trend is up"
	state.InvestmentPlan = "accumulate on dips"
	state.FinalTradeDecision = "FINAL TRANSACTION PROPOSAL: **BUY**"
	state.InvestmentDebateState.Count = 2

	require.NoError(t, WriteStateLog(cfg, state))

	path := filepath.Join(cfg.EvalDir, "AAPL", "TradingAgentsStrategy_logs", "full_states_log_2024-05-01.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]struct {
		CompanyOfInterest     string                    `json:"company_of_interest"`
		MarketReport          string                    `json:"market_report"`
		InvestmentPlan        string                    `json:"investment_plan"`
		FinalTradeDecision    string                    `json:"final_trade_decision"`
		InvestmentDebateState *models.InvestDebateState `json:"investment_debate_state"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	entry, ok := decoded["2024-05-01"]
	require.True(t, ok, "log must be keyed by trade date")
	assert.Equal(t, "AAPL", entry.CompanyOfInterest)
	assert.Equal(t, "trend is up", entry.MarketReport)
	assert.Equal(t, "accumulate on dips", entry.InvestmentPlan)
	assert.Contains(t, entry.FinalTradeDecision, "BUY")
	assert.Equal(t, 2, entry.InvestmentDebateState.Count)
}
