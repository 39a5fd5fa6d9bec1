package agents

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/memory"
	"github.com/quantmuse/tradecouncil/internal/models"
)

func TestSituationCombinesReports(t *testing.T) {
	state := &models.TradingState{
		MarketReport:       "uptrend",
		SentimentReport:    "bullish chatter",
		NewsReport:         "earnings beat",
		FundamentalsReport: "solid balance sheet",
	}

	s := Situation(state)
	assert.Equal(t, "uptrend\n\nbullish chatter\n\nearnings beat\n\nsolid balance sheet", s)
}

func TestPastMemoriesFormatting(t *testing.T) {
	memories, err := memory.OpenRegistry(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	defer memories.Close()

	store, err := memories.Get(consts.BullMemory)
	require.NoError(t, err)
	require.NoError(t, store.AddMemory("strong momentum market", "ride the trend"))
	require.NoError(t, store.AddMemory("choppy sideways market", "stay out"))

	d := &Deps{Memories: memories, Logger: zap.NewNop()}
	got := d.PastMemories(consts.BullMemory, "strong momentum market", 2)
	assert.Contains(t, got, "1. ")
	assert.Contains(t, got, "ride the trend")
	assert.Contains(t, got, "2. ")
}

func TestPastMemoriesDegradesGracefully(t *testing.T) {
	d := &Deps{Memories: nil, Logger: zap.NewNop()}
	assert.Empty(t, d.PastMemories(consts.BullMemory, "anything", 2))
}

func TestRiskGuidance(t *testing.T) {
	assert.Contains(t, RiskGuidance("low"), "conservative")
	assert.Contains(t, RiskGuidance("high"), "aggressive")
	assert.Contains(t, RiskGuidance("medium"), "balanced")
	assert.Contains(t, RiskGuidance(""), "balanced")
	assert.Empty(t, RiskGuidance("no_guidance"))
}
