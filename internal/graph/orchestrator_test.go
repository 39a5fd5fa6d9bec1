package graph

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/consts"
	"github.com/quantmuse/tradecouncil/internal/agents"
	"github.com/quantmuse/tradecouncil/internal/config"
	"github.com/quantmuse/tradecouncil/internal/memory"
	"github.com/quantmuse/tradecouncil/internal/models"
)

// scriptedModel answers every prompt with the same canned text and never
// requests a tool call, so the pipeline runs through without network
// access.
type scriptedModel struct {
	content string
}

func (m *scriptedModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(m.content, nil), nil
}

func (m *scriptedModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return schema.StreamReaderFromArray([]*schema.Message{schema.AssistantMessage(m.content, nil)}), nil
}

func (m *scriptedModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

func testDeps(t *testing.T, content string) *agents.Deps {
	t.Helper()

	tmp := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ResultsDir = filepath.Join(tmp, "results")
	cfg.EvalDir = filepath.Join(tmp, "eval_results")
	cfg.DataDir = filepath.Join(tmp, "data")
	cfg.DataCacheDir = filepath.Join(tmp, "data", "cache")
	cfg.MemoryDBPath = filepath.Join(tmp, "data", "memory.db")
	cfg.MaxDebateRounds = 1
	cfg.MaxRiskDiscussRounds = 1
	require.NoError(t, cfg.EnsureDirectories())

	memories, err := memory.OpenRegistry(cfg.MemoryDBPath)
	require.NoError(t, err)
	t.Cleanup(func() { memories.Close() })

	scripted := &scriptedModel{content: content}
	return &agents.Deps{
		Cfg:        cfg,
		QuickThink: scripted,
		DeepThink:  scripted,
		Memories:   memories,
		Logger:     zap.NewNop(),
	}
}

func TestOrchestratorFullRun(t *testing.T) {
	deps := testDeps(t, "Numbers look solid. FINAL TRANSACTION PROPOSAL: **BUY**")

	orch, err := NewTradingOrchestrator(context.Background(), deps)
	require.NoError(t, err)

	date, _ := time.Parse("2006-01-02", "2024-05-01")
	state := models.NewTradingState("AAPL", date, consts.MarketAnalyst)

	out, err := orch.Invoke(context.Background(), state)
	require.NoError(t, err)
	require.NotNil(t, out)

	// Every analyst stage produced its report.
	assert.NotEmpty(t, out.MarketReport)
	assert.NotEmpty(t, out.SentimentReport)
	assert.NotEmpty(t, out.NewsReport)
	assert.NotEmpty(t, out.FundamentalsReport)

	// One debate round is one bull plus one bear turn.
	assert.Equal(t, 2, out.InvestmentDebateState.Count)
	assert.True(t, strings.HasPrefix(out.InvestmentDebateState.CurrentResponse, consts.RoleBear))
	assert.NotEmpty(t, out.InvestmentDebateState.JudgeDecision)

	// One risk round cycles all three debaters.
	assert.Equal(t, 3, out.RiskDebateState.Count)
	assert.Equal(t, consts.SpeakerNeutral, out.RiskDebateState.LatestSpeaker)

	assert.NotEmpty(t, out.InvestmentPlan)
	assert.NotEmpty(t, out.TraderInvestmentPlan)
	assert.Contains(t, out.FinalTradeDecision, "FINAL TRANSACTION PROPOSAL")
}

func TestOrchestratorAnalystSubset(t *testing.T) {
	deps := testDeps(t, "Light coverage day. FINAL TRANSACTION PROPOSAL: **HOLD**")
	deps.Cfg.SelectedAnalysts = []string{"market"}

	orch, err := NewTradingOrchestrator(context.Background(), deps)
	require.NoError(t, err)

	date, _ := time.Parse("2006-01-02", "2024-05-01")
	out, err := orch.Invoke(context.Background(), models.NewTradingState("MSFT", date, consts.MarketAnalyst))
	require.NoError(t, err)

	assert.NotEmpty(t, out.MarketReport)
	assert.Empty(t, out.NewsReport, "unselected stage must not run")
	assert.Empty(t, out.SentimentReport)
	assert.NotEmpty(t, out.FinalTradeDecision)
}

func TestOrchestratorMultiRoundDebate(t *testing.T) {
	deps := testDeps(t, "Arguments on both sides. FINAL TRANSACTION PROPOSAL: **SELL**")
	deps.Cfg.SelectedAnalysts = []string{"market"}
	deps.Cfg.MaxDebateRounds = 2
	deps.Cfg.MaxRiskDiscussRounds = 2

	orch, err := NewTradingOrchestrator(context.Background(), deps)
	require.NoError(t, err)

	date, _ := time.Parse("2006-01-02", "2024-05-01")
	out, err := orch.Invoke(context.Background(), models.NewTradingState("NVDA", date, consts.MarketAnalyst))
	require.NoError(t, err)

	assert.Equal(t, 4, out.InvestmentDebateState.Count)
	assert.Equal(t, 6, out.RiskDebateState.Count)
}

func TestOrchestratorRejectsEmptySelection(t *testing.T) {
	deps := testDeps(t, "irrelevant")
	deps.Cfg.SelectedAnalysts = []string{"bogus"}

	_, err := NewTradingOrchestrator(context.Background(), deps)
	assert.Error(t, err)
}
