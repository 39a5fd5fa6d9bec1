package agents

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/quantmuse/tradecouncil/internal/models"
	"github.com/quantmuse/tradecouncil/internal/utils"
)

// Situation summarizes the four analyst reports into the retrieval key
// used for memory lookups.
func Situation(state *models.TradingState) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s",
		state.MarketReport, state.SentimentReport,
		state.NewsReport, state.FundamentalsReport)
}

// PastMemories retrieves the n most similar past lessons from the named
// memory and formats them for prompt injection. Retrieval failures
// degrade to an empty recollection instead of failing the stage.
func (d *Deps) PastMemories(name, situation string, n int) string {
	if d.Memories == nil {
		return ""
	}
	store, err := d.Memories.Get(name)
	if err != nil {
		d.Logger.Warn("memory store unavailable", zap.String("name", name), zap.Error(err))
		return ""
	}
	records, err := store.GetMemories(situation, n)
	if err != nil {
		d.Logger.Warn("memory retrieval failed", zap.String("name", name), zap.Error(err))
		return ""
	}

	var b strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, rec.Recommendation)
	}
	return b.String()
}

// SaveReport writes a stage's output under results/<symbol>/<date>/.
// Report persistence is best effort; a failed write never fails the run.
func (d *Deps) SaveReport(state *models.TradingState, fileName, content string) {
	dir := filepath.Join(d.Cfg.ResultsDir, state.CompanyOfInterest, state.TradeDate)
	if err := utils.WriteMarkdown(dir, fileName, content); err != nil {
		d.Logger.Warn("failed to write stage report",
			zap.String("file", fileName), zap.Error(err))
	}
}

// RiskGuidance maps the configured risk appetite to the instruction block
// injected into the trader prompt.
func RiskGuidance(riskLevel string) string {
	switch riskLevel {
	case "low":
		return "Your firm mandates a conservative posture. Prefer capital preservation over upside capture, favor HOLD or SELL when the evidence is mixed, and only recommend BUY on strong multi-signal confirmation."
	case "high":
		return "Your firm mandates an aggressive posture. Prioritize upside capture, accept elevated drawdown risk, and favor decisive BUY or SELL positioning over HOLD when the debate shows a directional edge."
	case "no_guidance":
		return ""
	default:
		return "Your firm mandates a balanced posture. Weigh upside capture against drawdown risk evenly and let the strength of the evidence decide between BUY, SELL and HOLD."
	}
}
