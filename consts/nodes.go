package consts

// Graph node keys. Agent routers hand off between these through the shared
// state's Goto field, so every key must be registered as a branch target.
const (
	// Analyst team
	MarketAnalyst       = "market_analyst"
	SocialMediaAnalyst  = "social_media_analyst"
	NewsAnalyst         = "news_analyst"
	FundamentalsAnalyst = "fundamentals_analyst"

	// Research team
	BullResearcher  = "bull_researcher"
	BearResearcher  = "bear_researcher"
	ResearchManager = "research_manager"

	// Trading team
	Trader = "trader"

	// Risk management team
	RiskyAnalyst   = "risky_analyst"
	SafeAnalyst    = "safe_analyst"
	NeutralAnalyst = "neutral_analyst"
	RiskJudge      = "risk_judge"
)

// AnalystOrder is the canonical chaining order when a subset of analysts is
// selected.
var AnalystOrder = []string{"market", "social", "news", "fundamentals"}

// AnalystNode maps a selectable analyst kind to its graph node key.
var AnalystNode = map[string]string{
	"market":       MarketAnalyst,
	"social":       SocialMediaAnalyst,
	"news":         NewsAnalyst,
	"fundamentals": FundamentalsAnalyst,
}
