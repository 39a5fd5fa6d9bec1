package consts

// Role labels used to tag debate utterances. The debate routers key off
// these prefixes, so they must match the strings the agents prepend.
const (
	RoleBull    = "Bull Analyst"
	RoleBear    = "Bear Analyst"
	RoleRisky   = "Risky Analyst"
	RoleSafe    = "Safe Analyst"
	RoleNeutral = "Neutral Analyst"

	// Speaker tags recorded in RiskDebateState.LatestSpeaker.
	SpeakerRisky   = "Risky"
	SpeakerSafe    = "Safe"
	SpeakerNeutral = "Neutral"
)

// Decision tokens the signal processor recognizes.
const (
	DecisionBuy  = "BUY"
	DecisionSell = "SELL"
	DecisionHold = "HOLD"
)

// Logical memory collection names. Each is persisted independently.
const (
	BullMemory        = "bull_memory"
	BearMemory        = "bear_memory"
	TraderMemory      = "trader_memory"
	InvestJudgeMemory = "invest_judge_memory"
	RiskManagerMemory = "risk_manager_memory"
)
