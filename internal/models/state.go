package models

import (
	"time"

	"github.com/cloudwego/eino/schema"
)

// InvestDebateState tracks the bull/bear researcher exchange. Count
// increments once per turn, CurrentResponse always holds the latest
// speaker's role-tagged utterance.
type InvestDebateState struct {
	BullHistory     string `json:"bull_history"`
	BearHistory     string `json:"bear_history"`
	History         string `json:"history"`
	CurrentResponse string `json:"current_response"`
	JudgeDecision   string `json:"judge_decision"`
	Count           int    `json:"count"`
}

// RiskDebateState tracks the three-way risky/safe/neutral discussion.
type RiskDebateState struct {
	RiskyHistory           string `json:"risky_history"`
	SafeHistory            string `json:"safe_history"`
	NeutralHistory         string `json:"neutral_history"`
	History                string `json:"history"`
	CurrentRiskyResponse   string `json:"current_risky_response"`
	CurrentSafeResponse    string `json:"current_safe_response"`
	CurrentNeutralResponse string `json:"current_neutral_response"`
	JudgeDecision          string `json:"judge_decision"`
	LatestSpeaker          string `json:"latest_speaker"`
	Count                  int    `json:"count"`
}

// TradingState is the mutable record threaded through one pipeline run.
// It is owned exclusively by a single orchestrator for the duration of the
// run and is never shared across runs.
type TradingState struct {
	Messages          []*schema.Message `json:"messages"`
	CompanyOfInterest string            `json:"company_of_interest"`
	TradeDate         string            `json:"trade_date"`

	MarketReport       string `json:"market_report"`
	SentimentReport    string `json:"sentiment_report"`
	NewsReport         string `json:"news_report"`
	FundamentalsReport string `json:"fundamentals_report"`

	InvestmentDebateState *InvestDebateState `json:"investment_debate_state"`
	RiskDebateState       *RiskDebateState   `json:"risk_debate_state"`

	InvestmentPlan       string `json:"investment_plan"`
	TraderInvestmentPlan string `json:"trader_investment_plan"`
	FinalTradeDecision   string `json:"final_trade_decision"`

	// Goto names the next graph node; branch conditions read it after each
	// agent's router has run.
	Goto string `json:"goto"`
}

func NewTradingState(symbol string, date time.Time, firstNode string) *TradingState {
	return &TradingState{
		Messages:              []*schema.Message{},
		CompanyOfInterest:     symbol,
		TradeDate:             date.Format("2006-01-02"),
		InvestmentDebateState: &InvestDebateState{},
		RiskDebateState:       &RiskDebateState{},
		Goto:                  firstNode,
	}
}

// AppendMessage records an agent's output in the trace log. The log only
// grows; ClearMessages is the one sanctioned way to empty it.
func (s *TradingState) AppendMessage(msg *schema.Message) {
	if msg == nil {
		return
	}
	s.Messages = append(s.Messages, msg)
}

func (s *TradingState) ClearMessages() {
	s.Messages = s.Messages[:0]
}

// LastMessage returns the newest trace entry, or nil when empty.
func (s *TradingState) LastMessage() *schema.Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}
