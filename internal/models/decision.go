package models

// TradingDecision is the reduced outcome of one pipeline run.
type TradingDecision struct {
	Symbol string `json:"symbol"`
	Date   string `json:"date"`
	// Action is BUY, SELL or HOLD.
	Action string `json:"action"`
	// Ambiguous marks a HOLD that came from unparseable decision text
	// rather than an explicit call. Downstream accounting treats both the
	// same; logs must not.
	Ambiguous bool   `json:"ambiguous,omitempty"`
	Rationale string `json:"rationale,omitempty"`
}

// DayBar is one trading day of OHLC data consumed by the backtest driver.
type DayBar struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
}

// TradeDayResult is the outcome of running the pipeline for one trading
// day. Exactly one result exists per day in the input bar series.
type TradeDayResult struct {
	Date     string  `json:"date"`
	Decision string  `json:"decision"`
	Open     float64 `json:"open_price"`
	Close    float64 `json:"close_price"`
	// Skipped records a failed day when the driver runs in
	// skip-and-record mode. A skipped day contributes no trade.
	Skipped bool   `json:"skipped,omitempty"`
	Err     string `json:"error,omitempty"`
}
