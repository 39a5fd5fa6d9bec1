package models

// MarketDataInput is the argument schema for the market data tool.
type MarketDataInput struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count,omitempty"`
	// EndDate caps the window (YYYY-MM-DD) so a backtested run cannot
	// see past its trade date.
	EndDate string `json:"end_date,omitempty"`
}

// MarketBar is a single OHLCV row returned to the reasoning model.
type MarketBar struct {
	Symbol string  `json:"symbol"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// MarketDataOutput wraps the bars for tool serialization.
type MarketDataOutput struct {
	Data []*MarketBar `json:"data"`
}

// IndicatorsInput is the argument schema for the indicators report tool.
type IndicatorsInput struct {
	Symbol  string `json:"symbol"`
	Count   int    `json:"count,omitempty"`
	EndDate string `json:"end_date,omitempty"`
}

// TextOutput is the generic tool result for report-style tools.
type TextOutput struct {
	Report string `json:"report"`
}

// NewsInput is the argument schema for news retrieval tools.
type NewsInput struct {
	Query    string `json:"query"`
	LookBack int    `json:"look_back_days,omitempty"`
	EndDate  string `json:"end_date,omitempty"`
}

// SocialInput is the argument schema for social sentiment tools.
type SocialInput struct {
	Symbol   string `json:"symbol"`
	LookBack int    `json:"look_back_days,omitempty"`
	EndDate  string `json:"end_date,omitempty"`
}

// FundamentalsInput is the argument schema for fundamentals tools.
type FundamentalsInput struct {
	Symbol  string `json:"symbol"`
	EndDate string `json:"end_date,omitempty"`
}
