package dataflows

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData represents one OHLCV row from a market data provider.
type MarketData struct {
	Symbol   string          `json:"symbol"`
	Date     time.Time       `json:"date"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	AdjClose decimal.Decimal `json:"adj_close"`
	Volume   int64           `json:"volume"`
}

// NewsArticle represents a news item from any news source.
type NewsArticle struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// RedditPost represents a Reddit submission.
type RedditPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Subreddit string    `json:"subreddit"`
	Author    string    `json:"author"`
	Score     int       `json:"score"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// InsiderSentiment is one month of Finnhub insider sentiment data.
type InsiderSentiment struct {
	Symbol string  `json:"symbol"`
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Change float64 `json:"change"`
	MSPR   float64 `json:"mspr"`
}

// InsiderTransaction is one Finnhub insider transaction row.
type InsiderTransaction struct {
	Name            string  `json:"name"`
	Share           int64   `json:"share"`
	Change          int64   `json:"change"`
	FilingDate      string  `json:"filingDate"`
	TransactionDate string  `json:"transactionDate"`
	TransactionCode string  `json:"transactionCode"`
	Price           float64 `json:"transactionPrice"`
}
