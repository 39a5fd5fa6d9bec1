package dataflows

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/quantmuse/tradecouncil/internal/config"
)

// FinnhubClient wraps the Finnhub REST API for news, insider data and
// company fundamentals.
type FinnhubClient struct {
	client *resty.Client
	cache  *CacheManager
	apiKey string
}

func NewFinnhubClient(cfg *config.Config) *FinnhubClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "finnhub")

	client := resty.New().
		SetBaseURL("https://finnhub.io/api/v1").
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &FinnhubClient{
		client: client,
		cache:  NewCacheManager(cacheDir, 6*time.Hour, cfg.CacheEnabled),
		apiKey: cfg.FinnhubAPIKey,
	}
}

type finnhubNews struct {
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// GetCompanyNews returns company news articles between from and to.
func (fc *FinnhubClient) GetCompanyNews(symbol string, from, to time.Time) ([]*NewsArticle, error) {
	if fc.apiKey == "" {
		return nil, retrievalErr("finnhub", "company_news", fmt.Errorf("api key not configured"))
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, retrievalErr("finnhub", "company_news", err)
	}
	symbol = NormalizeSymbol(symbol)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
	}
	var cached []*NewsArticle
	if fc.cache.Get("finnhub", "company_news", cacheKey, &cached) {
		return cached, nil
	}

	var raw []finnhubNews
	resp, err := fc.client.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  fc.apiKey,
		}).
		SetResult(&raw).
		Get("/company-news")
	if err != nil {
		return nil, retrievalErr("finnhub", "company_news", err)
	}
	if resp.IsError() {
		return nil, retrievalErr("finnhub", "company_news",
			fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()))
	}

	articles := make([]*NewsArticle, 0, len(raw))
	for _, n := range raw {
		articles = append(articles, &NewsArticle{
			Title:       n.Headline,
			Content:     n.Summary,
			URL:         n.URL,
			Source:      n.Source,
			PublishedAt: time.Unix(n.DateTime, 0).UTC(),
		})
	}

	fc.cache.Set("finnhub", "company_news", cacheKey, articles)
	return articles, nil
}

// GetInsiderSentiment returns monthly insider sentiment for the symbol.
func (fc *FinnhubClient) GetInsiderSentiment(symbol string, from, to time.Time) ([]*InsiderSentiment, error) {
	if fc.apiKey == "" {
		return nil, retrievalErr("finnhub", "insider_sentiment", fmt.Errorf("api key not configured"))
	}
	symbol = NormalizeSymbol(symbol)

	var payload struct {
		Data []*InsiderSentiment `json:"data"`
	}
	resp, err := fc.client.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  fc.apiKey,
		}).
		SetResult(&payload).
		Get("/stock/insider-sentiment")
	if err != nil {
		return nil, retrievalErr("finnhub", "insider_sentiment", err)
	}
	if resp.IsError() {
		return nil, retrievalErr("finnhub", "insider_sentiment",
			fmt.Errorf("status %d", resp.StatusCode()))
	}
	return payload.Data, nil
}

// GetInsiderTransactions returns recent insider transactions.
func (fc *FinnhubClient) GetInsiderTransactions(symbol string, from, to time.Time) ([]*InsiderTransaction, error) {
	if fc.apiKey == "" {
		return nil, retrievalErr("finnhub", "insider_transactions", fmt.Errorf("api key not configured"))
	}
	symbol = NormalizeSymbol(symbol)

	var payload struct {
		Data []*InsiderTransaction `json:"data"`
	}
	resp, err := fc.client.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  fc.apiKey,
		}).
		SetResult(&payload).
		Get("/stock/insider-transactions")
	if err != nil {
		return nil, retrievalErr("finnhub", "insider_transactions", err)
	}
	if resp.IsError() {
		return nil, retrievalErr("finnhub", "insider_transactions",
			fmt.Errorf("status %d", resp.StatusCode()))
	}
	return payload.Data, nil
}

// GetBasicFinancials returns the company's metric report as a formatted
// text block for prompt injection.
func (fc *FinnhubClient) GetBasicFinancials(symbol string) (string, error) {
	if fc.apiKey == "" {
		return "", retrievalErr("finnhub", "basic_financials", fmt.Errorf("api key not configured"))
	}
	symbol = NormalizeSymbol(symbol)

	var cached string
	if fc.cache.Get("finnhub", "basic_financials", symbol, &cached) {
		return cached, nil
	}

	var payload struct {
		Metric map[string]json.RawMessage `json:"metric"`
	}
	resp, err := fc.client.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"metric": "all",
			"token":  fc.apiKey,
		}).
		SetResult(&payload).
		Get("/stock/metric")
	if err != nil {
		return "", retrievalErr("finnhub", "basic_financials", err)
	}
	if resp.IsError() {
		return "", retrievalErr("finnhub", "basic_financials",
			fmt.Errorf("status %d", resp.StatusCode()))
	}

	report := formatFinancialsReport(symbol, payload.Metric)

	fc.cache.Set("finnhub", "basic_financials", symbol, report)
	return report, nil
}

// formatFinancialsReport renders the metric map in sorted key order so the
// cached report is stable across runs.
func formatFinancialsReport(symbol string, metrics map[string]json.RawMessage) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "## Basic financials for %s\n", symbol)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, string(metrics[k]))
	}
	return b.String()
}

// FormatNewsReport renders articles for prompt injection.
func FormatNewsReport(articles []*NewsArticle) string {
	if len(articles) == 0 {
		return "No news articles found."
	}
	var b strings.Builder
	for _, a := range articles {
		fmt.Fprintf(&b, "### %s (%s, %s)\n%s\n\n",
			a.Title, a.Source, a.PublishedAt.Format("2006-01-02"), a.Content)
	}
	return b.String()
}
