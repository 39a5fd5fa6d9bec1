package dataflows

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/quantmuse/tradecouncil/internal/config"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Source      struct {
		URL  string `xml:"url,attr"`
		Text string `xml:",chardata"`
	} `xml:"source"`
}

// GoogleNewsClient fetches news via the Google News RSS feed.
type GoogleNewsClient struct {
	client *resty.Client
	cache  *CacheManager
}

func NewGoogleNewsClient(cfg *config.Config) *GoogleNewsClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "google_news")

	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	return &GoogleNewsClient{
		client: client,
		cache:  NewCacheManager(cacheDir, 30*time.Minute, cfg.CacheEnabled),
	}
}

// Search returns articles matching the query, newest first, constrained to
// the given date window via Google's after:/before: operators.
func (gc *GoogleNewsClient) Search(query string, from, to time.Time) ([]*NewsArticle, error) {
	q := fmt.Sprintf("%s after:%s before:%s",
		query, from.Format("2006-01-02"), to.Format("2006-01-02"))

	cacheKey := map[string]string{"q": q}
	var cached []*NewsArticle
	if gc.cache.Get("google_news", "search", cacheKey, &cached) {
		return cached, nil
	}

	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(q))

	resp, err := gc.client.R().Get(feedURL)
	if err != nil {
		return nil, retrievalErr("google_news", "search", err)
	}
	if resp.IsError() {
		return nil, retrievalErr("google_news", "search",
			fmt.Errorf("status %d", resp.StatusCode()))
	}

	var feed rssFeed
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, retrievalErr("google_news", "search", fmt.Errorf("parse rss: %w", err))
	}

	articles := make([]*NewsArticle, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		published, _ := time.Parse(time.RFC1123, item.PubDate)
		articles = append(articles, &NewsArticle{
			Title:       item.Title,
			Content:     stripHTML(item.Description),
			URL:         item.Link,
			Source:      item.Source.Text,
			PublishedAt: published,
		})
	}

	gc.cache.Set("google_news", "search", cacheKey, articles)
	return articles, nil
}

// stripHTML extracts plain text from an RSS description snippet.
func stripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}
