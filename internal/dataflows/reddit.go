package dataflows

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/quantmuse/tradecouncil/internal/config"
)

// RedditClient fetches stock discussion posts via Reddit's public JSON API.
type RedditClient struct {
	client *resty.Client
	cache  *CacheManager
}

var stockSubreddits = []string{"wallstreetbets", "stocks", "investing"}

func NewRedditClient(cfg *config.Config) *RedditClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "reddit")

	client := resty.New().
		SetBaseURL("https://www.reddit.com").
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429
		}).
		SetHeader("User-Agent", cfg.RedditUserAgent)

	return &RedditClient{
		client: client,
		cache:  NewCacheManager(cacheDir, 30*time.Minute, cfg.CacheEnabled),
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID         string  `json:"id"`
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				Subreddit  string  `json:"subreddit"`
				Author     string  `json:"author"`
				Score      int     `json:"score"`
				NumComment int     `json:"num_comments"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchPosts returns recent posts mentioning the symbol across stock
// subreddits, highest score first per subreddit listing.
func (rc *RedditClient) SearchPosts(symbol string, limit int) ([]*RedditPost, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, retrievalErr("reddit", "search", err)
	}
	symbol = NormalizeSymbol(symbol)
	if limit <= 0 {
		limit = 10
	}

	cacheKey := map[string]interface{}{"symbol": symbol, "limit": limit}
	var cached []*RedditPost
	if rc.cache.Get("reddit", "search", cacheKey, &cached) {
		return cached, nil
	}

	var posts []*RedditPost
	for _, sub := range stockSubreddits {
		var listing redditListing
		resp, err := rc.client.R().
			SetQueryParams(map[string]string{
				"q":           symbol,
				"sort":        "top",
				"t":           "week",
				"limit":       fmt.Sprintf("%d", limit),
				"restrict_sr": "1",
			}).
			SetResult(&listing).
			Get(fmt.Sprintf("/r/%s/search.json", sub))
		if err != nil {
			return nil, retrievalErr("reddit", "search", err)
		}
		if resp.IsError() {
			return nil, retrievalErr("reddit", "search",
				fmt.Errorf("r/%s status %d", sub, resp.StatusCode()))
		}

		for _, child := range listing.Data.Children {
			d := child.Data
			posts = append(posts, &RedditPost{
				ID:        d.ID,
				Title:     d.Title,
				Content:   d.Selftext,
				Subreddit: d.Subreddit,
				Author:    d.Author,
				Score:     d.Score,
				Comments:  d.NumComment,
				CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
			})
		}
	}

	rc.cache.Set("reddit", "search", cacheKey, posts)
	return posts, nil
}

// FormatPostsReport renders posts for prompt injection.
func FormatPostsReport(posts []*RedditPost) string {
	if len(posts) == 0 {
		return "No social media posts found."
	}
	var b strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&b, "### r/%s | %s (score %d, %d comments)\n",
			p.Subreddit, p.Title, p.Score, p.Comments)
		if content := strings.TrimSpace(p.Content); content != "" {
			b.WriteString(content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
