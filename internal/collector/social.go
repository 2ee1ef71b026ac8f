package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
)

const (
	twitterSearchURL = "https://api.twitter.com/2/tweets/search/recent"

	// Posts need more likes than this to be worth including.
	likeThreshold = 10

	socialResultsPerKeyword = 10
)

type tweetSearchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			LikeCount int `json:"like_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// collectSocial searches recent posts for each configured keyword, excluding
// reposts and restricting to English. Skipped entirely when no bearer token
// is configured.
func (c *Collector) collectSocial(ctx context.Context) []models.Article {
	if c.cfg.TwitterBearerToken == "" {
		c.logger.Warn("Social search not configured, skipping")
		return nil
	}

	var articles []models.Article
	for _, keyword := range c.cfg.TwitterKeywords {
		c.logger.Info("Searching social posts", "keyword", keyword)

		result, err := c.searchRecent(ctx, keyword)
		if err != nil {
			c.logger.Error("Social search failed", "keyword", keyword, "error", err)
			continue
		}

		for _, tweet := range result.Data {
			if tweet.PublicMetrics.LikeCount <= likeThreshold {
				continue
			}

			published, err := time.Parse(time.RFC3339, tweet.CreatedAt)
			if err != nil {
				published = time.Now()
			}

			articles = append(articles, models.Article{
				Title:     "Twitter: " + firstN(tweet.Text, 100) + "...",
				URL:       "https://twitter.com/i/web/status/" + tweet.ID,
				Summary:   tweet.Text,
				Source:    "Twitter",
				Published: published,
				Content:   tweet.Text,
			})
		}
	}

	return articles
}

func (c *Collector) searchRecent(ctx context.Context, keyword string) (*tweetSearchResponse, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s -is:retweet lang:en", keyword))
	params.Set("max_results", fmt.Sprintf("%d", socialResultsPerKeyword))
	params.Set("tweet.fields", "created_at,public_metrics")

	req, err := http.NewRequestWithContext(ctx, "GET", c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.TwitterBearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("twitter API %d: %s", resp.StatusCode, string(b))
	}

	var result tweetSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
