package collector

import (
	"context"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
)

// collectRSS fetches every configured feed, taking up to the per-source cap
// of entries from each. A feed that fails to fetch or parse is logged and
// skipped; there is no retry.
func (c *Collector) collectRSS(ctx context.Context) []models.Article {
	var articles []models.Article

	for _, feedURL := range c.cfg.RSSFeeds {
		c.logger.Info("Fetching RSS feed", "url", feedURL)

		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			c.logger.Error("Failed to fetch RSS feed", "url", feedURL, "error", err)
			continue
		}

		source := feed.Title
		if source == "" {
			source = "RSS Feed"
		}

		items := feed.Items
		if len(items) > c.cfg.MaxArticlesPerSource {
			items = items[:c.cfg.MaxArticlesPerSource]
		}

		now := time.Now()
		for _, item := range items {
			// Undated entries default to now and always pass the
			// recency filter.
			published := now
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			} else if item.UpdatedParsed != nil {
				published = *item.UpdatedParsed
			}

			summary := item.Description
			if summary == "" {
				summary = item.Content
			}
			summary = stripHTML(summary)

			articles = append(articles, models.Article{
				Title:     item.Title,
				URL:       item.Link,
				Summary:   summary,
				Source:    source,
				Published: published,
				Content:   summary,
			})
		}
	}

	return articles
}
