// Package collector gathers candidate articles from RSS feeds and an
// optional social search API, enriches them with extracted full text, and
// filters them to a recency window. Individual source failures are logged
// and reduce yield; an empty result is a legitimate outcome, not an error.
package collector

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/models"
	"github.com/mmcdole/gofeed"
)

// recencyWindow bounds how old a collected article may be.
const recencyWindow = 7 * 24 * time.Hour

type Collector struct {
	cfg    *config.Config
	logger *slog.Logger
	parser *gofeed.Parser

	httpClient *http.Client
	// searchURL and extractText are swapped out in tests.
	searchURL   string
	extractText func(url string) (string, error)
}

func New(cfg *config.Config, logger *slog.Logger) *Collector {
	return &Collector{
		cfg:         cfg,
		logger:      logger,
		parser:      gofeed.NewParser(),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		searchURL:   twitterSearchURL,
		extractText: extractReadableText,
	}
}

// CollectAll fetches from every configured source, enriches article content,
// and keeps only articles published within the last seven days. Articles
// without a parseable date were stamped "now" at ingestion and therefore
// always pass; this accept-by-default behavior is intentional.
func (c *Collector) CollectAll(ctx context.Context) []models.Article {
	c.logger.Info("Starting content collection")

	articles := c.collectRSS(ctx)
	articles = append(articles, c.collectSocial(ctx)...)

	for i := range articles {
		c.enrich(&articles[i])
	}

	cutoff := time.Now().Add(-recencyWindow)
	recent := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Published.Before(cutoff) {
			recent = append(recent, a)
		}
	}

	c.logger.Info("Content collection finished",
		"collected", len(articles),
		"recent", len(recent),
	)
	return recent
}

// enrich replaces the article content with extracted full text when the
// extraction succeeds; failure leaves the original summary intact.
func (c *Collector) enrich(a *models.Article) {
	text, err := c.extractText(a.URL)
	if err != nil {
		c.logger.Debug("Content extraction failed", "url", a.URL, "error", err)
		return
	}
	if text != "" {
		a.Content = text
	}
}

// stripHTML removes tags and collapses whitespace.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
