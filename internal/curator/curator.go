// Package curator turns raw collected articles into exactly five
// newsletter-ready entries: relevance prefilter, importance scoring,
// summarization, ranking, and padding. Model calls that fail fall back to
// deterministic, network-free computations.
package curator

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/jimdaga/morning-press/internal/models"
)

const (
	// DigestSize is the fixed number of articles in every edition.
	DigestSize = 5

	// Prefilter bounds: backfill when fewer than minRelevant titles
	// match, but never process more than maxCandidates.
	minRelevant   = 10
	maxCandidates = 15

	featuredTitlePrefix   = "🔥 Featured: "
	featuredSummaryPrefix = "⭐ FEATURED STORY: "

	defaultIntro = "Today's most important tech developments."
	introLeadIn  = "Today's AI digest: "
	outroText    = "Thanks for reading! Reply with questions or feedback."
)

// Model is the language-model surface the curator needs. All methods may
// fail; the curator substitutes deterministic fallbacks.
type Model interface {
	ScoreImportance(ctx context.Context, article models.Article) (float64, error)
	Summarize(ctx context.Context, article models.Article) (string, error)
	Intro(ctx context.Context, titles []string) (string, error)
}

type Curator struct {
	model  Model
	logger *slog.Logger
}

func New(model Model, logger *slog.Logger) *Curator {
	return &Curator{model: model, logger: logger}
}

// Curate scores, summarizes, ranks, and pads the input down to exactly
// DigestSize articles. The result is empty only when the input was empty.
func (c *Curator) Curate(ctx context.Context, articles []models.Article) []models.Article {
	c.logger.Info("Starting curation", "input", len(articles))

	candidates := prefilter(articles)

	for i := range candidates {
		score, err := c.model.ScoreImportance(ctx, candidates[i])
		if err != nil {
			c.logger.Warn("Model scoring failed, using fallback",
				"title", candidates[i].Title, "error", err)
			score = FallbackScore(candidates[i].Title, candidates[i].Source)
		}
		candidates[i].ImportanceScore = score
		candidates[i].AISummary = c.summarize(ctx, candidates[i])

		c.logger.Info("Curated article",
			"title", candidates[i].Title,
			"score", candidates[i].ImportanceScore,
		)
	}

	// Equal scores keep their input order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ImportanceScore > candidates[j].ImportanceScore
	})

	selected := padToDigestSize(candidates)
	c.logger.Info("Curation finished", "selected", len(selected))
	return selected
}

// prefilter keeps articles whose title contains any relevance keyword.
// When fewer than minRelevant pass, it backfills the remaining input in
// original order up to maxCandidates.
func prefilter(articles []models.Article) []models.Article {
	var relevant []models.Article
	matched := make([]bool, len(articles))

	for i, a := range articles {
		titleLower := strings.ToLower(a.Title)
		for _, kw := range relevanceKeywords {
			if strings.Contains(titleLower, kw) {
				relevant = append(relevant, a)
				matched[i] = true
				break
			}
		}
	}

	if len(relevant) < minRelevant {
		for i, a := range articles {
			if matched[i] {
				continue
			}
			relevant = append(relevant, a)
			if len(relevant) >= maxCandidates {
				break
			}
		}
	}

	return relevant
}

// summarize asks the model for a short summary, falling back to the
// deterministic version on any failure. Content already under 100
// characters is returned as-is without a call.
func (c *Curator) summarize(ctx context.Context, article models.Article) string {
	content := article.Content
	if content == "" {
		content = article.Summary
	}
	if len([]rune(content)) < 100 && content != "" {
		return content
	}

	summary, err := c.model.Summarize(ctx, article)
	if err != nil {
		c.logger.Warn("Model summary failed, using fallback",
			"title", article.Title, "error", err)
		return FallbackSummary(article.Title, article.Source, article.Content, article.Summary)
	}
	return summary
}

// padToDigestSize enforces the fixed output length. With five or more
// candidates it takes the top five; with fewer it appends duplicates,
// cycling the curated list in order and marking each copy as featured.
// An empty curated list stays empty.
func padToDigestSize(curated []models.Article) []models.Article {
	if len(curated) >= DigestSize {
		return curated[:DigestSize]
	}
	if len(curated) == 0 {
		return curated
	}

	out := make([]models.Article, len(curated), DigestSize)
	copy(out, curated)

	for i := 0; len(out) < DigestSize; i++ {
		featured := curated[i%len(curated)]
		featured.Title = featuredTitlePrefix + featured.Title
		featured.AISummary = featuredSummaryPrefix + featured.AISummary
		out = append(out, featured)
	}
	return out
}

// Intro produces the newsletter's opening sentence from the top three
// titles. A reply that never says "today" gets a fixed lead-in prepended
// rather than a second model call.
func (c *Curator) Intro(ctx context.Context, articles []models.Article) string {
	titles := make([]string, 0, 3)
	for _, a := range articles {
		titles = append(titles, a.Title)
		if len(titles) == 3 {
			break
		}
	}

	intro, err := c.model.Intro(ctx, titles)
	if err != nil {
		c.logger.Warn("Model intro failed, using fallback", "error", err)
		return defaultIntro
	}

	intro = strings.TrimSpace(intro)
	if !strings.Contains(strings.ToLower(intro), "today") {
		intro = introLeadIn + intro
	}
	return intro
}

// Outro is the fixed newsletter closing; no model call.
func (c *Curator) Outro() string {
	return outroText
}
