// Package pipeline runs one end-to-end newsletter generation: collect,
// curate, render, archive, send.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jimdaga/morning-press/internal/ai"
	"github.com/jimdaga/morning-press/internal/collector"
	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/curator"
	"github.com/jimdaga/morning-press/internal/mailer"
	"github.com/jimdaga/morning-press/internal/newsletter"
)

type Pipeline struct {
	cfg       *config.Config
	collector *collector.Collector
	curator   *curator.Curator
	renderer  *newsletter.Renderer
	archive   *newsletter.Archive
	mailer    *mailer.Mailer
	logger    *slog.Logger
}

// New wires the full generation pipeline. Subscribers may be nil when no
// database is available; the mailer then requires a configured recipient
// list.
func New(cfg *config.Config, subscribers mailer.SubscriberSource, logger *slog.Logger) *Pipeline {
	model := ai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	return &Pipeline{
		cfg:       cfg,
		collector: collector.New(cfg, logger),
		curator:   curator.New(model, logger),
		renderer:  newsletter.NewRenderer(cfg.NewsletterName, logger),
		archive:   newsletter.NewArchive(cfg.OutputDir),
		mailer:    mailer.New(cfg, subscribers, logger),
		logger:    logger,
	}
}

// Run executes one full generation and delivery. An empty collection
// result ends the run quietly; everything downstream of collection has a
// fallback, so the only hard failures are configuration and delivery.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := p.logger.With("run_id", uuid.NewString())

	if err := p.cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	logger.Info("Starting newsletter generation")

	articles := p.collector.CollectAll(ctx)
	if len(articles) == 0 {
		logger.Warn("No articles collected, skipping this run")
		return nil
	}
	logger.Info("Collection complete", "articles", len(articles))

	curated := p.curator.Curate(ctx, articles)
	logger.Info("Curation complete", "articles", len(curated))

	intro := p.curator.Intro(ctx, curated)
	outro := p.curator.Outro()

	n := newsletter.Build(curated, intro, outro)
	html := p.renderer.RenderHTML(n)

	path, err := p.archive.Save(n, html)
	if err != nil {
		return fmt.Errorf("saving newsletter: %w", err)
	}
	logger.Info("Newsletter saved", "path", path)

	if _, err := p.archive.SaveJSON(n); err != nil {
		logger.Warn("Failed to save newsletter JSON", "error", err)
	}

	report, err := p.mailer.Send(html, n.Subject)
	if err != nil {
		return fmt.Errorf("sending newsletter: %w", err)
	}
	logger.Info("Delivery complete", "sent", report.Sent, "failed", report.Failed, "summary", report.Message)

	return nil
}
