// Package worker runs scheduled newsletter generation on an Asynq server
// backed by Redis.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/logging"
	"github.com/jimdaga/morning-press/internal/pipeline"
)

// Task type constants
const (
	TaskGenerateNewsletter = "newsletter:generate"
)

// asynqLoggerAdapter wraps slog.Logger to implement asynq.Logger interface
type asynqLoggerAdapter struct {
	logger *slog.Logger
}

func (a *asynqLoggerAdapter) Debug(args ...interface{}) {
	a.logger.Debug(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Info(args ...interface{}) {
	a.logger.Info(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Warn(args ...interface{}) {
	a.logger.Warn(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Error(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Fatal(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// Run starts the Asynq worker server and blocks until shutdown signal.
// Use this for standalone worker mode.
func Run(cfg *config.Config, p *pipeline.Pipeline) error {
	srv, mux, err := newServer(cfg, p)
	if err != nil {
		return err
	}

	// Run blocks and handles its own signal interception
	return srv.Run(mux)
}

// Start starts the Asynq worker in non-blocking mode and returns a stop function.
// Use this for embedded mode so the caller can coordinate shutdown.
func Start(cfg *config.Config, p *pipeline.Pipeline) (stop func(), err error) {
	srv, mux, err := newServer(cfg, p)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}
	return func() { srv.Shutdown() }, nil
}

func newServer(cfg *config.Config, p *pipeline.Pipeline) (*asynq.Server, *asynq.ServeMux, error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Concurrency 1: a generation run owns the collector, the AI quota
	// and the SMTP connection, so runs never overlap.
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     1,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler:    asynq.ErrorHandlerFunc(makeErrorHandler(logger)),
			Logger:          &asynqLoggerAdapter{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskGenerateNewsletter, handleGenerateNewsletter(logger, p))

	logger.Info("Worker starting", "concurrency", 1, "redis", cfg.RedisURL)
	return srv, mux, nil
}

// handleGenerateNewsletter runs one full newsletter generation. A failed
// run is logged and dropped; the next scheduled slot tries again from
// scratch, so there is no retry here.
func handleGenerateNewsletter(logger *slog.Logger, p *pipeline.Pipeline) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		logger.Info("Processing newsletter:generate task")

		if err := p.Run(ctx); err != nil {
			logger.Error("Newsletter generation failed", "error", err.Error())
			return fmt.Errorf("newsletter generation: %w", asynq.SkipRetry)
		}

		logger.Info("Newsletter generation completed")
		return nil
	}
}

// makeErrorHandler creates an error handler function with logger closure.
func makeErrorHandler(logger *slog.Logger) func(context.Context, *asynq.Task, error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		logger.Error(
			"Task execution failed",
			"task_type", task.Type(),
			"error", err.Error(),
		)
	}
}
