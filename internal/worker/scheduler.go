package worker

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jimdaga/morning-press/internal/config"
	"github.com/jimdaga/morning-press/internal/logging"
)

var weekdays = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// StartScheduler creates and starts an Asynq Scheduler that enqueues the
// newsletter generation task on the configured cadence. Returns a stop
// function for graceful shutdown.
func StartScheduler(cfg *config.Config) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	spec, err := cronSpec(cfg.ScheduleDay, cfg.ScheduleTime)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.Local,
			LogLevel: asynq.InfoLevel,
			Logger:   &asynqLoggerAdapter{logger: logger},
		},
	)

	// MaxRetry 0: a failed run waits for its next scheduled slot rather
	// than retrying a half-finished one. Unique prevents a double enqueue
	// if the scheduler restarts around the cadence boundary.
	task := asynq.NewTask(
		TaskGenerateNewsletter,
		nil,
		asynq.MaxRetry(0),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(24*time.Hour),
		asynq.Unique(24*time.Hour),
	)

	entryID, err := scheduler.Register(spec, task)
	if err != nil {
		return nil, fmt.Errorf("failed to register newsletter schedule: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	slog.Info(
		"Scheduler started",
		"day", cfg.ScheduleDay,
		"time", cfg.ScheduleTime,
		"cron", spec,
		"entry_id", entryID,
	)

	return func() { scheduler.Shutdown() }, nil
}

// cronSpec translates a schedule day ("daily" or a weekday name) and an
// HH:MM time into a cron expression.
func cronSpec(day, at string) (string, error) {
	hourStr, minuteStr, ok := strings.Cut(at, ":")
	if !ok {
		return "", fmt.Errorf("invalid schedule time %q, expected HH:MM", at)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid schedule hour %q", hourStr)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid schedule minute %q", minuteStr)
	}

	day = strings.ToLower(strings.TrimSpace(day))
	if day == "daily" {
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	}
	weekday, ok := weekdays[day]
	if !ok {
		return "", fmt.Errorf("invalid schedule day %q", day)
	}
	return fmt.Sprintf("%d %d * * %d", minute, hour, weekday), nil
}
