package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	// AI
	OpenAIAPIKey string
	OpenAIModel  string

	// Social search
	TwitterBearerToken string

	// Email
	SMTPServer    string
	SMTPPort      int
	EmailAddress  string
	EmailPassword string

	// Newsletter
	NewsletterName  string
	SenderName      string
	RecipientEmails []string

	// Schedule
	ScheduleDay  string
	ScheduleTime string

	// Content sources
	RSSFeeds             []string
	TwitterKeywords      []string
	MaxArticlesPerSource int

	// Storage
	DatabasePath string
	OutputDir    string

	// Infra
	RedisURL      string
	SessionSecret string
	Env           string
	Port          string
	LogLevel      string
	LogFormat     string
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          getEnvWithDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		TwitterBearerToken:   os.Getenv("TWITTER_BEARER_TOKEN"),
		SMTPServer:           getEnvWithDefault("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:             getEnvIntWithDefault("SMTP_PORT", 587),
		EmailAddress:         os.Getenv("EMAIL_ADDRESS"),
		EmailPassword:        os.Getenv("EMAIL_PASSWORD"),
		NewsletterName:       getEnvWithDefault("NEWSLETTER_NAME", "AI Weekly Digest"),
		SenderName:           getEnvWithDefault("SENDER_NAME", "AI Newsletter Bot"),
		RecipientEmails:      splitList(os.Getenv("RECIPIENT_EMAILS")),
		ScheduleDay:          getEnvWithDefault("NEWSLETTER_SCHEDULE_DAY", "monday"),
		ScheduleTime:         getEnvWithDefault("NEWSLETTER_SCHEDULE_TIME", "09:00"),
		RSSFeeds:             splitList(os.Getenv("RSS_FEEDS")),
		TwitterKeywords:      splitList(os.Getenv("TWITTER_KEYWORDS")),
		MaxArticlesPerSource: getEnvIntWithDefault("MAX_ARTICLES_PER_SOURCE", 5),
		DatabasePath:         getEnvWithDefault("DATABASE_PATH", "newsletter.db"),
		OutputDir:            getEnvWithDefault("OUTPUT_DIR", "output"),
		RedisURL:             getEnvWithDefault("REDIS_URL", "redis://localhost:6379"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		Env:                  getEnvWithDefault("ENV", "development"),
		Port:                 getEnvWithDefault("PORT", "8080"),
		LogLevel:             getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvWithDefault("LOG_FORMAT", "text"),
	}

	// Warn if using default session secret (insecure for production)
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production-use-openssl-rand-hex-32"
		log.Println("WARNING: Using default SESSION_SECRET. Generate a secure secret with: openssl rand -hex 32")
	}

	return cfg
}

// Validate reports the required credentials that are missing. It is called
// once at startup; a non-nil error is meant to halt the run.
func (c *Config) Validate() error {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.EmailAddress == "" {
		missing = append(missing, "EMAIL_ADDRESS")
	}
	if c.EmailPassword == "" {
		missing = append(missing, "EMAIL_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
