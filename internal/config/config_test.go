package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"OPENAI_MODEL", "SMTP_SERVER", "SMTP_PORT", "NEWSLETTER_NAME",
		"SENDER_NAME", "NEWSLETTER_SCHEDULE_DAY", "NEWSLETTER_SCHEDULE_TIME",
		"MAX_ARTICLES_PER_SOURCE", "DATABASE_PATH", "OUTPUT_DIR", "REDIS_URL",
		"ENV", "PORT", "LOG_LEVEL", "LOG_FORMAT", "RECIPIENT_EMAILS", "RSS_FEEDS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.SMTPServer != "smtp.gmail.com" || cfg.SMTPPort != 587 {
		t.Errorf("SMTP defaults = %q:%d", cfg.SMTPServer, cfg.SMTPPort)
	}
	if cfg.NewsletterName != "AI Weekly Digest" {
		t.Errorf("NewsletterName = %q", cfg.NewsletterName)
	}
	if cfg.ScheduleDay != "monday" || cfg.ScheduleTime != "09:00" {
		t.Errorf("schedule defaults = %q %q", cfg.ScheduleDay, cfg.ScheduleTime)
	}
	if cfg.MaxArticlesPerSource != 5 {
		t.Errorf("MaxArticlesPerSource = %d", cfg.MaxArticlesPerSource)
	}
	if cfg.DatabasePath != "newsletter.db" || cfg.OutputDir != "output" {
		t.Errorf("storage defaults = %q %q", cfg.DatabasePath, cfg.OutputDir)
	}
	if len(cfg.RecipientEmails) != 0 || len(cfg.RSSFeeds) != 0 {
		t.Errorf("list defaults not empty: %v %v", cfg.RecipientEmails, cfg.RSSFeeds)
	}
	if cfg.SessionSecret == "" {
		t.Error("SessionSecret should fall back to the dev default")
	}
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("RSS_FEEDS", " https://a.example/feed , https://b.example/rss ,,")
	t.Setenv("RECIPIENT_EMAILS", "a@example.com,b@example.com")

	cfg := Load()

	if len(cfg.RSSFeeds) != 2 || cfg.RSSFeeds[0] != "https://a.example/feed" {
		t.Errorf("RSSFeeds = %v", cfg.RSSFeeds)
	}
	if len(cfg.RecipientEmails) != 2 {
		t.Errorf("RecipientEmails = %v", cfg.RecipientEmails)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := Load()
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want default on bad input", cfg.SMTPPort)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		OpenAIAPIKey:  "k",
		EmailAddress:  "a@example.com",
		EmailPassword: "p",
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with all credentials: %v", err)
	}

	cfg.OpenAIAPIKey = ""
	cfg.EmailPassword = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should report missing credentials")
	}
	msg := err.Error()
	if !strings.Contains(msg, "OPENAI_API_KEY") || !strings.Contains(msg, "EMAIL_PASSWORD") {
		t.Errorf("error should name each missing key: %q", msg)
	}
	if strings.Contains(msg, "EMAIL_ADDRESS") {
		t.Errorf("error names a present key: %q", msg)
	}
}
