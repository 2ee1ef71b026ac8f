package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jimdaga/morning-press/internal/models"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    float64
		wantErr bool
	}{
		{"plain integer", "7", 7, false},
		{"decimal", "8.5", 8.5, false},
		{"padded whitespace", "  6\n", 6, false},
		{"clamped low", "0", 1, false},
		{"clamped negative", "-3", 1, false},
		{"clamped high", "42", 10, false},
		{"prose reply", "I'd rate this a 7", 0, true},
		{"empty reply", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScore(tt.reply)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseScore(%q) error = %v, wantErr %v", tt.reply, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseScore(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}

// fakeAPI serves canned chat-completion replies and records requests.
func fakeAPI(t *testing.T, reply string) (*Client, *chatRequest) {
	t.Helper()
	var lastReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&lastReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, reply)
	}))
	t.Cleanup(srv.Close)

	c := New("test-key", "gpt-3.5-turbo")
	c.baseURL = srv.URL
	return c, &lastReq
}

func TestScoreImportance(t *testing.T) {
	c, lastReq := fakeAPI(t, "8")

	got, err := c.ScoreImportance(context.Background(), models.Article{
		Title:   "Big model release",
		Source:  "TechCrunch",
		Summary: "A new model is out.",
	})
	if err != nil {
		t.Fatalf("ScoreImportance: %v", err)
	}
	if got != 8 {
		t.Errorf("score = %v, want 8", got)
	}
	if lastReq.MaxTokens != 10 {
		t.Errorf("max_tokens = %d, want 10", lastReq.MaxTokens)
	}
	if !strings.Contains(lastReq.Messages[0].Content, "Big model release") {
		t.Error("prompt missing article title")
	}
}

func TestSummarizePrefersContent(t *testing.T) {
	c, lastReq := fakeAPI(t, "  A tight summary.  ")

	got, err := c.Summarize(context.Background(), models.Article{
		Title:   "Title",
		Content: "full article body",
		Summary: "feed summary",
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "A tight summary." {
		t.Errorf("summary = %q, want trimmed reply", got)
	}
	if !strings.Contains(lastReq.Messages[0].Content, "full article body") {
		t.Error("prompt should carry the article content")
	}
	if strings.Contains(lastReq.Messages[0].Content, "feed summary") {
		t.Error("prompt should not fall back to the feed summary when content exists")
	}
}

func TestIntroListsTitles(t *testing.T) {
	c, lastReq := fakeAPI(t, "Today's stories follow.")

	got, err := c.Intro(context.Background(), []string{"First story", "Second story"})
	if err != nil {
		t.Fatalf("Intro: %v", err)
	}
	if got != "Today's stories follow." {
		t.Errorf("intro = %q", got)
	}
	prompt := lastReq.Messages[0].Content
	if !strings.Contains(prompt, "- First story") || !strings.Contains(prompt, "- Second story") {
		t.Errorf("prompt missing title list: %q", prompt)
	}
}

func TestCallReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("test-key", "")
	c.baseURL = srv.URL

	if _, err := c.ScoreImportance(context.Background(), models.Article{Title: "T"}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestCallReportsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	c := New("test-key", "")
	c.baseURL = srv.URL

	if _, err := c.Summarize(context.Background(), models.Article{Title: "T", Content: "c"}); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestFirstNTruncatesOnRunes(t *testing.T) {
	s := strings.Repeat("é", 10)
	got := firstN(s, 4)
	if got != strings.Repeat("é", 4)+"..." {
		t.Errorf("firstN = %q", got)
	}
	if firstN("short", 10) != "short" {
		t.Error("firstN should leave short strings alone")
	}
}
