// Package ai wraps the OpenAI chat-completions API for article scoring,
// summarization, and intro generation. Every method returns an error on any
// transport, status, or parse failure; callers substitute the deterministic
// fallbacks in the curator package.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
)

const defaultBaseURL = "https://api.openai.com/v1/chat/completions"

// Client calls the OpenAI chat-completions endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given API key and model. An empty model
// selects gpt-3.5-turbo.
func New(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

const scorePrompt = `Rate the importance of this AI/tech article on a scale of 1-10, where:
1-3: Minor news, incremental updates
4-6: Moderate importance, interesting developments
7-8: Significant news, major breakthroughs
9-10: Groundbreaking, industry-changing news

Article Title: %s
Source: %s
Summary: %s

Consider factors like:
- Innovation level
- Impact on industry
- Credibility of source
- Uniqueness of information

Respond with only a number between 1-10.`

const summaryPrompt = `Create a very brief summary of this tech/AI article in 1-2 sentences maximum.
Be concise and punchy like Superhuman newsletter style. Focus on:
- The key development (what happened)
- Why it matters (impact)

Article Title: %s
Content: %s

Write 1-2 sentences max:`

const introPrompt = `Write a brief intro for a daily AI/tech newsletter. Requirements:
- 1 sentence only
- Professional, not overly excited
- Say "today's" tech developments

Today's top stories:
%s

Write 1 sentence:`

// ScoreImportance asks the model to rate an article 1-10 and clamps the
// reply to that range.
func (c *Client) ScoreImportance(ctx context.Context, article models.Article) (float64, error) {
	prompt := fmt.Sprintf(scorePrompt, article.Title, article.Source, firstN(article.Summary, 500))
	text, err := c.call(ctx, prompt, 10, 0.3)
	if err != nil {
		return 0, err
	}
	return parseScore(text)
}

// Summarize asks the model for a 1-2 sentence summary of the article.
func (c *Client) Summarize(ctx context.Context, article models.Article) (string, error) {
	content := article.Content
	if content == "" {
		content = article.Summary
	}
	prompt := fmt.Sprintf(summaryPrompt, article.Title, firstN(content, 2000))
	text, err := c.call(ctx, prompt, 100, 0.5)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Intro asks the model for a single-sentence newsletter introduction
// referencing the given story titles.
func (c *Client) Intro(ctx context.Context, titles []string) (string, error) {
	var sb strings.Builder
	for _, t := range titles {
		sb.WriteString("- ")
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	prompt := fmt.Sprintf(introPrompt, sb.String())
	text, err := c.call(ctx, prompt, 50, 0.7)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// parseScore interprets the model reply as a number and clamps it to [1,10].
func parseScore(text string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable score reply %q: %w", text, err)
	}
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score, nil
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) call(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai API %d: %s", resp.StatusCode, string(b))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}
	return cr.Choices[0].Message.Content, nil
}
