package curator

import (
	"fmt"
	"strings"
)

// FallbackScore computes a deterministic importance score when the model
// call fails: base 5.0, +1.0 per high-impact title keyword, +1.5 per
// AI-brand title keyword, +0.5 per premium-source match, capped at 10.0.
func FallbackScore(title, source string) float64 {
	score := 5.0

	titleLower := strings.ToLower(title)
	sourceLower := strings.ToLower(source)

	for _, kw := range highImpactKeywords {
		if strings.Contains(titleLower, kw) {
			score += 1.0
		}
	}
	for _, kw := range aiBrandKeywords {
		if strings.Contains(titleLower, kw) {
			score += 1.5
		}
	}
	for _, src := range premiumSources {
		if strings.Contains(sourceLower, src) {
			score += 0.5
		}
	}

	if score > 10.0 {
		score = 10.0
	}
	return score
}

// FallbackSummary builds a summary without the model: the first two
// sentences of whatever content is available, padded with a short
// attribution when under 80 characters and truncated with an ellipsis when
// over 200. With no content at all it synthesizes a generic statement
// naming the source and title.
func FallbackSummary(title, source, content, summary string) string {
	text := content
	if text == "" {
		text = summary
	}
	if text == "" {
		return fmt.Sprintf("Breaking development from %s: %s. This represents a key advancement in the tech sector.", source, title)
	}

	var sentences []string
	for _, s := range strings.Split(text, ".") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == 2 {
			break
		}
	}
	if len(sentences) == 0 {
		return fmt.Sprintf("Breaking development from %s: %s. This represents a key advancement in the tech sector.", source, title)
	}

	out := strings.Join(sentences, ". ") + "."
	if len([]rune(out)) < 80 {
		out += fmt.Sprintf(" Key development from %s.", source)
	}
	if runes := []rune(out); len(runes) > 200 {
		out = string(runes[:200]) + "..."
	}
	return out
}
