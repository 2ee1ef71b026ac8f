package models

import "time"

// Article is a single collected news item. Its identity is the URL (not
// enforced as a uniqueness constraint in memory). The collector creates it,
// the curator fills in AISummary and ImportanceScore, and it is treated as
// read-only afterwards.
type Article struct {
	Title           string    `json:"title"`
	URL             string    `json:"url"`
	Summary         string    `json:"summary"`
	Source          string    `json:"source"`
	Published       time.Time `json:"published"`
	Content         string    `json:"content,omitempty"`
	AISummary       string    `json:"ai_summary,omitempty"`
	ImportanceScore float64   `json:"importance_score,omitempty"`
}
