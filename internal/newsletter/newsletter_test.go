package newsletter

import (
	"fmt"
	"testing"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
)

func sampleArticles(n int) []models.Article {
	var articles []models.Article
	for i := 0; i < n; i++ {
		articles = append(articles, models.Article{
			Title:           fmt.Sprintf("Story %d", i),
			URL:             fmt.Sprintf("https://example.com/%d", i),
			Source:          "Example Feed",
			AISummary:       fmt.Sprintf("Summary %d", i),
			ImportanceScore: 7.5,
		})
	}
	return articles
}

func TestBuildSubjectLine(t *testing.T) {
	n := Build(sampleArticles(5), "intro", "outro")

	want := fmt.Sprintf("🚀 Daily AI Brief - %s, %s: Top 5 Tech Stories",
		n.Date.Format("Monday"), n.Date.Format("January 02"))
	if n.Subject != want {
		t.Errorf("subject = %q, want %q", n.Subject, want)
	}
	if len(n.Articles) != 5 {
		t.Errorf("articles = %d, want 5", len(n.Articles))
	}
	if n.Intro != "intro" || n.Outro != "outro" {
		t.Errorf("intro/outro not carried: %q, %q", n.Intro, n.Outro)
	}
}

func TestBuildStampsCurrentDate(t *testing.T) {
	before := time.Now()
	n := Build(nil, "", "")
	after := time.Now()

	if n.Date.Before(before) || n.Date.After(after) {
		t.Errorf("date %v outside [%v, %v]", n.Date, before, after)
	}
}
