// Package newsletter builds an edition from curated articles, renders it to
// HTML, and archives it under date-named files that the viewer parses back.
package newsletter

import (
	"fmt"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
)

// Build assembles an edition dated now. The subject line is derived from
// the weekday and calendar date.
func Build(articles []models.Article, intro, outro string) models.Newsletter {
	now := time.Now()
	subject := fmt.Sprintf("🚀 Daily AI Brief - %s, %s: Top 5 Tech Stories",
		now.Format("Monday"), now.Format("January 02"))

	return models.Newsletter{
		Date:     now,
		Articles: articles,
		Intro:    intro,
		Outro:    outro,
		Subject:  subject,
	}
}
