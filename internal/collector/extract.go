package collector

import (
	"fmt"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const extractTimeout = 10 * time.Second

// extractReadableText pulls the main article text out of the page at url.
func extractReadableText(url string) (string, error) {
	article, err := readability.FromURL(url, extractTimeout)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", url, err)
	}
	return strings.TrimSpace(article.TextContent), nil
}
