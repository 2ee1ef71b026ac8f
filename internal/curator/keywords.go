package curator

// relevanceKeywords gate the prefilter: an article whose title contains any
// of these (case-insensitive) is considered on-topic.
var relevanceKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "neural", "deep learning",
	"chatgpt", "gpt", "llm", "openai", "anthropic", "google", "meta", "tech",
	"startup", "algorithm", "automation", "robot", "quantum", "cloud", "data",
}

// Keyword sets for the deterministic fallback score.
var (
	highImpactKeywords = []string{
		"breakthrough", "launches", "announces", "release", "new",
		"first", "major", "billion", "funding",
	}

	aiBrandKeywords = []string{
		"openai", "anthropic", "google ai", "meta ai", "chatgpt",
		"gpt-4", "claude", "ai model",
	}

	premiumSources = []string{
		"techcrunch", "wired", "venturebeat", "ai news",
		"google", "openai", "anthropic",
	}
)
