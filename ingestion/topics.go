package ingestion

import "strings"

// topicKeywords maps topic labels to the keywords that signal them.
// Matching is case-insensitive over title and body text.
var topicKeywords = map[string][]string{
	"tax":             {"tax", "vat", "skatt", "moms", "excise"},
	"construction":    {"building", "construction", "bygg", "planning permission"},
	"labor":           {"employment", "labor", "labour", "arbetsmiljö", "working conditions", "collective agreement"},
	"finance":         {"bank", "financial", "securities", "insurance", "credit"},
	"data-protection": {"personal data", "data protection", "gdpr", "privacy"},
	"environment":     {"environment", "emission", "miljö", "pollution", "climate"},
	"reporting":       {"reporting", "disclosure", "audit", "annual report"},
}

// importanceKeywords raise the importance score when present.
var importanceKeywords = []string{
	"enters into force", "immediately", "penalty", "sanction",
	"mandatory", "prohibited", "repealed", "amendment",
}

// DeriveTopics extracts topic labels from document text by keyword match.
// Output order is deterministic and deduplicated.
func DeriveTopics(title, text string) []string {
	haystack := strings.ToLower(title + " " + text)

	// Fixed label order keeps output deterministic.
	labels := []string{"tax", "construction", "labor", "finance", "data-protection", "environment", "reporting"}

	var topics []string
	for _, label := range labels {
		for _, keyword := range topicKeywords[label] {
			if strings.Contains(haystack, keyword) {
				topics = append(topics, label)
				break
			}
		}
	}
	return topics
}

// ScoreImportance estimates document importance in [0,1] from signal
// keywords and the presence of a document number. The score is advisory,
// consumed by the search layer for ranking.
func ScoreImportance(title, text, documentNumber string) float64 {
	haystack := strings.ToLower(title + " " + text)

	score := 0.3
	if documentNumber != "" {
		score += 0.2
	}
	for _, keyword := range importanceKeywords {
		if strings.Contains(haystack, keyword) {
			score += 0.1
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
