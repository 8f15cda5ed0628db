package feed

import (
	"regexp"
	"strings"
)

// Authority-specific document number patterns. Regulatory authorities stamp
// documents with a recognizable reference (e.g. "2024:117", "BFS 2024:3",
// "dnr 2024/1234"); the pattern list is ordered from most to least specific.
var authorityPatterns = map[string][]*regexp.Regexp{
	"boverket": {
		regexp.MustCompile(`(?i)\bBFS\s+(\d{4}:\d+)`),
	},
	"skatteverket": {
		regexp.MustCompile(`(?i)\bSKVFS\s+(\d{4}:\d+)`),
		regexp.MustCompile(`(?i)\bdnr\s+(\d+[-/]\d+)`),
	},
	"arbetsmiljoverket": {
		regexp.MustCompile(`(?i)\bAFS\s+(\d{4}:\d+)`),
	},
}

// Generic patterns used when no authority-specific pattern matches.
var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{4}:\d{1,4})\b`),
	regexp.MustCompile(`\b(\d{4}/\d{2,6})\b`),
	regexp.MustCompile(`(?i)\bno\.?\s*(\d{2,6}[-/]\d{2,4})`),
}

// ExtractDocumentNumber pulls an authority document reference out of a title
// or description. Returns an empty string when nothing matches; a missing
// number is normal, not an error.
func ExtractDocumentNumber(authority, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	key := strings.ToLower(strings.TrimSpace(authority))
	if patterns, ok := authorityPatterns[key]; ok {
		for _, pattern := range patterns {
			if m := pattern.FindStringSubmatch(text); len(m) > 1 {
				return m[1]
			}
		}
	}

	for _, pattern := range genericPatterns {
		if m := pattern.FindStringSubmatch(text); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}
