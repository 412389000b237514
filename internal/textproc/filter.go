package textproc

import "strings"

// ScanResult reports the forbidden terms found in a text along with a
// best-effort cleaned rendition and per-term replacement suggestions.
type ScanResult struct {
	Matched     []string          `json:"matched"`
	Suggestions map[string]string `json:"suggestions"`
	Cleaned     string            `json:"cleaned"`
}

// HasForbidden reports whether any forbidden term matched.
func (r ScanResult) HasForbidden() bool { return len(r.Matched) > 0 }

// Scan checks text against the forbidden vocabulary using case-insensitive
// substring containment. Terms with a mapped synonym are substituted in
// Cleaned; the rest stay in place and are surfaced via Matched and the
// ReviseSuggestion marker.
func Scan(text string) ScanResult {
	lower := strings.ToLower(text)
	result := ScanResult{Suggestions: map[string]string{}, Cleaned: text}
	for _, word := range ForbiddenWords {
		if !strings.Contains(lower, strings.ToLower(word)) {
			continue
		}
		result.Matched = append(result.Matched, word)
		if repl, ok := Replacements[word]; ok {
			result.Suggestions[word] = repl
			result.Cleaned = strings.ReplaceAll(result.Cleaned, word, repl)
		} else {
			result.Suggestions[word] = ReviseSuggestion
		}
	}
	return result
}

// FitForImage shortens text for on-image display: forbidden terms are
// substituted first, then overlong text collapses to its top keywords or a
// truncated prefix.
func FitForImage(text string, max int) string {
	if max <= 0 {
		max = 20
	}
	cleaned := Scan(text).Cleaned
	runes := []rune(cleaned)
	if len(runes) <= max {
		return cleaned
	}
	if keywords := Keywords(cleaned, 2); len(keywords) > 0 {
		return strings.Join(keywords, " ")
	}
	return string(runes[:max]) + "..."
}
