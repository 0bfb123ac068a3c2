package evaluation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Phrases the model sometimes copies literally instead of answering.
var placeholderPhrases = []string{"sin detalle", "no reportada", "sin datos"}

const minValidatedTextLen = 10

func isPlaceholder(s string) bool {
	low := strings.ToLower(s)
	for _, p := range placeholderPhrases {
		if strings.Contains(low, p) {
			return true
		}
	}
	return false
}

// isWeak is the normalizer predicate: empty or a known placeholder.
func isWeak(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || isPlaceholder(t)
}

// isWeakStrict is the validator predicate; it also rejects very short text.
func isWeakStrict(s string) bool {
	t := strings.TrimSpace(s)
	return isWeak(t) || runeLen(t) < minValidatedTextLen
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func truncateRunes(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// cleanList keeps trimmed, non-empty, distinct string entries in order.
func cleanList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	seen := make(map[string]struct{}, len(arr))
	for _, e := range arr {
		s := asString(e)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

// splitSentences splits on runs of sentence-ending punctuation followed by
// whitespace or end of text, so decimals like 3.5 stay intact.
func splitSentences(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		j := i
		for j+1 < len(runes) && isSentenceEnd(runes[j+1]) {
			j++
		}
		if j+1 == len(runes) || unicode.IsSpace(runes[j+1]) {
			if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
				out = append(out, s)
			}
			start = j + 1
		}
		i = j
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func computeSignals(article string) Signals {
	return Signals{
		Words:     len(strings.Fields(article)),
		Sentences: len(splitSentences(article)),
	}
}

const (
	minEvidenceSentence = 40
	maxEvidenceSentence = 220
	maxEvidenceLen      = 180
)

// PickEvidence returns the first article sentence of suitable length that
// mentions one of keywords, else the first sentence of suitable length, else
// the first 180 characters of the article.
func PickEvidence(article string, keywords []string) string {
	var candidates []string
	for _, s := range splitSentences(article) {
		n := runeLen(s)
		if n >= minEvidenceSentence && n <= maxEvidenceSentence {
			candidates = append(candidates, s)
		}
	}
	for _, s := range candidates {
		low := strings.ToLower(s)
		for _, k := range keywords {
			if k != "" && strings.Contains(low, strings.ToLower(k)) {
				return s
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return strings.TrimSpace(truncateRunes(strings.TrimSpace(article), maxEvidenceLen))
}
