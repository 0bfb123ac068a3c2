package evaluation

import "strings"

const (
	minTitleGuess = 20
	maxTitleGuess = 140
)

// ReconcileMetadata merges, per field, the caller's value, then the value the
// model extracted, then a heuristic guess (title only).
func ReconcileMetadata(user Metadata, extracted map[string]any, article string) Metadata {
	pick := func(values ...string) string {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
		return ""
	}
	return Metadata{
		Title:   pick(user.Title, asString(extracted["title"]), guessTitle(article)),
		Outlet:  pick(user.Outlet, asString(extracted["outlet"])),
		Author:  pick(user.Author, asString(extracted["author"])),
		Date:    pick(user.Date, asString(extracted["date"])),
		Section: pick(user.Section, asString(extracted["section"])),
	}
}

// guessTitle uses the first non-empty line of the article when it has a
// headline-like length.
func guessTitle(article string) string {
	for _, line := range strings.Split(article, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if n := runeLen(line); n >= minTitleGuess && n <= maxTitleGuess {
			return line
		}
		return ""
	}
	return ""
}
