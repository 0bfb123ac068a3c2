package evaluation

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	thinkRe = regexp.MustCompile(`(?is)<think>.*?</think>`)
	fenceRe = regexp.MustCompile("(?is)```(?:json)?[ \\t]*\\r?\\n?(.*?)```")
)

// ExtractJSON recovers the outermost JSON object from raw model output.
// Reasoning blocks are dropped and a fenced code block, when present, narrows
// the search. Objects are located with a depth scanner that ignores braces
// inside string literals. A balanced span that does not parse is skipped as a
// whole, so an object nested inside it is never returned; an unclosed '{'
// ends the scan. The span from the first '{' to the last '}' is tried as a
// last resort.
func ExtractJSON(raw string) (map[string]any, error) {
	text := thinkRe.ReplaceAllString(raw, "")
	if m := fenceRe.FindStringSubmatch(text); m != nil && strings.Contains(m[1], "{") {
		text = m[1]
	}

	for off := 0; off < len(text); {
		i := strings.IndexByte(text[off:], '{')
		if i < 0 {
			break
		}
		start := off + i
		end, ok := balancedEnd(text, start)
		if !ok {
			// truncated output: everything after start is inside this object
			break
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(text[start:end]), &obj); err == nil {
			return obj, nil
		}
		off = end
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, &MalformedOutputError{Reason: "no se encontró ningún objeto JSON"}
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, &MalformedOutputError{Err: err}
	}
	return obj, nil
}

// balancedEnd returns the index just past the '}' that closes the object
// opened at text[start].
func balancedEnd(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
