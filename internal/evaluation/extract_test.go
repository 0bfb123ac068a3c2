package evaluation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{"plain", `{"a":1}`, map[string]any{"a": float64(1)}},
		{"fenced json", "Here you go:\n```json\n{\"a\":1}\n```", map[string]any{"a": float64(1)}},
		{"fenced untagged", "```\n{\"a\":2}\n```\nthanks", map[string]any{"a": float64(2)}},
		{"preamble", "Claro, aquí está la evaluación: {\"a\":3} espero que sirva", map[string]any{"a": float64(3)}},
		{"think block", "<think>maybe {\"a\":0} is right</think>\n{\"a\":4}", map[string]any{"a": float64(4)}},
		{"think multiline upper", "<THINK>\nline {\n</THINK>{\"a\":5}", map[string]any{"a": float64(5)}},
		{"braces in strings", `{"s":"uses } and { inside","n":{"x":1}} trailing }`, map[string]any{
			"s": "uses } and { inside",
			"n": map[string]any{"x": float64(1)},
		}},
		{"escaped quote", `{"s":"say \"}\" ok"}`, map[string]any{"s": `say "}" ok`}},
		{"junk brace first", `note {not json} then {"a":6}`, map[string]any{"a": float64(6)}},
		{"invalid object skipped whole", `{"a": tru, "n": {"x":1}} {"b":{"y":2}}`, map[string]any{
			"b": map[string]any{"y": float64(2)},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// truncatedOutput is a response cut off mid-object; the first criterion is
// complete and must not be mistaken for the whole answer.
const truncatedOutput = `{"criteriaDetails":{"claridad":{"score":1,"rationale":"Muy confusa la pieza.","evidence":"El PIB creció"},"veracidad":{"score":`

func TestExtractJSONFailures(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":                     "",
		"no braces":                 "lo siento, no puedo ayudar",
		"only think":                "<think>{\"a\":1}</think>",
		"unbalanced":                `{"a": 1`,
		"invalid inside":            `{"a": tru}`,
		"truncated nested":          truncatedOutput,
		"truncated with preamble":   "Aquí está: " + truncatedOutput,
		"invalid outer valid inner": `{"a": tru, "b": {"x":1}}`,
		"fenced truncated":          "```json\n{\"criteriaDetails\":{\"dato\":{\"score\":5}},\"summary\":\"Resumen\n```",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ExtractJSON(raw)
			require.Error(t, err)
			assert.Nil(t, got)
			var me *MalformedOutputError
			assert.True(t, errors.As(err, &me))
		})
	}
}
