package evaluation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/rubric"
)

const sampleArticle = `El Gobierno aprobó ayer el nuevo plan de vivienda para jóvenes.
El plan destinará 700 millones de euros a ayudas al alquiler durante los próximos tres años. Según el Ministerio, la medida beneficiará a unas 200.000 personas. Sin embargo, las asociaciones de inquilinos consideran que la cifra es insuficiente para frenar la subida de precios. El texto no explica cómo se calculó el número de beneficiarios.`

func TestClampScore(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{float64(4), 4},
		{float64(4.4), 4},
		{float64(4.5), 5},
		{float64(0), 1},
		{float64(-3), 1},
		{float64(9), 5},
		{math.NaN(), 3},
		{math.Inf(1), 3},
		{"2", 2},
		{" 5 ", 5},
		{"alto", 3},
		{nil, 3},
		{true, 3},
		{json.Number("1"), 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClampScore(tc.in), "input %#v", tc.in)
	}
}

func TestNormalizeEmptyObject(t *testing.T) {
	res := Normalize(map[string]any{}, sampleArticle)

	require.Len(t, res.CriteriaDetails, 8)
	for _, id := range rubric.IDs() {
		d := res.CriteriaDetails[id]
		assert.Equal(t, 3, d.Score, id)
		assert.Equal(t, rubric.FallbackRationale(id, 3), d.Rationale, id)
		assert.NotEmpty(t, d.Evidence, id)
		assert.Contains(t, sampleArticle, d.Evidence, id)
		assert.Equal(t, 3, res.Scores[id])
	}
	assert.Equal(t, 60, res.OverallScore)
	assert.Equal(t, rubric.LabelAceptable, res.Label)

	assert.Equal(t, fallbackStrengths, res.Strengths)
	assert.Equal(t, fallbackImprovements, res.Improvements)
	assert.Equal(t, fallbackImprovements, res.EditorialActions)
	assert.Equal(t, fallbackImprovements[0], res.EditorialVerdict)
	assert.Contains(t, res.Summary, "60/100")
}

func TestNormalizeEvidenceUsesKeywords(t *testing.T) {
	res := Normalize(map[string]any{}, sampleArticle)

	// "dato" keywords include "millones"
	assert.True(t, strings.HasPrefix(res.CriteriaDetails["dato"].Evidence, "El plan destinará 700 millones"))
	// "balance" keywords include "sin embargo"
	assert.True(t, strings.HasPrefix(res.CriteriaDetails["balance"].Evidence, "Sin embargo"))
}

func TestNormalizeKeepsGoodValuesAndReplacesWeakOnes(t *testing.T) {
	obj := map[string]any{
		"criteriaDetails": map[string]any{
			"fuentes": map[string]any{"score": float64(5), "rationale": "Cita al Ministerio.", "evidence": "Según el Ministerio"},
			"balance": map[string]any{"score": float64(1), "rationale": "sin detalle", "evidence": strings.Repeat("x", 181)},
		},
	}
	res := Normalize(obj, sampleArticle)

	assert.Equal(t, CriterionDetail{Score: 5, Rationale: "Cita al Ministerio.", Evidence: "Según el Ministerio"}, res.CriteriaDetails["fuentes"])

	bal := res.CriteriaDetails["balance"]
	assert.Equal(t, 1, bal.Score)
	assert.Equal(t, rubric.FallbackRationale("balance", 1), bal.Rationale)
	assert.True(t, strings.HasPrefix(bal.Evidence, "Sin embargo"))
}

func TestNormalizeLists(t *testing.T) {
	obj := map[string]any{
		"strengths":        []any{"a", "b", "c", "d", "e", "f"},
		"improvements":     []any{"mejora propia", fallbackImprovements[1]},
		"editorialActions": []any{"acción propia"},
		"editorialVerdict": "   ",
	}
	res := Normalize(obj, sampleArticle)

	assert.Equal(t, []string{"a", "b", "c"}, res.Strengths)
	assert.Equal(t, []string{"mejora propia", fallbackImprovements[1], fallbackImprovements[0]}, res.Improvements)
	assert.Equal(t, []string{"acción propia", "mejora propia", fallbackImprovements[1]}, res.EditorialActions)
	assert.Equal(t, "mejora propia", res.EditorialVerdict)
}

func TestNormalizeOverallScoreRange(t *testing.T) {
	for _, s := range []float64{1, 2, 3, 4, 5} {
		details := map[string]any{}
		for _, id := range rubric.IDs() {
			details[id] = map[string]any{"score": s}
		}
		res := Normalize(map[string]any{"criteriaDetails": details}, sampleArticle)
		assert.Equal(t, int(s*20), res.OverallScore)
		assert.GreaterOrEqual(t, res.OverallScore, 20)
		assert.LessOrEqual(t, res.OverallScore, 100)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []map[string]any{
		{},
		validObject(t),
		{
			"criteriaDetails": map[string]any{"dato": map[string]any{"score": "4.6", "rationale": "", "evidence": "no reportada"}},
			"strengths":       []any{"única"},
			"summary":         "  Resumen breve.  ",
		},
	}
	for _, in := range inputs {
		first := Normalize(in, sampleArticle)

		b, err := json.Marshal(first)
		require.NoError(t, err)
		var again map[string]any
		require.NoError(t, json.Unmarshal(b, &again))

		second := Normalize(again, sampleArticle)
		assert.Equal(t, first, second)
	}
}

func TestNormalizeShortArticleFallsBackToPrefix(t *testing.T) {
	article := "Texto corto. Otro."
	res := Normalize(map[string]any{}, article)
	for _, id := range rubric.IDs() {
		assert.Equal(t, article, res.CriteriaDetails[id].Evidence)
	}
	assert.Equal(t, Signals{Words: 3, Sentences: 2}, res.Signals)
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Creció un 3.5% en 2023. ¿Por qué? ¡Nadie lo sabe!... Fin")
	assert.Equal(t, []string{"Creció un 3.5% en 2023.", "¿Por qué?", "¡Nadie lo sabe!...", "Fin"}, got)
}
