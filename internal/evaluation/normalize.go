package evaluation

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/rubric"
)

const (
	maxListItems   = 5
	finalListItems = 3
	neutralScore   = 3
)

var fallbackStrengths = []string{
	"El texto aborda un tema de interés público con un enfoque reconocible.",
	"La pieza aporta información concreta que el lector puede contrastar.",
	"El tono es mayoritariamente informativo y evita adjetivos innecesarios.",
}

var fallbackImprovements = []string{
	"Identificar con nombre y cargo todas las fuentes citadas.",
	"Añadir contexto y antecedentes que permitan valorar la relevancia del hecho.",
	"Incluir la perspectiva de las partes afectadas o críticas.",
}

// ClampScore coerces a model-supplied score to an integer in [1,5].
// Anything that is not a finite number (or numeric string) becomes 3.
func ClampScore(v any) int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		p, err := t.Float64()
		if err != nil {
			return neutralScore
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return neutralScore
		}
		f = p
	default:
		return neutralScore
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return neutralScore
	}
	s := int(math.Round(f))
	if s < rubric.MinScore {
		return rubric.MinScore
	}
	if s > rubric.MaxScore {
		return rubric.MaxScore
	}
	return s
}

// Normalize turns a (possibly incomplete) model object into a complete
// Result. It is deterministic and never fails; Metadata is left for
// ReconcileMetadata.
func Normalize(obj map[string]any, article string) Result {
	details := asMap(obj["criteriaDetails"])

	res := Result{
		Scores:          make(map[string]int, len(rubric.IDs())),
		CriteriaDetails: make(map[string]CriterionDetail, len(rubric.IDs())),
	}
	for _, id := range rubric.IDs() {
		d := asMap(details[id])
		score := ClampScore(d["score"])

		rationale := asString(d["rationale"])
		if isWeak(rationale) {
			rationale = rubric.FallbackRationale(id, score)
		}
		evidence := asString(d["evidence"])
		if isWeak(evidence) || runeLen(evidence) > maxEvidenceLen {
			evidence = PickEvidence(article, rubric.Keywords(id))
		}

		res.Scores[id] = score
		res.CriteriaDetails[id] = CriterionDetail{Score: score, Rationale: rationale, Evidence: evidence}
	}

	res.OverallScore = rubric.Aggregate(res.Scores)
	res.Label = rubric.Label(res.OverallScore)

	res.Strengths = fillList(cleanList(obj["strengths"]), fallbackStrengths)
	res.Improvements = fillList(cleanList(obj["improvements"]), fallbackImprovements)
	res.EditorialActions = fillList(cleanList(obj["editorialActions"]), res.Improvements)

	res.EditorialVerdict = asString(obj["editorialVerdict"])
	if res.EditorialVerdict == "" {
		res.EditorialVerdict = res.Improvements[0]
	}

	res.Summary = asString(obj["summary"])
	if res.Summary == "" {
		res.Summary = fmt.Sprintf("Evaluación automática: la pieza obtiene %d/100 (%s) en la rúbrica editorial de ocho criterios.",
			res.OverallScore, res.Label)
	}

	res.Signals = computeSignals(article)
	return res
}

// fillList keeps up to five items, tops them up from fallback (skipping
// duplicates) and returns exactly three.
func fillList(items, fallback []string) []string {
	if len(items) > maxListItems {
		items = items[:maxListItems]
	}
	out := make([]string, 0, maxListItems)
	out = append(out, items...)
	for _, f := range fallback {
		if len(out) >= finalListItems {
			break
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) > finalListItems {
		out = out[:finalListItems]
	}
	return out
}
