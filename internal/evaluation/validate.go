package evaluation

import (
	"fmt"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/rubric"
)

const (
	minListItems  = 3
	minSummaryLen = 80
	minVerdictLen = 20
)

var requiredFields = []string{"criteriaDetails", "strengths", "improvements", "editorialActions", "summary", "editorialVerdict"}

var listFields = []string{"strengths", "improvements", "editorialActions"}

// Validate checks obj against the response schema and returns every problem
// found, in a stable order. An empty slice means the object is acceptable.
func Validate(obj map[string]any) []string {
	var errs []string

	for _, f := range requiredFields {
		if v, ok := obj[f]; !ok || v == nil {
			errs = append(errs, fmt.Sprintf("falta el campo %q", f))
		}
	}

	details := asMap(obj["criteriaDetails"])
	for _, id := range rubric.IDs() {
		d := asMap(details[id])
		if d == nil {
			errs = append(errs, fmt.Sprintf("criteriaDetails.%s: falta el criterio", id))
			continue
		}
		score, ok := d["score"].(float64)
		if !ok || score < rubric.MinScore || score > rubric.MaxScore {
			errs = append(errs, fmt.Sprintf("criteriaDetails.%s.score: debe ser un número entre 1 y 5", id))
		}
		if isWeakStrict(asString(d["rationale"])) {
			errs = append(errs, fmt.Sprintf("criteriaDetails.%s.rationale: texto vacío o genérico", id))
		}
		if isWeakStrict(asString(d["evidence"])) {
			errs = append(errs, fmt.Sprintf("criteriaDetails.%s.evidence: texto vacío o genérico", id))
		}
	}

	for _, f := range listFields {
		if n := len(cleanList(obj[f])); n < minListItems {
			errs = append(errs, fmt.Sprintf("%s: se esperaban al menos %d elementos, hay %d", f, minListItems, n))
		}
	}

	if n := runeLen(asString(obj["summary"])); n < minSummaryLen {
		errs = append(errs, fmt.Sprintf("summary: demasiado corto (%d caracteres, mínimo %d)", n, minSummaryLen))
	}
	if n := runeLen(asString(obj["editorialVerdict"])); n < minVerdictLen {
		errs = append(errs, fmt.Sprintf("editorialVerdict: demasiado corto (%d caracteres, mínimo %d)", n, minVerdictLen))
	}
	return errs
}
