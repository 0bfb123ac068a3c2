package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileMetadataPriority(t *testing.T) {
	extracted := map[string]any{
		"title":   "Y",
		"outlet":  "Diario Extraído",
		"author":  "  ",
		"section": "Economía",
	}
	got := ReconcileMetadata(Metadata{Title: "X", Author: "Ana Pérez"}, extracted, sampleArticle)

	assert.Equal(t, Metadata{
		Title:   "X",
		Outlet:  "Diario Extraído",
		Author:  "Ana Pérez",
		Date:    "",
		Section: "Economía",
	}, got)
}

func TestReconcileMetadataTitleHeuristic(t *testing.T) {
	got := ReconcileMetadata(Metadata{}, nil, sampleArticle)
	assert.Equal(t, "El Gobierno aprobó ayer el nuevo plan de vivienda para jóvenes.", got.Title)
	assert.Empty(t, got.Outlet)

	// first line too short: no guess, even if a later line would fit
	got = ReconcileMetadata(Metadata{}, nil, "Breve\nEsta segunda línea tiene longitud de titular")
	assert.Empty(t, got.Title)

	// leading blank lines are skipped
	got = ReconcileMetadata(Metadata{}, nil, "\n\n  Un titular con la longitud adecuada  \ncuerpo")
	assert.Equal(t, "Un titular con la longitud adecuada", got.Title)
}
