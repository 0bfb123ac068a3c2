package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/rubric"
)

const maxRepairEcho = 3000

var promptRules = []string{
	"score es un entero entre 1 y 5.",
	"rationale: 1 o 2 frases que justifiquen la puntuación.",
	"evidence: cita literal del artículo de 180 caracteres como máximo.",
	"strengths, improvements y editorialActions: exactamente 3 elementos cada una.",
	"summary: entre 4 y 6 frases.",
	"Responde solo con JSON válido, sin markdown ni texto adicional.",
}

// BuildPrompt renders the single instruction sent to the model. The article
// text always goes last.
func BuildPrompt(meta Metadata, article string) string {
	var b strings.Builder

	b.WriteString("Eres un editor jefe que evalúa la calidad editorial de piezas periodísticas en español ")
	b.WriteString("con una rúbrica fija de ocho criterios. Evalúa el artículo y devuelve un único objeto JSON.\n\n")

	b.WriteString("FORMATO JSON:\n")
	b.WriteString(shapeTemplate())
	b.WriteString("\n\nREGLAS:\n")
	for _, r := range promptRules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteByte('\n')
	}

	b.WriteString("\nCRITERIOS:\n")
	for _, it := range rubric.Items() {
		fmt.Fprintf(&b, "- %s (%s): %s\n", it.ID, it.Title, it.Description)
	}

	metaJSON, _ := json.MarshalIndent(meta, "", "  ")
	b.WriteString("\nMETADATOS APORTADOS POR EL USUARIO:\n")
	b.Write(metaJSON)

	b.WriteString("\n\nTEXTO DEL ARTÍCULO:\n")
	b.WriteString(article)
	return b.String()
}

func shapeTemplate() string {
	var b strings.Builder
	b.WriteString("{\n  \"criteriaDetails\": {\n")
	ids := rubric.IDs()
	for i, id := range ids {
		fmt.Fprintf(&b, "    %q: {\"score\": 1-5, \"rationale\": \"...\", \"evidence\": \"...\"}", id)
		if i < len(ids)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  },\n")
	b.WriteString("  \"strengths\": [\"...\", \"...\", \"...\"],\n")
	b.WriteString("  \"improvements\": [\"...\", \"...\", \"...\"],\n")
	b.WriteString("  \"editorialActions\": [\"...\", \"...\", \"...\"],\n")
	b.WriteString("  \"summary\": \"...\",\n")
	b.WriteString("  \"editorialVerdict\": \"...\",\n")
	b.WriteString("  \"metadataExtracted\": {\"title\": \"\", \"outlet\": \"\", \"author\": \"\", \"date\": \"\", \"section\": \"\"}\n")
	b.WriteString("}")
	return b.String()
}

// BuildInvalidJSONRepairPrompt asks again after output that held no parseable JSON.
func BuildInvalidJSONRepairPrompt(base string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nCORRECCIÓN: tu respuesta anterior no era JSON válido. ")
	b.WriteString("Devuelve únicamente el objeto JSON con el formato indicado, sin texto antes ni después.")
	return b.String()
}

// BuildSchemaRepairPrompt lists the validation errors and echoes up to 3000
// characters of the previous output.
func BuildSchemaRepairPrompt(base string, errs []string, previousRaw string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nCORRECCIÓN: tu respuesta anterior no cumplía el esquema. Errores detectados:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e)
		b.WriteByte('\n')
	}
	b.WriteString("\nRESPUESTA ANTERIOR:\n")
	b.WriteString(truncateRunes(previousRaw, maxRepairEcho))
	b.WriteString("\n\nDevuelve el objeto JSON completo y corregido, solo JSON.")
	return b.String()
}
