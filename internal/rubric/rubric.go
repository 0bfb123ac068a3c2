// Package rubric holds the fixed editorial scoring framework: eight criteria
// in canonical order, with the per-criterion keywords and canned rationales
// the normalizer falls back to.
package rubric

import "math"

const (
	MinScore = 1
	MaxScore = 5
)

type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Tier int

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

// Labels, from best to worst.
const (
	LabelExcelente = "Excelente"
	LabelBuena     = "Buena"
	LabelAceptable = "Aceptable"
	LabelBaja      = "Baja"
)

type criterion struct {
	Item
	keywords   []string
	rationales [3]string // indexed by Tier
}

var criteria = []criterion{
	{
		Item: Item{ID: "claridad", Title: "Claridad", Description: "El texto se entiende a la primera: frases directas, términos explicados y una idea principal reconocible."},
		keywords: []string{"es decir", "en resumen", "significa", "explica", "en concreto", "lo que supone"},
		rationales: [3]string{
			"La redacción dificulta seguir la idea principal y deja términos sin explicar.",
			"El texto se entiende en general, aunque algunos pasajes requieren relectura.",
			"La redacción es directa y permite entender la idea principal sin esfuerzo.",
		},
	},
	{
		Item: Item{ID: "veracidad", Title: "Veracidad", Description: "Las afirmaciones son verificables y se distinguen hechos de opiniones."},
		keywords: []string{"según", "confirmó", "verific", "comprob", "oficial", "registr"},
		rationales: [3]string{
			"Varias afirmaciones no pueden verificarse con la información del texto.",
			"Las afirmaciones principales parecen verificables, pero faltan comprobaciones explícitas.",
			"Las afirmaciones se presentan de forma verificable y separadas de la opinión.",
		},
	},
	{
		Item: Item{ID: "fuentes", Title: "Fuentes", Description: "Se identifican las fuentes, su relación con los hechos y su diversidad."},
		keywords: []string{"según", "fuente", "declaró", "afirmó", "dijo", "informe", "portavoz", "explicó"},
		rationales: [3]string{
			"El texto apenas identifica fuentes o depende de una sola sin atribución clara.",
			"Hay fuentes identificadas, aunque su diversidad o atribución es limitada.",
			"Las fuentes están bien identificadas y atribuidas, con variedad suficiente.",
		},
	},
	{
		Item: Item{ID: "contexto", Title: "Contexto", Description: "Se aportan antecedentes y comparaciones que permiten valorar la relevancia del hecho."},
		keywords: []string{"desde", "anterior", "histórico", "en comparación", "respecto", "hace", "antecedente"},
		rationales: [3]string{
			"Faltan antecedentes o comparaciones para valorar la relevancia de la noticia.",
			"Se ofrece algo de contexto, aunque insuficiente para valorar el alcance del hecho.",
			"El texto sitúa el hecho con antecedentes y comparaciones pertinentes.",
		},
	},
	{
		Item: Item{ID: "balance", Title: "Balance", Description: "Se recogen las perspectivas relevantes sin sesgo evidente en el tratamiento."},
		keywords: []string{"sin embargo", "por otro lado", "en cambio", "aunque", "críticos", "oposición", "no obstante"},
		rationales: [3]string{
			"El texto presenta una sola perspectiva y omite voces relevantes.",
			"Se mencionan otras perspectivas, aunque con un peso desigual.",
			"El tratamiento recoge las perspectivas relevantes de forma equilibrada.",
		},
	},
	{
		Item: Item{ID: "estructura", Title: "Estructura", Description: "La información se ordena por relevancia con un arranque que resume lo esencial."},
		keywords: []string{"además", "por último", "finalmente", "en primer lugar", "por su parte", "asimismo"},
		rationales: [3]string{
			"La información no sigue un orden claro y lo esencial aparece tarde.",
			"La estructura es correcta, aunque el orden de relevancia podría mejorar.",
			"La información está bien jerarquizada y el arranque resume lo esencial.",
		},
	},
	{
		Item: Item{ID: "dato", Title: "Uso de datos", Description: "Las cifras se citan con precisión, unidad, fecha y fuente."},
		keywords: []string{"%", "por ciento", "millones", "cifra", "euros", "dólares", "tasa"},
		rationales: [3]string{
			"Las cifras son escasas o se presentan sin unidad, fecha o fuente.",
			"Se usan datos relevantes, aunque falta precisión en su origen o comparación.",
			"Los datos se citan con precisión y con su fuente identificada.",
		},
	},
	{
		Item: Item{ID: "transparencia", Title: "Transparencia", Description: "Se explica cómo se obtuvo la información y qué no se pudo confirmar."},
		keywords: []string{"metodología", "no respondió", "consultad", "no pudo", "aclar", "rectific"},
		rationales: [3]string{
			"El texto no explica cómo se obtuvo la información ni sus limitaciones.",
			"Se aporta alguna pista sobre el origen de la información, sin detallar limitaciones.",
			"El texto explica cómo se obtuvo la información y qué queda por confirmar.",
		},
	},
}

var index = func() map[string]int {
	m := make(map[string]int, len(criteria))
	for i, c := range criteria {
		m[c.ID] = i
	}
	return m
}()

// Items returns the rubric in canonical order.
func Items() []Item {
	out := make([]Item, len(criteria))
	for i, c := range criteria {
		out[i] = c.Item
	}
	return out
}

// IDs returns the criterion ids in canonical order.
func IDs() []string {
	out := make([]string, len(criteria))
	for i, c := range criteria {
		out[i] = c.ID
	}
	return out
}

func Lookup(id string) (Item, bool) {
	i, ok := index[id]
	if !ok {
		return Item{}, false
	}
	return criteria[i].Item, true
}

// Keywords used to pick evidence sentences for a criterion.
func Keywords(id string) []string {
	i, ok := index[id]
	if !ok {
		return nil
	}
	return criteria[i].keywords
}

func TierFor(score int) Tier {
	switch {
	case score <= 2:
		return TierLow
	case score == 3:
		return TierMid
	default:
		return TierHigh
	}
}

// FallbackRationale returns the canned rationale for id at the given score.
func FallbackRationale(id string, score int) string {
	i, ok := index[id]
	if !ok {
		return ""
	}
	return criteria[i].rationales[TierFor(score)]
}

// Aggregate maps the criterion scores to 0..100 as round(mean*20), walking
// the rubric in canonical order. Missing criteria count as the neutral 3.
func Aggregate(scores map[string]int) int {
	if len(criteria) == 0 {
		return 0
	}
	total := 0
	for _, c := range criteria {
		v, ok := scores[c.ID]
		if !ok {
			v = 3
		}
		if v < MinScore {
			v = MinScore
		}
		if v > MaxScore {
			v = MaxScore
		}
		total += v
	}
	return int(math.Round(float64(total) * 20 / float64(len(criteria))))
}

// Label maps an overall score to its qualitative label. Bounds are inclusive.
func Label(overall int) string {
	switch {
	case overall >= 85:
		return LabelExcelente
	case overall >= 70:
		return LabelBuena
	case overall >= 50:
		return LabelAceptable
	default:
		return LabelBaja
	}
}
