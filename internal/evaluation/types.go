package evaluation

// Metadata describes the article being scored. Every field is optional.
type Metadata struct {
	Title   string `json:"title"`
	Outlet  string `json:"outlet"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Section string `json:"section"`
}

type CriterionDetail struct {
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
	Evidence  string `json:"evidence"`
}

type Signals struct {
	Words     int `json:"words"`
	Sentences int `json:"sentences"`
}

// Result is the normalized evaluation returned to callers. It is built fresh
// for every request and never mutated afterwards.
type Result struct {
	OverallScore     int                        `json:"overallScore"`
	Label            string                     `json:"label"`
	Scores           map[string]int             `json:"scores"`
	CriteriaDetails  map[string]CriterionDetail `json:"criteriaDetails"`
	Strengths        []string                   `json:"strengths"`
	Improvements     []string                   `json:"improvements"`
	EditorialActions []string                   `json:"editorialActions"`
	Summary          string                     `json:"summary"`
	EditorialVerdict string                     `json:"editorialVerdict"`
	Metadata         Metadata                   `json:"metadata"`
	Signals          Signals                    `json:"signals"`

	// Attempts is the number of LLM calls spent (1 or 2).
	Attempts int `json:"-"`
	// Repaired is set when the second call replaced the first output.
	Repaired bool `json:"-"`
}
