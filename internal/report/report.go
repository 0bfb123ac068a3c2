// Package report renders an evaluation for humans: plain text for downloads
// and a lipgloss-styled variant for terminals.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lbt00001-beep/mbainative-website-sub000/internal/evaluation"
	"github.com/lbt00001-beep/mbainative-website-sub000/internal/rubric"
)

type section struct {
	title string
	items []string
}

func listSections(r *evaluation.Result) []section {
	return []section{
		{"Fortalezas", r.Strengths},
		{"Mejoras", r.Improvements},
		{"Acciones editoriales", r.EditorialActions},
	}
}

func metaLines(m evaluation.Metadata) [][2]string {
	var out [][2]string
	for _, kv := range [][2]string{
		{"Título", m.Title},
		{"Medio", m.Outlet},
		{"Autor", m.Author},
		{"Fecha", m.Date},
		{"Sección", m.Section},
	} {
		if strings.TrimSpace(kv[1]) != "" {
			out = append(out, kv)
		}
	}
	return out
}

// Text renders the plain-text report. Criteria follow the rubric order.
func Text(r *evaluation.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INFORME DE CALIDAD EDITORIAL\n")
	fmt.Fprintf(&b, "Puntuación global: %d/100 (%s)\n", r.OverallScore, r.Label)
	for _, kv := range metaLines(r.Metadata) {
		fmt.Fprintf(&b, "%s: %s\n", kv[0], kv[1])
	}
	if r.Signals.Words > 0 {
		fmt.Fprintf(&b, "Extensión: %d palabras, %d frases\n", r.Signals.Words, r.Signals.Sentences)
	}

	b.WriteString("\nCRITERIOS\n")
	for _, it := range rubric.Items() {
		d, ok := r.CriteriaDetails[it.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %d/5\n", it.Title, d.Score)
		if d.Rationale != "" {
			fmt.Fprintf(&b, "  Motivo: %s\n", d.Rationale)
		}
		if d.Evidence != "" {
			fmt.Fprintf(&b, "  Evidencia: %q\n", d.Evidence)
		}
	}

	for _, s := range listSections(r) {
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(s.title))
		for i, it := range s.items {
			fmt.Fprintf(&b, "%d. %s\n", i+1, it)
		}
	}

	fmt.Fprintf(&b, "\nRESUMEN\n%s\n", r.Summary)
	fmt.Fprintf(&b, "\nVEREDICTO\n%s\n", r.EditorialVerdict)
	return b.String()
}

var (
	bold       = lipgloss.NewStyle().Bold(true)
	dim        = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

func scoreStyle(score int) lipgloss.Style {
	switch rubric.TierFor(score) {
	case rubric.TierHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case rubric.TierMid:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
}

func truncate(s string, maxLen int) string {
	rs := []rune(s)
	if len(rs) <= maxLen {
		return s
	}
	return string(rs[:maxLen-1]) + "…"
}

// Styled renders the same sections as Text for a terminal.
func Styled(r *evaluation.Result) string {
	var b strings.Builder

	head := []string{bold.Render(fmt.Sprintf("📰 %d/100 · %s", r.OverallScore, r.Label))}
	for _, kv := range metaLines(r.Metadata) {
		head = append(head, labelStyle.Render(kv[0]+":")+" "+kv[1])
	}
	b.WriteString(boxStyle.Render(strings.Join(head, "\n")))
	b.WriteString("\n\n")

	var rows [][]string
	for _, it := range rubric.Items() {
		d, ok := r.CriteriaDetails[it.ID]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			it.Title,
			scoreStyle(d.Score).Render(fmt.Sprintf("%d/5", d.Score)),
			truncate(d.Rationale, 60),
			dim.Render(truncate(d.Evidence, 50)),
		})
	}
	t := table.New().
		Headers("Criterio", "Nota", "Motivo", "Evidencia").
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	for _, s := range listSections(r) {
		b.WriteString("\n" + labelStyle.Render(s.title) + "\n")
		for _, it := range s.items {
			b.WriteString("  • " + it + "\n")
		}
	}
	b.WriteString("\n" + labelStyle.Render("Resumen") + "\n" + r.Summary + "\n")
	b.WriteString("\n" + labelStyle.Render("Veredicto") + "\n" + bold.Render(r.EditorialVerdict) + "\n")
	return b.String()
}
