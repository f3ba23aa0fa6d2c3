package report

import (
	"strings"
)

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>", "\r", "")

// Markdown renders the table as a GitHub-flavored markdown table.
func Markdown(t *Table) string {
	var b strings.Builder

	writeMarkdownRow(&b, Headers)
	separators := make([]string, len(Headers))
	for i := range separators {
		separators[i] = "---"
	}
	writeMarkdownRow(&b, separators)

	for _, row := range t.Rows {
		writeMarkdownRow(&b, []string{
			row.Name,
			row.Mobile,
			row.Score,
			row.numberedQuestions("<br>"),
			row.Reasoning,
		})
	}

	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(cellReplacer.Replace(strings.TrimSpace(cell)))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
