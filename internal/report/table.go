package report

import (
	"fmt"
	"strconv"
	"strings"

	"alfredoptarigan/resume-shortlister/internal/models"
)

const (
	notFound = "Not found"
	noScore  = "N/A"
)

var Headers = []string{"Name", "Mobile", "Score", "Questions for Interview", "Reasoning"}

type Row struct {
	Name      string
	Mobile    string
	Score     string
	Questions []string
	Reasoning string
}

// Table is the rendering-neutral form of a shortlist report. Rows follow
// the report's entry order.
type Table struct {
	RunID   string
	Summary string
	Rows    []Row
}

func Assemble(r *models.ShortlistReport) *Table {
	table := &Table{}
	if r == nil {
		return table
	}

	table.RunID = r.RunID
	table.Summary = summarize(r)
	table.Rows = make([]Row, 0, len(r.Entries))
	for _, entry := range r.Entries {
		if entry == nil {
			continue
		}
		table.Rows = append(table.Rows, Row{
			Name:      orNotFound(entry.Name),
			Mobile:    orNotFound(entry.Phone),
			Score:     formatScore(entry),
			Questions: entry.InterviewQuestions,
			Reasoning: strings.TrimSpace(entry.Reasoning),
		})
	}

	return table
}

// Cells flattens a row in header order, one question per line.
func (r Row) Cells() []string {
	return []string{r.Name, r.Mobile, r.Score, r.numberedQuestions("\n"), r.Reasoning}
}

func (r Row) numberedQuestions(sep string) string {
	lines := make([]string, 0, len(r.Questions))
	for i, q := range r.Questions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(q)))
	}
	return strings.Join(lines, sep)
}

func formatScore(entry *models.CandidateEvaluation) string {
	if !entry.Scored() {
		return noScore
	}
	return strconv.Itoa(entry.Score)
}

func orNotFound(value string) string {
	if value = strings.TrimSpace(value); value == "" {
		return notFound
	}
	return value
}

func summarize(r *models.ShortlistReport) string {
	mode := "informational"
	if r.Filtered {
		mode = "filtered"
	}
	return fmt.Sprintf(
		"%d resumes processed, %d failed, %d at or above the %.1f threshold (%s), average score %.1f",
		r.TotalProcessed, r.TotalFailed, r.AboveThreshold, r.ThresholdApplied, mode, r.AverageScore,
	)
}
