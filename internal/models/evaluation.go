package models

import "fmt"

const (
	MinScore = 1
	MaxScore = 10

	// ScoreUnscored marks an evaluation that failed. It is outside
	// [MinScore, MaxScore] so it can never be mistaken for a real score.
	ScoreUnscored = 0
)

type CandidateEvaluation struct {
	SourceID           string   `json:"source_id"`
	Filename           string   `json:"filename"`
	Name               string   `json:"name"`
	Phone              string   `json:"phone"`
	Email              string   `json:"email"`
	Score              int      `json:"score"`
	Reasoning          string   `json:"reasoning"`
	InterviewQuestions []string `json:"interview_questions"`
	Failed             bool     `json:"failed"`
	ExtractionFailed   bool     `json:"extraction_failed"`
}

// NewFailedEvaluation builds the sentinel entry recorded for a candidate
// whose evaluation could not be completed.
func NewFailedEvaluation(doc *ResumeDocument, cause error) *CandidateEvaluation {
	eval := &CandidateEvaluation{
		Score:              ScoreUnscored,
		Reasoning:          fmt.Sprintf("evaluation failed: %v", cause),
		InterviewQuestions: []string{},
		Failed:             true,
	}
	eval.CopyContact(doc)
	return eval
}

// CopyContact fills identity and contact fields from the extracted document.
func (e *CandidateEvaluation) CopyContact(doc *ResumeDocument) {
	if doc == nil {
		return
	}
	e.SourceID = doc.SourceID
	e.Filename = doc.Filename
	e.Name = doc.Name
	e.Phone = doc.Phone
	e.Email = doc.Email
	e.ExtractionFailed = doc.ExtractionFailed
}

// Scored reports whether the entry carries a genuine score.
func (e *CandidateEvaluation) Scored() bool {
	return !e.Failed && e.Score >= MinScore && e.Score <= MaxScore
}
