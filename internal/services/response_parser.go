package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"alfredoptarigan/resume-shortlister/internal/models"
)

const (
	minInterviewQuestions = 2
	maxInterviewQuestions = 3
)

type requirementResponse struct {
	MustHaveSkills   []string `json:"must_have_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	ExperienceLevel  string   `json:"experience_level"`
	Qualifications   string   `json:"qualifications"`
	PreferredDomains []string `json:"preferred_domains"`
}

type evaluationResponse struct {
	Score              json.RawMessage `json:"score"`
	Reasoning          string          `json:"reasoning"`
	InterviewQuestions []string        `json:"interview_questions"`
}

// EvaluationResult is the typed content of an evaluation response.
type EvaluationResult struct {
	Score              int
	Reasoning          string
	InterviewQuestions []string
}

// ParseRequirementProfile converts model output into a RequirementProfile.
// A profile with no content at all is rejected.
func ParseRequirementProfile(raw string) (*models.RequirementProfile, error) {
	var resp requirementResponse
	if err := unmarshalModelJSON(raw, &resp); err != nil {
		return nil, err
	}

	profile := &models.RequirementProfile{
		MustHaveSkills:   cleanList(resp.MustHaveSkills),
		NiceToHaveSkills: cleanList(resp.NiceToHaveSkills),
		ExperienceLevel:  strings.TrimSpace(resp.ExperienceLevel),
		Qualifications:   strings.TrimSpace(resp.Qualifications),
		PreferredDomains: cleanList(resp.PreferredDomains),
		RawSummary:       strings.TrimSpace(raw),
	}

	if len(profile.MustHaveSkills) == 0 && len(profile.NiceToHaveSkills) == 0 &&
		profile.ExperienceLevel == "" && profile.Qualifications == "" {
		return nil, errors.New("requirement profile is empty")
	}

	return profile, nil
}

// ParseEvaluation converts model output into an EvaluationResult. Scores are
// never clamped: anything that is not an integer in [1,10] is an error.
func ParseEvaluation(raw string) (*EvaluationResult, error) {
	var resp evaluationResponse
	if err := unmarshalModelJSON(raw, &resp); err != nil {
		return nil, err
	}

	score, err := parseScore(resp.Score)
	if err != nil {
		return nil, err
	}

	questions := cleanList(resp.InterviewQuestions)
	if len(questions) < minInterviewQuestions {
		return nil, fmt.Errorf("expected at least %d interview questions, got %d", minInterviewQuestions, len(questions))
	}
	if len(questions) > maxInterviewQuestions {
		questions = questions[:maxInterviewQuestions]
	}

	return &EvaluationResult{
		Score:              score,
		Reasoning:          strings.TrimSpace(resp.Reasoning),
		InterviewQuestions: questions,
	}, nil
}

func parseScore(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, errors.New("score is missing")
	}

	var value float64
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "/10"))
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("score %q is not a number", text)
		}
		value = parsed
	} else if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("score %s is not a number", string(raw))
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, fmt.Errorf("score %v is not an integer", value)
	}
	if value < models.MinScore || value > models.MaxScore {
		return 0, fmt.Errorf("score %v is outside [%d, %d]", value, models.MinScore, models.MaxScore)
	}

	return int(value), nil
}

func unmarshalModelJSON(raw string, target any) error {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return errors.New("empty model response")
	}

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON pulls the outermost JSON object out of text that may be wrapped
// in markdown fences or surrounded by prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}
