package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluation(t *testing.T) {
	raw := "Here you go:\n```json\n{\"score\": 8, \"reasoning\": \" Strong Python. \", \"interview_questions\": [\"Q1\", \" \", \"Q2\", \"Q3\", \"Q4\"]}\n```"

	result, err := ParseEvaluation(raw)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Score)
	assert.Equal(t, "Strong Python.", result.Reasoning)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, result.InterviewQuestions)
}

func TestParseEvaluationScoreForms(t *testing.T) {
	cases := []struct {
		name  string
		score string
		want  int
	}{
		{name: "integer", score: `7`, want: 7},
		{name: "integral float", score: `7.0`, want: 7},
		{name: "string", score: `"9"`, want: 9},
		{name: "out of ten", score: `"6/10"`, want: 6},
		{name: "lower bound", score: `1`, want: 1},
		{name: "upper bound", score: `10`, want: 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := `{"score": ` + tc.score + `, "reasoning": "r", "interview_questions": ["a", "b"]}`
			result, err := ParseEvaluation(raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Score)
		})
	}
}

func TestParseEvaluationMalformed(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "empty", raw: "", wantErr: "empty model response"},
		{name: "prose", raw: "The candidate is great, 9 out of 10.", wantErr: "unmarshal"},
		{name: "truncated json", raw: `{"score": 8, "reasoning": "cut`, wantErr: "unmarshal"},
		{name: "missing score", raw: `{"reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "score is missing"},
		{name: "null score", raw: `{"score": null, "reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "score is missing"},
		{name: "fractional score", raw: `{"score": 7.5, "reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "not an integer"},
		{name: "score too high", raw: `{"score": 11, "reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "outside"},
		{name: "score zero", raw: `{"score": 0, "reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "outside"},
		{name: "negative score", raw: `{"score": -3, "reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "outside"},
		{name: "word score", raw: `{"score": "high", "reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "not a number"},
		{name: "bool score", raw: `{"score": true, "reasoning": "r", "interview_questions": ["a", "b"]}`, wantErr: "not a number"},
		{name: "one question", raw: `{"score": 5, "reasoning": "r", "interview_questions": ["a"]}`, wantErr: "at least 2"},
		{name: "questions wrong type", raw: `{"score": 5, "reasoning": "r", "interview_questions": "a"}`, wantErr: "unmarshal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseEvaluation(tc.raw)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseRequirementProfile(t *testing.T) {
	raw := "```json\n" + `{
  "must_have_skills": ["Python", " distributed systems ", ""],
  "nice_to_have_skills": ["Kubernetes"],
  "experience_level": "3+ years",
  "qualifications": "",
  "preferred_domains": []
}` + "\n```"

	profile, err := ParseRequirementProfile(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Python", "distributed systems"}, profile.MustHaveSkills)
	assert.Equal(t, []string{"Kubernetes"}, profile.NiceToHaveSkills)
	assert.Equal(t, "3+ years", profile.ExperienceLevel)
	assert.Empty(t, profile.Qualifications)
	assert.Empty(t, profile.PreferredDomains)
	assert.Contains(t, profile.RawSummary, "must_have_skills")
}

func TestParseRequirementProfileMalformed(t *testing.T) {
	for name, raw := range map[string]string{
		"prose":    "Looking for a Python engineer",
		"empty":    "   ",
		"blank":    `{"must_have_skills": [], "experience_level": " "}`,
		"bad type": `{"must_have_skills": "Python"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRequirementProfile(raw)
			require.Error(t, err)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": {"b": 2}}`, extractJSON(`sure! {"a": {"b": 2}} hope this helps`))
	assert.Equal(t, "plain", extractJSON("  plain  "))
}
