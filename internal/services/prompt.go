package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-shortlister/internal/models"
)

const (
	requirementSystemPrompt = `You are a strategic HR professional with years of experience writing and interpreting job descriptions. You break complex job postings down into actionable hiring criteria so that recruiters can focus on what matters for hiring success.`

	evaluationSystemPrompt = `You are a recruitment expert trained in analyzing resumes with precision. You identify strengths, weaknesses and red flags in candidate applications using a clear evaluation framework, and you shortlist the most qualified candidates for the role.`

	noResumeText = "(no text could be extracted from this resume)"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildRequirementPrompt asks the model to turn a job description into a requirement profile.
func (pb *PromptBuilder) BuildRequirementPrompt(jobDescription string) string {
	return fmt.Sprintf(`Carefully analyze the job description below and summarize what the hiring manager is looking for.

JOB DESCRIPTION:
%s

Break the description down into must-have skills, nice-to-have skills, the required experience level, qualifications and preferred industries or domains.

Return your response in the following JSON format:
{
  "must_have_skills": ["<skill>", "..."],
  "nice_to_have_skills": ["<skill>", "..."],
  "experience_level": "<required years / seniority>",
  "qualifications": "<degrees, certifications and other qualifications>",
  "preferred_domains": ["<industry or domain>", "..."]
}

Use empty lists or empty strings for anything the description does not mention.`,
		strings.TrimSpace(jobDescription))
}

// BuildEvaluationPrompt combines the requirement profile and one candidate's resume text.
func (pb *PromptBuilder) BuildEvaluationPrompt(profile *models.RequirementProfile, resumeText string) string {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		resumeText = noResumeText
	}

	return fmt.Sprintf(`Evaluate how well the candidate below fits the job requirements.

JOB REQUIREMENTS:
%s

CANDIDATE RESUME:
%s

Score the candidate on a scale from 1 to 10, where 10 means the resume matches every requirement and 1 means it matches none. A resume without usable content scores 1.
Explain the score in 2-4 sentences, naming concrete strengths and gaps.
Write 2-3 interview questions tailored to this candidate's gaps or strengths relative to the requirements.

Return your response in the following JSON format:
{
  "score": <integer 1-10>,
  "reasoning": "<2-4 sentences>",
  "interview_questions": ["<question>", "<question>", "<optional third question>"]
}`,
		FormatRequirementProfile(profile), resumeText)
}

// FormatRequirementProfile renders a profile as a plain-text block for prompts.
func FormatRequirementProfile(profile *models.RequirementProfile) string {
	if profile == nil {
		return "No requirements available."
	}

	var sb strings.Builder
	writeList := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(items, "; ")))
	}
	writeValue := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, strings.TrimSpace(value)))
	}

	writeList("Must-have skills", profile.MustHaveSkills)
	writeList("Nice-to-have skills", profile.NiceToHaveSkills)
	writeValue("Experience level", profile.ExperienceLevel)
	writeValue("Qualifications", profile.Qualifications)
	writeList("Preferred domains", profile.PreferredDomains)

	return strings.TrimRight(sb.String(), "\n")
}
