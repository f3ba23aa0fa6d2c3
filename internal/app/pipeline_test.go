package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-shortlister/internal/config"
	"alfredoptarigan/resume-shortlister/internal/models"
	"alfredoptarigan/resume-shortlister/internal/services"
)

type scriptedGenerator struct{}

func (scriptedGenerator) GenerateText(_ context.Context, _ string, prompt string) (string, error) {
	if strings.Contains(prompt, "CANDIDATE RESUME:") {
		return `{"score": 6, "reasoning": "Partial match.", "interview_questions": ["First?", "Second?"]}`, nil
	}
	return `{"must_have_skills": ["Go"], "experience_level": "mid", "qualifications": ""}`, nil
}

func (scriptedGenerator) Model() string { return "scripted" }

func testConfig() *config.Config {
	return &config.Config{
		Model:     config.ModelConfig{APIKey: "test-key", Name: "gemini-2.5-flash-lite"},
		Shortlist: config.ShortlistConfig{MaxResumes: 2, ScoreThreshold: 7},
		Storage:   config.StorageConfig{MaxFileSize: 1024},
		Worker: config.WorkerConfig{
			Concurrency:      2,
			RetryMaxAttempts: 1,
			InterpretTimeout: time.Second,
			EvaluateTimeout:  time.Second,
			RunTimeout:       5 * time.Second,
		},
	}
}

func TestNewPipelineRunsEndToEnd(t *testing.T) {
	pipeline := NewPipeline(testConfig(), scriptedGenerator{}, nil)
	assert.Equal(t, "scripted", pipeline.Model)

	report, err := pipeline.Shortlister.Run(context.Background(), services.RunRequest{
		JobDescription: "Go developer",
		Files:          []models.ResumeFile{{SourceID: "a", Filename: "a.pdf", Data: []byte("not a pdf")}},
	})
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.Equal(t, 6, report.Entries[0].Score)
	assert.True(t, report.Entries[0].ExtractionFailed)
	assert.InDelta(t, 7.0, report.ThresholdApplied, 1e-9)
}

func TestNewPipelineAppliesBatchCap(t *testing.T) {
	pipeline := NewPipeline(testConfig(), scriptedGenerator{}, nil)

	files := make([]models.ResumeFile, 3)
	_, err := pipeline.Shortlister.Run(context.Background(), services.RunRequest{JobDescription: "Go developer", Files: files})

	var validationErr *services.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestBuildRequiresAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.Model.APIKey = ""

	_, err := Build(context.Background(), cfg, nil)
	assert.Error(t, err)
}
