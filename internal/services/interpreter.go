package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/models"
)

type RequirementInterpreter interface {
	Interpret(ctx context.Context, jobDescription string) (*models.RequirementProfile, error)
}

type requirementInterpreter struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	timeout       time.Duration
	logger        *zap.Logger
	maxLogLen     int
}

func NewRequirementInterpreter(generator TextGenerator, timeout time.Duration, log *zap.Logger) RequirementInterpreter {
	return &requirementInterpreter{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		timeout:       timeout,
		logger:        logger.OrNop(log),
		maxLogLen:     200,
	}
}

// Interpret makes exactly one model call. Any failure is a *ModelInvocationError.
func (i *requirementInterpreter) Interpret(ctx context.Context, jobDescription string) (*models.RequirementProfile, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Field: "job_description", Message: "must not be empty"}
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	prompt := i.promptBuilder.BuildRequirementPrompt(jobDescription)
	i.logger.Debug("requirement interpretation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, i.maxLogLen)),
	)

	raw, err := i.generator.GenerateText(ctx, requirementSystemPrompt, prompt)
	if err != nil {
		return nil, &ModelInvocationError{Stage: "requirement interpretation", Err: err}
	}

	i.logger.Debug("requirement interpretation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, i.maxLogLen)),
	)

	profile, err := ParseRequirementProfile(raw)
	if err != nil {
		return nil, &ModelInvocationError{Stage: "requirement interpretation", Err: err}
	}

	return profile, nil
}
