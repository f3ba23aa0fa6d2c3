package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/models"
)

type CandidateEvaluator interface {
	Evaluate(ctx context.Context, profile *models.RequirementProfile, doc *models.ResumeDocument) (*models.CandidateEvaluation, error)
}

type candidateEvaluator struct {
	generator      TextGenerator
	promptBuilder  *PromptBuilder
	timeout        time.Duration
	maxResumeChars int
	logger         *zap.Logger
	maxLogLen      int
}

func NewCandidateEvaluator(generator TextGenerator, timeout time.Duration, maxResumeChars int, log *zap.Logger) CandidateEvaluator {
	return &candidateEvaluator{
		generator:      generator,
		promptBuilder:  NewPromptBuilder(),
		timeout:        timeout,
		maxResumeChars: maxResumeChars,
		logger:         logger.OrNop(log),
		maxLogLen:      200,
	}
}

// Evaluate scores one candidate with a single model call. Documents with no
// text are still sent so the model can return a (low) score. Errors are
// *CandidateEvaluationError and must not abort the run.
func (e *candidateEvaluator) Evaluate(ctx context.Context, profile *models.RequirementProfile, doc *models.ResumeDocument) (*models.CandidateEvaluation, error) {
	if doc == nil {
		return nil, &CandidateEvaluationError{Err: errors.New("resume document is required")}
	}
	if profile == nil {
		return nil, &CandidateEvaluationError{SourceID: doc.SourceID, Err: errors.New("requirement profile is required")}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	log := e.logger.With(zap.String("source_id", doc.SourceID), zap.String("filename", doc.Filename))

	prompt := e.promptBuilder.BuildEvaluationPrompt(profile, ClipText(doc.RawText, e.maxResumeChars))
	log.Debug("candidate evaluation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateText(ctx, evaluationSystemPrompt, prompt)
	if err != nil {
		return nil, &CandidateEvaluationError{SourceID: doc.SourceID, Err: err}
	}

	log.Debug("candidate evaluation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	result, err := ParseEvaluation(raw)
	if err != nil {
		return nil, &CandidateEvaluationError{SourceID: doc.SourceID, Err: err}
	}

	eval := &models.CandidateEvaluation{
		Score:              result.Score,
		Reasoning:          result.Reasoning,
		InterviewQuestions: result.InterviewQuestions,
	}
	eval.CopyContact(doc)

	return eval, nil
}
