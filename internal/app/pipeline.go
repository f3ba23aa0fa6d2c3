package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/config"
	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/services"
)

// Pipeline bundles the services both binaries need to run a shortlist.
type Pipeline struct {
	Uploads     services.UploadReader
	Shortlister services.Shortlister
	Model       string
}

// Build connects to Gemini and wires the pipeline around it.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Pipeline, error) {
	generator, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:            cfg.Model.APIKey,
		Model:             cfg.Model.Name,
		Temperature:       cfg.Model.Temperature,
		MaxOutputTokens:   cfg.Model.MaxOutputTokens,
		RateLimit:         cfg.Model.RateLimit,
		RateBurst:         cfg.Model.RateBurst,
		MaxAttempts:       cfg.Worker.RetryMaxAttempts,
		RetryInitialDelay: cfg.Worker.RetryInitialDelay,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini: %w", err)
	}

	return NewPipeline(cfg, generator, log), nil
}

func NewPipeline(cfg *config.Config, generator services.TextGenerator, log *zap.Logger) *Pipeline {
	log = logger.OrNop(log).With(zap.String("ai_provider", "gemini"), zap.String("ai_model", generator.Model()))

	extractor := services.NewPDFParserService(log)
	interpreter := services.NewRequirementInterpreter(generator, cfg.Worker.InterpretTimeout, log)
	evaluator := services.NewCandidateEvaluator(generator, cfg.Worker.EvaluateTimeout, cfg.Shortlist.MaxResumeChars, log)
	worker := services.NewWorker(evaluator, cfg.Worker.Concurrency, log)

	shortlister := services.NewShortlistOrchestrator(extractor, interpreter, worker, services.ShortlistOptions{
		MaxResumes:           cfg.Shortlist.MaxResumes,
		ScoreThreshold:       cfg.Shortlist.ScoreThreshold,
		FilterBelowThreshold: cfg.Shortlist.FilterBelowThreshold,
		RunTimeout:           cfg.Worker.RunTimeout,
	}, log)

	return &Pipeline{
		Uploads:     services.NewUploadReader(cfg.Storage.MaxFileSize, log),
		Shortlister: shortlister,
		Model:       generator.Model(),
	}
}
