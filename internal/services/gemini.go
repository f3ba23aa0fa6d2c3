package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/resume-shortlister/internal/logger"
)

// TextGenerator is the language-model capability: prompt in, text out.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error)
	Model() string
}

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiOptions struct {
	APIKey            string
	Model             string
	Temperature       float32
	MaxOutputTokens   int32
	RateLimit         float64
	RateBurst         int
	MaxAttempts       int
	RetryInitialDelay time.Duration
}

type geminiService struct {
	models       contentGenerator
	modelName    string
	temperature  float32
	maxTokens    int32
	limiter      *rate.Limiter
	maxAttempts  int
	initialDelay time.Duration
	logger       *zap.Logger
}

const defaultModel = "gemini-2.5-flash-lite"

func NewGeminiService(ctx context.Context, opts GeminiOptions, log *zap.Logger) (TextGenerator, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client.Models, opts, log), nil
}

func newGeminiService(models contentGenerator, opts GeminiOptions, log *zap.Logger) *geminiService {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}

	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &geminiService{
		models:       models,
		modelName:    model,
		temperature:  opts.Temperature,
		maxTokens:    opts.MaxOutputTokens,
		limiter:      rate.NewLimiter(limit, burst),
		maxAttempts:  attempts,
		initialDelay: opts.RetryInitialDelay,
		logger:       logger.OrNop(log).With(zap.String("ai_provider", "gemini"), zap.String("ai_model", model)),
	}
}

func (g *geminiService) Model() string {
	return g.modelName
}

// GenerateText retries failed attempts with exponential backoff until the
// attempt budget or ctx runs out.
func (g *geminiService) GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error) {
	var lastErr error
	delay := g.initialDelay

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		result, err := g.generateOnce(ctx, systemPrompt, prompt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		if attempt == g.maxAttempts {
			break
		}

		g.logger.Warn("model call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", fmt.Errorf("context cancelled: %w", ctx.Err())
			case <-timer.C:
			}
			delay *= 2
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", g.maxAttempts, lastErr)
}

func (g *geminiService) generateOnce(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  g.maxTokens,
		ResponseMIMEType: "application/json",
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}}
	}

	started := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", errors.New("no response generated (nil response)")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("no text content in response")
	}

	g.logger.Debug("model response received",
		zap.Duration("latency", time.Since(started)),
		zap.Int("response_length", len(text)),
	)

	return text, nil
}
