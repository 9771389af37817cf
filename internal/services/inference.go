package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
)

// InferenceService turns an analysis request into raw model text. It
// owns the retry policy: transient failures (rate limits, 5xx, per-call
// timeouts, transport hiccups) are retried with exponential backoff,
// provider rejections fail immediately, and the whole sequence is
// capped by a ceiling timeout.
type InferenceService interface {
	Complete(ctx context.Context, req *models.AnalysisRequest) (string, error)
}

type inferenceService struct {
	llm           GeminiService
	promptBuilder *PromptBuilder
	temperature   float32
	retry         config.RetryConfig
}

func NewInferenceService(llm GeminiService, temperature float32, retry config.RetryConfig) InferenceService {
	return &inferenceService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		temperature:   temperature,
		retry:         retry,
	}
}

// Complete implements InferenceService.
func (s *inferenceService) Complete(ctx context.Context, req *models.AnalysisRequest) (string, error) {
	prompt := s.promptBuilder.BuildAnalysisPrompt(req.ResumeText, req.JobDescription)

	// Ceiling over all attempts so a slow provider cannot stall the
	// request indefinitely.
	if s.retry.TotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.retry.TotalTimeout)
		defer cancel()
	}

	attempts := s.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := s.retry.InitialDelay

	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := s.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}

		// The ceiling firing, or the caller going away, ends the
		// sequence no matter what the attempt reported.
		if ctx.Err() != nil {
			return "", pipelineError(opInference, ErrInferenceTimeout, ctx.Err().Error())
		}

		if isRejection(err) {
			return "", pipelineError(opInference, ErrServiceRejected, err.Error())
		}

		lastErr = err
		if attempt < attempts {
			log.Printf("⚠️  Inference attempt %d/%d failed: %v. Retrying in %s...", attempt, attempts, err, delay)
			select {
			case <-ctx.Done():
				return "", pipelineError(opInference, ErrInferenceTimeout, ctx.Err().Error())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return "", pipelineError(opInference, ErrServiceUnavailable,
		fmt.Sprintf("after %d attempts: %v", attempts, lastErr))
}

func (s *inferenceService) generateOnce(ctx context.Context, prompt string) (string, error) {
	if s.retry.PerCallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.retry.PerCallTimeout)
		defer cancel()
	}
	return s.llm.GenerateText(ctx, prompt, s.temperature)
}

// isRejection reports whether the provider refused the request outright
// (bad key, malformed request, unknown model). Those never succeed on
// retry. Rate limiting (429) stays transient.
func isRejection(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429
	}
	return false
}
