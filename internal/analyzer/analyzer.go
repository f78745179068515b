package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"promptlens/apimodels"
	apperrors "promptlens/internal/errors"
	"promptlens/internal/llm"
	"promptlens/internal/validation"
)

type Analyzer struct {
	llmProvider llm.Provider
	validator   *validation.ImageValidator
}

func New(llmProvider llm.Provider, validator *validation.ImageValidator) *Analyzer {
	return &Analyzer{
		llmProvider: llmProvider,
		validator:   validator,
	}
}

// AnalyzeText forwards a text prompt to the model and shapes the reply.
// Validation failures return before any upstream call is made.
func (a *Analyzer) AnalyzeText(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slog.Info("starting text analysis", "model", req.Model)

	startTime := time.Now()
	resp, err := a.llmProvider.Complete(ctx, req.Prompt, llm.Option(func(o *llm.Options) {
		o.Model = req.Model
		o.Temperature = req.Temperature
	}))
	latency := time.Since(startTime)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	slog.Info("text analysis complete",
		"model", req.Model,
		"latency", formatLatency(latency),
		"tokens", resp.Usage.TotalTokens)

	return &apimodels.AnalysisResponse{
		Response: resp.Content,
		Latency:  formatLatency(latency),
		Model:    req.Model,
	}, nil
}

// AnalyzeImageURL sends a remote image reference to a vision model.
func (a *Analyzer) AnalyzeImageURL(ctx context.Context, req apimodels.ImageURLRequest) (*apimodels.ImageInsightResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slog.Info("starting image url analysis", "model", req.Model)
	return a.analyzeImage(ctx, req.Prompt, req.Model, req.Temperature, req.ImageURL)
}

// AnalyzeImageUpload validates uploaded bytes and sends them to a vision
// model as a base64 data URL. The size and signature checks run before
// the form fields are looked at, so an oversized file is rejected as
// oversized even when other fields are also invalid.
func (a *Analyzer) AnalyzeImageUpload(ctx context.Context, req apimodels.ImageFileRequest) (*apimodels.ImageInsightResponse, error) {
	mime, err := a.validator.Validate(req.Data)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	slog.Info("starting image upload analysis",
		"model", req.Model,
		"filename", req.Filename,
		"mime", mime,
		"size", len(req.Data))
	return a.analyzeImage(ctx, req.Prompt, req.Model, req.Temperature, validation.DataURL(mime, req.Data))
}

func (a *Analyzer) analyzeImage(ctx context.Context, prompt, model string, temperature float64, imageURL string) (*apimodels.ImageInsightResponse, error) {
	startTime := time.Now()
	resp, err := a.llmProvider.Complete(ctx, prompt, llm.Option(func(o *llm.Options) {
		o.Model = model
		o.Temperature = temperature
		o.ImageURL = imageURL
	}))
	latency := time.Since(startTime)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, apperrors.NewUpstreamError("model returned an empty response", nil)
	}

	slog.Info("image analysis complete",
		"model", model,
		"latency", formatLatency(latency),
		"tokens", resp.Usage.TotalTokens)

	return &apimodels.ImageInsightResponse{
		Summary:    resp.Content,
		Entities:   []string{},
		ModelUsed:  model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func mapUpstreamError(err error) error {
	slog.Error("upstream completion failed", "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("upstream request timed out", err)
	}
	return apperrors.NewUpstreamError("upstream request failed", err)
}

// formatLatency renders a duration as seconds with two decimals, e.g.
// "1.24s".
func formatLatency(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
