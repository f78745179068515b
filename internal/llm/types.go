package llm

import "context"

type Provider interface {
	// Complete sends a single chat completion request and returns the reply.
	Complete(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64

	// ImageURL, when set, is attached to the user message as an image
	// part. Either a remote https URL or a base64 data URL.
	ImageURL string
}

type Response struct {
	Content string
	Usage   Usage
}
