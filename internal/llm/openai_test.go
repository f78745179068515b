package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptlens/internal/config"
)

// completionResponse is a minimal chat completion body the client can
// parse.
const completionResponse = `{
  "id": "chatcmpl-test",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [
    {
      "index": 0,
      "message": {"role": "assistant", "content": "hello from the model"},
      "finish_reason": "stop"
    }
  ],
  "usage": {"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20}
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAI {
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	provider, err := NewOpenAI(&config.OpenAIConfig{
		Provider:       "openai",
		APIKey:         "test-key",
		APIEndpoint:    ts.URL,
		RequestTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return provider
}

func TestCompleteSendsChatCompletionRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse))
	})

	resp, err := provider.Complete(context.Background(), "analyze this", Option(func(o *Options) {
		o.Model = "gpt-4o-mini"
		o.Temperature = 0.3
	}))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(gotPath, "/chat/completions"), "unexpected path %q", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.Equal(t, 0.3, gotBody["temperature"])

	// MaxTokens was not set, so the field must be absent entirely.
	_, hasMaxTokens := gotBody["max_tokens"]
	assert.False(t, hasMaxTokens, "max_tokens should be omitted when unset")

	messages, ok := gotBody["messages"].([]interface{})
	require.True(t, ok, "expected messages array")
	require.Len(t, messages, 1, "expected a single user message")
	message := messages[0].(map[string]interface{})
	assert.Equal(t, "user", message["role"])
	assert.Equal(t, "analyze this", message["content"])

	assert.Equal(t, "hello from the model", resp.Content)
	assert.Equal(t, int64(12), resp.Usage.PromptTokens)
	assert.Equal(t, int64(8), resp.Usage.CompletionTokens)
	assert.Equal(t, int64(20), resp.Usage.TotalTokens)
}

func TestCompleteAttachesImagePart(t *testing.T) {
	var gotBody map[string]interface{}

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse))
	})

	_, err := provider.Complete(context.Background(), "describe this", Option(func(o *Options) {
		o.Model = "gpt-4o"
		o.Temperature = 0.2
		o.ImageURL = "https://example.com/cat.png"
	}))
	require.NoError(t, err)

	messages := gotBody["messages"].([]interface{})
	require.Len(t, messages, 1)
	message := messages[0].(map[string]interface{})
	assert.Equal(t, "user", message["role"])

	// The user message content is a two-part array: text plus image.
	parts, ok := message["content"].([]interface{})
	require.True(t, ok, "expected multi-part content")
	require.Len(t, parts, 2)

	textPart := parts[0].(map[string]interface{})
	assert.Equal(t, "text", textPart["type"])
	assert.Equal(t, "describe this", textPart["text"])

	imagePart := parts[1].(map[string]interface{})
	assert.Equal(t, "image_url", imagePart["type"])
	imageURL := imagePart["image_url"].(map[string]interface{})
	assert.Equal(t, "https://example.com/cat.png", imageURL["url"])
}

func TestCompleteSendsMaxTokensWhenSet(t *testing.T) {
	var gotBody map[string]interface{}

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse))
	})

	_, err := provider.Complete(context.Background(), "analyze this", Option(func(o *Options) {
		o.Model = "gpt-4o-mini"
		o.MaxTokens = 500
	}))
	require.NoError(t, err)

	assert.Equal(t, float64(500), gotBody["max_tokens"])
}

func TestCompleteDoesNotRetryUpstreamFailures(t *testing.T) {
	calls := 0
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	})

	_, err := provider.Complete(context.Background(), "analyze this", Option(func(o *Options) {
		o.Model = "gpt-4o-mini"
	}))
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failed request must not be retried")
}

func TestCompleteHandlesEmptyChoices(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "id": "chatcmpl-test",
		  "object": "chat.completion",
		  "created": 1700000000,
		  "model": "gpt-4o-mini",
		  "choices": [],
		  "usage": {"prompt_tokens": 3, "completion_tokens": 0, "total_tokens": 3}
		}`))
	})

	resp, err := provider.Complete(context.Background(), "analyze this", Option(func(o *Options) {
		o.Model = "gpt-4o-mini"
	}))
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
	assert.Equal(t, int64(3), resp.Usage.TotalTokens)
}
