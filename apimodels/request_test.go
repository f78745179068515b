package apimodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "promptlens/internal/errors"
)

func decodeAnalysis(t *testing.T, body string) AnalysisRequest {
	req := NewAnalysisRequest()
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func decodeImageURL(t *testing.T, body string) ImageURLRequest {
	req := NewImageURLRequest()
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestAnalysisRequestDefaults(t *testing.T) {
	req := decodeAnalysis(t, `{"prompt": "hello"}`)

	require.NoError(t, req.Validate())
	assert.Equal(t, "hello", req.Prompt)
	assert.Equal(t, ModelGPT4oMini, req.Model)
	assert.Equal(t, 0.3, req.Temperature)
}

func TestAnalysisRequestKeepsExplicitZeroTemperature(t *testing.T) {
	// An explicit zero is a valid choice and must not fall back to the
	// default.
	req := decodeAnalysis(t, `{"prompt": "hello", "temperature": 0}`)

	require.NoError(t, req.Validate())
	assert.Equal(t, 0.0, req.Temperature)
}

func TestAnalysisRequestTrimsPrompt(t *testing.T) {
	req := decodeAnalysis(t, `{"prompt": "  hello  "}`)

	require.NoError(t, req.Validate())
	assert.Equal(t, "hello", req.Prompt)
}

func TestAnalysisRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty prompt", `{"prompt": ""}`},
		{"whitespace prompt", `{"prompt": "   "}`},
		{"vision-only model", `{"prompt": "x", "model": "gpt-4o"}`},
		{"unknown model", `{"prompt": "x", "model": "claude-3"}`},
		{"temperature too high", `{"prompt": "x", "temperature": 1.5}`},
		{"temperature negative", `{"prompt": "x", "temperature": -0.1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := decodeAnalysis(t, tc.body)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestImageURLRequestDefaults(t *testing.T) {
	req := decodeImageURL(t, `{"image_url": "https://example.com/cat.png"}`)

	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultImageURLPrompt, req.Prompt)
	assert.Equal(t, ModelGPT4o, req.Model)
	assert.Equal(t, 0.2, req.Temperature)
}

func TestImageURLRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing url", `{}`},
		{"plain http", `{"image_url": "http://example.com/cat.png"}`},
		{"ftp scheme", `{"image_url": "ftp://example.com/cat.png"}`},
		{"no host", `{"image_url": "https://"}`},
		{"whitespace prompt", `{"image_url": "https://example.com/a.png", "prompt": "  "}`},
		{"text-only model", `{"image_url": "https://example.com/a.png", "model": "gpt-4-turbo"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := decodeImageURL(t, tc.body)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestImageFileRequestDefaults(t *testing.T) {
	req := NewImageFileRequest()

	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultImageFilePrompt, req.Prompt)
	assert.Equal(t, ModelGPT4oMini, req.Model)
	assert.Equal(t, 0.2, req.Temperature)
}

func TestImageFileRequestValidate(t *testing.T) {
	req := NewImageFileRequest()
	req.Model = "dall-e-3"

	err := req.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAvailableModels(t *testing.T) {
	assert.Equal(t, []string{ModelGPT4o, ModelGPT4oMini, ModelGPT4Turbo}, AvailableModels())
}
