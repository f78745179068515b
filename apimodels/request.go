package apimodels

import (
	"net/url"
	"strings"

	apperrors "promptlens/internal/errors"
)

// Chat models accepted by the service.
const (
	ModelGPT4o     = "gpt-4o"
	ModelGPT4oMini = "gpt-4o-mini"
	ModelGPT4Turbo = "gpt-4-turbo"
)

// Per-endpoint defaults.
const (
	DefaultTextModel       = ModelGPT4oMini
	DefaultTextTemperature = 0.3

	DefaultImageURLModel  = ModelGPT4o
	DefaultImageURLPrompt = "Describe the image and extract entities."

	DefaultImageFileModel  = ModelGPT4oMini
	DefaultImageFilePrompt = "Describe this image"

	DefaultImageTemperature = 0.2
)

var (
	textModels   = []string{ModelGPT4oMini, ModelGPT4Turbo}
	visionModels = []string{ModelGPT4o, ModelGPT4oMini}
)

// AvailableModels returns every model identifier the service accepts, in a
// fixed order.
func AvailableModels() []string {
	return []string{ModelGPT4o, ModelGPT4oMini, ModelGPT4Turbo}
}

type AnalysisRequest struct {
	// Prompt is the text to analyze; required, must be non-empty after trimming
	Prompt string `json:"prompt"`

	// Model selects the chat model (gpt-4o-mini or gpt-4-turbo)
	Model string `json:"model"`

	// Temperature controls randomness (0.0-1.0)
	Temperature float64 `json:"temperature"`
}

// NewAnalysisRequest returns a request carrying the documented defaults.
// Decode the request body over it so absent fields keep their defaults.
func NewAnalysisRequest() AnalysisRequest {
	return AnalysisRequest{
		Model:       DefaultTextModel,
		Temperature: DefaultTextTemperature,
	}
}

// Validate trims the prompt and enforces the field constraints. The request
// must not be mutated after a successful Validate.
func (r *AnalysisRequest) Validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Prompt == "" {
		return apperrors.NewValidationError("prompt cannot be empty", nil)
	}
	if err := validateModel(r.Model, textModels); err != nil {
		return err
	}
	return validateTemperature(r.Temperature)
}

type ImageURLRequest struct {
	// ImageURL is a publicly reachable https URL to a jpeg/png/webp image
	ImageURL string `json:"image_url"`

	// Prompt is the instruction for what to extract or describe
	Prompt string `json:"prompt"`

	// Model selects the vision-capable model (gpt-4o or gpt-4o-mini)
	Model string `json:"model"`

	// Temperature controls randomness (0.0-1.0)
	Temperature float64 `json:"temperature"`
}

func NewImageURLRequest() ImageURLRequest {
	return ImageURLRequest{
		Prompt:      DefaultImageURLPrompt,
		Model:       DefaultImageURLModel,
		Temperature: DefaultImageTemperature,
	}
}

func (r *ImageURLRequest) Validate() error {
	if err := validateImageURL(r.ImageURL); err != nil {
		return err
	}
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Prompt == "" {
		return apperrors.NewValidationError("prompt cannot be empty", nil)
	}
	if err := validateModel(r.Model, visionModels); err != nil {
		return err
	}
	return validateTemperature(r.Temperature)
}

// ImageFileRequest carries an uploaded image plus the multipart form fields
// that accompany it. Data is the raw file content; Filename is kept for
// logging only and is never trusted for type detection.
type ImageFileRequest struct {
	Prompt      string
	Model       string
	Temperature float64
	Filename    string
	Data        []byte
}

func NewImageFileRequest() ImageFileRequest {
	return ImageFileRequest{
		Prompt:      DefaultImageFilePrompt,
		Model:       DefaultImageFileModel,
		Temperature: DefaultImageTemperature,
	}
}

// Validate checks the form fields only; size and signature checks on Data
// belong to the image validator and run before this.
func (r *ImageFileRequest) Validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Prompt == "" {
		return apperrors.NewValidationError("prompt cannot be empty", nil)
	}
	if err := validateModel(r.Model, visionModels); err != nil {
		return err
	}
	return validateTemperature(r.Temperature)
}

func validateModel(model string, allowed []string) error {
	for _, m := range allowed {
		if model == m {
			return nil
		}
	}
	return apperrors.NewValidationError(
		"model must be one of: "+strings.Join(allowed, ", "), nil)
}

func validateTemperature(t float64) error {
	if t < 0 || t > 1 {
		return apperrors.NewValidationError("temperature must be between 0 and 1", nil)
	}
	return nil
}

func validateImageURL(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return apperrors.NewValidationError("image_url is required", nil)
	}
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return apperrors.NewValidationError("image_url is not a valid URL", err)
	}
	if parsed.Scheme != "https" {
		return apperrors.NewValidationError("image_url must use the https scheme", nil)
	}
	if parsed.Host == "" {
		return apperrors.NewValidationError("image_url must have a valid host", nil)
	}
	return nil
}
