package apimodels

type AnalysisResponse struct {
	// The model's answer text
	Response string `json:"response"`

	// Time spent on the upstream call, e.g. "1.24s"
	Latency string `json:"latency"`

	// Model that produced the answer
	Model string `json:"model"`
}

type ImageInsightResponse struct {
	// Natural-language description of the image
	Summary string `json:"summary"`

	// Entities recognized in the image; empty list when none
	Entities []string `json:"entities"`

	// Text read from the image, null when none was extracted
	TextInImage *string `json:"text_in_image"`

	// Model that produced the insight
	ModelUsed string `json:"model_used"`

	// Total tokens billed for the upstream call
	TokensUsed int64 `json:"tokens_used"`
}

type ErrorResponse struct {
	// Machine-readable error kind
	Error string `json:"error"`

	// Human-readable detail
	Message string `json:"message"`
}

type ServiceInfo struct {
	Service string `json:"service"`
	Docs    string `json:"docs"`
}

type HealthStatus struct {
	OK bool `json:"ok"`
}

type ModelList struct {
	AvailableModels []string `json:"available_models"`
}

// EndpointDoc describes one route for the /docs listing.
type EndpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type DocsResponse struct {
	Service   string        `json:"service"`
	Endpoints []EndpointDoc `json:"endpoints"`
}
