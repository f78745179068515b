package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"promptlens/apimodels"
	apperrors "promptlens/internal/errors"
	"promptlens/internal/validation"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.ServiceInfo{
		Service: ServiceName,
		Docs:    "/docs",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.HealthStatus{OK: true})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.ModelList{
		AvailableModels: apimodels.AvailableModels(),
	})
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apimodels.DocsResponse{
		Service: ServiceName,
		Endpoints: []apimodels.EndpointDoc{
			{Method: http.MethodGet, Path: "/", Description: "Service banner"},
			{Method: http.MethodGet, Path: "/health", Description: "Liveness probe"},
			{Method: http.MethodGet, Path: "/models", Description: "Models accepted by the analysis endpoints"},
			{Method: http.MethodPost, Path: "/analyze", Description: "Analyze a text prompt"},
			{Method: http.MethodPost, Path: "/analyze-image", Description: "Analyze an image by https URL"},
			{Method: http.MethodPost, Path: "/analyze-file", Description: "Analyze an uploaded image (multipart, field \"file\")"},
		},
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	req := apimodels.NewAnalysisRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, decodeError(err))
		return
	}

	result, err := s.analyzer.AnalyzeText(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	req := apimodels.NewImageURLRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, decodeError(err))
		return
	}

	result, err := s.analyzer.AnalyzeImageURL(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		writeError(w, multipartError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperrors.NewValidationError("file is required", err))
		return
	}
	defer file.Close()

	// Read one byte past the cap so the validator can tell an at-limit
	// image from an oversized one.
	data, err := io.ReadAll(io.LimitReader(file, validation.MaxImageBytes+1))
	if err != nil {
		writeError(w, apperrors.NewInternalError("failed to read uploaded file", err))
		return
	}

	req := apimodels.NewImageFileRequest()
	req.Filename = header.Filename
	req.Data = data
	if v := r.FormValue("prompt"); v != "" {
		req.Prompt = v
	}
	if v := r.FormValue("model"); v != "" {
		req.Model = v
	}
	if v := r.FormValue("temperature"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, apperrors.NewValidationError("temperature must be a number", err))
			return
		}
		req.Temperature = t
	}

	result, err := s.analyzer.AnalyzeImageUpload(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
