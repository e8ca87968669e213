package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/domain"
	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// RuntimeStatusResponse reports backend choices and AI capability flags
// @Description Runtime capability report
type RuntimeStatusResponse struct {
	SessionBackend     string `json:"session_backend" example:"redis"`
	PatientBackend     string `json:"patient_backend" example:"sqlite"`
	EmbeddingAvailable bool   `json:"embedding_available"`
	LLMAvailable       bool   `json:"llm_available"`
	RetrievalAvailable bool   `json:"retrieval_available"`
}

// IngestAcceptedResponse is returned when an ingest run is queued
// @Description Queued ingest task reference
type IngestAcceptedResponse struct {
	TaskID string `json:"task_id" example:"xK9f2mQZpL3wN8cR"`
}

// IngestRequest triggers an ingest run
// @Description Ingest trigger payload
type IngestRequest struct {
	Directory string `json:"directory" example:"./guidelines"`
	Reset     bool   `json:"reset"`

	// Async queues the run for the background worker instead of blocking.
	Async bool `json:"async"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness; verifies the patient store and session backend
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "patient store unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "session backend unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// handleStatus godoc
// @Summary      Runtime status
// @Description  Reports backend choices and which AI services are currently available
// @Tags         Health
// @Produce      json
// @Success      200  {object}  RuntimeStatusResponse
// @Router       /status [get]
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.services.Config()
	writeJSON(w, http.StatusOK, RuntimeStatusResponse{
		SessionBackend:     cfg.SessionBackend,
		PatientBackend:     cfg.PatientBackend,
		EmbeddingAvailable: cfg.EmbeddingAvailable(),
		LLMAvailable:       cfg.LLMAvailable(),
		RetrievalAvailable: cfg.RetrievalAvailable(),
	})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Patient login
// @Description  Authenticate with name and optional PIN to receive a token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Wrong PIN"
// @Failure      404      {object}  ErrorResponse  "Patient not registered"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "patient not registered, please register first")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "name is required")
		default:
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new access token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout patient
// @Description  Invalidate the current session token
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	_ = s.authService.Logout(r.Context(), token)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Patient endpoints

// handleRegisterPatient godoc
// @Summary      Register patient
// @Description  Create a patient profile with condition and clinical markers
// @Tags         Patients
// @Accept       json
// @Produce      json
// @Param        request  body      driving.RegisterPatientRequest  true  "Patient details"
// @Success      201      {object}  domain.Profile
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "Name already registered"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /patients [post]
func (s *Server) handleRegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req driving.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := s.patientService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "a patient with this name already exists")
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// handleGetPatient godoc
// @Summary      Get patient
// @Description  Get a patient profile by name
// @Tags         Patients
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Patient name"
// @Success      200   {object}  domain.Profile
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      404   {object}  ErrorResponse  "Patient not registered"
// @Router       /patients/{name} [get]
func (s *Server) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	profile, err := s.patientService.Get(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, "patient not registered")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// handleListPatients godoc
// @Summary      List patients
// @Description  Get all patient profiles, newest first
// @Tags         Patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Profile
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /patients [get]
func (s *Server) handleListPatients(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.patientService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list patients")
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// handleDeletePatient godoc
// @Summary      Delete patient
// @Description  Remove a patient profile and its sessions
// @Tags         Patients
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Patient name"
// @Success      200   {object}  StatusResponse
// @Failure      401   {object}  ErrorResponse  "Unauthorized"
// @Failure      404   {object}  ErrorResponse  "Patient not registered"
// @Router       /patients/{name} [delete]
func (s *Server) handleDeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := s.patientService.Delete(r.Context(), r.PathValue("name")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "patient not registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete patient")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Consultation endpoints

// handleAsk godoc
// @Summary      Ask a question
// @Description  Run the consultation pipeline and return the complete answer with citations
// @Tags         Consultations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.AskRequest  true  "Question"
// @Success      200      {object}  domain.Consultation
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Patient not registered"
// @Failure      503      {object}  ErrorResponse  "Language model offline"
// @Router       /consultations [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req driving.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	consultation, err := s.consultationService.Ask(r.Context(), req)
	if err != nil {
		writeConsultationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, consultation)
}

// handleAskStream godoc
// @Summary      Ask a question (streaming)
// @Description  Run the consultation pipeline and stream the answer as server-sent events. A meta event with citations precedes the deltas; a done event follows the last delta.
// @Tags         Consultations
// @Accept       json
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        request  body  driving.AskRequest  true  "Question"
// @Success      200  {string}  string  "SSE stream"
// @Failure      400  {object}  ErrorResponse  "Invalid request body"
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Patient not registered"
// @Failure      503  {object}  ErrorResponse  "Language model offline"
// @Router       /consultations/stream [post]
func (s *Server) handleAskStream(w http.ResponseWriter, r *http.Request) {
	var req driving.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	consultation, deltas, err := s.consultationService.AskStream(r.Context(), req)
	if err != nil {
		writeConsultationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Citations and the fallback flag are known before generation starts
	writeSSE(w, "meta", consultation)
	flusher.Flush()

	for delta := range deltas {
		if delta.Err != nil {
			writeSSE(w, "error", map[string]string{"error": delta.Err.Error()})
			flusher.Flush()
			return
		}
		writeSSE(w, "delta", map[string]any{"text": delta.Text, "done": delta.Done})
		flusher.Flush()
	}

	writeSSE(w, "done", map[string]string{"status": "ok"})
	flusher.Flush()
}

// writeConsultationError maps pipeline errors to HTTP responses
func writeConsultationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "patient not registered, please register first")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "language model is offline")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "consultation failed")
	}
}

// Ingest endpoints

// handleIngest godoc
// @Summary      Ingest guidelines
// @Description  Index every supported document in a directory. Async mode queues the run for the background worker and returns a task ID.
// @Tags         Ingest
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      IngestRequest  true  "Ingest parameters"
// @Success      200      {object}  domain.IngestReport
// @Success      202      {object}  IngestAcceptedResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      409      {object}  ErrorResponse  "Ingest already running"
// @Failure      503      {object}  ErrorResponse  "Embedding service or vector store offline"
// @Router       /ingest [post]
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Directory == "" {
		writeError(w, http.StatusBadRequest, "directory is required")
		return
	}

	if req.Async {
		taskID, err := s.ingestService.Enqueue(r.Context(), req.Directory, req.Reset)
		if err != nil {
			if errors.Is(err, domain.ErrServiceUnavailable) {
				writeError(w, http.StatusServiceUnavailable, "task queue is not configured")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to queue ingest")
			return
		}
		writeJSON(w, http.StatusAccepted, IngestAcceptedResponse{TaskID: taskID})
		return
	}

	report, err := s.ingestService.Ingest(r.Context(), req.Directory, req.Reset)
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "embedding service or vector store offline")
			return
		}
		if errors.Is(err, domain.ErrIngestInProgress) {
			writeError(w, http.StatusConflict, "an ingest run is already in progress")
			return
		}
		writeError(w, http.StatusInternalServerError, "ingest failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleIngestStatus godoc
// @Summary      Ingest task status
// @Description  Get the state of a queued ingest task
// @Tags         Ingest
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  domain.Task
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Task not found"
// @Router       /ingest/tasks/{id} [get]
func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	task, err := s.ingestService.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Settings endpoints

// handleGetModelSettings godoc
// @Summary      Get model settings
// @Description  Get the active Ollama model settings
// @Tags         Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ModelSettings
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "No settings saved"
// @Router       /settings/model [get]
func (s *Server) handleGetModelSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.GetModelSettings(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no settings saved")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateModelSettings godoc
// @Summary      Update model settings
// @Description  Persist new model settings and rebuild the AI services
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.ModelSettings  true  "Model settings"
// @Success      200      {object}  domain.ModelSettings
// @Failure      400      {object}  ErrorResponse  "Invalid settings"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /settings/model [put]
func (s *Server) handleUpdateModelSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.ModelSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.settingsService.UpdateModelSettings(r.Context(), settings)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "base URL and model are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeSSE writes one server-sent event with a JSON payload
func writeSSE(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	_, _ = w.Write([]byte("event: " + event + "\ndata: " + string(payload) + "\n\n"))
}
